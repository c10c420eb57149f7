package domain

import "github.com/bwmarrin/snowflake"

const (
	DefaultPackSize = 24
	DefaultName     = "Unnamed item"
	DefaultCategory = "Other"
)

// Product is one trackable beverage line with its counts for the current shift.
// ID is assigned by the store when the inventory is seeded and is never persisted.
type Product struct {
	ID        snowflake.ID `json:"-"`
	Name      string       `json:"name"`
	Category  string       `json:"category"`
	Singles   int          `json:"singles"`
	Cases     int          `json:"cases"`
	Pack      int          `json:"pack"`
	Completed bool         `json:"completed"`
}

// RawProduct is one element of a stored or fetched product array. It is
// usually a JSON object, but any value is accepted.
type RawProduct = any

// Fields is the object form of a RawProduct.
type Fields = map[string]any

// TotalUnits is singles plus cases multiplied by the pack size.
func (p Product) TotalUnits() int {
	return p.Singles + p.Cases*p.Pack
}

// Raw converts the product back into its loosely-typed form.
func (p Product) Raw() Fields {
	return Fields{
		"name":      p.Name,
		"category":  p.Category,
		"singles":   p.Singles,
		"cases":     p.Cases,
		"pack":      p.Pack,
		"completed": p.Completed,
	}
}

// ToRaw converts a product list into loosely-typed records.
func ToRaw(products []Product) []RawProduct {
	out := make([]RawProduct, 0, len(products))
	for _, p := range products {
		out = append(out, p.Raw())
	}
	return out
}

// Clone returns a copy of products that shares no backing array.
func Clone(products []Product) []Product {
	if products == nil {
		return []Product{}
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
