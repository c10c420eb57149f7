package domain

import (
	"errors"

	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
)

var ErrEmptyInventory = errors.New("empty_inventory")

// Row is one product line of the end-of-shift report.
type Row struct {
	Name     string `json:"name"`
	Category string `json:"-"`
	Singles  int    `json:"singles"`
	Cases    int    `json:"cases"`
	Pack     int    `json:"pack"`
	Total    int    `json:"total"`
}

// Report is a read-only aggregate of an inventory snapshot.
type Report struct {
	Rows       []Row `json:"items"`
	GrandTotal int   `json:"grandTotal"`
}

// Aggregate totals every product, completed ones included, in inventory order.
func Aggregate(products []productdomain.Product) (Report, error) {
	if len(products) == 0 {
		return Report{}, ErrEmptyInventory
	}

	report := Report{Rows: make([]Row, 0, len(products))}
	for _, p := range products {
		total := p.TotalUnits()
		report.Rows = append(report.Rows, Row{
			Name:     p.Name,
			Category: p.Category,
			Singles:  p.Singles,
			Cases:    p.Cases,
			Pack:     p.Pack,
			Total:    total,
		})
		report.GrandTotal += total
	}
	return report, nil
}
