package domain

import "context"

// Repository is the durable mirror of the inventory: one keyed slot holding
// the whole product list as JSON.
type Repository interface {
	Load(ctx context.Context) ([]RawProduct, error)
	Save(ctx context.Context, products []Product) error
}
