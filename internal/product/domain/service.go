package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Field names a counter that the stepper buttons change.
type Field string

const (
	FieldSingles Field = "singles"
	FieldCases   Field = "cases"
)

// Confirmer is the yes/no prompt shown before destructive operations.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function into a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

var (
	Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	Declined  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

type Service interface {
	Seed(ctx context.Context, products []Product) []Product
	Snapshot(ctx context.Context) []Product
	Active(ctx context.Context) []Product
	Get(ctx context.Context, id snowflake.ID) (Product, error)
	Add(ctx context.Context, req AddRequest) (Product, error)
	Delete(ctx context.Context, id snowflake.ID, confirm Confirmer) (bool, error)
	ChangeCount(ctx context.Context, id snowflake.ID, field Field, delta int) (Product, error)
	ChangePackSize(ctx context.Context, id snowflake.ID, input *string) (Product, bool, error)
	Complete(ctx context.Context, id snowflake.ID) (Product, error)
	ResetShift(ctx context.Context, confirm Confirmer) (bool, error)
}

type AddRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

var (
	ErrProductNotFound = errors.New("product_not_found")
	ErrInvalidField    = errors.New("invalid_field")
	ErrInvalidDelta    = errors.New("invalid_delta")
	ErrInvalidID       = errors.New("invalid_id")
)
