package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	obslogger "github.com/smallbiznis/shiftcount/internal/observability/logger"
	"github.com/smallbiznis/shiftcount/internal/observability/metrics"
	"github.com/smallbiznis/shiftcount/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	opAdd        = "add"
	opDelete     = "delete"
	opCount      = "change_count"
	opPackSize   = "change_pack_size"
	opComplete   = "complete"
	opResetShift = "reset_shift"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

// Store owns the canonical inventory. Every operation runs under one lock,
// and a mutation is written to the repository before the lock is released.
type Store struct {
	mu      sync.Mutex
	items   []domain.Product
	log     *zap.Logger
	repo    domain.Repository
	genID   *snowflake.Node
	metrics *metrics.Metrics
}

func New(p Params) *Store {
	return &Store{
		items:   []domain.Product{},
		log:     p.Log.Named("product.store"),
		repo:    p.Repo,
		genID:   p.GenID,
		metrics: p.Metrics,
	}
}

// Provide exposes the store through the domain interface.
func Provide(s *Store) domain.Service {
	return s
}

// Seed replaces the inventory with products, assigning fresh IDs.
// It does not persist; the bootstrap loader decides whether to.
func (s *Store) Seed(ctx context.Context, products []domain.Product) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := domain.Clone(products)
	for i := range items {
		items[i].ID = s.genID.Generate()
	}
	s.items = items
	obslogger.WithContext(ctx, s.log).Debug("inventory seeded", zap.Int("products", len(items)))
	return domain.Clone(s.items)
}

func (s *Store) Snapshot(ctx context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Clone(s.items)
}

// Active returns the products still being counted this shift.
func (s *Store) Active(ctx context.Context) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, 0, len(s.items))
	for _, p := range s.items {
		if p.Completed {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) Get(ctx context.Context, id snowflake.ID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return s.items[idx], nil
}

func (s *Store) Add(ctx context.Context, req domain.AddRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = domain.DefaultName
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	p := domain.Product{
		ID:       s.genID.Generate(),
		Name:     name,
		Category: category,
		Pack:     domain.DefaultPackSize,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]domain.Product{p}, s.items...)
	return p, s.persist(ctx, opAdd)
}

// Delete removes a product once confirm accepts the prompt.
func (s *Store) Delete(ctx context.Context, id snowflake.ID, confirm domain.Confirmer) (bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !confirm.Confirm(ctx, fmt.Sprintf("Delete %s?", current.Name)) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, domain.ErrProductNotFound
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	return true, s.persist(ctx, opDelete)
}

// ChangeCount steps singles or cases by one, never below zero.
func (s *Store) ChangeCount(ctx context.Context, id snowflake.ID, field domain.Field, delta int) (domain.Product, error) {
	if delta != 1 && delta != -1 {
		return domain.Product{}, domain.ErrInvalidDelta
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}

	p := &s.items[idx]
	switch field {
	case domain.FieldSingles:
		p.Singles = max(0, p.Singles+delta)
	case domain.FieldCases:
		p.Cases = max(0, p.Cases+delta)
	default:
		return domain.Product{}, domain.ErrInvalidField
	}
	return *p, s.persist(ctx, opCount)
}

// ChangePackSize applies a typed pack size. A nil input means the prompt was
// cancelled; it and any non-positive or non-numeric answer leave the pack as is
// and report false.
func (s *Store) ChangePackSize(ctx context.Context, id snowflake.ID, input *string) (domain.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Product{}, false, domain.ErrProductNotFound
	}
	if input == nil {
		return s.items[idx], false, nil
	}

	size, ok := domain.ParsePackSize(*input)
	if !ok {
		obslogger.WithContext(ctx, s.log).Debug("pack size input ignored",
			zap.String("product_id", id.String()),
			zap.String("input", *input),
		)
		return s.items[idx], false, nil
	}

	s.items[idx].Pack = size
	return s.items[idx], true, s.persist(ctx, opPackSize)
}

func (s *Store) Complete(ctx context.Context, id snowflake.ID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	s.items[idx].Completed = true
	return s.items[idx], s.persist(ctx, opComplete)
}

// ResetShift zeroes every count and clears completion once confirm accepts.
func (s *Store) ResetShift(ctx context.Context, confirm domain.Confirmer) (bool, error) {
	if !confirm.Confirm(ctx, "Reset all counts to zero for a new shift?") {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Singles = 0
		s.items[i].Cases = 0
		s.items[i].Completed = false
	}
	return true, s.persist(ctx, opResetShift)
}

// persist writes the full inventory. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, op string) error {
	s.metrics.RecordMutation(op, len(s.items))
	if err := s.repo.Save(ctx, s.items); err != nil {
		s.metrics.RecordPersistFailure()
		obslogger.WithContext(ctx, s.log).Error("persist inventory failed",
			zap.String("op", op),
			zap.Error(err),
		)
		return fmt.Errorf("persist inventory: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id snowflake.ID) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
