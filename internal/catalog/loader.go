// Package catalog seeds the inventory at startup from persisted data, the
// remote default catalog, or the bundled fallback catalog.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/observability/metrics"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type State string

const (
	StateNoLocalData         State = "no_local_data"
	StateSufficientLocalData State = "sufficient_local_data"
	StateStaleLocalData      State = "stale_local_data"
	StateReady               State = "ready"
)

type Source string

const (
	SourcePersisted Source = "persisted"
	SourceRemote    Source = "remote"
	SourceFallback  Source = "fallback"
)

//go:embed fallback.json
var fallbackCatalog []byte

type Result struct {
	// Initial is the classification of the persisted data before any fetch.
	Initial  State
	State    State
	Source   Source
	Products []productdomain.Product
}

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Repo    productdomain.Repository
	Store   productdomain.Service
	Fetcher Fetcher
	Metrics *metrics.Metrics `optional:"true"`
}

type Loader struct {
	minSize int
	log     *zap.Logger
	repo    productdomain.Repository
	store   productdomain.Service
	fetcher Fetcher
	metrics *metrics.Metrics
}

func NewLoader(p Params) *Loader {
	minSize := p.Config.Catalog.MinSize
	if minSize <= 0 {
		minSize = 1
	}
	return &Loader{
		minSize: minSize,
		log:     p.Log.Named("catalog.loader"),
		repo:    p.Repo,
		store:   p.Store,
		fetcher: p.Fetcher,
		metrics: p.Metrics,
	}
}

// Classify reports how usable a persisted inventory of n products is.
func Classify(n, minSize int) State {
	switch {
	case n == 0:
		return StateNoLocalData
	case n < minSize:
		return StateStaleLocalData
	default:
		return StateSufficientLocalData
	}
}

// Load picks the startup inventory and seeds the store with it. A freshly
// fetched catalog replaces whatever was persisted and is saved right away.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	stored, err := l.repo.Load(ctx)
	if err != nil {
		l.log.Warn("persisted inventory unreadable, treating as empty", zap.Error(err))
		stored = nil
	}

	initial := Classify(len(stored), l.minSize)
	result := Result{Initial: initial, State: StateReady}

	var products []productdomain.Product
	if initial == StateSufficientLocalData {
		products = productdomain.Normalize(stored)
		result.Source = SourcePersisted
	} else {
		products, result.Source, err = l.refresh(ctx, stored)
		if err != nil {
			return Result{}, err
		}
	}

	result.Products = l.store.Seed(ctx, products)
	l.metrics.RecordBootstrap(string(result.Source), len(result.Products))
	l.log.Info("inventory ready",
		zap.String("initial_state", string(initial)),
		zap.String("source", string(result.Source)),
		zap.Int("products", len(result.Products)),
	)
	return result, nil
}

func (l *Loader) refresh(ctx context.Context, stored []productdomain.RawProduct) ([]productdomain.Product, Source, error) {
	raw, err := l.fetcher.Fetch(ctx)
	if err == nil {
		products := productdomain.Normalize(raw)
		if saveErr := l.repo.Save(ctx, products); saveErr != nil {
			l.log.Error("persist fetched catalog failed", zap.Error(saveErr))
		}
		return products, SourceRemote, nil
	}

	l.log.Warn("catalog fetch failed", zap.Error(err))
	if len(stored) > 0 {
		return productdomain.Normalize(stored), SourcePersisted, nil
	}

	products, fbErr := Fallback()
	if fbErr != nil {
		return nil, "", fbErr
	}
	return products, SourceFallback, nil
}

// Fallback returns the bundled catalog used when nothing else is available.
func Fallback() ([]productdomain.Product, error) {
	var raw []productdomain.RawProduct
	if err := json.Unmarshal(fallbackCatalog, &raw); err != nil {
		return nil, fmt.Errorf("decode fallback catalog: %w", err)
	}
	return productdomain.Normalize(raw), nil
}
