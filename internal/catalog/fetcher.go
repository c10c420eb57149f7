package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/smallbiznis/shiftcount/internal/config"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
	"github.com/smallbiznis/shiftcount/pkg/httpclient"
)

var ErrCatalogUnavailable = errors.New("catalog_unavailable")

const maxCatalogBytes = 4 << 20

// Fetcher retrieves the remote default catalog.
type Fetcher interface {
	Fetch(ctx context.Context) ([]productdomain.RawProduct, error)
}

type HTTPFetcher struct {
	url    string
	client *http.Client
}

func NewHTTPFetcher(cfg config.Config) *HTTPFetcher {
	return &HTTPFetcher{
		url:    cfg.Catalog.URL,
		client: httpclient.New(cfg.Catalog.Timeout),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]productdomain.RawProduct, error) {
	if f.url == "" {
		return nil, ErrCatalogUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var raw []productdomain.RawProduct
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxCatalogBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrCatalogUnavailable, err)
	}
	return raw, nil
}
