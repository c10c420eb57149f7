package pdf

import (
	"context"
	"io"

	"github.com/smallbiznis/shiftcount/internal/report/render"
	"go.uber.org/fx"
)

type Provider interface {
	GenerateReport(ctx context.Context, input render.RenderInput) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateReport(ctx context.Context, input render.RenderInput) (io.Reader, error) {
	return nil, nil
}
