package catalog

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("catalog",
	fx.Provide(
		NewHTTPFetcher,
		func(f *HTTPFetcher) Fetcher { return f },
		NewLoader,
	),
	fx.Invoke(registerBootstrap),
)

func registerBootstrap(lc fx.Lifecycle, loader *Loader) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := loader.Load(ctx)
			return err
		},
	})
}
