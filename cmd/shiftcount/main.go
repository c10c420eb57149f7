package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/shiftcount/internal/catalog"
	"github.com/smallbiznis/shiftcount/internal/clock"
	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/delivery"
	"github.com/smallbiznis/shiftcount/internal/delivery/channel"
	"github.com/smallbiznis/shiftcount/internal/observability"
	"github.com/smallbiznis/shiftcount/internal/product"
	"github.com/smallbiznis/shiftcount/internal/providers"
	reportservice "github.com/smallbiznis/shiftcount/internal/report/service"
	"github.com/smallbiznis/shiftcount/internal/server"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		clock.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),

		// Inventory, seeded before the server starts serving
		product.Module,
		catalog.Module,

		// Report delivery
		providers.Module,
		channel.Module,
		delivery.Module,
		reportservice.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
