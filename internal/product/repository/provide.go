package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/smallbiznis/shiftcount/internal/product/domain"
	"github.com/smallbiznis/shiftcount/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
}

// Provide opens the backend selected by STORE_DRIVER.
func Provide(p Params) (domain.Repository, error) {
	log := p.Log.Named("product.repository")
	storeCfg := p.Config.Store

	if storeCfg.Driver == config.StoreDriverRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     storeCfg.RedisAddr,
			Password: storeCfg.RedisPassword,
			DB:       storeCfg.RedisDB,
		})
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		log.Info("using redis storage slot", zap.String("addr", storeCfg.RedisAddr), zap.String("key", storeCfg.Key))
		return NewRedisRepository(client, storeCfg.Key), nil
	}

	conn, err := db.Open(storeCfg, log, p.Config.Debug())
	if err != nil {
		return nil, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	log.Info("using sql storage slot", zap.String("driver", storeCfg.Driver), zap.String("key", storeCfg.Key))
	return NewSlotRepository(conn, storeCfg.Key)
}
