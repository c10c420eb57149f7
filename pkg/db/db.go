package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/smallbiznis/shiftcount/internal/config"
	obslogger "github.com/smallbiznis/shiftcount/internal/observability/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open connects to the configured SQL backend with zap-backed gorm logging.
func Open(cfg config.StoreConfig, log *zap.Logger, debug bool) (*gorm.DB, error) {
	dialect, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialect, &gorm.Config{
		Logger: obslogger.NewGormLogger(log, debug),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	return conn, nil
}

// NewTest opens an in-memory sqlite database private to the caller.
func NewTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: obslogger.NewGormLogger(zap.NewNop(), false),
	})
}
