package db

import (
	"testing"

	"github.com/smallbiznis/shiftcount/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect(t *testing.T) {
	for _, driver := range []string{config.StoreDriverSQLite, config.StoreDriverPostgres, config.StoreDriverMySQL} {
		d, err := Dialect(config.StoreConfig{Driver: driver, DBPath: "test.db"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name(), driver)
	}

	_, err := Dialect(config.StoreConfig{Driver: config.StoreDriverRedis})
	assert.Error(t, err)
}

func TestNewTestIsolated(t *testing.T) {
	a, err := NewTest()
	require.NoError(t, err)
	b, err := NewTest()
	require.NoError(t, err)

	require.NoError(t, a.Exec("CREATE TABLE t (id INTEGER)").Error)
	assert.True(t, a.Migrator().HasTable("t"))
	assert.False(t, b.Migrator().HasTable("t"))
}
