package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kasuganosora/pokebattle/cache"
	"github.com/kasuganosora/pokebattle/config"
	dbadapter "github.com/kasuganosora/pokebattle/db"
	"github.com/kasuganosora/pokebattle/model"
	"github.com/kasuganosora/pokebattle/resource"
)

// SetupTestDB creates an in-memory SQLite DB and runs AutoMigrate. It
// requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{Mode: dbadapter.ModeMemory})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}

// SetupTestCache creates an in-process cache and pub/sub (no Redis needed).
func SetupTestCache(t *testing.T) (cache.Cache, cache.PubSub) {
	t.Helper()
	cfg := cache.Config{} // empty RedisAddr selects the local backends
	c, err := cache.NewCache(cfg)
	require.NoError(t, err, "SetupTestCache: NewCache")
	ps, err := cache.NewPubSub(cfg)
	require.NoError(t, err, "SetupTestCache: NewPubSub")
	return c, ps
}

// SetupTestLoader loads the built-in data tables.
func SetupTestLoader(t *testing.T) *resource.Loader {
	t.Helper()
	l := resource.NewLoader("")
	require.NoError(t, l.Load(), "SetupTestLoader: Load")
	return l
}
