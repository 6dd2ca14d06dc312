package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apirest "github.com/kasuganosora/pokebattle/api/rest"
	apiws "github.com/kasuganosora/pokebattle/api/ws"
	"github.com/kasuganosora/pokebattle/cache"
	"github.com/kasuganosora/pokebattle/config"
	"github.com/kasuganosora/pokebattle/game/ai"
	"github.com/kasuganosora/pokebattle/game/arena"
	mw "github.com/kasuganosora/pokebattle/middleware"
	"github.com/kasuganosora/pokebattle/record"
	"github.com/kasuganosora/pokebattle/testutil"
)

// TestServer is a fully wired battle server for integration tests. The
// dependency wiring mirrors main.go.
type TestServer struct {
	DB      *gorm.DB
	Cache   cache.Cache
	PubSub  cache.PubSub
	Arena   *arena.Manager
	Records *record.Service
	Server  *httptest.Server
	URL     string
	WSURL   string
}

// NewTestServer assembles data tables, database, cache, arena and the full
// HTTP surface on a real listener.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	db := testutil.SetupTestDB(t)
	kv, pubsub := testutil.SetupTestCache(t)
	loader := testutil.SetupTestLoader(t)

	presets, err := ai.LoadPresets("")
	require.NoError(t, err)

	records := record.New(db, logger)
	t.Cleanup(func() { records.Stop(context.Background()) })

	manager := arena.NewManager(arena.Options{
		Loader:  loader,
		Presets: presets,
		PubSub:  pubsub,
		Cache:   kv,
		Records: records,
		Logger:  logger,
	})

	r := gin.New()
	r.Use(mw.TraceID(), mw.Recovery(logger))
	apirest.Register(r,
		apirest.NewBattleHandler(manager, logger),
		apirest.NewPresetHandler(presets),
		apirest.NewRecordHandler(records, manager, logger))
	wsH := apiws.NewHandler(manager, pubsub, config.SecurityConfig{}, logger)
	r.GET("/ws/battles/:id", wsH.Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &TestServer{
		DB:      db,
		Cache:   kv,
		PubSub:  pubsub,
		Arena:   manager,
		Records: records,
		Server:  srv,
		URL:     srv.URL,
		WSURL:   "ws" + strings.TrimPrefix(srv.URL, "http"),
	}
}

// PostJSON sends a JSON body and decodes the JSON response into out (when
// out is non-nil), returning the status code.
func (ts *TestServer) PostJSON(t *testing.T, path string, body, out interface{}) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// GetJSON fetches path and decodes the JSON response into out when non-nil.
func (ts *TestServer) GetJSON(t *testing.T, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
