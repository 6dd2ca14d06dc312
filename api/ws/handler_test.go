package ws_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kasuganosora/pokebattle/api/ws"
	"github.com/kasuganosora/pokebattle/config"
	"github.com/kasuganosora/pokebattle/game/ai"
	"github.com/kasuganosora/pokebattle/game/arena"
	"github.com/kasuganosora/pokebattle/game/battle"
	"github.com/kasuganosora/pokebattle/testutil"
)

func init() { gin.SetMode(gin.TestMode) }

func newStreamServer(t *testing.T, sec config.SecurityConfig) (*httptest.Server, *arena.Manager) {
	t.Helper()
	loader := testutil.SetupTestLoader(t)
	presets, err := ai.LoadPresets("")
	require.NoError(t, err)
	kv, ps := testutil.SetupTestCache(t)

	m := arena.NewManager(arena.Options{
		Loader:  loader,
		Presets: presets,
		PubSub:  ps,
		Cache:   kv,
		Logger:  zap.NewNop(),
	})

	r := gin.New()
	h := ws.NewHandler(m, ps, sec, zap.NewNop())
	r.GET("/ws/battles/:id", h.Stream)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, m
}

func startBattle(t *testing.T, m *arena.Manager) *arena.Battle {
	t.Helper()
	b, err := m.StartBattle("ash", []ai.PresetMember{
		{Species: "Gyarados", Level: 50, Moves: []string{"Waterfall", "Ice Punch", "Dragon Dance"}},
	}, "Youngster Ben", 42)
	require.NoError(t, err)
	return b
}

func wsURL(srv *httptest.Server, battleID string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/battles/" + battleID
}

func TestStreamReplaysHistoryAndForwardsLiveEvents(t *testing.T) {
	srv, m := newStreamServer(t, config.SecurityConfig{})
	b := startBattle(t, m)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, b.ID), nil)
	require.NoError(t, err)
	defer conn.Close()

	readEvent := func() string {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var wire struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(raw, &wire))
		return wire.Type
	}

	// History starts with both sides sending out their leads. Gyarados'
	// Intimidate fires between the two switches.
	switches := 0
	for i := 0; i < 5 && switches < 2; i++ {
		if readEvent() == "switch" {
			switches++
		}
	}
	assert.Equal(t, 2, switches)

	// A resolved turn shows up live.
	require.NoError(t, m.SubmitAction(b.ID, battle.Action{Type: battle.ActionMove, MoveIndex: 0}))
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		seen[readEvent()] = true
	}
	assert.True(t, seen["turn_start"])
}

func TestStreamUnknownBattle(t *testing.T) {
	srv, _ := newStreamServer(t, config.SecurityConfig{})

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "nope"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamRejectsDisallowedOrigin(t *testing.T) {
	srv, m := newStreamServer(t, config.SecurityConfig{
		AllowedOrigins: []string{"https://battle.example.com"},
	})
	b := startBattle(t, m)

	header := http.Header{"Origin": []string{"https://evil.example.com"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, b.ID), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStreamAllowsListedOrigin(t *testing.T) {
	srv, m := newStreamServer(t, config.SecurityConfig{
		AllowedOrigins: []string{"https://battle.example.com"},
	})
	b := startBattle(t, m)

	header := http.Header{"Origin": []string{"https://battle.example.com"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, b.ID), header)
	require.NoError(t, err)
	conn.Close()
}
