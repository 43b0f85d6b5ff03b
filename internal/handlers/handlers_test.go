package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = `name: Handler Seed
settings:
  multiworld: true
  chest_appearance: matches_contents
overrides:
  - key: {scene: 0x03, type: skull, flag: 0x04}
    value: {item: 0x42, player: 1}
  - key: {scene: 0x55, type: chest, flag: 0x01}
    value: {item: 0x08, player: 1}
  - key: {scene: 0x51, type: new_flag, flag: 0x00000400}
    value: {item: 0x35, player: 1}
  - key: {scene: 0xFF, type: delayed, flag: 0x40}
    value: {item: 0x32, player: 1}
rooms:
  - scene: 0x51
    room: 0
    actors:
      - {index: 4, width: 1}
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func newTestStorage(t *testing.T) *storage.MockStorage {
	t.Helper()
	s, err := seed.Parse([]byte(testSeed))
	require.NoError(t, err)
	store := storage.NewMockStorage()
	store.AddSeed("handler.yaml", s)
	store.AddSeed("broken.yaml", &seed.Seed{})
	return store
}

func newRelay(t *testing.T) *multiworld.Relay {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return multiworld.NewRelay(client, testLogger())
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}

func createSession(t *testing.T, h http.Handler) session.Snapshot {
	t.Helper()
	rr := serve(h, http.MethodPost, "/v1/sessions", `{"seed_file":"handler.yaml"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBody[session.Snapshot](t, rr)
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name            string
		pingErr         error
		expectedStatus  int
		expectedHealth  string
		expectedStorage string
	}{
		{"all healthy", nil, http.StatusOK, "healthy", "healthy"},
		{"unhealthy storage", errors.New("connection failed"), http.StatusServiceUnavailable, "degraded", "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMockStorage()
			if tt.pingErr != nil {
				store.SetPingError(tt.pingErr)
			}
			h := NewHealthHandler(store, session.NewManager(store, testLogger()), testLogger())

			rr := serve(h, http.MethodGet, "/health", "")
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			resp := decodeBody[HealthResponse](t, rr)
			assert.Equal(t, tt.expectedHealth, resp.Status)
			assert.Equal(t, tt.expectedStorage, resp.Components["storage"])
			assert.Equal(t, "itemshuffle", resp.Service)
			assert.Zero(t, resp.Sessions)
		})
	}
}

func TestSeedHandler(t *testing.T) {
	h := NewSeedHandler(testLogger(), newTestStorage(t))

	t.Run("list", func(t *testing.T) {
		rr := serve(h, http.MethodGet, "/v1/seeds", "")
		require.Equal(t, http.StatusOK, rr.Code)
		seeds := decodeBody[map[string]string](t, rr)
		assert.Equal(t, "handler.yaml", seeds["Handler Seed"])
	})

	t.Run("get", func(t *testing.T) {
		rr := serve(h, http.MethodGet, "/v1/seeds/handler.yaml", "")
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decodeBody[map[string]any](t, rr)
		assert.Equal(t, "Handler Seed", resp["name"])
		assert.Len(t, resp["overrides"], 4)
		assert.NotContains(t, resp, "problems")
	})

	t.Run("get reports problems", func(t *testing.T) {
		rr := serve(h, http.MethodGet, "/v1/seeds/broken.yaml", "")
		require.Equal(t, http.StatusOK, rr.Code)
		resp := decodeBody[map[string]any](t, rr)
		assert.Contains(t, resp["problems"], "name is required")
	})

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"missing", http.MethodGet, "/v1/seeds/nope.yaml", http.StatusNotFound},
		{"traversal", http.MethodGet, "/v1/seeds/..secret", http.StatusBadRequest},
		{"method", http.MethodPost, "/v1/seeds", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, tt.method, tt.path, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.NotEmpty(t, decodeBody[ErrorResponse](t, rr).Error)
		})
	}
}

func TestSessionHandler_CreateReadDelete(t *testing.T) {
	store := newTestStorage(t)
	h := NewSessionHandler(session.NewManager(store, testLogger()), testLogger())

	snap := createSession(t, h)
	require.NotEqual(t, uuid.Nil, snap.ID)
	assert.Equal(t, "Handler Seed", snap.Seed)
	assert.Equal(t, "handler.yaml", snap.SeedFile)

	rr := serve(h, http.MethodGet, "/v1/sessions/"+snap.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, snap.ID, decodeBody[session.Snapshot](t, rr).ID)

	rr = serve(h, http.MethodDelete, "/v1/sessions/"+snap.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h, http.MethodGet, "/v1/sessions/"+snap.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionHandler_Errors(t *testing.T) {
	h := NewSessionHandler(session.NewManager(newTestStorage(t), testLogger()), testLogger())
	snap := createSession(t, h)
	base := "/v1/sessions/" + snap.ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list not supported", http.MethodGet, "/v1/sessions", "", http.StatusMethodNotAllowed},
		{"bad body", http.MethodPost, "/v1/sessions", `{"seed":"x"}`, http.StatusBadRequest},
		{"unknown seed", http.MethodPost, "/v1/sessions", `{"seed_file":"nope.yaml"}`, http.StatusNotFound},
		{"invalid seed", http.MethodPost, "/v1/sessions", `{"seed_file":"broken.yaml"}`, http.StatusBadRequest},
		{"bad slot", http.MethodPost, "/v1/sessions", `{"seed_file":"handler.yaml","slot":9}`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/v1/sessions/not-a-uuid", "", http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/v1/sessions/" + uuid.NewString(), "", http.StatusNotFound},
		{"unknown action", http.MethodPost, base + "/teleport", "{}", http.StatusNotFound},
		{"wrong method", http.MethodGet, base + "/collect", "", http.StatusMethodNotAllowed},
		{"patch", http.MethodPatch, base, "{}", http.StatusMethodNotAllowed},
		{"collect nothing", http.MethodPost, base + "/collect", `{"ref":1}`, http.StatusBadRequest},
		{"collect two", http.MethodPost, base + "/collect", `{"ref":1,"delayed":64,"flag":{"scene":81,"room":0,"actor":4}}`, http.StatusBadRequest},
		{"no frames", http.MethodPost, base + "/frames", `{"frames":[]}`, http.StatusBadRequest},
		{"bad chest", http.MethodPost, base + "/chest", `{"vanilla":"golden"}`, http.StatusBadRequest},
		{"sync without room", http.MethodPost, base + "/sync", "", http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.NotEmpty(t, decodeBody[ErrorResponse](t, rr).Error)
		})
	}
}

func TestSessionHandler_Collect(t *testing.T) {
	h := NewSessionHandler(session.NewManager(newTestStorage(t), testLogger()), testLogger())
	base := "/v1/sessions/" + createSession(t, h).ID.String()

	rr := serve(h, http.MethodPost, base+"/collect", `{"ref":1,"trigger":{"actor":412,"params":772,"scene":0,"item_id":0}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decodeBody[map[string]any](t, rr)
	assert.Equal(t, "given", res["status"])

	rr = serve(h, http.MethodPost, base+"/collect", `{"ref":1,"trigger":{"actor":412,"params":772,"scene":0,"item_id":0}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "already_collected", decodeBody[map[string]any](t, rr)["status"])

	rr = serve(h, http.MethodPost, base+"/collect", `{"ref":2,"flag":{"scene":81,"room":0,"actor":4}}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "given", decodeBody[map[string]any](t, rr)["status"])

	rr = serve(h, http.MethodPost, base+"/collect", `{"ref":3,"delayed":64}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, decodeBody[DelayedResponse](t, rr).Queued)

	rr = serve(h, http.MethodGet, base, "")
	snap := decodeBody[session.Snapshot](t, rr)
	assert.Equal(t, int16(1), snap.Inventory.SkullTokens)
	assert.Equal(t, uint8(1), snap.Inventory.HeartPieces)
	assert.Len(t, snap.Pending, 1)
}

func TestSessionHandler_Frames(t *testing.T) {
	h := NewSessionHandler(session.NewManager(newTestStorage(t), testLogger()), testLogger())
	base := "/v1/sessions/" + createSession(t, h).ID.String()

	rr := serve(h, http.MethodPost, base+"/collect", `{"ref":3,"delayed":64}`)
	require.Equal(t, http.StatusOK, rr.Code)

	frames := make([]string, 7)
	for i := range frames {
		frames[i] = `{"scene":81}`
	}
	rr = serve(h, http.MethodPost, base+"/frames", fmt.Sprintf(`{"frames":[%s]}`, strings.Join(frames, ",")))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decodeBody[FramesResponse](t, rr)
	require.Len(t, resp.Results, 7)
	var delivered []*engine.Delivered
	for _, r := range resp.Results {
		if r.Delivered != nil {
			delivered = append(delivered, r.Delivered)
		}
	}
	require.Len(t, delivered, 1)
	assert.Equal(t, items.DoubleDefense, delivered[0].Active.Item)
}

func TestSessionHandler_ChestAndSave(t *testing.T) {
	store := newTestStorage(t)
	h := NewSessionHandler(session.NewManager(store, testLogger()), testLogger())
	snap := createSession(t, h)
	base := "/v1/sessions/" + snap.ID.String()

	rr := serve(h, http.MethodPost, base+"/chest", `{"trigger":{"actor":10,"params":1,"scene":85,"item_id":0},"vanilla":"brown"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"chest_type":"gold"}`, rr.Body.String())

	rr = serve(h, http.MethodPost, base+"/save", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	store.SetSaveError(errors.New("redis down"))
	rr = serve(h, http.MethodPost, base+"/save", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to save session", decodeBody[ErrorResponse](t, rr).Error)
}

func TestSessionHandler_Sync(t *testing.T) {
	m := session.NewManager(newTestStorage(t), testLogger(), session.WithRelay(newRelay(t), multiworld.WithProgressInterval(0)))
	h := NewSessionHandler(m, testLogger())

	rr := serve(h, http.MethodPost, "/v1/sessions", `{"seed_file":"handler.yaml","room":"r1"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	snap := decodeBody[session.Snapshot](t, rr)
	assert.Equal(t, "r1", snap.Room)

	rr = serve(h, http.MethodPost, "/v1/sessions/"+snap.ID.String()+"/sync", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	res := decodeBody[multiworld.SyncResult](t, rr)
	assert.True(t, res.ProgressPublished)
}
