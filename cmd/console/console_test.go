package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  command
	}{
		{
			name:  "chest",
			input: "chest 0x55 1",
			want: command{kind: cmdCollect, scene: 0x55, hasScene: true, collect: handlers.CollectRequest{
				Trigger: &override.Trigger{Actor: override.ActorChest, Scene: 0x55, Params: 1},
			}},
		},
		{
			name:  "skull packs the scene into params",
			input: "/skull 3 4",
			want: command{kind: cmdCollect, scene: 3, hasScene: true, collect: handlers.CollectRequest{
				Trigger: &override.Trigger{Actor: override.ActorSkullToken, Scene: 3, Params: 0x0304},
			}},
		},
		{
			name:  "actor",
			input: "actor 0x95 0x52 0 0x3e",
			want: command{kind: cmdCollect, scene: 0x52, hasScene: true, collect: handlers.CollectRequest{
				Trigger: &override.Trigger{Actor: 0x95, Scene: 0x52, ItemID: 0x3E},
			}},
		},
		{
			name:  "flag",
			input: "FLAG 0x51 0 4",
			want: command{kind: cmdCollect, scene: 0x51, hasScene: true, collect: handlers.CollectRequest{
				Flag: &xflags.Flag{Scene: 0x51, Actor: 4},
			}},
		},
		{name: "delayed", input: "delayed 0x40", want: command{kind: cmdDelayed, delayed: 0x40}},
		{name: "frames default", input: "frames", want: command{kind: cmdFrames, frames: defaultFrames}},
		{name: "frames with scene", input: "frames 7 0x51", want: command{kind: cmdFrames, frames: 7, scene: 0x51, hasScene: true}},
		{
			name:  "look",
			input: "look 0x55 2 gold",
			want: command{kind: cmdLook, scene: 0x55, hasScene: true, chest: handlers.ChestRequest{
				Trigger: override.Trigger{Actor: override.ActorChest, Scene: 0x55, Params: 2},
				Vanilla: items.ChestGold,
			}},
		},
		{name: "save", input: "save", want: command{kind: cmdSave}},
		{name: "sync", input: "/sync", want: command{kind: cmdSync}},
		{name: "copy", input: "/copy", want: command{kind: cmdCopy}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommand_Errors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"", "empty command"},
		{"dance", "unknown command"},
		{"chest 0x55", "usage: chest"},
		{"chest 0x155 1", "invalid scene"},
		{"delayed nope", "invalid flag"},
		{"frames 0", "frames must be between"},
		{"frames 601", "frames must be between"},
		{"look 1 2 purple", "unknown chest type"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseCommand(tt.input)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Already Collected", displayName("already_collected"))
	assert.Equal(t, "Boss Key", displayName(items.ChestBossKey.String()))
}

func TestFormatCollect(t *testing.T) {
	res := &engine.CollectResult{
		Status:     engine.Given,
		Key:        override.Key{Scene: 0x55, Type: override.TypeChest, Flag: 1},
		Active:     engine.Active{Item: items.Hookshot, Player: 2},
		Dispatched: engine.Dispatched{Sent: true},
	}
	lines := formatCollect(res)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Given")
	assert.Contains(t, lines[0], itemName(items.Hookshot))
	assert.Equal(t, "Sent to player 2", lines[1])

	lines = formatCollect(&engine.CollectResult{Status: engine.Vanilla})
	assert.Len(t, lines, 1)
}

const consoleSeed = `name: Console Test
settings:
  chest_appearance: matches_contents
overrides:
  - key: {scene: 0x55, type: chest, flag: 0x01}
    value: {item: 0x08, player: 1}
  - key: {scene: 0xFF, type: delayed, flag: 0x40}
    value: {item: 0x32, player: 1}
`

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	store := storage.NewMockStorage()
	s, err := seed.Parse([]byte(consoleSeed))
	require.NoError(t, err)
	store.AddSeed("console.yaml", s)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := session.NewManager(store, logger)
	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, manager, logger))
	seeds := handlers.NewSeedHandler(logger, store)
	mux.Handle("/v1/seeds", seeds)
	mux.Handle("/v1/seeds/", seeds)
	sessions := handlers.NewSessionHandler(manager, logger)
	mux.Handle("/v1/sessions", sessions)
	mux.Handle("/v1/sessions/", sessions)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPI_SessionFlow(t *testing.T) {
	srv := newTestAPI(t)
	client := srv.Client()

	require.True(t, testConnection(client, srv.URL))

	names, seedMap, err := listSeeds(client, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"Console Test"}, names)
	assert.Equal(t, "console.yaml", seedMap["Console Test"])

	snap, err := createSession(client, srv.URL, session.CreateRequest{SeedFile: "console.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "Console Test", snap.Seed)

	c, err := parseCommand("chest 0x55 1")
	require.NoError(t, err)
	look, err := chestType(client, srv.URL, snap.ID, handlers.ChestRequest{
		Trigger: *c.collect.Trigger,
		Vanilla: items.ChestBrown,
	})
	require.NoError(t, err)
	assert.Equal(t, items.ChestGold, look.ChestType)

	res, err := collect(client, srv.URL, snap.ID, c.collect)
	require.NoError(t, err)
	assert.Equal(t, engine.Given, res.Status)
	assert.Equal(t, items.Hookshot, res.Active.Item)

	res, err = collect(client, srv.URL, snap.ID, c.collect)
	require.NoError(t, err)
	assert.Equal(t, engine.AlreadyCollected, res.Status)

	queued, err := pushDelayed(client, srv.URL, snap.ID, 0x40)
	require.NoError(t, err)
	assert.True(t, queued)

	statuses := make([]delivery.Status, defaultFrames)
	for i := range statuses {
		statuses[i] = delivery.Status{Scene: 0x51}
	}
	frames, err := advanceFrames(client, srv.URL, snap.ID, statuses)
	require.NoError(t, err)
	assert.Len(t, frames, defaultFrames)
	assert.Contains(t, strings.Join(formatFrames(frames), "\n"), "received "+itemName(items.DoubleDefense))

	require.NoError(t, saveSession(client, srv.URL, snap.ID))

	_, err = syncSession(client, srv.URL, snap.ID)
	assert.ErrorContains(t, err, "not in a multiworld room")

	after, err := getSession(client, srv.URL, snap.ID)
	require.NoError(t, err)
	assert.Empty(t, after.Pending)
	assert.Contains(t, after.Inventory.Items, itemName(items.Hookshot))
}

func TestAPI_Errors(t *testing.T) {
	srv := newTestAPI(t)

	_, err := createSession(srv.Client(), srv.URL, session.CreateRequest{SeedFile: "missing.yaml"})
	assert.ErrorContains(t, err, "failed to create session")
}
