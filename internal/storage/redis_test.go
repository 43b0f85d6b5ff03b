package storage

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStorage(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), ttl, logger)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisStorage_Ping(t *testing.T) {
	r, mr := setupTestStorage(t, 0)
	require.NoError(t, r.Ping(context.Background()))

	mr.Close()
	assert.Error(t, r.Ping(context.Background()))
}

func TestRedisStorage_BareAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	r := NewRedisStorage(mr.Addr(), "", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer r.Close()

	assert.NoError(t, r.Ping(context.Background()))
	assert.Equal(t, "./data", r.dataDir)
}

func TestRedisStorage_SessionRoundTrip(t *testing.T) {
	r, mr := setupTestStorage(t, 0)
	ctx := context.Background()

	rec := &storage.SessionRecord{
		ID:       uuid.New(),
		SeedFile: "example.yaml",
		Slot:     1,
		Room:     "friday-night",
		SRAM:     []byte{0x53, 0x48, 0x55, 0x46, 0x00, 0xFF},
	}
	require.NoError(t, r.SaveSession(ctx, rec))
	assert.False(t, rec.CreatedAt.IsZero())

	raw, err := mr.Get("sram:" + rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(rec.SRAM), raw, "SRAM is stored as raw bytes")

	loaded, err := r.LoadSession(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec.ID, loaded.ID)
	assert.Equal(t, "example.yaml", loaded.SeedFile)
	assert.Equal(t, 1, loaded.Slot)
	assert.Equal(t, "friday-night", loaded.Room)
	assert.Equal(t, rec.SRAM, loaded.SRAM)

	ids, err := r.ListSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{rec.ID}, ids)

	require.NoError(t, r.DeleteSession(ctx, rec.ID))
	loaded, err = r.LoadSession(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.False(t, mr.Exists("sram:"+rec.ID.String()))
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	r, _ := setupTestStorage(t, 0)

	rec, err := r.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRedisStorage_SessionTTL(t *testing.T) {
	r, mr := setupTestStorage(t, time.Hour)
	ctx := context.Background()

	rec := &storage.SessionRecord{ID: uuid.New(), SeedFile: "example.yaml", SRAM: []byte{1}}
	require.NoError(t, r.SaveSession(ctx, rec))
	assert.Equal(t, time.Hour, mr.TTL("session:"+rec.ID.String()))
	assert.Equal(t, time.Hour, mr.TTL("sram:"+rec.ID.String()))

	mr.FastForward(2 * time.Hour)

	ids, err := r.ListSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "expired sessions are pruned from the index")
	members, err := mr.Members(sessionIndexKey)
	if err == nil {
		assert.Empty(t, members)
	}
}

const testSeed = `name: Bottle Hunt
settings:
  triforce_hunt: true
  triforce_goal: 3
overrides:
  - key: {scene: 0x55, type: chest, flag: 1}
    value: {item: 0x5C, player: 1}
`

func TestRedisStorage_Seeds(t *testing.T) {
	r, _ := setupTestStorage(t, 0)
	ctx := context.Background()

	dir := filepath.Join(r.dataDir, "seeds")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bottle_hunt.yaml"), []byte(testSeed), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unterminated"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	seeds, err := r.ListSeeds(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Bottle Hunt": "bottle_hunt.yaml"}, seeds)

	s, err := r.GetSeed(ctx, "bottle_hunt.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Bottle Hunt", s.Name)
	assert.Equal(t, uint16(3), s.Settings.TriforceGoal)
	assert.Len(t, s.Overrides, 1)

	tests := []string{"missing.yaml", "../secrets.yaml", "notes.txt"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := r.GetSeed(ctx, name)
			assert.ErrorIs(t, err, storage.ErrSeedNotFound)
		})
	}

	_, err = r.GetSeed(ctx, "broken.yaml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrSeedNotFound)
}

func TestRedisStorage_ListSeedsWithoutDirectory(t *testing.T) {
	r, _ := setupTestStorage(t, 0)

	seeds, err := r.ListSeeds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seeds)
}
