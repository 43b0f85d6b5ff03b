package multiworld

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const room = "test-room"

func setupTestRelay(t *testing.T) (*Relay, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRelay(client, logger), mr
}

func TestRelay_Players(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()

	require.NoError(t, r.Join(ctx, room, 3))
	require.NoError(t, r.Join(ctx, room, 1))
	require.NoError(t, r.Join(ctx, room, 3))
	assert.ErrorIs(t, r.Join(ctx, room, override.PlayerEveryone), ErrInvalidPlayer)

	players, err := r.Players(ctx, room)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 3}, players)
}

func TestRelay_SendReceive(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()
	key := override.Key{Scene: 0x55, Type: override.TypeChest, Flag: 1}.Pack()

	n, err := r.Send(ctx, room, 2, Delivery{From: 1, Item: uint16(items.Hookshot), Key: key})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = r.Send(ctx, room, 2, Delivery{From: 1, Item: uint16(items.Hookshot), Key: key})
	require.NoError(t, err)
	assert.Zero(t, n, "a location is only sent once")

	for range 2 {
		n, err = r.Send(ctx, room, 2, Delivery{From: 1, Item: uint16(items.RupeeGreen)})
		require.NoError(t, err)
		assert.Equal(t, 1, n, "keyless deliveries are never deduplicated")
	}

	pending, err := r.Pending(ctx, room, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pending)

	d, err := r.Receive(ctx, room, 2)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, Delivery{From: 1, Item: uint16(items.Hookshot), Key: key}, *d)

	empty, err := r.Receive(ctx, room, 4)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestRelay_SendToEveryoneAndSelf(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()
	for _, p := range []uint8{1, 2, 3} {
		require.NoError(t, r.Join(ctx, room, p))
	}

	n, err := r.Send(ctx, room, override.PlayerEveryone, Delivery{From: 2, Item: uint16(items.TriforcePiece), Key: 77})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, p := range []uint8{1, 3} {
		got, err := r.Pending(ctx, room, p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got, "player %d", p)
	}
	own, err := r.Pending(ctx, room, 2)
	require.NoError(t, err)
	assert.Zero(t, own)

	n, err = r.Send(ctx, room, 2, Delivery{From: 2, Item: uint16(items.Bow), Key: 78})
	require.NoError(t, err)
	assert.Zero(t, n, "own items are announced, not delivered")
	own, err = r.Pending(ctx, room, 2)
	require.NoError(t, err)
	assert.Zero(t, own)
}

func TestRelay_Progress(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()

	_, ok, err := r.Progress(ctx, room, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	p := items.Progress{Hookshot: 1, Strength: 2, Wallet: 1, Bombchus: true, Hearts: 7}
	require.NoError(t, r.PublishProgress(ctx, room, 1, p))

	got, ok, err := r.Progress(ctx, room, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p, got)
}

func TestRelay_Subscribe(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := r.Subscribe(ctx, room)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, r.Join(ctx, room, 1))
	_, err = r.Send(ctx, room, 2, Delivery{From: 1, Item: uint16(items.Bow), Key: 5})
	require.NoError(t, err)

	var got []Event
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-sub.Events():
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", got)
		}
	}
	assert.Equal(t, EventPlayerJoined, got[0].Type)
	assert.Equal(t, Event{Type: EventItemSent, Room: room, From: 1, To: 2, Item: uint16(items.Bow), Key: 5}, got[1])
}

func TestRelay_Reset(t *testing.T) {
	r, mr := setupTestRelay(t)
	ctx := context.Background()

	require.NoError(t, r.Join(ctx, room, 1))
	_, err := r.Send(ctx, room, 1, Delivery{From: 2, Item: 1, Key: 9})
	require.NoError(t, err)
	require.NoError(t, r.PublishProgress(ctx, room, 1, items.Progress{}))
	require.NoError(t, r.Join(ctx, "other", 1))

	require.NoError(t, r.Reset(ctx, room))
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, "mw:"+room+":")
	}
	assert.True(t, mr.Exists(playersKey("other")))
}

const twoWorlds = `name: Two Worlds
settings:
  multiworld: true
  mw_progressive_items: true
overrides:
  - key: {scene: 0x55, type: chest, flag: 1}
    value: {item: 0x60, player: 2}
  - key: {scene: 0x55, type: chest, flag: 2}
    value: {item: 0x04, player: 1}
`

func newWorld(t *testing.T, player uint8) *engine.Engine {
	t.Helper()

	s, err := seed.Parse([]byte(twoWorlds))
	require.NoError(t, err)
	s.Settings.LocalPlayer = player
	cfg, err := s.Compile()
	require.NoError(t, err)
	n, err := s.FlagBytes()
	require.NoError(t, err)

	e, err := engine.New(cfg, save.NewFile(n), engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return e
}

func TestBridge_DeliversBetweenWorlds(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()

	alice, bob := newWorld(t, 1), newWorld(t, 2)
	require.NoError(t, r.Join(ctx, room, 1))
	require.NoError(t, r.Join(ctx, room, 2))
	aliceBridge := NewBridge(r, room, 1, WithProgressInterval(0))
	bobBridge := NewBridge(r, room, 2, WithProgressInterval(0))

	// bob already owns a hookshot, so his progressive hookshot becomes a longshot
	bob.File().Context.Items[save.SlotHookshot] = uint8(items.Hookshot)
	_, err := bobBridge.Sync(ctx, bob)
	require.NoError(t, err)
	_, err = aliceBridge.Sync(ctx, alice)
	require.NoError(t, err)

	res := alice.Collect(1, override.Trigger{Actor: override.ActorChest, Scene: 0x55, Params: 1})
	require.Equal(t, engine.Given, res.Status)
	assert.Equal(t, items.Longshot, res.Active.Item)
	assert.True(t, res.Dispatched.Sent)

	sync, err := aliceBridge.Sync(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, sync.Sent)
	assert.Zero(t, alice.Registers().OutgoingKey, "the register is acknowledged")

	sync, err = bobBridge.Sync(ctx, bob)
	require.NoError(t, err)
	assert.True(t, sync.Received)
	assert.True(t, bob.IncomingBusy())

	var delivered *engine.Delivered
	for range delivery.ReadyFrames + 1 {
		if f := bob.Frame(delivery.Status{Scene: 0x51}); f.Delivered != nil {
			delivered = f.Delivered
		}
	}
	require.NotNil(t, delivered)
	assert.Equal(t, items.Longshot, delivered.Active.Item)
	assert.Equal(t, uint8(items.Longshot), bob.File().Context.Items[save.SlotHookshot])
}

func TestBridge_WaitsForFreeIncomingRegister(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()

	bob := newWorld(t, 2)
	b := NewBridge(r, room, 2, WithProgressInterval(0))
	for i := range 2 {
		_, err := r.Send(ctx, room, 2, Delivery{From: 1, Item: uint16(items.RupeeRed), Key: uint64(i + 1)})
		require.NoError(t, err)
	}

	res, err := b.Sync(ctx, bob)
	require.NoError(t, err)
	assert.True(t, res.Received)

	res, err = b.Sync(ctx, bob)
	require.NoError(t, err)
	assert.False(t, res.Received, "the register is still occupied")

	pending, err := r.Pending(ctx, room, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)
}

func TestBridge_ProgressIsRateLimited(t *testing.T) {
	r, _ := setupTestRelay(t)
	ctx := context.Background()

	alice := newWorld(t, 1)
	b := NewBridge(r, room, 1, WithProgressInterval(time.Hour))

	res, err := b.Sync(ctx, alice)
	require.NoError(t, err)
	assert.True(t, res.ProgressPublished)
	assert.True(t, res.ProgressRefreshed)

	alice.File().Context.SetUpgrade(save.UpgradeStrength, 1)
	res, err = b.Sync(ctx, alice)
	require.NoError(t, err)
	assert.False(t, res.ProgressPublished)
	assert.False(t, res.ProgressRefreshed)
}
