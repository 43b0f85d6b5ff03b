package multiworld

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"golang.org/x/time/rate"
)

// Endpoint is the engine side of a bridge: the interop registers and the
// progress tables.
type Endpoint interface {
	Registers() engine.Registers
	AckOutgoing()
	IncomingBusy() bool
	SetIncoming(player uint8, item uint16)
	Progress() items.Progress
	SetPlayerProgress(player uint8, p items.Progress)
}

var _ Endpoint = (*engine.Engine)(nil)

const (
	// DefaultProgressInterval is the minimum time between progress
	// publications and refreshes of other players' progress.
	DefaultProgressInterval = time.Second
)

// Bridge moves items between one engine and its room.
type Bridge struct {
	relay  *Relay
	room   string
	player uint8

	publishLimit *rate.Limiter
	refreshLimit *rate.Limiter
	published    items.Progress
	hasPublished bool

	logger *slog.Logger
}

type BridgeOption func(*Bridge)

// WithProgressInterval changes how often progress is exchanged.
func WithProgressInterval(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.publishLimit = rate.NewLimiter(rate.Every(d), 1)
		b.refreshLimit = rate.NewLimiter(rate.Every(d), 1)
	}
}

func NewBridge(relay *Relay, room string, player uint8, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		relay:        relay,
		room:         room,
		player:       player,
		publishLimit: rate.NewLimiter(rate.Every(DefaultProgressInterval), 1),
		refreshLimit: rate.NewLimiter(rate.Every(DefaultProgressInterval), 1),
		logger:       relay.logger.With("room", room, "player", player),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bridge) Room() string {
	return b.room
}

func (b *Bridge) Player() uint8 {
	return b.player
}

// SyncResult reports what one Sync moved.
type SyncResult struct {
	Sent              int  `json:"sent"`
	Received          bool `json:"received"`
	ProgressPublished bool `json:"progress_published,omitempty"`
	ProgressRefreshed bool `json:"progress_refreshed,omitempty"`
}

// Sync drains the outgoing register into the relay, fills a free incoming
// register from the inbox and exchanges progress when due. The caller must
// serialize Sync with every other use of e.
func (b *Bridge) Sync(ctx context.Context, e Endpoint) (SyncResult, error) {
	var res SyncResult

	for range delivery.OutgoingCapacity + 1 {
		regs := e.Registers()
		if regs.OutgoingKey == 0 {
			break
		}
		d := Delivery{From: b.player, Item: regs.OutgoingItem, Key: regs.OutgoingKey}
		if _, err := b.relay.Send(ctx, b.room, regs.OutgoingPlayer, d); err != nil {
			return res, err
		}
		e.AckOutgoing()
		res.Sent++
	}

	if !e.IncomingBusy() {
		d, err := b.relay.Receive(ctx, b.room, b.player)
		if err != nil {
			return res, err
		}
		if d != nil && d.Item != 0 {
			e.SetIncoming(d.From, d.Item)
			res.Received = true
			b.relay.publish(ctx, b.room, Event{Type: EventItemReceived, From: d.From, To: b.player, Item: d.Item, Key: d.Key})
		}
	}

	if p := e.Progress(); (!b.hasPublished || p != b.published) && b.publishLimit.Allow() {
		if err := b.relay.PublishProgress(ctx, b.room, b.player, p); err != nil {
			return res, err
		}
		b.published, b.hasPublished = p, true
		res.ProgressPublished = true
	}

	if b.refreshLimit.Allow() {
		if err := b.refresh(ctx, e); err != nil {
			return res, err
		}
		res.ProgressRefreshed = true
	}

	return res, nil
}

// refresh copies every other player's published progress into e.
func (b *Bridge) refresh(ctx context.Context, e Endpoint) error {
	players, err := b.relay.Players(ctx, b.room)
	if err != nil {
		return err
	}
	for _, p := range players {
		if p == b.player {
			continue
		}
		progress, ok, err := b.relay.Progress(ctx, b.room, p)
		if err != nil {
			return fmt.Errorf("player %d: %w", p, err)
		}
		if ok {
			e.SetPlayerProgress(p, progress)
		}
	}
	return nil
}
