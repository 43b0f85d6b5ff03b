// Package session keeps the live game sessions of the server. A session
// binds one engine to one save slot of an SRAM image and persists the image
// through storage. Every operation on a session holds its lock.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// persistTimeout bounds a save forced from inside the engine.
const persistTimeout = 5 * time.Second

// Session is one player's game.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	seed      *seed.Seed
	engine    *engine.Engine
	sram      *save.SRAM
	slot      int
	room      string
	bridge    *multiworld.Bridge
	store     storage.Storage
	createdAt time.Time
	logger    *slog.Logger
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID        uuid.UUID           `json:"id"`
	Seed      string              `json:"seed"`
	SeedFile  string              `json:"seed_file"`
	Slot      int                 `json:"slot"`
	Room      string              `json:"room,omitempty"`
	Player    uint8               `json:"player"`
	Progress  items.Progress      `json:"progress"`
	Inventory Inventory           `json:"inventory"`
	Pending   []override.Override `json:"pending"`
	Outgoing  []override.Override `json:"outgoing"`
	Registers engine.Registers    `json:"registers"`
	CreatedAt time.Time           `json:"created_at"`
}

// Inventory summarizes the save file.
type Inventory struct {
	Rupees          int16    `json:"rupees"`
	Health          int16    `json:"health"`
	HealthCapacity  int16    `json:"health_capacity"`
	HeartPieces     uint8    `json:"heart_pieces"`
	SkullTokens     int16    `json:"skull_tokens"`
	TriforcePieces  uint16   `json:"triforce_pieces"`
	PendingIceTraps uint8    `json:"pending_ice_traps"`
	GameComplete    bool     `json:"game_complete"`
	Items           []string `json:"items"`
}

func (s *Session) snapshotLocked() Snapshot {
	f := s.engine.File()
	c, x := &f.Context, &f.Extended

	inv := Inventory{
		Rupees:          c.Rupees,
		Health:          c.Health,
		HealthCapacity:  c.HealthCapacity,
		HeartPieces:     c.HeartPieces,
		SkullTokens:     c.SkullTokens,
		TriforcePieces:  x.TriforcePieces,
		PendingIceTraps: x.PendingIceTraps,
		GameComplete:    x.GameComplete,
		Items:           []string{},
	}
	for slot := range c.Items {
		if !c.HasItem(slot) {
			continue
		}
		if row := items.Lookup(items.ID(c.Items[slot])); row != nil {
			inv.Items = append(inv.Items, row.Name)
		}
	}

	return Snapshot{
		ID:        s.ID,
		Seed:      s.seed.Name,
		SeedFile:  s.seed.FileName,
		Slot:      s.slot,
		Room:      s.room,
		Player:    s.engine.Settings().LocalPlayer,
		Progress:  s.engine.Progress(),
		Inventory: inv,
		Pending:   s.engine.PendingItems(),
		Outgoing:  s.engine.OutgoingItems(),
		Registers: s.engine.Registers(),
		CreatedAt: s.createdAt,
	}
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Collect runs the collection pipeline for a trigger.
func (s *Session) Collect(ref engine.ActorRef, t override.Trigger) engine.CollectResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Collect(ref, t)
}

// CollectNewFlag runs the collection pipeline for a flag-tracked location.
func (s *Session) CollectNewFlag(ref engine.ActorRef, f xflags.Flag) engine.CollectResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CollectNewFlag(ref, f)
}

// PushDelayedItem queues the item of a delayed location.
func (s *Session) PushDelayedItem(flag uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.PushDelayedItem(flag)
}

// ChestType resolves the appearance of a chest.
func (s *Session) ChestType(t override.Trigger, vanilla items.ChestType) items.ChestType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ChestType(&engine.Chest{Trigger: t, Vanilla: vanilla})
}

// Frames advances the engine by one frame per status.
func (s *Session) Frames(statuses []delivery.Status) []engine.FrameResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]engine.FrameResult, 0, len(statuses))
	for _, st := range statuses {
		results = append(results, s.engine.Frame(st))
	}
	return results
}

// Save writes the current file into its slot and persists the image.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx, s.engine.File())
}

func (s *Session) persistLocked(ctx context.Context, f *save.File) error {
	if err := s.sram.Write(s.slot, f); err != nil {
		return fmt.Errorf("failed to write save slot: %w", err)
	}

	rec := &storage.SessionRecord{
		ID:        s.ID,
		SeedFile:  s.seed.FileName,
		Slot:      s.slot,
		Room:      s.room,
		Player:    s.engine.Settings().LocalPlayer,
		CreatedAt: s.createdAt,
		SRAM:      s.sram.Bytes(),
	}
	if err := s.store.SaveSession(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.createdAt = rec.CreatedAt
	s.logger.Debug("Session saved")
	return nil
}

// Multiworld reports whether the session relays items.
func (s *Session) Multiworld() bool {
	return s.bridge != nil
}

// Sync bridges the interop registers to the multiworld room. Sessions
// without a room do nothing.
func (s *Session) Sync(ctx context.Context) (multiworld.SyncResult, error) {
	if s.bridge == nil {
		return multiworld.SyncResult{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bridge.Sync(ctx, s.engine)
}

// saver is the engine's forced-save hook. The engine only calls it while
// the session lock is held.
func (s *Session) saver() engine.Saver {
	return engine.SaverFunc(func(f *save.File) error {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return s.persistLocked(ctx, f)
	})
}
