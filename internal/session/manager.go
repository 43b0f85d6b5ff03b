package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/logger"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrInvalidRequest = errors.New("invalid session request")
)

// SaveSlots is the number of save slots in a session's SRAM image.
const SaveSlots = 3

// CreateRequest starts a session.
type CreateRequest struct {
	SeedFile string `json:"seed_file"`
	Slot     int    `json:"slot"`
	// Room joins a multiworld room. Only multiworld seeds may join one.
	Room string `json:"room,omitempty"`
	// Player overrides the seed's local player.
	Player uint8 `json:"player,omitempty"`
}

// Manager owns the live sessions. Sessions evicted from memory are
// restored from storage on first use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	store      storage.Storage
	relay      *multiworld.Relay
	bridgeOpts []multiworld.BridgeOption
	logger     *slog.Logger
}

type ManagerOption func(*Manager)

// WithRelay enables multiworld rooms.
func WithRelay(r *multiworld.Relay, opts ...multiworld.BridgeOption) ManagerOption {
	return func(m *Manager) {
		m.relay = r
		m.bridgeOpts = opts
	}
}

func NewManager(store storage.Storage, logger *slog.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		store:    store,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a session on a fresh SRAM image and persists it.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	if req.SeedFile == "" {
		return nil, fmt.Errorf("%w: seed_file is required", ErrInvalidRequest)
	}
	if req.Slot < 0 || req.Slot >= SaveSlots {
		return nil, fmt.Errorf("%w: slot must be between 0 and %d", ErrInvalidRequest, SaveSlots-1)
	}

	s, err := m.store.GetSeed(ctx, req.SeedFile)
	if err != nil {
		return nil, err
	}
	if problems := s.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", seed.ErrInvalid, strings.Join(problems, "; "))
	}
	if req.Room != "" {
		if !s.Settings.Multiworld {
			return nil, fmt.Errorf("%w: seed %s is not a multiworld seed", ErrInvalidRequest, req.SeedFile)
		}
		if m.relay == nil {
			return nil, fmt.Errorf("%w: multiworld is not available", ErrInvalidRequest)
		}
	}

	flagBytes, err := s.FlagBytes()
	if err != nil {
		return nil, err
	}

	sess, err := m.open(s, save.NewSRAM(SaveSlots, flagBytes), uuid.New(), req.Slot, req.Room, req.Player, time.Time{})
	if err != nil {
		return nil, err
	}
	if err := sess.Save(ctx); err != nil {
		return nil, err
	}
	if sess.bridge != nil {
		if err := m.relay.Join(ctx, req.Room, sess.bridge.Player()); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	sess.logger.Info("Session created",
		"seed", s.Name,
		"slot", req.Slot,
		"room", req.Room)
	return sess, nil
}

// Get returns a live session, restoring it from storage when needed.
func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	rec, err := m.store.LoadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s, err := m.store.GetSeed(ctx, rec.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}
	sram, err := save.OpenSRAM(rec.SRAM)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", id, err)
	}
	flagBytes, err := s.FlagBytes()
	if err != nil {
		return nil, err
	}
	if sram.FlagBytes() != flagBytes {
		return nil, fmt.Errorf("failed to restore session %s: %w: image has %d flag bytes, seed needs %d",
			id, save.ErrFlagsLength, sram.FlagBytes(), flagBytes)
	}

	restored, err := m.open(s, sram, id, rec.Slot, rec.Room, rec.Player, rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id]; ok {
		return sess, nil
	}
	m.sessions[id] = restored
	restored.logger.Info("Session restored")
	return restored, nil
}

// open binds a new engine to slot of sram.
func (m *Manager) open(s *seed.Seed, sram *save.SRAM, id uuid.UUID, slot int, room string, player uint8, createdAt time.Time) (*Session, error) {
	cfg, err := s.Compile()
	if err != nil {
		return nil, err
	}
	if player != 0 {
		cfg.Settings.LocalPlayer = player
	}

	log := logger.WithSession(m.logger, id)
	file, status, err := sram.Load(slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load save slot: %w", err)
	}
	if status != save.LoadOK {
		log.Warn("Save slot was corrupt", "slot", slot, "status", status.String())
	}

	sess := &Session{
		ID:        id,
		seed:      s,
		sram:      sram,
		slot:      slot,
		room:      room,
		store:     m.store,
		createdAt: createdAt,
		logger:    log,
	}
	sess.engine, err = engine.New(cfg, file,
		engine.WithLogger(log),
		engine.WithSaver(sess.saver()))
	if err != nil {
		return nil, err
	}

	if room != "" {
		if m.relay == nil {
			log.Warn("Multiworld unavailable, session will not relay items", "room", room)
		} else {
			sess.bridge = multiworld.NewBridge(m.relay, room, cfg.Settings.LocalPlayer, m.bridgeOpts...)
		}
	}
	return sess, nil
}

// Delete drops a session from memory and storage.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := m.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	m.logger.Info("Session deleted", "session_id", id.String())
	return nil
}

// Live returns the sessions held in memory ordered by id.
func (m *Manager) Live() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b *Session) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// SaveAll persists every live session.
func (m *Manager) SaveAll(ctx context.Context) error {
	var errs []error
	for _, s := range m.Live() {
		if err := s.Save(ctx); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.ID, err))
		}
	}
	return errors.Join(errs...)
}

// LiveCount returns the number of sessions held in memory.
func (m *Manager) LiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
