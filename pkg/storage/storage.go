package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/pkg/seed"
)

// ErrSeedNotFound is returned by GetSeed for unknown seed files.
var ErrSeedNotFound = errors.New("seed not found")

// SessionRecord is the persisted part of a game session: which seed it
// plays, where it relays multiworld items and the SRAM image of its save.
type SessionRecord struct {
	ID        uuid.UUID `json:"id"`
	SeedFile  string    `json:"seed_file"`
	Slot      int       `json:"slot"`
	Room      string    `json:"room,omitempty"`
	Player    uint8     `json:"player,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// SRAM is stored separately from the metadata.
	SRAM []byte `json:"-"`
}

// Storage defines a unified interface for all storage operations
// This interface combines session persistence (Redis) with seed loading (filesystem)
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations (Redis-backed)
	SaveSession(ctx context.Context, rec *SessionRecord) error
	LoadSession(ctx context.Context, id uuid.UUID) (*SessionRecord, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ListSessions(ctx context.Context) ([]uuid.UUID, error)

	// Seed operations (filesystem-backed)
	ListSeeds(ctx context.Context) (map[string]string, error)
	GetSeed(ctx context.Context, filename string) (*seed.Seed, error)
}
