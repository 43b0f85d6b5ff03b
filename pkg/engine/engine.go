// Package engine resolves shuffled locations to items, tracks what has been
// collected and moves items between the local player and other players.
//
// An Engine is not safe for concurrent use. It is driven one frame at a time
// by its owner, which serializes every call.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

var ErrFlagSize = errors.New("save file collection flags do not match the flag index")

// ChestAppearance selects how chest visuals are chosen.
type ChestAppearance string

const (
	ChestsVanilla         ChestAppearance = "vanilla"
	ChestsMatchesContents ChestAppearance = "matches_contents"
)

// Settings are the seed options the engine honours.
type Settings struct {
	LocalPlayer        uint8           `json:"local_player" yaml:"local_player"`
	Multiworld         bool            `json:"multiworld" yaml:"multiworld"`
	MWProgressiveItems bool            `json:"mw_progressive_items" yaml:"mw_progressive_items"`
	SendOwnItems       bool            `json:"send_own_items" yaml:"send_own_items"`
	FastChests         bool            `json:"fast_chests" yaml:"fast_chests"`
	ChestAppearance    ChestAppearance `json:"chest_appearance" yaml:"chest_appearance"`
	KeyCountText       bool            `json:"key_count_text" yaml:"key_count_text"`
	TriforceHunt       bool            `json:"triforce_hunt" yaml:"triforce_hunt"`
	TriforceGoal       uint16          `json:"triforce_goal" yaml:"triforce_goal"`
	BombchusInLogic    bool            `json:"bombchus_in_logic" yaml:"bombchus_in_logic"`
}

// Config holds the static inputs compiled from a seed.
type Config struct {
	Settings   Settings
	Overrides  *override.Table
	Alternates *override.AltTable
	FlagIndex  *xflags.Index
}

// Saver persists the save file when the engine forces a save.
type Saver interface {
	Save(f *save.File) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(f *save.File) error

func (fn SaverFunc) Save(f *save.File) error { return fn(f) }

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithSaver(s Saver) Option {
	return func(e *Engine) { e.saver = s }
}

// WithRand sets the random source used for drop selection.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// Engine owns every table, cache and queue of one game session.
type Engine struct {
	settings  Settings
	overrides *override.Table
	alts      *override.AltTable
	index     *xflags.Index
	flags     *xflags.Store
	resolver  items.Resolver

	file     *save.File
	pending  *delivery.Pending
	outgoing delivery.Outgoing
	gate     delivery.Gate
	mutex    collectibleMutex
	regs     Registers
	progress map[uint8]items.Progress

	active Active
	warp   *Warp

	saver  Saver
	logger *slog.Logger
	rng    *rand.Rand
}

// New builds an engine for cfg bound to file.
func New(cfg Config, file *save.File, opts ...Option) (*Engine, error) {
	if cfg.Overrides == nil {
		empty, _ := override.NewTable(nil)
		cfg.Overrides = empty
	}
	if cfg.Settings.ChestAppearance == "" {
		cfg.Settings.ChestAppearance = ChestsVanilla
	}

	e := &Engine{
		settings:  cfg.Settings,
		overrides: cfg.Overrides,
		alts:      cfg.Alternates,
		index:     cfg.FlagIndex,
		resolver:  items.Resolver{BombchusInLogic: cfg.Settings.BombchusInLogic},
		progress:  make(map[uint8]items.Progress),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if err := e.Load(file); err != nil {
		return nil, err
	}
	return e, nil
}

// Load rebinds the engine to a (re)loaded save file. Transient state such
// as the readiness gate and the collectible mutex is reset.
func (e *Engine) Load(file *save.File) error {
	if want := e.index.ByteLen(); len(file.Flags) != want {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrFlagSize, len(file.Flags), want)
	}

	e.file = file
	e.pending = delivery.NewPending(&file.Extended.PendingItems)
	if e.flags == nil {
		e.flags = xflags.NewStore(e.index, file.Flags)
	} else {
		e.flags.Rebind(file.Flags)
		e.flags.Invalidate()
	}
	e.gate.Reset()
	e.mutex = collectibleMutex{}
	e.active = Active{}
	return nil
}

// File returns the bound save file.
func (e *Engine) File() *save.File {
	return e.file
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// Overrides returns the seed's override table.
func (e *Engine) Overrides() *override.Table {
	return e.overrides
}

// Active returns the state set by the last ActivateOverride.
func (e *Engine) Active() Active {
	return e.active
}

// Progress returns the local player's upgrade progress.
func (e *Engine) Progress() items.Progress {
	return items.ProgressOf(e.file)
}

// SetPlayerProgress records another player's progress for multiworld
// progressive resolution.
func (e *Engine) SetPlayerProgress(player uint8, p items.Progress) {
	e.progress[player] = p
}

// PlayerProgress returns the progress used to resolve items for player.
func (e *Engine) PlayerProgress(player uint8) items.Progress {
	if player == e.settings.LocalPlayer || player == override.PlayerEveryone || !e.settings.MWProgressiveItems {
		return e.Progress()
	}
	return e.progress[player]
}

func (e *Engine) env() items.Env {
	return items.Env{
		TriforceHunt: e.settings.TriforceHunt,
		TriforceGoal: e.settings.TriforceGoal,
	}
}
