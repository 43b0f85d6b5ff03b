// Package seed loads seed files: the shuffled placements of a game, the
// alternate trigger keys, the rooms tracked by collection flags and the
// seed settings. A seed is compiled into the static inputs of an engine.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid seed")

// DefaultLocalPlayer is used when a seed does not name the local player.
const DefaultLocalPlayer uint8 = 1

// Seed is the on-disk seed file.
type Seed struct {
	Name        string              `json:"name" yaml:"name"`
	FileName    string              `json:"file_name,omitempty" yaml:"-"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Settings    engine.Settings     `json:"settings" yaml:"settings"`
	Overrides   []override.Override `json:"overrides" yaml:"overrides"`
	Alternates  []override.AltPair  `json:"alternates,omitempty" yaml:"alternates,omitempty"`
	Rooms       []xflags.Room       `json:"rooms,omitempty" yaml:"rooms,omitempty"`
}

// Parse decodes a YAML seed. Unknown fields are rejected and missing
// settings get their defaults.
func Parse(data []byte) (*Seed, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Seed
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	s.applyDefaults()
	return &s, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.FileName = filepath.Base(path)
	return s, nil
}

// Marshal encodes s as YAML.
func (s *Seed) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode seed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode seed: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Seed) applyDefaults() {
	if s.Settings.LocalPlayer == 0 {
		s.Settings.LocalPlayer = DefaultLocalPlayer
	}
	if s.Settings.ChestAppearance == "" {
		s.Settings.ChestAppearance = engine.ChestsVanilla
	}
}

// Compile builds the engine inputs: the sorted override table, the
// collapsed alternate table and the encoded collection flag index.
func (s *Seed) Compile() (engine.Config, error) {
	s.applyDefaults()

	table, err := override.NewTable(s.Overrides)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	alts, err := override.NewAltTable(s.Alternates)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	asset, err := xflags.Encode(s.Rooms)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	index, err := xflags.ParseIndex(asset)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return engine.Config{
		Settings:   s.Settings,
		Overrides:  table,
		Alternates: alts,
		FlagIndex:  index,
	}, nil
}

// FlagBytes is the size of the collection flag array a save file for this
// seed carries.
func (s *Seed) FlagBytes() (int, error) {
	asset, err := xflags.Encode(s.Rooms)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	index, err := xflags.ParseIndex(asset)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return index.ByteLen(), nil
}
