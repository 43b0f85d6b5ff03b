package seed

import (
	"fmt"

	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// Validate checks the seed for problems Compile would reject or that would
// misbehave at run time. It returns one message per problem.
func (s *Seed) Validate() []string {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if s.Name == "" {
		addf("name is required")
	}

	switch s.Settings.ChestAppearance {
	case "", engine.ChestsVanilla, engine.ChestsMatchesContents:
	default:
		addf("settings.chest_appearance: unknown value %q", s.Settings.ChestAppearance)
	}
	if s.Settings.TriforceHunt && s.Settings.TriforceGoal == 0 {
		addf("settings.triforce_goal must be set for a triforce hunt")
	}
	if s.Settings.MWProgressiveItems && !s.Settings.Multiworld {
		addf("settings.mw_progressive_items requires multiworld")
	}

	seen := make(map[override.Key]int, len(s.Overrides))
	for i, o := range s.Overrides {
		if o.Key.IsZero() {
			addf("overrides[%d]: zero key", i)
			continue
		}
		if prev, ok := seen[o.Key]; ok {
			addf("overrides[%d]: key %s already used by overrides[%d]", i, o.Key, prev)
		}
		seen[o.Key] = i

		if items.Lookup(items.ID(o.Value.Item)) == nil {
			addf("overrides[%d]: unknown item %#x", i, o.Value.Item)
		}
		if o.Value.LooksLike != 0 && items.Lookup(items.ID(o.Value.LooksLike)) == nil {
			addf("overrides[%d]: unknown looks_like item %#x", i, o.Value.LooksLike)
		}
		switch o.Key.Type {
		case override.TypeNewFlag:
			if len(s.Rooms) > 0 && !s.tracks(o.Key.XFlag()) {
				addf("overrides[%d]: %s is not tracked by any room", i, o.Key)
			}
		case override.TypeChest, override.TypeCollectible, override.TypeSkull:
			if !save.FlagFits(o.Key) {
				addf("overrides[%d]: %s has no collected flag in the save file", i, o.Key)
			}
		case override.TypeIncoming:
			addf("overrides[%d]: %s is reserved for received items", i, o.Key)
		}
	}

	for i, p := range s.Alternates {
		if _, ok := seen[p.Primary]; !ok {
			addf("alternates[%d]: primary %s has no override", i, p.Primary)
		}
	}
	if _, err := override.NewAltTable(s.Alternates); err != nil {
		addf("alternates: %v", err)
	}

	if _, err := xflags.Encode(s.Rooms); err != nil {
		addf("rooms: %v", err)
	}

	return problems
}

// tracks reports whether some room of the seed gives f a flag bit.
func (s *Seed) tracks(f xflags.Flag) bool {
	for _, r := range s.Rooms {
		if r.Scene != f.Scene || r.Room != f.Room {
			continue
		}
		if f.Scene == xflags.GrottoScene {
			if r.Grotto != f.Grotto {
				continue
			}
		} else if r.Setup != f.Setup {
			continue
		}
		for _, a := range r.Actors {
			if a.Index == f.Actor && f.Subflag < a.Width {
				return true
			}
		}
	}
	return false
}
