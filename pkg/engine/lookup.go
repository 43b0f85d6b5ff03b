package engine

import (
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// LookupOverrideByKey binary searches the override table. Absent keys give
// the empty override.
func (e *Engine) LookupOverrideByKey(key override.Key) override.Override {
	return e.overrides.Lookup(key)
}

// SearchKey derives the location key of a trigger.
func (e *Engine) SearchKey(t override.Trigger) override.Key {
	return override.SearchKey(t)
}

// LookupOverride resolves a trigger through the alternate key table and
// looks up the primary key.
func (e *Engine) LookupOverride(t override.Trigger) override.Override {
	return e.lookupKey(override.SearchKey(t))
}

func (e *Engine) lookupKey(key override.Key) override.Override {
	if key.IsZero() {
		return override.Override{}
	}
	return e.overrides.Lookup(e.alts.Resolve(key))
}

// GetNewFlag reports whether the location at f was collected. Locations
// the flag index does not know report true.
func (e *Engine) GetNewFlag(f xflags.Flag) bool {
	return e.flags.Get(f)
}

// SetNewFlag marks f collected. Unknown locations are ignored.
func (e *Engine) SetNewFlag(f xflags.Flag) {
	e.flags.Set(f)
}

// collected reports whether the location behind key was already given.
// Location types without a persistent flag are never reported collected.
// Chests, collectibles and skulls the save has no flag for always report
// collected.
func (e *Engine) collected(key override.Key) bool {
	c := &e.file.Context
	switch key.Type {
	case override.TypeChest, override.TypeCollectible, override.TypeSkull:
		if !save.FlagFits(key) {
			return true
		}
	}
	switch key.Type {
	case override.TypeChest:
		return c.ChestFlag(key.Scene, key.Flag)
	case override.TypeCollectible:
		return c.CollectFlag(key.Scene, key.Flag)
	case override.TypeSkull:
		return c.SkullFlag(key.Scene, uint8(key.Flag))
	case override.TypeNewFlag:
		return e.flags.Get(key.XFlag())
	default:
		return false
	}
}

func (e *Engine) markCollected(key override.Key) {
	c := &e.file.Context
	switch key.Type {
	case override.TypeChest:
		c.SetChestFlag(key.Scene, key.Flag)
	case override.TypeCollectible:
		c.SetCollectFlag(key.Scene, key.Flag)
	case override.TypeSkull:
		c.SetSkullFlag(key.Scene, uint8(key.Flag))
	case override.TypeNewFlag:
		e.flags.Set(key.XFlag())
	}
}
