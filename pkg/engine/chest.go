package engine

import (
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
)

// Chest is a chest actor as seen by the engine. The resolved chest type is
// cached on it so repeated queries do not repeat the lookup.
type Chest struct {
	Trigger override.Trigger
	Vanilla items.ChestType

	resolved  bool
	chestType items.ChestType
}

// ChestType returns the visual category of chest. With vanilla appearance,
// or when the chest holds no override, the vanilla type is kept.
func (e *Engine) ChestType(chest *Chest) items.ChestType {
	if chest.resolved {
		return chest.chestType
	}

	chest.chestType = e.resolveChestType(chest)
	chest.resolved = true
	return chest.chestType
}

func (e *Engine) resolveChestType(chest *Chest) items.ChestType {
	if e.settings.ChestAppearance != ChestsMatchesContents {
		return chest.Vanilla
	}

	o := e.LookupOverride(chest.Trigger)
	if o.IsEmpty() {
		return chest.Vanilla
	}

	player := o.Value.Player
	if player == override.PlayerEveryone {
		player = e.settings.LocalPlayer
	}
	progress := e.PlayerProgress(player)

	shown := items.ID(o.Value.Item)
	if o.Value.LooksLike != 0 {
		shown = items.ID(o.Value.LooksLike)
	}
	row := items.Lookup(e.resolver.Resolve(shown, progress))
	if row == nil {
		return chest.Vanilla
	}
	return row.Chest
}

// DropBombsOrChus picks the explosive a bomb drop turns into. With
// bombchus in logic, a player owning only one kind gets that kind and a
// player owning both gets either at random. Without any explosives nothing
// drops.
func (e *Engine) DropBombsOrChus(p items.Progress) items.ID {
	hasBombs := p.BombBag > 0
	if !e.settings.BombchusInLogic {
		if hasBombs {
			return items.Bombs5
		}
		return items.None
	}

	switch {
	case hasBombs && p.Bombchus:
		if e.rng.IntN(2) == 0 {
			return items.Bombs5
		}
		return items.Bombchus5
	case p.Bombchus:
		return items.Bombchus5
	case hasBombs:
		return items.Bombs5
	}
	return items.None
}
