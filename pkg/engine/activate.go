package engine

import (
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
)

// CreditsEntrance is the entrance the player is warped to once a triforce
// hunt is complete.
const CreditsEntrance uint16 = 0x00A0

const (
	textKeyCountBase    uint16 = 0x9200
	textSilverCountBase uint16 = 0x9300
	textSilverSolved    uint16 = 0x9400
)

// Active is the resolved state of the override being given.
type Active struct {
	Override  override.Override `json:"override"`
	Item      items.ID          `json:"item"`
	LooksLike items.ID          `json:"looks_like"`
	Player    uint8             `json:"player"`
	Outgoing  bool              `json:"outgoing"`
	TextID    uint16            `json:"text_id"`
	FastChest bool              `json:"fast_chest"`

	row *items.Row
}

// Row returns the item row of the resolved item.
func (a Active) Row() *items.Row {
	return a.row
}

func (a Active) IsZero() bool {
	return a.row == nil
}

// Warp is a pending entrance change requested by the engine.
type Warp struct {
	Entrance uint16 `json:"entrance"`
}

// Dispatched describes where an item went.
type Dispatched struct {
	Local        bool  `json:"local"`
	Sent         bool  `json:"sent"`
	GameComplete bool  `json:"game_complete,omitempty"`
	SilverSolved bool  `json:"silver_solved,omitempty"`
	Warp         *Warp `json:"warp,omitempty"`
}

// ActivateOverride resolves o into the active state: the upgraded item, its
// owner, whether it leaves this world, its text and chest animation. An
// empty or unknown override clears the active state.
func (e *Engine) ActivateOverride(o override.Override) Active {
	if o.IsEmpty() {
		e.active = Active{}
		return e.active
	}

	player := o.Value.Player
	if player == override.PlayerEveryone && !e.isSentinel(items.ID(o.Value.Item)) {
		player = e.settings.LocalPlayer
	}
	progress := e.PlayerProgress(player)

	item := e.resolver.Resolve(items.ID(o.Value.Item), progress)
	row := items.Lookup(item)
	if row == nil {
		e.logger.Warn("Override references unknown item", "key", o.Key.String(), "item", uint16(item))
		e.active = Active{}
		return e.active
	}

	looksLike := item
	if o.Value.LooksLike != 0 {
		looksLike = e.resolver.Resolve(items.ID(o.Value.LooksLike), progress)
	}
	looksRow := items.Lookup(looksLike)
	if looksRow == nil {
		looksLike, looksRow = item, row
	}

	a := Active{
		Override:  o,
		Item:      item,
		LooksLike: looksLike,
		Player:    player,
		row:       row,
	}
	a.Outgoing = e.isSentinel(item) || (player != e.settings.LocalPlayer && player != override.PlayerEveryone)
	a.TextID = e.textID(row, a.Outgoing)
	a.FastChest = e.settings.FastChests || isFastChest(looksRow.Chest)

	e.active = a
	return a
}

// isSentinel reports whether item is given to every player: triforce pieces
// in a multiworld triforce hunt.
func (e *Engine) isSentinel(item items.ID) bool {
	return item == items.TriforcePiece && e.settings.Multiworld && e.settings.TriforceHunt
}

func isFastChest(c items.ChestType) bool {
	switch c {
	case items.ChestBrown, items.ChestSilver, items.ChestSkullSmall:
		return true
	}
	return false
}

// textID picks the message shown for row. Items staying in this world may
// show counts for keys and silver rupees.
func (e *Engine) textID(row *items.Row, outgoing bool) uint16 {
	if outgoing {
		return row.TextID
	}

	x := &e.file.Extended
	switch row.Effect {
	case items.EffectSmallKey, items.EffectSmallKeyRing:
		if !e.settings.KeyCountText {
			return row.TextID
		}
		d := items.Dungeon(row.Arg1)
		count := min(x.KeysObtained[d]+1, d.KeyCap())
		if row.Effect == items.EffectSmallKeyRing {
			count = d.KeyCap()
		}
		return textKeyCountBase + uint16(d)<<4 + uint16(count&0x0F)
	case items.EffectSilverRupee:
		p := items.Puzzle(row.Arg1)
		count := x.SilverRupeeCounts[p] + 1
		if count >= p.Threshold() {
			return textSilverSolved + uint16(p)
		}
		return textSilverCountBase + uint16(p)<<4 + uint16(count)
	}
	return row.TextID
}

// Dispatch delivers the active item. Items owned by another player are only
// queued for sending; the sentinel item is queued and also given locally;
// everything else is given locally and, with send own items, echoed to the
// outgoing queue.
func (e *Engine) Dispatch() Dispatched {
	a := e.active
	if a.IsZero() {
		return Dispatched{}
	}

	var d Dispatched
	sent := a.Override
	sent.Value.Item = uint16(a.Item)

	switch {
	case e.isSentinel(a.Item):
		sent.Value.Player = override.PlayerEveryone
		d.Sent = e.PushOutgoing(sent)
		e.giveLocal(a, &d)
	case a.Outgoing:
		sent.Value.Player = a.Player
		d.Sent = e.PushOutgoing(sent)
	default:
		e.giveLocal(a, &d)
		if e.settings.SendOwnItems && e.settings.Multiworld {
			sent.Value.Player = e.settings.LocalPlayer
			d.Sent = e.PushOutgoing(sent)
		}
	}
	return d
}

func (e *Engine) giveLocal(a Active, d *Dispatched) {
	out := items.Grant(e.file, a.row, e.env())
	d.Local = true
	d.SilverSolved = out.SilverSolved

	e.logger.Debug("Item given",
		"item", a.row.Name,
		"key", a.Override.Key.String(),
		"from_player", a.Override.Value.Player)

	if out.GameComplete {
		d.GameComplete = true
		d.Warp = e.endGame()
	}
}

// endGame forces a save and schedules the warp to the credits.
func (e *Engine) endGame() *Warp {
	e.logger.Info("Triforce hunt complete",
		"pieces", e.file.Extended.TriforcePieces,
		"goal", e.settings.TriforceGoal)

	if e.saver != nil {
		if err := e.saver.Save(e.file); err != nil {
			e.logger.Error("Failed to force save at game completion", "error", err)
		}
	}
	e.warp = &Warp{Entrance: CreditsEntrance}
	return e.warp
}
