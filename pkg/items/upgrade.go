package items

import "github.com/jwebster45206/itemshuffle/pkg/save"

// UpgradeKind selects how an item id is rewritten based on what the
// receiving player already owns.
type UpgradeKind uint8

const (
	UpgradeNone UpgradeKind = iota
	UpgradeHookshot
	UpgradeStrength
	UpgradeBombBag
	UpgradeBow
	UpgradeSlingshot
	UpgradeWallet
	UpgradeScale
	UpgradeNutCapacity
	UpgradeStickCapacity
	UpgradeMagic
	UpgradeBombchus
	UpgradeOcarina
	UpgradeArrowsToRupee
	UpgradeBombsToRupee
	UpgradeSeedsToRupee
	UpgradeLetterToBottle
	UpgradeHealthCap
	UpgradeBombchusToBag
)

// MaxUpgradeSteps bounds upgrade chain resolution.
const MaxUpgradeSteps = 8

// Progress is the subset of a player's state that upgrade resolution reads.
// Under multiworld progressive tracking the engine keeps one per player.
type Progress struct {
	Hookshot      uint8 `json:"hookshot"`
	Strength      uint8 `json:"strength"`
	BombBag       uint8 `json:"bomb_bag"`
	Quiver        uint8 `json:"quiver"`
	BulletBag     uint8 `json:"bullet_bag"`
	Wallet        uint8 `json:"wallet"`
	Scale         uint8 `json:"scale"`
	NutCapacity   uint8 `json:"nut_capacity"`
	StickCapacity uint8 `json:"stick_capacity"`
	Magic         uint8 `json:"magic"`
	Ocarina       uint8 `json:"ocarina"`
	Bombchus      bool  `json:"bombchus"`
	RutosLetter   bool  `json:"rutos_letter"`
	Hearts        uint8 `json:"hearts"`
}

// ProgressOf reads the upgrade-relevant state out of a save file.
func ProgressOf(f *save.File) Progress {
	c := &f.Context
	p := Progress{
		Strength:      c.Upgrade(save.UpgradeStrength),
		BombBag:       c.Upgrade(save.UpgradeBombBag),
		Quiver:        c.Upgrade(save.UpgradeQuiver),
		BulletBag:     c.Upgrade(save.UpgradeBulletBag),
		Wallet:        c.Upgrade(save.UpgradeWallet),
		Scale:         c.Upgrade(save.UpgradeScale),
		NutCapacity:   c.Upgrade(save.UpgradeNutCapacity),
		StickCapacity: c.Upgrade(save.UpgradeStickCapacity),
		Magic:         c.MagicLevel,
		Bombchus:      c.HasItem(save.SlotBombchus),
		RutosLetter:   f.Extended.TradeItemsOwned&tradeRutosLetter != 0,
		Hearts:        uint8(c.HealthCapacity / save.HealthPerHeart),
	}
	switch ID(c.Items[save.SlotHookshot]) {
	case Hookshot:
		p.Hookshot = 1
	case Longshot:
		p.Hookshot = 2
	}
	switch ID(c.Items[save.SlotOcarina]) {
	case FairyOcarina:
		p.Ocarina = 1
	case OcarinaOfTime:
		p.Ocarina = 2
	}
	return p
}

// Resolver applies upgrade kinds. BombchusInLogic mirrors the seed setting
// of the same name.
type Resolver struct {
	BombchusInLogic bool
}

// Resolve follows the upgrade chain of id until it reaches a fixed point
// or MaxUpgradeSteps is exhausted.
func (r Resolver) Resolve(id ID, p Progress) ID {
	for range MaxUpgradeSteps {
		row := Lookup(id)
		if row == nil {
			return id
		}
		next := r.upgrade(row, p)
		if next == id {
			return id
		}
		id = next
	}
	return id
}

func (r Resolver) upgrade(row *Row, p Progress) ID {
	switch row.Upgrade {
	case UpgradeNone:
		return row.ID
	case UpgradeHookshot:
		if p.Hookshot == 0 {
			return Hookshot
		}
		return Longshot
	case UpgradeStrength:
		return tier(p.Strength, GoronBracelet, SilverGauntlets, GoldenGauntlets)
	case UpgradeBombBag:
		return tier(p.BombBag, BombBag20, BombBag30, BombBag40)
	case UpgradeBow:
		return tier(p.Quiver, Bow, Quiver40, Quiver50)
	case UpgradeSlingshot:
		return tier(p.BulletBag, Slingshot, BulletBag40, BulletBag50)
	case UpgradeWallet:
		return tier(p.Wallet, AdultWallet, GiantWallet, TycoonWallet)
	case UpgradeScale:
		return tier(p.Scale, SilverScale, GoldenScale)
	case UpgradeNutCapacity:
		if p.NutCapacity <= 1 {
			return NutCapacity30
		}
		return NutCapacity40
	case UpgradeStickCapacity:
		if p.StickCapacity <= 1 {
			return StickCapacity20
		}
		return StickCapacity30
	case UpgradeMagic:
		return tier(p.Magic, MagicMeter, DoubleMagic)
	case UpgradeBombchus:
		if !p.Bombchus {
			return Bombchus20
		}
		return Bombchus10
	case UpgradeOcarina:
		return tier(p.Ocarina, FairyOcarina, OcarinaOfTime)
	case UpgradeArrowsToRupee:
		if p.Quiver == 0 {
			return RupeeBlue
		}
	case UpgradeBombsToRupee:
		if p.BombBag == 0 {
			return RupeeBlue
		}
	case UpgradeSeedsToRupee:
		if p.BulletBag == 0 {
			return RupeeBlue
		}
	case UpgradeLetterToBottle:
		if p.RutosLetter {
			return BottleEmpty
		}
	case UpgradeHealthCap:
		if p.Hearts >= save.MaxHealth/save.HealthPerHeart {
			return RecoveryHeart
		}
	case UpgradeBombchusToBag:
		if r.BombchusInLogic && !p.Bombchus {
			return Bombchus20
		}
	}
	return row.ID
}

// tier picks ids[level], clamped to the last entry.
func tier(level uint8, ids ...ID) ID {
	if int(level) >= len(ids) {
		return ids[len(ids)-1]
	}
	return ids[level]
}
