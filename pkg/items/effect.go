package items

import "github.com/jwebster45206/itemshuffle/pkg/save"

// EffectKind selects the save mutation applied after the base grant.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectFullHeal
	EffectTriforcePiece
	EffectTycoonWallet
	EffectBiggoronSword
	EffectBottle
	EffectDungeonItem
	EffectSmallKey
	EffectSmallKeyRing
	EffectDefense
	EffectMagic
	EffectDoubleMagic
	EffectFairyOcarina
	EffectSong
	EffectIceTrap
	EffectBeanPack
	EffectFillWalletUpgrade
	EffectClearExcessHearts
	EffectSilverRupee
	EffectDungeonReward
	EffectBombchus
)

// Trade items tracked in Extended.TradeItemsOwned.
const (
	tradeRutosLetter uint32 = 1 << iota
	tradeCojiro
	tradeClaimCheck
	tradeZeldasLetter
)

var (
	walletCaps    = [...]int16{99, 200, 500, 999}
	bombBagCaps   = [...]int8{0, 20, 30, 40}
	quiverCaps    = [...]int8{0, 30, 40, 50}
	bulletBagCaps = [...]int8{0, 30, 40, 50}
	stickCaps     = [...]int8{10, 10, 20, 30}
	nutCaps       = [...]int8{20, 20, 30, 40}
)

const (
	bombchuCap  = 50
	magicBeans  = 10
	magicSingle = 0x30
)

// rewardQuestBits maps dungeon reward index to its quest item bit.
var rewardQuestBits = [...]int{
	save.QuestKokiriEmerald, save.QuestGoronRuby, save.QuestZoraSapphire,
	save.QuestForestMedallion, save.QuestFireMedallion, save.QuestWaterMedallion,
	save.QuestSpiritMedallion, save.QuestShadowMedallion, save.QuestLightMedallion,
}

// Env carries seed settings that effects depend on.
type Env struct {
	TriforceHunt bool
	TriforceGoal uint16
}

// Outcome reports side effects of a grant beyond the save mutation.
type Outcome struct {
	// GameComplete is set when this grant finished a triforce hunt.
	GameComplete bool
	// SilverSolved is set when a silver rupee completed its puzzle.
	SilverSolved bool
}

// Grant gives row's item to f: the base inventory change followed by the
// row's effect.
func Grant(f *save.File, row *Row, env Env) Outcome {
	giveBase(&f.Context, &f.Extended, row.ID)
	return applyEffect(f, row.Effect, row.Arg1, row.Arg2, env)
}

func applyEffect(f *save.File, effect EffectKind, arg1, arg2 uint16, env Env) Outcome {
	c, x := &f.Context, &f.Extended
	var out Outcome

	switch effect {
	case EffectNone:
	case EffectFullHeal:
		c.Health = c.HealthCapacity
	case EffectTriforcePiece:
		x.TriforcePieces++
		if env.TriforceHunt && !x.GameComplete && x.TriforcePieces >= env.TriforceGoal {
			x.GameComplete = true
			out.GameComplete = true
		}
	case EffectTycoonWallet:
		c.SetUpgrade(save.UpgradeWallet, 3)
	case EffectBiggoronSword:
		c.SetEquipment(save.EquipBiggoronSword)
		c.BiggoronSword = true
	case EffectBottle:
		for slot := save.SlotBottle1; slot <= save.SlotBottle4; slot++ {
			if !c.HasItem(slot) {
				c.Items[slot] = uint8(arg1)
				break
			}
		}
		if ID(arg1) == BottleRutosLetter {
			x.TradeItemsOwned |= tradeRutosLetter
		}
	case EffectDungeonItem:
		if int(arg2) < save.DungeonCount {
			c.DungeonItems[arg2] |= uint8(arg1)
		}
	case EffectSmallKey:
		d := Dungeon(arg1)
		if d < DungeonCount && x.KeysObtained[d] < d.KeyCap() {
			c.DungeonKeys[d] = max(c.DungeonKeys[d], 0) + 1
			x.KeysObtained[d]++
		}
	case EffectSmallKeyRing:
		d := Dungeon(arg1)
		if d < DungeonCount && x.KeysObtained[d] < d.KeyCap() {
			c.DungeonKeys[d] = max(c.DungeonKeys[d], 0) + int8(d.KeyCap()-x.KeysObtained[d])
			x.KeysObtained[d] = d.KeyCap()
		}
	case EffectDefense:
		c.DoubleDefense = true
		c.DefenseHearts = save.DefenseHeartsMax
		c.Health = c.HealthCapacity
	case EffectMagic:
		c.MagicLevel = max(c.MagicLevel, 1)
		c.Magic = magicSingle
	case EffectDoubleMagic:
		c.MagicLevel = 2
		c.DoubleMagic = true
		c.Magic = 2 * magicSingle
	case EffectFairyOcarina:
		if !c.HasItem(save.SlotOcarina) {
			c.Items[save.SlotOcarina] = uint8(FairyOcarina)
		}
	case EffectSong:
		c.SetQuestItem(int(arg1))
	case EffectIceTrap:
		x.PendingIceTraps++
	case EffectBeanPack:
		c.Items[save.SlotMagicBean] = uint8(MagicBean)
		c.Ammo[save.SlotMagicBean] += magicBeans
	case EffectFillWalletUpgrade:
		level := uint8(arg1)
		c.SetUpgrade(save.UpgradeWallet, max(level, c.Upgrade(save.UpgradeWallet)))
		c.Rupees = walletCaps[c.Upgrade(save.UpgradeWallet)]
	case EffectClearExcessHearts:
		c.HeartPieces++
		if c.HeartPieces >= 4 {
			c.HeartPieces -= 4
			c.HealthCapacity = min(c.HealthCapacity+save.HealthPerHeart, save.MaxHealth)
			c.Health = c.HealthCapacity
		}
		if c.HealthCapacity >= save.MaxHealth {
			c.HeartPieces = 0
		}
	case EffectSilverRupee:
		p := Puzzle(arg1)
		if p < PuzzleCount && x.SilverRupeeCounts[p] < p.Threshold() {
			x.SilverRupeeCounts[p]++
			out.SilverSolved = x.SilverRupeeCounts[p] == p.Threshold()
		}
	case EffectDungeonReward:
		if int(arg1) < len(rewardQuestBits) {
			x.CollectedDungeonRewards |= 1 << arg1
			c.SetQuestItem(rewardQuestBits[arg1])
		}
	case EffectBombchus:
		c.Items[save.SlotBombchus] = uint8(Bombchus10)
		c.Ammo[save.SlotBombchus] = int8(min(int(c.Ammo[save.SlotBombchus])+int(arg1), bombchuCap))
	}
	return out
}

// giveBase performs the inventory change every copy of an item makes,
// independent of its effect.
func giveBase(c *save.Context, x *save.Extended, id ID) {
	switch id {
	case Bombs5, Bombs10, Bombs20:
		if level := c.Upgrade(save.UpgradeBombBag); level > 0 {
			c.Items[save.SlotBombs] = uint8(Bombs5)
			addAmmo(c, save.SlotBombs, ammoCount(id), bombBagCaps[level])
		}
	case DekuNuts5, DekuNuts10:
		c.Items[save.SlotDekuNut] = uint8(DekuNuts5)
		addAmmo(c, save.SlotDekuNut, ammoCount(id), nutCaps[c.Upgrade(save.UpgradeNutCapacity)])
	case DekuStick1:
		c.Items[save.SlotDekuStick] = uint8(DekuStick1)
		addAmmo(c, save.SlotDekuStick, 1, stickCaps[c.Upgrade(save.UpgradeStickCapacity)])
	case Arrows5, Arrows10, Arrows30:
		if level := c.Upgrade(save.UpgradeQuiver); level > 0 {
			addAmmo(c, save.SlotBow, ammoCount(id), quiverCaps[level])
		}
	case DekuSeeds30:
		if level := c.Upgrade(save.UpgradeBulletBag); level > 0 {
			addAmmo(c, save.SlotSlingshot, 30, bulletBagCaps[level])
		}
	case Bow:
		c.Items[save.SlotBow] = uint8(Bow)
		c.SetUpgrade(save.UpgradeQuiver, 1)
		c.Ammo[save.SlotBow] = quiverCaps[1]
	case Quiver40, Quiver50:
		level := uint8(id-Quiver40) + 2
		c.SetUpgrade(save.UpgradeQuiver, level)
		c.Ammo[save.SlotBow] = quiverCaps[level]
	case Slingshot:
		c.Items[save.SlotSlingshot] = uint8(Slingshot)
		c.SetUpgrade(save.UpgradeBulletBag, 1)
		c.Ammo[save.SlotSlingshot] = bulletBagCaps[1]
	case BulletBag40, BulletBag50:
		level := uint8(id-BulletBag40) + 2
		c.SetUpgrade(save.UpgradeBulletBag, level)
		c.Ammo[save.SlotSlingshot] = bulletBagCaps[level]
	case BombBag20, BombBag30, BombBag40:
		level := uint8(id-BombBag20) + 1
		c.Items[save.SlotBombs] = uint8(Bombs5)
		c.SetUpgrade(save.UpgradeBombBag, level)
		c.Ammo[save.SlotBombs] = bombBagCaps[level]
	case GoronBracelet, SilverGauntlets, GoldenGauntlets:
		c.SetUpgrade(save.UpgradeStrength, uint8(id-GoronBracelet)+1)
	case SilverScale, GoldenScale:
		c.SetUpgrade(save.UpgradeScale, uint8(id-SilverScale)+1)
	case NutCapacity30, NutCapacity40:
		level := uint8(id-NutCapacity30) + 2
		c.SetUpgrade(save.UpgradeNutCapacity, level)
		c.Items[save.SlotDekuNut] = uint8(DekuNuts5)
		c.Ammo[save.SlotDekuNut] = nutCaps[level]
	case StickCapacity20, StickCapacity30:
		level := uint8(id-StickCapacity20) + 2
		c.SetUpgrade(save.UpgradeStickCapacity, level)
		c.Items[save.SlotDekuStick] = uint8(DekuStick1)
		c.Ammo[save.SlotDekuStick] = stickCaps[level]
	case Boomerang:
		c.Items[save.SlotBoomerang] = uint8(id)
	case Hookshot, Longshot:
		c.Items[save.SlotHookshot] = uint8(id)
	case LensOfTruth:
		c.Items[save.SlotLens] = uint8(id)
	case MegatonHammer:
		c.Items[save.SlotHammer] = uint8(id)
	case OcarinaOfTime:
		c.Items[save.SlotOcarina] = uint8(id)
	case MagicBean:
		c.Items[save.SlotMagicBean] = uint8(id)
		c.Ammo[save.SlotMagicBean]++
	case ZeldasLetter:
		c.Items[save.SlotChildTrade] = uint8(id)
		x.TradeItemsOwned |= tradeZeldasLetter
	case Cojiro:
		c.Items[save.SlotAdultTrade] = uint8(id)
		x.TradeItemsOwned |= tradeCojiro
	case ClaimCheck:
		c.Items[save.SlotAdultTrade] = uint8(id)
		x.TradeItemsOwned |= tradeClaimCheck
	case KokiriSword:
		c.SetEquipment(save.EquipKokiriSword)
	case DekuShield:
		c.SetEquipment(save.EquipDekuShield)
	case HylianShield:
		c.SetEquipment(save.EquipHylianShield)
	case MirrorShield:
		c.SetEquipment(save.EquipMirrorShield)
	case GoronTunic:
		c.SetEquipment(save.EquipGoronTunic)
	case ZoraTunic:
		c.SetEquipment(save.EquipZoraTunic)
	case IronBoots:
		c.SetEquipment(save.EquipIronBoots)
	case HoverBoots:
		c.SetEquipment(save.EquipHoverBoots)
	case AdultWallet, GiantWallet:
		c.SetUpgrade(save.UpgradeWallet, uint8(id-AdultWallet)+1)
	case HeartContainer:
		c.HealthCapacity = min(c.HealthCapacity+save.HealthPerHeart, save.MaxHealth)
	case RecoveryHeart:
		c.Health = min(c.Health+save.HealthPerHeart, c.HealthCapacity)
	case RupeeGreen, RupeeBlue, RupeeRed, RupeePurple, RupeeGold:
		c.Rupees = min(c.Rupees+rupeeValue(id), walletCaps[c.Upgrade(save.UpgradeWallet)])
	case GoldSkulltulaToken:
		c.SkullTokens++
		c.SetQuestItem(save.QuestSkullToken)
	case StoneOfAgony:
		c.SetQuestItem(save.QuestStoneOfAgony)
	case GerudoCard:
		c.SetQuestItem(save.QuestGerudoCard)
	}
}

func addAmmo(c *save.Context, slot int, n, limit int8) {
	c.Ammo[slot] = int8(min(int(c.Ammo[slot])+int(n), int(limit)))
}

func ammoCount(id ID) int8 {
	switch id {
	case Bombs5, DekuNuts5, Arrows5:
		return 5
	case Bombs10, DekuNuts10, Arrows10:
		return 10
	case Bombs20:
		return 20
	case Arrows30:
		return 30
	}
	return 1
}

func rupeeValue(id ID) int16 {
	switch id {
	case RupeeGreen:
		return 1
	case RupeeBlue:
		return 5
	case RupeeRed:
		return 20
	case RupeePurple:
		return 50
	case RupeeGold:
		return 200
	}
	return 0
}
