package items

import (
	"fmt"

	"github.com/jwebster45206/itemshuffle/pkg/save"
)

// ChestType is the visual category of a chest holding an item.
type ChestType uint8

const (
	ChestBrown ChestType = iota
	ChestGold
	ChestBossKey
	ChestSilver
	ChestSkullSmall
	ChestSkullBig
	ChestHeart
)

var chestNames = [...]string{
	ChestBrown:      "brown",
	ChestGold:       "gold",
	ChestBossKey:    "boss_key",
	ChestSilver:     "silver",
	ChestSkullSmall: "skull_small",
	ChestSkullBig:   "skull_big",
	ChestHeart:      "heart",
}

func (c ChestType) String() string {
	if int(c) < len(chestNames) {
		return chestNames[c]
	}
	return "unknown"
}

func (c ChestType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ChestType) UnmarshalText(b []byte) error {
	for i, name := range chestNames {
		if name == string(b) {
			*c = ChestType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown chest type %q", b)
}

// Row is the static metadata of one item.
type Row struct {
	ID          ID
	Name        string
	BaseItem    uint8 // unique except across the dungeons of one dungeon item kind
	Chest       ChestType
	Action      uint8
	Collectible bool
	TextID      uint16
	ObjectID    uint16
	GraphicID   uint8
	Upgrade     UpgradeKind
	Effect      EffectKind
	Arg1        uint16
	Arg2        uint16
}

var table [0x100]Row

// Lookup returns the row for id, or nil for unknown items.
func Lookup(id ID) *Row {
	if id == None || int(id) >= len(table) || table[id].ID != id {
		return nil
	}
	return &table[id]
}

// All returns every known row in id order.
func All() []*Row {
	var rows []*Row
	for i := range table {
		if r := Lookup(ID(i)); r != nil {
			rows = append(rows, r)
		}
	}
	return rows
}

func init() {
	for _, r := range staticRows {
		table[r.ID] = r
	}
	for d := Dungeon(0); d < DungeonCount; d++ {
		info := dungeons[d]
		name := d.String()
		if info.bossKey {
			table[BossKey(d)] = Row{ID: BossKey(d), Name: "Boss Key (" + name + ")", BaseItem: 0x74, Chest: ChestBossKey, Action: 0x74,
				TextID: 0x9010 + uint16(d), ObjectID: 0x00B9, GraphicID: 0x0A, Effect: EffectDungeonItem, Arg1: uint16(save.DungeonBossKey), Arg2: uint16(d)}
		}
		if info.mapCompass {
			table[Compass(d)] = Row{ID: Compass(d), Name: "Compass (" + name + ")", BaseItem: 0x75, Chest: ChestBrown, Action: 0x75,
				TextID: 0x9030 + uint16(d), ObjectID: 0x00B8, GraphicID: 0x0B, Effect: EffectDungeonItem, Arg1: uint16(save.DungeonCompass), Arg2: uint16(d)}
			table[Map(d)] = Row{ID: Map(d), Name: "Map (" + name + ")", BaseItem: 0x76, Chest: ChestBrown, Action: 0x76,
				TextID: 0x9040 + uint16(d), ObjectID: 0x00C8, GraphicID: 0x1C, Effect: EffectDungeonItem, Arg1: uint16(save.DungeonMap), Arg2: uint16(d)}
		}
		if info.keyCap > 0 {
			table[SmallKey(d)] = Row{ID: SmallKey(d), Name: "Small Key (" + name + ")", BaseItem: 0x77, Chest: ChestSilver, Action: 0x77,
				TextID: 0x9050 + uint16(d), ObjectID: 0x00AA, GraphicID: 0x02, Effect: EffectSmallKey, Arg1: uint16(d)}
			table[KeyRing(d)] = Row{ID: KeyRing(d), Name: "Small Key Ring (" + name + ")", BaseItem: 0x77, Chest: ChestSilver, Action: 0x77,
				TextID: 0x9070 + uint16(d), ObjectID: 0x00AA, GraphicID: 0x02, Effect: EffectSmallKeyRing, Arg1: uint16(d)}
		}
	}
	for p := Puzzle(0); p < PuzzleCount; p++ {
		table[SilverRupee(p)] = Row{ID: SilverRupee(p), Name: "Silver Rupee (" + p.String() + ")", BaseItem: 0x84, Chest: ChestSilver, Action: 0x84,
			TextID: 0x9150 + uint16(p), ObjectID: 0x017F, GraphicID: 0x72, Effect: EffectSilverRupee, Arg1: uint16(p)}
	}
}

var staticRows = []Row{
	{ID: Bombs5, Name: "Bombs (5)", BaseItem: 0x8E, Chest: ChestBrown, Action: 0x8E, TextID: 0x32, ObjectID: 0x00CE, GraphicID: 0x20, Upgrade: UpgradeBombsToRupee},
	{ID: Bombs10, Name: "Bombs (10)", BaseItem: 0x8F, Chest: ChestBrown, Action: 0x8F, TextID: 0x32, ObjectID: 0x00CE, GraphicID: 0x20, Upgrade: UpgradeBombsToRupee},
	{ID: Bombs20, Name: "Bombs (20)", BaseItem: 0x90, Chest: ChestBrown, Action: 0x90, TextID: 0x32, ObjectID: 0x00CE, GraphicID: 0x20, Upgrade: UpgradeBombsToRupee},
	{ID: DekuNuts5, Name: "Deku Nuts (5)", BaseItem: 0x8C, Chest: ChestBrown, Action: 0x8C, Collectible: true, TextID: 0x34, ObjectID: 0x00BB, GraphicID: 0x12},
	{ID: DekuNuts10, Name: "Deku Nuts (10)", BaseItem: 0x8D, Chest: ChestBrown, Action: 0x8D, Collectible: true, TextID: 0x34, ObjectID: 0x00BB, GraphicID: 0x12},
	{ID: Bombchus10, Name: "Bombchus (10)", BaseItem: 0x09, Chest: ChestBrown, Action: 0x09, TextID: 0x33, ObjectID: 0x00D9, GraphicID: 0x28, Upgrade: UpgradeBombchusToBag, Effect: EffectBombchus, Arg1: 10},
	{ID: Bombchus5, Name: "Bombchus (5)", BaseItem: 0x96, Chest: ChestBrown, Action: 0x96, TextID: 0x33, ObjectID: 0x00D9, GraphicID: 0x28, Upgrade: UpgradeBombchusToBag, Effect: EffectBombchus, Arg1: 5},
	{ID: Bombchus20, Name: "Bombchus (20)", BaseItem: 0x97, Chest: ChestBrown, Action: 0x97, TextID: 0x33, ObjectID: 0x00D9, GraphicID: 0x28, Upgrade: UpgradeBombchusToBag, Effect: EffectBombchus, Arg1: 20},
	{ID: Bow, Name: "Fairy Bow", BaseItem: 0x03, Chest: ChestGold, Action: 0x03, TextID: 0x31, ObjectID: 0x00E9, GraphicID: 0x13},
	{ID: Slingshot, Name: "Fairy Slingshot", BaseItem: 0x06, Chest: ChestGold, Action: 0x06, TextID: 0x30, ObjectID: 0x00E7, GraphicID: 0x15},
	{ID: Boomerang, Name: "Boomerang", BaseItem: 0x0E, Chest: ChestGold, Action: 0x0E, TextID: 0x35, ObjectID: 0x00E8, GraphicID: 0x0E},
	{ID: DekuStick1, Name: "Deku Stick (1)", BaseItem: 0x00, Chest: ChestBrown, Action: 0x00, Collectible: true, TextID: 0x37, ObjectID: 0x00C7, GraphicID: 0x1B},
	{ID: Hookshot, Name: "Hookshot", BaseItem: 0x0A, Chest: ChestGold, Action: 0x0A, TextID: 0x36, ObjectID: 0x00DD, GraphicID: 0x2D},
	{ID: Longshot, Name: "Longshot", BaseItem: 0x0B, Chest: ChestGold, Action: 0x0B, TextID: 0x4F, ObjectID: 0x00DD, GraphicID: 0x2E},
	{ID: LensOfTruth, Name: "Lens of Truth", BaseItem: 0x0F, Chest: ChestGold, Action: 0x0F, TextID: 0x39, ObjectID: 0x00EA, GraphicID: 0x27},
	{ID: ZeldasLetter, Name: "Zelda's Letter", BaseItem: 0x21, Chest: ChestGold, Action: 0x21, TextID: 0x69, ObjectID: 0x00EB, GraphicID: 0x23},
	{ID: OcarinaOfTime, Name: "Ocarina of Time", BaseItem: 0x08, Chest: ChestGold, Action: 0x08, TextID: 0x3A, ObjectID: 0x00DE, GraphicID: 0x2F},
	{ID: MegatonHammer, Name: "Megaton Hammer", BaseItem: 0x11, Chest: ChestGold, Action: 0x11, TextID: 0x38, ObjectID: 0x00F6, GraphicID: 0x25},
	{ID: Cojiro, Name: "Cojiro", BaseItem: 0x2E, Chest: ChestGold, Action: 0x2E, TextID: 0x02, ObjectID: 0x010E, GraphicID: 0x44},
	{ID: BottleEmpty, Name: "Empty Bottle", BaseItem: 0x14, Chest: ChestGold, Action: 0x14, TextID: 0x42, ObjectID: 0x00C6, GraphicID: 0x01, Effect: EffectBottle, Arg1: uint16(BottleEmpty)},
	{ID: BottleMilk, Name: "Bottle with Milk", BaseItem: 0x1A, Chest: ChestGold, Action: 0x1A, TextID: 0x98, ObjectID: 0x00DF, GraphicID: 0x30, Effect: EffectBottle, Arg1: uint16(BottleMilk)},
	{ID: BottleRutosLetter, Name: "Rutos Letter", BaseItem: 0x1B, Chest: ChestGold, Action: 0x1B, TextID: 0x99, ObjectID: 0x010B, GraphicID: 0x45, Upgrade: UpgradeLetterToBottle, Effect: EffectBottle, Arg1: uint16(BottleRutosLetter)},
	{ID: MagicBean, Name: "Magic Bean", BaseItem: 0x10, Chest: ChestBrown, Action: 0x10, TextID: 0x48, ObjectID: 0x00F3, GraphicID: 0x43},
	{ID: MagicBeanPack, Name: "Magic Bean Pack", BaseItem: 0x98, Chest: ChestGold, Action: 0x98, TextID: 0x9018, ObjectID: 0x00F3, GraphicID: 0x43, Effect: EffectBeanPack},
	{ID: ClaimCheck, Name: "Claim Check", BaseItem: 0x37, Chest: ChestGold, Action: 0x37, TextID: 0x0E, ObjectID: 0x00F3, GraphicID: 0x56},
	{ID: KokiriSword, Name: "Kokiri Sword", BaseItem: 0x3B, Chest: ChestGold, Action: 0x3B, TextID: 0xA4, ObjectID: 0x018D, GraphicID: 0x74},
	{ID: BiggoronSword, Name: "Biggoron Sword", BaseItem: 0x3D, Chest: ChestGold, Action: 0x3D, TextID: 0x0C, ObjectID: 0x00F8, GraphicID: 0x05, Effect: EffectBiggoronSword},
	{ID: DekuShield, Name: "Deku Shield", BaseItem: 0x3E, Chest: ChestBrown, Action: 0x3E, TextID: 0x4C, ObjectID: 0x00CB, GraphicID: 0x1D},
	{ID: HylianShield, Name: "Hylian Shield", BaseItem: 0x3F, Chest: ChestBrown, Action: 0x3F, TextID: 0x4D, ObjectID: 0x00DC, GraphicID: 0x2C},
	{ID: MirrorShield, Name: "Mirror Shield", BaseItem: 0x40, Chest: ChestGold, Action: 0x40, TextID: 0x4E, ObjectID: 0x00EE, GraphicID: 0x03},
	{ID: GoronTunic, Name: "Goron Tunic", BaseItem: 0x42, Chest: ChestGold, Action: 0x42, TextID: 0x50, ObjectID: 0x00F2, GraphicID: 0x42},
	{ID: ZoraTunic, Name: "Zora Tunic", BaseItem: 0x43, Chest: ChestGold, Action: 0x43, TextID: 0x51, ObjectID: 0x00F2, GraphicID: 0x21},
	{ID: IronBoots, Name: "Iron Boots", BaseItem: 0x45, Chest: ChestGold, Action: 0x45, TextID: 0x53, ObjectID: 0x0118, GraphicID: 0x47},
	{ID: HoverBoots, Name: "Hover Boots", BaseItem: 0x46, Chest: ChestGold, Action: 0x46, TextID: 0x54, ObjectID: 0x0157, GraphicID: 0x5F},
	{ID: GoronBracelet, Name: "Goron Bracelet", BaseItem: 0x54, Chest: ChestGold, Action: 0x54, TextID: 0x79, ObjectID: 0x0147, GraphicID: 0x51},
	{ID: SilverGauntlets, Name: "Silver Gauntlets", BaseItem: 0x55, Chest: ChestGold, Action: 0x55, TextID: 0x5B, ObjectID: 0x015B, GraphicID: 0x60},
	{ID: GoldenGauntlets, Name: "Golden Gauntlets", BaseItem: 0x56, Chest: ChestGold, Action: 0x56, TextID: 0x5C, ObjectID: 0x015B, GraphicID: 0x61},
	{ID: BombBag20, Name: "Bomb Bag", BaseItem: 0x4D, Chest: ChestGold, Action: 0x4D, TextID: 0x58, ObjectID: 0x00BF, GraphicID: 0x18},
	{ID: BombBag30, Name: "Bigger Bomb Bag", BaseItem: 0x4E, Chest: ChestGold, Action: 0x4E, TextID: 0x59, ObjectID: 0x00BF, GraphicID: 0x19},
	{ID: BombBag40, Name: "Biggest Bomb Bag", BaseItem: 0x4F, Chest: ChestGold, Action: 0x4F, TextID: 0x5A, ObjectID: 0x00BF, GraphicID: 0x1A},
	{ID: Quiver40, Name: "Big Quiver", BaseItem: 0x48, Chest: ChestGold, Action: 0x48, TextID: 0x07, ObjectID: 0x00C1, GraphicID: 0x1E},
	{ID: Quiver50, Name: "Biggest Quiver", BaseItem: 0x49, Chest: ChestGold, Action: 0x49, TextID: 0x08, ObjectID: 0x00C1, GraphicID: 0x1F},
	{ID: BulletBag40, Name: "Bullet Bag (40)", BaseItem: 0x4A, Chest: ChestGold, Action: 0x4A, TextID: 0x06, ObjectID: 0x00D1, GraphicID: 0x31},
	{ID: BulletBag50, Name: "Bullet Bag (50)", BaseItem: 0x4B, Chest: ChestGold, Action: 0x4B, TextID: 0x5E, ObjectID: 0x00D1, GraphicID: 0x32},
	{ID: SilverScale, Name: "Silver Scale", BaseItem: 0x51, Chest: ChestGold, Action: 0x51, TextID: 0xCD, ObjectID: 0x00DB, GraphicID: 0x2A},
	{ID: GoldenScale, Name: "Golden Scale", BaseItem: 0x52, Chest: ChestGold, Action: 0x52, TextID: 0xCE, ObjectID: 0x00DB, GraphicID: 0x2B},
	{ID: AdultWallet, Name: "Adult's Wallet", BaseItem: 0x58, Chest: ChestGold, Action: 0x58, TextID: 0x5E, ObjectID: 0x00D1, GraphicID: 0x22, Effect: EffectFillWalletUpgrade, Arg1: 1},
	{ID: GiantWallet, Name: "Giant's Wallet", BaseItem: 0x59, Chest: ChestGold, Action: 0x59, TextID: 0x5F, ObjectID: 0x00D1, GraphicID: 0x23, Effect: EffectFillWalletUpgrade, Arg1: 2},
	{ID: TycoonWallet, Name: "Tycoon's Wallet", BaseItem: 0x47, Chest: ChestGold, Action: 0x47, TextID: 0x90F8, ObjectID: 0x00D1, GraphicID: 0x24, Effect: EffectTycoonWallet, Arg1: 3},
	{ID: NutCapacity30, Name: "Deku Nut Capacity", BaseItem: 0x8A, Chest: ChestBrown, Action: 0x8A, TextID: 0xA7, ObjectID: 0x00BB, GraphicID: 0x12},
	{ID: NutCapacity40, Name: "Deku Nut Capacity", BaseItem: 0x8B, Chest: ChestBrown, Action: 0x8B, TextID: 0xA8, ObjectID: 0x00BB, GraphicID: 0x12},
	{ID: StickCapacity20, Name: "Deku Stick Capacity", BaseItem: 0x99, Chest: ChestBrown, Action: 0x99, TextID: 0x90, ObjectID: 0x00C7, GraphicID: 0x1B},
	{ID: StickCapacity30, Name: "Deku Stick Capacity", BaseItem: 0x91, Chest: ChestBrown, Action: 0x91, TextID: 0x91, ObjectID: 0x00C7, GraphicID: 0x1B},
	{ID: MagicMeter, Name: "Magic Meter", BaseItem: 0x1E, Chest: ChestGold, Action: 0x1E, TextID: 0xE4, ObjectID: 0x00CD, GraphicID: 0x1E, Effect: EffectMagic},
	{ID: DoubleMagic, Name: "Double Magic", BaseItem: 0x1F, Chest: ChestGold, Action: 0x1F, TextID: 0xE8, ObjectID: 0x00CD, GraphicID: 0x1E, Effect: EffectDoubleMagic},
	{ID: DoubleDefense, Name: "Double Defense", BaseItem: 0x20, Chest: ChestGold, Action: 0x20, TextID: 0xE9, ObjectID: 0x0194, GraphicID: 0x13, Effect: EffectDefense},
	{ID: FairyOcarina, Name: "Fairy Ocarina", BaseItem: 0x07, Chest: ChestGold, Action: 0x07, TextID: 0x3B, ObjectID: 0x010E, GraphicID: 0x46, Effect: EffectFairyOcarina},
	{ID: HeartContainer, Name: "Heart Container", BaseItem: 0x72, Chest: ChestHeart, Action: 0x72, TextID: 0xC6, ObjectID: 0x00BD, GraphicID: 0x13, Upgrade: UpgradeHealthCap, Effect: EffectFullHeal},
	{ID: PieceOfHeart, Name: "Piece of Heart", BaseItem: 0x7A, Chest: ChestHeart, Action: 0x7A, TextID: 0xC2, ObjectID: 0x00BD, GraphicID: 0x14, Upgrade: UpgradeHealthCap, Effect: EffectClearExcessHearts},
	{ID: RecoveryHeart, Name: "Recovery Heart", BaseItem: 0x83, Chest: ChestBrown, Action: 0x83, Collectible: true, TextID: 0x55, ObjectID: 0x00B7, GraphicID: 0x09},
	{ID: RupeeGreen, Name: "Green Rupee", BaseItem: 0x84, Chest: ChestBrown, Action: 0x84, Collectible: true, TextID: 0x6F, ObjectID: 0x017F, GraphicID: 0x6D},
	{ID: RupeeBlue, Name: "Blue Rupee", BaseItem: 0x85, Chest: ChestBrown, Action: 0x85, Collectible: true, TextID: 0xCC, ObjectID: 0x017F, GraphicID: 0x6E},
	{ID: RupeeRed, Name: "Red Rupee", BaseItem: 0x86, Chest: ChestBrown, Action: 0x86, Collectible: true, TextID: 0xF0, ObjectID: 0x017F, GraphicID: 0x6F},
	{ID: RupeePurple, Name: "Purple Rupee", BaseItem: 0x87, Chest: ChestBrown, Action: 0x87, Collectible: true, TextID: 0xF1, ObjectID: 0x017F, GraphicID: 0x70},
	{ID: RupeeGold, Name: "Huge Rupee", BaseItem: 0x88, Chest: ChestBrown, Action: 0x88, Collectible: true, TextID: 0xF2, ObjectID: 0x017F, GraphicID: 0x71},
	{ID: Arrows5, Name: "Arrows (5)", BaseItem: 0x92, Chest: ChestBrown, Action: 0x92, Collectible: true, TextID: 0xE6, ObjectID: 0x00D8, GraphicID: 0x25, Upgrade: UpgradeArrowsToRupee},
	{ID: Arrows10, Name: "Arrows (10)", BaseItem: 0x93, Chest: ChestBrown, Action: 0x93, Collectible: true, TextID: 0xE6, ObjectID: 0x00D8, GraphicID: 0x26, Upgrade: UpgradeArrowsToRupee},
	{ID: Arrows30, Name: "Arrows (30)", BaseItem: 0x94, Chest: ChestBrown, Action: 0x94, Collectible: true, TextID: 0xE6, ObjectID: 0x00D8, GraphicID: 0x27, Upgrade: UpgradeArrowsToRupee},
	{ID: DekuSeeds30, Name: "Deku Seeds (30)", BaseItem: 0x95, Chest: ChestBrown, Action: 0x95, Collectible: true, TextID: 0xDC, ObjectID: 0x0119, GraphicID: 0x48, Upgrade: UpgradeSeedsToRupee},
	{ID: GoldSkulltulaToken, Name: "Gold Skulltula Token", BaseItem: 0x71, Chest: ChestSkullSmall, Action: 0x71, TextID: 0xB4, ObjectID: 0x015C, GraphicID: 0x63},
	{ID: IceTrap, Name: "Ice Trap", BaseItem: 0x7C, Chest: ChestBrown, Action: 0x7C, TextID: 0x9002, ObjectID: 0x0000, GraphicID: 0x00, Effect: EffectIceTrap},
	{ID: MinuetOfForest, Name: "Minuet of Forest", BaseItem: 0x5A, Chest: ChestGold, Action: 0x5A, TextID: 0x73, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestMinuet},
	{ID: BoleroOfFire, Name: "Bolero of Fire", BaseItem: 0x5B, Chest: ChestGold, Action: 0x5B, TextID: 0x74, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestBolero},
	{ID: SerenadeOfWater, Name: "Serenade of Water", BaseItem: 0x5C, Chest: ChestGold, Action: 0x5C, TextID: 0x75, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestSerenade},
	{ID: RequiemOfSpirit, Name: "Requiem of Spirit", BaseItem: 0x5D, Chest: ChestGold, Action: 0x5D, TextID: 0x76, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestRequiem},
	{ID: NocturneOfShadow, Name: "Nocturne of Shadow", BaseItem: 0x5E, Chest: ChestGold, Action: 0x5E, TextID: 0x77, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestNocturne},
	{ID: PreludeOfLight, Name: "Prelude of Light", BaseItem: 0x5F, Chest: ChestGold, Action: 0x5F, TextID: 0x78, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestPrelude},
	{ID: ZeldasLullaby, Name: "Zeldas Lullaby", BaseItem: 0x61, Chest: ChestGold, Action: 0x61, TextID: 0xD4, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestZeldasLullaby},
	{ID: EponasSong, Name: "Eponas Song", BaseItem: 0x62, Chest: ChestGold, Action: 0x62, TextID: 0xD2, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestEponasSong},
	{ID: SariasSong, Name: "Sarias Song", BaseItem: 0x63, Chest: ChestGold, Action: 0x63, TextID: 0xD1, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestSariasSong},
	{ID: SunsSong, Name: "Suns Song", BaseItem: 0x64, Chest: ChestGold, Action: 0x64, TextID: 0xD3, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestSunsSong},
	{ID: SongOfTime, Name: "Song of Time", BaseItem: 0x65, Chest: ChestGold, Action: 0x65, TextID: 0xD5, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestSongOfTime},
	{ID: SongOfStorms, Name: "Song of Storms", BaseItem: 0x60, Chest: ChestGold, Action: 0x60, TextID: 0xD6, ObjectID: 0x00B6, GraphicID: 0x04, Effect: EffectSong, Arg1: save.QuestSongOfStorms},
	{ID: KokiriEmerald, Name: "Kokiri Emerald", BaseItem: 0x6C, Chest: ChestGold, Action: 0x6C, TextID: 0x80, ObjectID: 0x00AD, GraphicID: 0x33, Effect: EffectDungeonReward, Arg1: 0},
	{ID: GoronRuby, Name: "Goron Ruby", BaseItem: 0x6D, Chest: ChestGold, Action: 0x6D, TextID: 0x81, ObjectID: 0x00AD, GraphicID: 0x34, Effect: EffectDungeonReward, Arg1: 1},
	{ID: ZoraSapphire, Name: "Zora Sapphire", BaseItem: 0x6E, Chest: ChestGold, Action: 0x6E, TextID: 0x82, ObjectID: 0x00AD, GraphicID: 0x35, Effect: EffectDungeonReward, Arg1: 2},
	{ID: ForestMedallion, Name: "Forest Medallion", BaseItem: 0x66, Chest: ChestGold, Action: 0x66, TextID: 0x3E, ObjectID: 0x00BA, GraphicID: 0x36, Effect: EffectDungeonReward, Arg1: 3},
	{ID: FireMedallion, Name: "Fire Medallion", BaseItem: 0x67, Chest: ChestGold, Action: 0x67, TextID: 0x3C, ObjectID: 0x00BA, GraphicID: 0x37, Effect: EffectDungeonReward, Arg1: 4},
	{ID: WaterMedallion, Name: "Water Medallion", BaseItem: 0x68, Chest: ChestGold, Action: 0x68, TextID: 0x3D, ObjectID: 0x00BA, GraphicID: 0x38, Effect: EffectDungeonReward, Arg1: 5},
	{ID: SpiritMedallion, Name: "Spirit Medallion", BaseItem: 0x69, Chest: ChestGold, Action: 0x69, TextID: 0x3F, ObjectID: 0x00BA, GraphicID: 0x39, Effect: EffectDungeonReward, Arg1: 6},
	{ID: ShadowMedallion, Name: "Shadow Medallion", BaseItem: 0x6A, Chest: ChestGold, Action: 0x6A, TextID: 0x41, ObjectID: 0x00BA, GraphicID: 0x3A, Effect: EffectDungeonReward, Arg1: 7},
	{ID: LightMedallion, Name: "Light Medallion", BaseItem: 0x6B, Chest: ChestGold, Action: 0x6B, TextID: 0x40, ObjectID: 0x00BA, GraphicID: 0x3B, Effect: EffectDungeonReward, Arg1: 8},
	{ID: StoneOfAgony, Name: "Stone of Agony", BaseItem: 0x39, Chest: ChestGold, Action: 0x39, TextID: 0x68, ObjectID: 0x00C8, GraphicID: 0x21},
	{ID: GerudoCard, Name: "Gerudo Membership Card", BaseItem: 0x3A, Chest: ChestGold, Action: 0x3A, TextID: 0x7B, ObjectID: 0x00D7, GraphicID: 0x24},
	{ID: TriforcePiece, Name: "Triforce Piece", BaseItem: 0xCA, Chest: ChestGold, Action: 0xCA, TextID: 0x9003, ObjectID: 0x0193, GraphicID: 0x76, Effect: EffectTriforcePiece},
	{ID: ProgressiveHookshot, Name: "Progressive Hookshot", Chest: ChestGold, Upgrade: UpgradeHookshot},
	{ID: ProgressiveStrength, Name: "Progressive Strength Upgrade", Chest: ChestGold, Upgrade: UpgradeStrength},
	{ID: ProgressiveBombBag, Name: "Bomb Bag", Chest: ChestGold, Upgrade: UpgradeBombBag},
	{ID: ProgressiveBow, Name: "Bow", Chest: ChestGold, Upgrade: UpgradeBow},
	{ID: ProgressiveSlingshot, Name: "Slingshot", Chest: ChestGold, Upgrade: UpgradeSlingshot},
	{ID: ProgressiveWallet, Name: "Progressive Wallet", Chest: ChestGold, Upgrade: UpgradeWallet},
	{ID: ProgressiveScale, Name: "Progressive Scale", Chest: ChestGold, Upgrade: UpgradeScale},
	{ID: ProgressiveNutCapacity, Name: "Deku Nut Capacity", Chest: ChestBrown, Upgrade: UpgradeNutCapacity},
	{ID: ProgressiveStickCapacity, Name: "Deku Stick Capacity", Chest: ChestBrown, Upgrade: UpgradeStickCapacity},
	{ID: ProgressiveMagic, Name: "Magic Meter", Chest: ChestGold, Upgrade: UpgradeMagic},
	{ID: ProgressiveBombchus, Name: "Bombchus", Chest: ChestGold, Upgrade: UpgradeBombchus},
	{ID: ProgressiveOcarina, Name: "Ocarina", Chest: ChestGold, Upgrade: UpgradeOcarina},
}
