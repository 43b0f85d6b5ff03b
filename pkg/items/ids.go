// Package items holds the static item table and the rules for resolving
// progressive items and applying an item to a save file.
package items

import "fmt"

// ID identifies an item as stored in an override value.
type ID uint16

const (
	None ID = iota
	Bombs5
	DekuNuts5
	Bombchus10
	Bow
	Slingshot
	Boomerang
	DekuStick1
	Hookshot
	Longshot
	LensOfTruth
	ZeldasLetter
	OcarinaOfTime
	MegatonHammer
	Cojiro
	BottleEmpty
	BottleMilk
	BottleRutosLetter
	MagicBean
	ClaimCheck
	KokiriSword
	BiggoronSword
	DekuShield
	HylianShield
	MirrorShield
	GoronTunic
	ZoraTunic
	IronBoots
	HoverBoots
	GoronBracelet
	SilverGauntlets
	GoldenGauntlets
	BombBag20
	BombBag30
	BombBag40
	Quiver40
	Quiver50
	BulletBag40
	BulletBag50
	SilverScale
	GoldenScale
	AdultWallet
	GiantWallet
	TycoonWallet
	NutCapacity30
	NutCapacity40
	StickCapacity20
	StickCapacity30
	MagicMeter
	DoubleMagic
	DoubleDefense
	FairyOcarina
	HeartContainer
	PieceOfHeart
	RecoveryHeart
	RupeeGreen
	RupeeBlue
	RupeeRed
	RupeePurple
	RupeeGold
	Arrows5
	Arrows10
	Arrows30
	DekuSeeds30
	Bombchus5
	Bombchus20
	GoldSkulltulaToken
	IceTrap
	MinuetOfForest
	BoleroOfFire
	SerenadeOfWater
	RequiemOfSpirit
	NocturneOfShadow
	PreludeOfLight
	ZeldasLullaby
	EponasSong
	SariasSong
	SunsSong
	SongOfTime
	SongOfStorms
	KokiriEmerald
	GoronRuby
	ZoraSapphire
	ForestMedallion
	FireMedallion
	WaterMedallion
	SpiritMedallion
	ShadowMedallion
	LightMedallion
	StoneOfAgony
	GerudoCard
	MagicBeanPack
	TriforcePiece
	Bombs10
	Bombs20
	DekuNuts10
)

const (
	ProgressiveHookshot ID = 0x60 + iota
	ProgressiveStrength
	ProgressiveBombBag
	ProgressiveBow
	ProgressiveSlingshot
	ProgressiveWallet
	ProgressiveScale
	ProgressiveNutCapacity
	ProgressiveStickCapacity
	ProgressiveMagic
	ProgressiveBombchus
	ProgressiveOcarina
)

// Per-dungeon item ranges. The low nibble is the Dungeon.
const (
	BossKeyBase     ID = 0x70
	CompassBase     ID = 0x80
	MapBase         ID = 0x90
	SmallKeyBase    ID = 0xA0
	KeyRingBase     ID = 0xB0
	SilverRupeeBase ID = 0xC0
)

func BossKey(d Dungeon) ID { return BossKeyBase + ID(d) }
func Compass(d Dungeon) ID { return CompassBase + ID(d) }
func Map(d Dungeon) ID { return MapBase + ID(d) }
func SmallKey(d Dungeon) ID { return SmallKeyBase + ID(d) }
func KeyRing(d Dungeon) ID { return KeyRingBase + ID(d) }
func SilverRupee(p Puzzle) ID { return SilverRupeeBase + ID(p) }

func (id ID) String() string {
	if r := Lookup(id); r != nil {
		return r.Name
	}
	return fmt.Sprintf("item(%#x)", uint16(id))
}
