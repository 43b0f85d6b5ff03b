// Package save models the persistent save file: the original game context,
// the extended save appended by the shuffler, and the collection flag bits.
package save

import (
	"github.com/jwebster45206/itemshuffle/pkg/override"
)

// Inventory slots of Context.Items. Slots below SlotCount16 also index Ammo.
const (
	SlotDekuStick = iota
	SlotDekuNut
	SlotBombs
	SlotBow
	SlotFireArrow
	SlotDinsFire
	SlotSlingshot
	SlotOcarina
	SlotBombchus
	SlotHookshot
	SlotIceArrow
	SlotFaroresWind
	SlotBoomerang
	SlotLens
	SlotMagicBean
	SlotHammer
	SlotLightArrow
	SlotNayrusLove
	SlotBottle1
	SlotBottle2
	SlotBottle3
	SlotBottle4
	SlotAdultTrade
	SlotChildTrade

	SlotCount
	SlotCount16 = 16
)

// ItemNone marks an empty inventory slot.
const ItemNone uint8 = 0xFF

// Packed upgrade levels inside Context.Upgrades.
type Upgrade uint8

const (
	UpgradeQuiver Upgrade = iota
	UpgradeBombBag
	UpgradeStrength
	UpgradeScale
	UpgradeWallet
	UpgradeBulletBag
	UpgradeStickCapacity
	UpgradeNutCapacity
)

var upgradeFields = [...]struct{ shift, bits uint8 }{
	UpgradeQuiver:        {0, 3},
	UpgradeBombBag:       {3, 3},
	UpgradeStrength:      {6, 3},
	UpgradeScale:         {9, 3},
	UpgradeWallet:        {12, 2},
	UpgradeBulletBag:     {14, 3},
	UpgradeStickCapacity: {17, 3},
	UpgradeNutCapacity:   {20, 3},
}

// Equipment bits.
const (
	EquipKokiriSword   = 0
	EquipMasterSword   = 1
	EquipBiggoronSword = 2
	EquipDekuShield    = 4
	EquipHylianShield  = 5
	EquipMirrorShield  = 6
	EquipKokiriTunic   = 8
	EquipGoronTunic    = 9
	EquipZoraTunic     = 10
	EquipKokiriBoots   = 12
	EquipIronBoots     = 13
	EquipHoverBoots    = 14
)

// Quest item bits.
const (
	QuestForestMedallion = 0
	QuestFireMedallion   = 1
	QuestWaterMedallion  = 2
	QuestSpiritMedallion = 3
	QuestShadowMedallion = 4
	QuestLightMedallion  = 5
	QuestMinuet          = 6
	QuestBolero          = 7
	QuestSerenade        = 8
	QuestRequiem         = 9
	QuestNocturne        = 10
	QuestPrelude         = 11
	QuestZeldasLullaby   = 12
	QuestEponasSong      = 13
	QuestSariasSong      = 14
	QuestSunsSong        = 15
	QuestSongOfTime      = 16
	QuestSongOfStorms    = 17
	QuestKokiriEmerald   = 18
	QuestGoronRuby       = 19
	QuestZoraSapphire    = 20
	QuestStoneOfAgony    = 21
	QuestGerudoCard      = 22
	QuestSkullToken      = 23
)

// Dungeon item bits inside Context.DungeonItems.
const (
	DungeonBossKey uint8 = 1 << iota
	DungeonCompass
	DungeonMap
)

const (
	DungeonCount     = 20
	KeyDungeonCount  = 19
	SceneCount       = 101
	SkullSceneCount  = 24
	PendingSlots     = 3
	SilverPuzzles    = 16
	HealthPerHeart   = 0x10
	MaxHealth        = 20 * HealthPerHeart
	DefenseHeartsMax = 20
)

// SceneFlags are the persistent per-scene flag words.
type SceneFlags struct {
	Chest   uint32
	Switch  uint32
	Clear   uint32
	Collect uint32
}

// Context is the original save structure. All fields are fixed size so the
// struct encodes with encoding/binary directly.
type Context struct {
	EntranceIndex  uint16
	HealthCapacity int16
	Health         int16
	MagicLevel     uint8
	Magic          uint8
	DoubleMagic    bool
	DoubleDefense  bool
	DefenseHearts  uint8
	BiggoronSword  bool
	Rupees         int16
	Items          [SlotCount]uint8
	Ammo           [SlotCount16]int8
	Equipment      uint16
	Upgrades       uint32
	QuestItems     uint32
	DungeonItems   [DungeonCount]uint8
	DungeonKeys    [KeyDungeonCount]int8
	SkullTokens    int16
	HeartPieces    uint8
	EventChkInf    [14]uint16
	ItemGetInf     [4]uint16
	InfTable       [30]uint16
	SceneFlags     [SceneCount]SceneFlags
	GoldSkulltulas [SkullSceneCount]uint8
}

// Extended is appended to the original save by the shuffler.
type Extended struct {
	TradeItemsOwned         uint32
	SilverRupeeCounts       [SilverPuzzles]uint8
	PendingItems            [PendingSlots]override.Override
	CollectedDungeonRewards uint16
	TriforcePieces          uint16
	InternalCount           uint16
	PendingIceTraps         uint8
	KeysObtained            [KeyDungeonCount]uint8
	GameComplete            bool
}

// File is one save slot's worth of state.
type File struct {
	Context  Context
	Extended Extended
	Flags    []byte
}

// NewFile returns a fresh file with flagBytes bytes of collection flags.
func NewFile(flagBytes int) *File {
	f := &File{Flags: make([]byte, flagBytes)}
	for i := range f.Context.Items {
		f.Context.Items[i] = ItemNone
	}
	f.Context.HealthCapacity = 3 * HealthPerHeart
	f.Context.Health = 3 * HealthPerHeart
	f.Context.Equipment = 1<<EquipKokiriTunic | 1<<EquipKokiriBoots
	return f
}

// Clone returns a deep copy of f.
func (f *File) Clone() *File {
	c := *f
	c.Flags = append([]byte(nil), f.Flags...)
	return &c
}

func (c *Context) Upgrade(u Upgrade) uint8 {
	fld := upgradeFields[u]
	return uint8(c.Upgrades>>fld.shift) & (1<<fld.bits - 1)
}

func (c *Context) SetUpgrade(u Upgrade, level uint8) {
	fld := upgradeFields[u]
	mask := uint32(1<<fld.bits-1) << fld.shift
	c.Upgrades = c.Upgrades&^mask | uint32(level)<<fld.shift&mask
}

func (c *Context) HasEquipment(bit int) bool {
	return c.Equipment&(1<<bit) != 0
}

func (c *Context) SetEquipment(bit int) {
	c.Equipment |= 1 << bit
}

func (c *Context) HasQuestItem(bit int) bool {
	return c.QuestItems&(1<<bit) != 0
}

func (c *Context) SetQuestItem(bit int) {
	c.QuestItems |= 1 << bit
}

func (c *Context) HasItem(slot int) bool {
	return c.Items[slot] != ItemNone
}

// FlagFits reports whether the context has a collected flag for the chest,
// collectible or skull location k.
func FlagFits(k override.Key) bool {
	switch k.Type {
	case override.TypeChest, override.TypeCollectible:
		return int(k.Scene) < SceneCount && k.Flag < 32
	case override.TypeSkull:
		return int(k.Scene) < SkullSceneCount && k.Flag != 0 && k.Flag <= 0xFF
	}
	return false
}

// ChestFlag reports whether chest flag n of scene is set.
func (c *Context) ChestFlag(scene uint8, n uint32) bool {
	if int(scene) >= SceneCount || n >= 32 {
		return false
	}
	return c.SceneFlags[scene].Chest&(1<<n) != 0
}

func (c *Context) SetChestFlag(scene uint8, n uint32) {
	if int(scene) >= SceneCount || n >= 32 {
		return
	}
	c.SceneFlags[scene].Chest |= 1 << n
}

// CollectFlag reports whether collectible flag n of scene is set.
func (c *Context) CollectFlag(scene uint8, n uint32) bool {
	if int(scene) >= SceneCount || n >= 32 {
		return false
	}
	return c.SceneFlags[scene].Collect&(1<<n) != 0
}

func (c *Context) SetCollectFlag(scene uint8, n uint32) {
	if int(scene) >= SceneCount || n >= 32 {
		return
	}
	c.SceneFlags[scene].Collect |= 1 << n
}

// SkullFlag reports whether any bit of mask is set for skull scene s.
func (c *Context) SkullFlag(s uint8, mask uint8) bool {
	if int(s) >= SkullSceneCount {
		return false
	}
	return c.GoldSkulltulas[s]&mask != 0
}

func (c *Context) SetSkullFlag(s uint8, mask uint8) {
	if int(s) >= SkullSceneCount {
		return
	}
	c.GoldSkulltulas[s] |= mask
}
