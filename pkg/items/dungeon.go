package items

// Dungeon indexes the per-dungeon save arrays.
type Dungeon uint8

const (
	DekuTree Dungeon = iota
	DodongosCavern
	JabuJabusBelly
	ForestTemple
	FireTemple
	WaterTemple
	SpiritTemple
	ShadowTemple
	BottomOfTheWell
	IceCavern
	GanonsTower
	GerudoTrainingGround
	ThievesHideout
	GanonsCastle

	DungeonCount
)

type dungeonInfo struct {
	name       string
	keyCap     uint8
	bossKey    bool
	mapCompass bool
}

var dungeons = [DungeonCount]dungeonInfo{
	DekuTree:             {"Deku Tree", 0, false, true},
	DodongosCavern:       {"Dodongo's Cavern", 0, false, true},
	JabuJabusBelly:       {"Jabu Jabu's Belly", 0, false, true},
	ForestTemple:         {"Forest Temple", 5, true, true},
	FireTemple:           {"Fire Temple", 8, true, true},
	WaterTemple:          {"Water Temple", 6, true, true},
	SpiritTemple:         {"Spirit Temple", 5, true, true},
	ShadowTemple:         {"Shadow Temple", 5, true, true},
	BottomOfTheWell:      {"Bottom of the Well", 3, false, true},
	IceCavern:            {"Ice Cavern", 0, false, true},
	GanonsTower:          {"Ganon's Tower", 0, true, false},
	GerudoTrainingGround: {"Gerudo Training Ground", 9, false, false},
	ThievesHideout:       {"Thieves' Hideout", 4, false, false},
	GanonsCastle:         {"Ganon's Castle", 2, false, false},
}

func (d Dungeon) String() string {
	if d < DungeonCount {
		return dungeons[d].name
	}
	return "unknown dungeon"
}

// KeyCap is the number of small keys the dungeon holds.
func (d Dungeon) KeyCap() uint8 {
	if d < DungeonCount {
		return dungeons[d].keyCap
	}
	return 0
}

// Puzzle identifies a silver rupee puzzle.
type Puzzle uint8

const (
	PuzzleDodongosStaircase Puzzle = iota
	PuzzleIceCavernScythe
	PuzzleIceCavernBlock
	PuzzleWellBasement
	PuzzleShadowScythe
	PuzzleShadowBlades
	PuzzleShadowPit
	PuzzleShadowSpikes
	PuzzleTrainingSlopes
	PuzzleTrainingLava
	PuzzleTrainingWater
	PuzzleSpiritTorches
	PuzzleSpiritBoulders
	PuzzleSpiritSunBlock
	PuzzleCastleLightTrial
	PuzzleCastleFireTrial

	PuzzleCount
)

type puzzleInfo struct {
	name      string
	dungeon   Dungeon
	threshold uint8
}

var puzzles = [PuzzleCount]puzzleInfo{
	PuzzleDodongosStaircase: {"Dodongo's Cavern Staircase", DodongosCavern, 5},
	PuzzleIceCavernScythe:   {"Ice Cavern Spinning Scythe", IceCavern, 5},
	PuzzleIceCavernBlock:    {"Ice Cavern Push Block", IceCavern, 5},
	PuzzleWellBasement:      {"Bottom of the Well Basement", BottomOfTheWell, 5},
	PuzzleShadowScythe:      {"Shadow Temple Scythe Shortcut", ShadowTemple, 5},
	PuzzleShadowBlades:      {"Shadow Temple Invisible Blades", ShadowTemple, 10},
	PuzzleShadowPit:         {"Shadow Temple Huge Pit", ShadowTemple, 5},
	PuzzleShadowSpikes:      {"Shadow Temple Invisible Spikes", ShadowTemple, 10},
	PuzzleTrainingSlopes:    {"Gerudo Training Ground Slopes", GerudoTrainingGround, 5},
	PuzzleTrainingLava:      {"Gerudo Training Ground Lava", GerudoTrainingGround, 6},
	PuzzleTrainingWater:     {"Gerudo Training Ground Water", GerudoTrainingGround, 5},
	PuzzleSpiritTorches:     {"Spirit Temple Child Early Torches", SpiritTemple, 5},
	PuzzleSpiritBoulders:    {"Spirit Temple Adult Boulders", SpiritTemple, 5},
	PuzzleSpiritSunBlock:    {"Spirit Temple Sun Block", SpiritTemple, 5},
	PuzzleCastleLightTrial:  {"Ganon's Castle Light Trial", GanonsCastle, 5},
	PuzzleCastleFireTrial:   {"Ganon's Castle Fire Trial", GanonsCastle, 5},
}

func (p Puzzle) String() string {
	if p < PuzzleCount {
		return puzzles[p].name
	}
	return "unknown puzzle"
}

// Threshold is the number of silver rupees that solves the puzzle.
func (p Puzzle) Threshold() uint8 {
	if p < PuzzleCount {
		return puzzles[p].threshold
	}
	return 0
}
