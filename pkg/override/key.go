package override

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// Type tags the kind of shuffled location a Key refers to.
type Type uint8

const (
	TypeBaseItem Type = iota
	TypeChest
	TypeCollectible
	TypeSkull
	TypeGrottoScrub
	TypeDelayed
	TypeNewFlag
	// TypeIncoming keys items received from other players. Seeds never use it.
	TypeIncoming
)

var typeNames = map[Type]string{
	TypeBaseItem:    "base_item",
	TypeChest:       "chest",
	TypeCollectible: "collectible",
	TypeSkull:       "skull",
	TypeGrottoScrub: "grotto_scrub",
	TypeDelayed:     "delayed",
	TypeNewFlag:     "new_flag",
	TypeIncoming:    "incoming",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType converts a type name as used in seed files back to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown location type %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scenes with special handling during key derivation and delivery.
const (
	SceneTreasureBoxShop uint8 = 0x10
	SceneGrottos         uint8 = 0x3E
	SceneDelayed         uint8 = 0xFF
)

// Key identifies a shuffled location.
type Key struct {
	Scene uint8  `json:"scene" yaml:"scene"`
	Type  Type   `json:"type" yaml:"type"`
	Flag  uint32 `json:"flag" yaml:"flag"`
}

// IsZero reports whether k is the "no key" sentinel.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Pack folds the key into a single integer with the same ordering as Compare.
func (k Key) Pack() uint64 {
	return uint64(k.Scene)<<40 | uint64(k.Type)<<32 | uint64(k.Flag)
}

// Unpack is the inverse of Key.Pack.
func Unpack(v uint64) Key {
	return Key{
		Scene: uint8(v >> 40),
		Type:  Type(v >> 32),
		Flag:  uint32(v),
	}
}

func (k Key) String() string {
	return fmt.Sprintf("%s@%02x:%x", k.Type, k.Scene, k.Flag)
}

// Compare orders keys by scene, then type, then flag.
func Compare(a, b Key) int {
	if c := cmp.Compare(a.Scene, b.Scene); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return cmp.Compare(a.Flag, b.Flag)
}

// Player 0 never owns a world; outgoing items addressed to it go to every player.
const PlayerEveryone uint8 = 0

// Value is the item placed at a location.
type Value struct {
	Item      uint16 `json:"item" yaml:"item"`
	Player    uint8  `json:"player" yaml:"player"`
	LooksLike uint16 `json:"looks_like,omitempty" yaml:"looks_like,omitempty"`
}

// Override assigns a Value to a Key.
type Override struct {
	Key   Key   `json:"key" yaml:"key"`
	Value Value `json:"value" yaml:"value"`
}

// IsEmpty reports whether o is the "no override" sentinel.
func (o Override) IsEmpty() bool {
	return o.Key.IsZero() && o.Value.Item == 0
}

func (o Override) String() string {
	if o.IsEmpty() {
		return "<none>"
	}
	return fmt.Sprintf("%s -> item %#x (player %d)", o.Key, o.Value.Item, o.Value.Player)
}

// EncodedSize is the size of an Override in its big-endian binary form.
const EncodedSize = 11

// AppendBinary appends the binary form of o to b: scene, type, flag, then
// item, player and looks-like item.
func (o Override) AppendBinary(b []byte) []byte {
	b = append(b, o.Key.Scene, uint8(o.Key.Type))
	b = binary.BigEndian.AppendUint32(b, o.Key.Flag)
	b = binary.BigEndian.AppendUint16(b, o.Value.Item)
	b = append(b, o.Value.Player)
	return binary.BigEndian.AppendUint16(b, o.Value.LooksLike)
}

// DecodeOverride reads an Override written by AppendBinary. b must hold at
// least EncodedSize bytes.
func DecodeOverride(b []byte) Override {
	_ = b[EncodedSize-1]
	return Override{
		Key: Key{
			Scene: b[0],
			Type:  Type(b[1]),
			Flag:  binary.BigEndian.Uint32(b[2:6]),
		},
		Value: Value{
			Item:      binary.BigEndian.Uint16(b[6:8]),
			Player:    b[8],
			LooksLike: binary.BigEndian.Uint16(b[9:11]),
		},
	}
}
