package override

import "github.com/jwebster45206/itemshuffle/pkg/xflags"

// ActorID identifies the kind of actor that produced a trigger.
type ActorID uint16

// Actors whose location keys are not derived from the item id.
const (
	ActorChest          ActorID = 0x000A
	ActorCollectible    ActorID = 0x0015
	ActorGrottoSalesman ActorID = 0x011A
	ActorSkullToken     ActorID = 0x019C
)

// winnerRupee is the chest item of the final treasure box shop chest,
// which stays vanilla.
const winnerRupee = 0x75

// Trigger is the raw event that leads to an item being given: the actor
// that was opened, picked up or talked to, where it happened and which
// vanilla item it would have given.
type Trigger struct {
	Actor        ActorID `json:"actor" yaml:"actor"`
	Params       uint16  `json:"params" yaml:"params"`
	Scene        uint8   `json:"scene" yaml:"scene"`
	ItemID       uint16  `json:"item_id" yaml:"item_id"`
	RespawnScene uint8   `json:"respawn_scene,omitempty" yaml:"respawn_scene,omitempty"`
}

// SearchKey derives the location key for t. It returns the zero key for
// locations that are never shuffled.
func SearchKey(t Trigger) Key {
	switch {
	case t.Actor == ActorChest:
		if t.Scene == SceneTreasureBoxShop && (t.Params>>5)&0x7F == winnerRupee {
			return Key{}
		}
		return Key{Scene: t.Scene, Type: TypeChest, Flag: uint32(t.Params & 0x1F)}

	case t.Actor == ActorCollectible:
		return Key{Scene: t.Scene, Type: TypeCollectible, Flag: uint32((t.Params >> 8) & 0x3F)}

	case t.Actor == ActorSkullToken:
		return Key{Scene: uint8((t.Params >> 8) & 0x1F), Type: TypeSkull, Flag: uint32(t.Params & 0xFF)}

	case t.Actor == ActorGrottoSalesman && t.Scene == SceneGrottos:
		return Key{Scene: t.RespawnScene, Type: TypeGrottoScrub, Flag: uint32(t.ItemID)}

	default:
		return Key{Scene: t.Scene, Type: TypeBaseItem, Flag: uint32(t.ItemID)}
	}
}

// NewFlagKey builds the key of a location tracked by the collection flag
// store. Grotto flags store the grotto id where other scenes store the setup.
func NewFlagKey(f xflags.Flag) Key {
	setup := f.Setup
	if f.Scene == xflags.GrottoScene {
		setup = f.Grotto
	}
	return Key{
		Scene: f.Scene,
		Type:  TypeNewFlag,
		Flag:  uint32(f.Room)<<24 | uint32(setup)<<16 | uint32(f.Actor)<<8 | uint32(f.Subflag),
	}
}

// XFlag is the inverse of NewFlagKey. It is only meaningful for keys of
// TypeNewFlag.
func (k Key) XFlag() xflags.Flag {
	f := xflags.Flag{
		Scene:   k.Scene,
		Room:    uint8(k.Flag >> 24),
		Actor:   uint8(k.Flag >> 8),
		Subflag: uint8(k.Flag),
	}
	if k.Scene == xflags.GrottoScene {
		f.Grotto = uint8(k.Flag >> 16)
	} else {
		f.Setup = uint8(k.Flag >> 16)
	}
	return f
}

// DelayedKey is the key of an item granted later by a scripted event rather
// than by a physical location.
func DelayedKey(flag uint32) Key {
	return Key{Scene: SceneDelayed, Type: TypeDelayed, Flag: flag}
}

// IncomingKey is the key of the count-th item received from another player.
func IncomingKey(count uint32) Key {
	return Key{Scene: SceneDelayed, Type: TypeIncoming, Flag: count}
}
