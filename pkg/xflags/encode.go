package xflags

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
)

// Actor lists how many subflags one actor of a room owns.
type Actor struct {
	Index uint8 `json:"index" yaml:"index"`
	Width uint8 `json:"width" yaml:"width"`
}

// Room describes the tracked actors of one scene/room/setup combination.
type Room struct {
	Scene  uint8   `json:"scene" yaml:"scene"`
	Room   uint8   `json:"room" yaml:"room"`
	Setup  uint8   `json:"setup,omitempty" yaml:"setup,omitempty"`
	Grotto uint8   `json:"grotto,omitempty" yaml:"grotto,omitempty"`
	Actors []Actor `json:"actors" yaml:"actors"`
}

func (r Room) bits() uint32 {
	var n uint32
	for _, a := range r.Actors {
		n += uint32(a.Width)
	}
	return n
}

type run struct {
	start, length, width uint8
}

func (r Room) runs() ([]run, error) {
	actors := slices.Clone(r.Actors)
	slices.SortFunc(actors, func(a, b Actor) int { return cmp.Compare(a.Index, b.Index) })

	var runs []run
	for i, a := range actors {
		if a.Width == 0 {
			continue
		}
		if i > 0 && actors[i-1].Index == a.Index {
			return nil, fmt.Errorf("scene %#02x room %d: actor %d listed twice", r.Scene, r.Room, a.Index)
		}
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if int(last.start)+int(last.length) == int(a.Index) && last.width == a.Width && last.length < 0xFF {
				last.length++
				continue
			}
		}
		runs = append(runs, run{start: a.Index, length: 1, width: a.Width})
	}
	if len(runs) > 0xFF {
		return nil, fmt.Errorf("scene %#02x room %d: too many runs (%d)", r.Scene, r.Room, len(runs))
	}
	return runs, nil
}

// Encode builds the binary collection flag asset for rooms. Bit offsets are
// assigned in scene/room/setup order.
func Encode(rooms []Room) ([]byte, error) {
	rooms = slices.Clone(rooms)
	slices.SortFunc(rooms, func(a, b Room) int { return cmp.Compare(a.roomKey(), b.roomKey()) })
	for k := 1; k < len(rooms); k++ {
		if rooms[k].roomKey() == rooms[k-1].roomKey() {
			return nil, fmt.Errorf("scene %#02x room %d listed twice", rooms[k].Scene, rooms[k].Room)
		}
	}

	sceneCount := 0
	for _, r := range rooms {
		if r.Scene != GrottoScene && (r.Room > 0x3F || r.Setup > 0x03) {
			return nil, fmt.Errorf("scene %#02x: room %d setup %d does not fit a packed directory entry", r.Scene, r.Room, r.Setup)
		}
		sceneCount = max(sceneCount, int(r.Scene)+1)
	}

	var (
		blob      bytes.Buffer
		directory bytes.Buffer
		base      uint32
	)
	sceneTable := make([]uint16, sceneCount)
	for i := range sceneTable {
		sceneTable[i] = NoEntry
	}

	for i := 0; i < len(rooms); {
		scene := rooms[i].Scene
		j := i
		for j < len(rooms) && rooms[j].Scene == scene {
			j++
		}
		if j-i > 0xFF {
			return nil, fmt.Errorf("scene %#02x: too many rooms (%d)", scene, j-i)
		}
		if directory.Len() >= int(NoEntry) {
			return nil, fmt.Errorf("directory exceeds %d bytes", NoEntry)
		}

		sceneTable[scene] = uint16(directory.Len())
		directory.WriteByte(uint8(j - i))

		for _, r := range rooms[i:j] {
			runs, err := r.runs()
			if err != nil {
				return nil, err
			}
			if blob.Len() > 0xFFFF || base > 0xFFFF {
				return nil, fmt.Errorf("room blob exceeds 16-bit addressing")
			}

			if scene == GrottoScene {
				directory.WriteByte(r.Room)
				directory.WriteByte(r.Grotto)
			} else {
				directory.WriteByte(packRoomSetup(r.Room, r.Setup))
			}
			_ = binary.Write(&directory, binary.BigEndian, uint16(blob.Len()))

			_ = binary.Write(&blob, binary.BigEndian, uint16(base))
			blob.WriteByte(uint8(len(runs)))
			for _, rn := range runs {
				blob.Write([]byte{rn.start, rn.length, rn.width})
			}
			base += r.bits()
		}
		i = j
	}

	var out bytes.Buffer
	out.WriteString(assetMagic)
	out.WriteByte(assetVersion)
	out.WriteByte(0)
	_ = binary.Write(&out, binary.BigEndian, uint16(sceneCount))
	_ = binary.Write(&out, binary.BigEndian, base)
	_ = binary.Write(&out, binary.BigEndian, sceneTable)
	_ = binary.Write(&out, binary.BigEndian, uint32(directory.Len()))
	out.Write(directory.Bytes())
	_ = binary.Write(&out, binary.BigEndian, uint32(blob.Len()))
	out.Write(blob.Bytes())
	return out.Bytes(), nil
}

func (r Room) roomKey() uint32 {
	return Flag{Scene: r.Scene, Room: r.Room, Setup: r.Setup, Grotto: r.Grotto}.roomKey()
}
