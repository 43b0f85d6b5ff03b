// Package xflags tracks collection of locations the base game has no flag
// for, such as pots, crates and freestanding pickups. Locations are addressed
// by scene, room, setup (or grotto id), actor index and subflag and map onto
// bits of a flat array that lives in the save file.
package xflags

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrBadAsset = errors.New("malformed collection flag asset")

const (
	assetMagic   = "XFLG"
	assetVersion = 1

	headerSize = 12

	// NoEntry marks a scene without directory entries.
	NoEntry uint16 = 0xFFFF

	// GrottoScene uses two-byte room/grotto directory entries.
	GrottoScene uint8 = 0x3E
)

// Flag addresses one collectible location. In the grotto scene Grotto
// carries the grotto id and Setup is ignored.
type Flag struct {
	Scene   uint8 `json:"scene" yaml:"scene"`
	Room    uint8 `json:"room" yaml:"room"`
	Setup   uint8 `json:"setup,omitempty" yaml:"setup,omitempty"`
	Grotto  uint8 `json:"grotto,omitempty" yaml:"grotto,omitempty"`
	Actor   uint8 `json:"actor" yaml:"actor"`
	Subflag uint8 `json:"subflag,omitempty" yaml:"subflag,omitempty"`
}

// roomKey is the composite scene/room/setup value the decode cache is keyed on.
func (f Flag) roomKey() uint32 {
	if f.Scene == GrottoScene {
		return uint32(f.Scene)<<16 | uint32(f.Grotto)<<8 | uint32(f.Room)
	}
	return uint32(f.Scene)<<16 | uint32(f.Setup)<<8 | uint32(f.Room)
}

// Index is the parsed, still compressed, collection flag asset.
type Index struct {
	sceneTable []uint16
	directory  []byte
	blob       []byte
	totalBits  uint32
}

// ParseIndex validates the asset header and section lengths. Room records are
// decoded lazily by the Store.
func ParseIndex(data []byte) (*Index, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: short header", ErrBadAsset)
	}
	if string(data[0:4]) != assetMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadAsset, data[0:4])
	}
	if data[4] != assetVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadAsset, data[4])
	}

	sceneCount := int(binary.BigEndian.Uint16(data[6:8]))
	totalBits := binary.BigEndian.Uint32(data[8:12])

	p := headerSize
	if len(data) < p+2*sceneCount+4 {
		return nil, fmt.Errorf("%w: truncated scene table", ErrBadAsset)
	}
	sceneTable := make([]uint16, sceneCount)
	for i := range sceneTable {
		sceneTable[i] = binary.BigEndian.Uint16(data[p:])
		p += 2
	}

	dirLen := int(binary.BigEndian.Uint32(data[p:]))
	p += 4
	if len(data) < p+dirLen+4 {
		return nil, fmt.Errorf("%w: truncated directory", ErrBadAsset)
	}
	directory := data[p : p+dirLen]
	p += dirLen

	blobLen := int(binary.BigEndian.Uint32(data[p:]))
	p += 4
	if len(data) < p+blobLen {
		return nil, fmt.Errorf("%w: truncated room blob", ErrBadAsset)
	}
	blob := data[p : p+blobLen]

	for scene, offs := range sceneTable {
		if offs != NoEntry && int(offs) >= len(directory) {
			return nil, fmt.Errorf("%w: scene %#02x directory offset %#x out of range", ErrBadAsset, scene, offs)
		}
	}

	return &Index{
		sceneTable: sceneTable,
		directory:  directory,
		blob:       blob,
		totalBits:  totalBits,
	}, nil
}

// TotalBits is the number of flags tracked by the asset.
func (ix *Index) TotalBits() uint32 {
	if ix == nil {
		return 0
	}
	return ix.totalBits
}

// ByteLen is the size of the bit array needed to hold every flag.
func (ix *Index) ByteLen() int {
	return int((ix.TotalBits() + 7) / 8)
}

// findRoom scans the scene's directory for the room/setup (or room/grotto)
// pair and returns the blob offset of its record.
func (ix *Index) findRoom(f Flag) (uint16, bool) {
	if int(f.Scene) >= len(ix.sceneTable) {
		return 0, false
	}
	offs := ix.sceneTable[f.Scene]
	if offs == NoEntry {
		return 0, false
	}
	// Regular entries pack room and setup into one byte.
	if f.Scene != GrottoScene && (f.Room > 0x3F || f.Setup > 0x03) {
		return 0, false
	}

	dir := ix.directory[offs:]
	count := int(dir[0])
	dir = dir[1:]

	entrySize := 3
	if f.Scene == GrottoScene {
		entrySize = 4
	}

	for i := 0; i < count; i++ {
		if len(dir) < entrySize {
			return 0, false
		}
		var match bool
		if f.Scene == GrottoScene {
			match = dir[0] == f.Room && dir[1] == f.Grotto
		} else {
			match = dir[0] == packRoomSetup(f.Room, f.Setup)
		}
		if match {
			return binary.BigEndian.Uint16(dir[entrySize-2:]), true
		}
		dir = dir[entrySize:]
	}
	return 0, false
}

// decodeRoom expands the run-length-coded actor table of one room into out.
// Entry i of out is 0 when actor i owns no bits, else its bit offset + 1.
func (ix *Index) decodeRoom(blobOffset uint16, out *[256]uint16) (base uint32, ok bool) {
	*out = [256]uint16{}

	rec := ix.blob
	if int(blobOffset)+3 > len(rec) {
		return 0, false
	}
	rec = rec[blobOffset:]

	base = uint32(binary.BigEndian.Uint16(rec))
	runs := int(rec[2])
	rec = rec[3:]
	if len(rec) < 3*runs {
		return 0, false
	}

	var bit uint16
	for r := 0; r < runs; r++ {
		start, length, width := int(rec[0]), int(rec[1]), uint16(rec[2])
		rec = rec[3:]
		for a := start; a < start+length && a < len(out); a++ {
			out[a] = bit + 1
			bit += width
		}
	}
	return base, true
}

// widthAt reports how many bits actor owns in the room record at blobOffset.
func (ix *Index) widthAt(blobOffset uint16, actor uint8) uint8 {
	rec := ix.blob[blobOffset:]
	runs := int(rec[2])
	rec = rec[3:]
	for r := 0; r < runs && len(rec) >= 3; r++ {
		start, length, width := rec[0], rec[1], rec[2]
		if actor >= start && int(actor) < int(start)+int(length) {
			return width
		}
		rec = rec[3:]
	}
	return 0
}

func packRoomSetup(room, setup uint8) uint8 {
	return (setup&0x03)<<6 | room&0x3F
}
