package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrBadImage    = errors.New("malformed sram image")
	ErrSlotRange   = errors.New("save slot out of range")
	ErrFlagsLength = errors.New("collection flag length mismatch")
)

const (
	headerSize   = 0x20
	imageMagic   = "SHUF"
	imageVersion = 1
)

var (
	contextSize  = binary.Size(Context{})
	extendedSize = binary.Size(Extended{})
)

// LoadStatus reports how a slot was recovered.
type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadRecovered
	LoadErased
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadRecovered:
		return "recovered"
	case LoadErased:
		return "erased"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// SlotSize returns the encoded size of one slot, checksum included.
func SlotSize(flagBytes int) int {
	body := contextSize + extendedSize + flagBytes
	body += body & 1
	return body + 2
}

// Checksum is the wrapping sum of the slot's big-endian 16-bit words,
// excluding the trailing checksum word.
func Checksum(slot []byte) uint16 {
	var sum uint16
	for i := 0; i+1 < len(slot)-2; i += 2 {
		sum += binary.BigEndian.Uint16(slot[i:])
	}
	return sum
}

func verify(slot []byte) bool {
	return binary.BigEndian.Uint16(slot[len(slot)-2:]) == Checksum(slot)
}

// Encode writes f into a slot-sized buffer with a valid checksum.
func (f *File) Encode() []byte {
	var buf bytes.Buffer
	buf.Grow(SlotSize(len(f.Flags)))
	_ = binary.Write(&buf, binary.BigEndian, &f.Context)
	_ = binary.Write(&buf, binary.BigEndian, &f.Extended)
	buf.Write(f.Flags)
	if buf.Len()&1 != 0 {
		buf.WriteByte(0)
	}
	buf.Write([]byte{0, 0})

	slot := buf.Bytes()
	binary.BigEndian.PutUint16(slot[len(slot)-2:], Checksum(slot))
	return slot
}

// Decode parses a slot produced by Encode. The checksum is not verified.
func Decode(slot []byte, flagBytes int) (*File, error) {
	if len(slot) != SlotSize(flagBytes) {
		return nil, fmt.Errorf("%w: slot is %d bytes, want %d", ErrBadImage, len(slot), SlotSize(flagBytes))
	}

	f := &File{}
	r := bytes.NewReader(slot)
	if err := binary.Read(r, binary.BigEndian, &f.Context); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &f.Extended); err != nil {
		return nil, fmt.Errorf("decode extended save: %w", err)
	}
	off := contextSize + extendedSize
	f.Flags = append([]byte(nil), slot[off:off+flagBytes]...)
	return f, nil
}

// SRAM is a formatted save memory image holding SlotCount primary slots
// followed by the same number of backups.
type SRAM struct {
	data      []byte
	slots     int
	flagBytes int
	slotSize  int
}

// NewSRAM formats a new image with fresh files in every slot.
func NewSRAM(slots, flagBytes int) *SRAM {
	s := &SRAM{
		slots:     slots,
		flagBytes: flagBytes,
		slotSize:  SlotSize(flagBytes),
	}
	s.data = make([]byte, headerSize+2*slots*s.slotSize)
	copy(s.data, imageMagic)
	s.data[4] = imageVersion
	s.data[5] = uint8(slots)
	binary.BigEndian.PutUint32(s.data[8:], uint32(flagBytes))

	fresh := NewFile(flagBytes).Encode()
	for i := 0; i < slots; i++ {
		copy(s.primary(i), fresh)
		copy(s.backup(i), fresh)
	}
	return s
}

// OpenSRAM wraps an existing image. The image is copied.
func OpenSRAM(image []byte) (*SRAM, error) {
	if len(image) < headerSize || string(image[:4]) != imageMagic {
		return nil, fmt.Errorf("%w: bad header", ErrBadImage)
	}
	if image[4] != imageVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadImage, image[4])
	}

	s := &SRAM{
		slots:     int(image[5]),
		flagBytes: int(binary.BigEndian.Uint32(image[8:])),
	}
	s.slotSize = SlotSize(s.flagBytes)
	if want := headerSize + 2*s.slots*s.slotSize; len(image) != want {
		return nil, fmt.Errorf("%w: image is %d bytes, want %d", ErrBadImage, len(image), want)
	}
	s.data = append([]byte(nil), image...)
	return s, nil
}

// Bytes returns the raw image.
func (s *SRAM) Bytes() []byte {
	return s.data
}

func (s *SRAM) Slots() int {
	return s.slots
}

func (s *SRAM) FlagBytes() int {
	return s.flagBytes
}

func (s *SRAM) primary(slot int) []byte {
	off := headerSize + slot*s.slotSize
	return s.data[off : off+s.slotSize]
}

func (s *SRAM) backup(slot int) []byte {
	off := headerSize + (s.slots+slot)*s.slotSize
	return s.data[off : off+s.slotSize]
}

// Load verifies and decodes slot. A corrupt primary is restored from an
// intact backup; when both are corrupt the slot is erased to a fresh file.
func (s *SRAM) Load(slot int) (*File, LoadStatus, error) {
	if slot < 0 || slot >= s.slots {
		return nil, LoadOK, fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}

	status := LoadOK
	primary := s.primary(slot)
	if !verify(primary) {
		backup := s.backup(slot)
		if verify(backup) {
			copy(primary, backup)
			status = LoadRecovered
		} else {
			fresh := NewFile(s.flagBytes).Encode()
			copy(primary, fresh)
			copy(backup, fresh)
			status = LoadErased
		}
	}

	f, err := Decode(primary, s.flagBytes)
	if err != nil {
		return nil, status, err
	}
	return f, status, nil
}

// Write stores f in the primary slot and then in its backup.
func (s *SRAM) Write(slot int, f *File) error {
	if slot < 0 || slot >= s.slots {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	if len(f.Flags) != s.flagBytes {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrFlagsLength, len(f.Flags), s.flagBytes)
	}

	enc := f.Encode()
	copy(s.primary(slot), enc)
	copy(s.backup(slot), enc)
	return nil
}
