package save

import (
	"testing"

	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFlagBytes = 37

func populatedFile() *File {
	f := NewFile(testFlagBytes)
	f.Context.Rupees = 123
	f.Context.Items[SlotBow] = 0x04
	f.Context.SetUpgrade(UpgradeQuiver, 2)
	f.Context.SetUpgrade(UpgradeWallet, 3)
	f.Context.SetChestFlag(0x55, 4)
	f.Context.DungeonKeys[3] = 2
	f.Extended.TriforcePieces = 7
	f.Extended.PendingItems[0] = override.Override{
		Key:   override.Key{Scene: 0xFF, Type: override.TypeDelayed, Flag: 1},
		Value: override.Value{Item: 0x35, Player: 2},
	}
	f.Flags[0] = 0x81
	f.Flags[testFlagBytes-1] = 0x40
	return f
}

func TestFile_EncodeDecode(t *testing.T) {
	f := populatedFile()
	enc := f.Encode()
	require.Len(t, enc, SlotSize(testFlagBytes))
	assert.Zero(t, len(enc)%2, "slot size must be even")
	assert.True(t, verify(enc))

	got, err := Decode(enc, testFlagBytes)
	require.NoError(t, err)
	assert.Equal(t, f, got)
	assert.Equal(t, uint8(2), got.Context.Upgrade(UpgradeQuiver))
	assert.Equal(t, uint8(3), got.Context.Upgrade(UpgradeWallet))
}

func TestChecksum_CoversFlags(t *testing.T) {
	f := populatedFile()
	enc := f.Encode()

	f.Flags[5] ^= 0x01
	assert.NotEqual(t, Checksum(enc), Checksum(f.Encode()))
}

func TestSRAM_LoadFresh(t *testing.T) {
	s := NewSRAM(2, testFlagBytes)
	f, status, err := s.Load(1)
	require.NoError(t, err)
	assert.Equal(t, LoadOK, status)
	assert.Equal(t, NewFile(testFlagBytes), f)
}

func TestSRAM_WriteAndReopen(t *testing.T) {
	s := NewSRAM(3, testFlagBytes)
	require.NoError(t, s.Write(2, populatedFile()))

	reopened, err := OpenSRAM(s.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Slots())
	assert.Equal(t, testFlagBytes, reopened.FlagBytes())

	f, status, err := reopened.Load(2)
	require.NoError(t, err)
	assert.Equal(t, LoadOK, status)
	assert.Equal(t, populatedFile(), f)
}

func TestSRAM_ChecksumFallback(t *testing.T) {
	s := NewSRAM(2, testFlagBytes)
	want := populatedFile()
	require.NoError(t, s.Write(0, want))

	// corrupt the primary's checksum word
	s.primary(0)[s.slotSize-1] ^= 0xFF
	require.False(t, verify(s.primary(0)))

	f, status, err := s.Load(0)
	require.NoError(t, err)
	assert.Equal(t, LoadRecovered, status)
	assert.Equal(t, want, f)
	assert.Equal(t, s.backup(0), s.primary(0), "primary must be rewritten from the backup")

	_, status, err = s.Load(0)
	require.NoError(t, err)
	assert.Equal(t, LoadOK, status)
}

func TestSRAM_BothCorruptErases(t *testing.T) {
	s := NewSRAM(2, testFlagBytes)
	require.NoError(t, s.Write(1, populatedFile()))

	s.primary(1)[10] ^= 0x01
	s.backup(1)[20] ^= 0x01

	f, status, err := s.Load(1)
	require.NoError(t, err)
	assert.Equal(t, LoadErased, status)
	assert.Equal(t, NewFile(testFlagBytes), f)
	assert.True(t, verify(s.primary(1)))
	assert.True(t, verify(s.backup(1)))
}

func TestSRAM_Errors(t *testing.T) {
	s := NewSRAM(1, testFlagBytes)

	_, _, err := s.Load(1)
	assert.ErrorIs(t, err, ErrSlotRange)

	assert.ErrorIs(t, s.Write(0, NewFile(testFlagBytes+1)), ErrFlagsLength)

	tests := []struct {
		name  string
		image []byte
	}{
		{"empty", nil},
		{"bad magic", append([]byte("NOPE"), s.Bytes()[4:]...)},
		{"truncated", s.Bytes()[:len(s.Bytes())-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OpenSRAM(tt.image)
			assert.ErrorIs(t, err, ErrBadImage)
		})
	}
}

func TestContext_Flags(t *testing.T) {
	var c Context
	c.SetChestFlag(0x10, 31)
	c.SetCollectFlag(0x51, 6)
	c.SetSkullFlag(3, 0x04)

	assert.True(t, c.ChestFlag(0x10, 31))
	assert.False(t, c.ChestFlag(0x10, 30))
	assert.True(t, c.CollectFlag(0x51, 6))
	assert.True(t, c.SkullFlag(3, 0x04))
	assert.False(t, c.SkullFlag(3, 0x02))

	// out of range scenes are never set
	c.SetChestFlag(0xFF, 1)
	assert.False(t, c.ChestFlag(0xFF, 1))
}

func TestFlagFits(t *testing.T) {
	tests := []struct {
		key  override.Key
		want bool
	}{
		{override.Key{Scene: 0x55, Type: override.TypeChest, Flag: 31}, true},
		{override.Key{Scene: SceneCount, Type: override.TypeChest, Flag: 1}, false},
		{override.Key{Scene: 0x51, Type: override.TypeCollectible, Flag: 6}, true},
		{override.Key{Scene: 0x51, Type: override.TypeCollectible, Flag: 0x25}, false},
		{override.Key{Scene: SkullSceneCount - 1, Type: override.TypeSkull, Flag: 0x80}, true},
		{override.Key{Scene: SkullSceneCount, Type: override.TypeSkull, Flag: 0x01}, false},
		{override.Key{Scene: 3, Type: override.TypeSkull, Flag: 0}, false},
		{override.Key{Scene: 3, Type: override.TypeSkull, Flag: 0x100}, false},
		{override.Key{Scene: 0x51, Type: override.TypeNewFlag, Flag: 0x900}, false},
		{override.DelayedKey(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, FlagFits(tt.key))
		})
	}
}
