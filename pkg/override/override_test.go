package override

import (
	"testing"

	"github.com/jwebster45206/itemshuffle/pkg/xflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOverrides() []Override {
	return []Override{
		{Key: Key{Scene: 0x55, Type: TypeChest, Flag: 0x01}, Value: Value{Item: 0x04, Player: 1}},
		{Key: Key{Scene: 0x00, Type: TypeSkull, Flag: 0x08}, Value: Value{Item: 0x42, Player: 2}},
		{Key: Key{Scene: 0x00, Type: TypeChest, Flag: 0x1F}, Value: Value{Item: 0x43, Player: 1, LooksLike: 0x15}},
		{Key: Key{Scene: 0x3E, Type: TypeBaseItem, Flag: 0x3E}, Value: Value{Item: 0x35, Player: 1}},
		{Key: Key{Scene: 0x00, Type: TypeChest, Flag: 0x02}, Value: Value{Item: 0x01, Player: 1}},
	}
}

func TestCompare_MatchesPack(t *testing.T) {
	keys := []Key{
		{Scene: 0, Type: TypeChest, Flag: 1},
		{Scene: 0, Type: TypeChest, Flag: 2},
		{Scene: 0, Type: TypeSkull, Flag: 0},
		{Scene: 1, Type: TypeBaseItem, Flag: 0xFFFFFFFF},
		{Scene: 0xFF, Type: TypeDelayed, Flag: 3},
	}
	for i := range keys {
		for j := range keys {
			want := Compare(keys[i], keys[j])
			var got int
			switch a, b := keys[i].Pack(), keys[j].Pack(); {
			case a < b:
				got = -1
			case a > b:
				got = 1
			}
			assert.Equal(t, want, got, "%s vs %s", keys[i], keys[j])
		}
		assert.Equal(t, keys[i], Unpack(keys[i].Pack()))
	}
}

func TestTable_Lookup(t *testing.T) {
	table, err := NewTable(sampleOverrides())
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	all := table.All()
	for i := 1; i < len(all); i++ {
		assert.Negative(t, Compare(all[i-1].Key, all[i].Key), "entries must be strictly ascending")
	}

	t.Run("every present key is found", func(t *testing.T) {
		for _, o := range sampleOverrides() {
			assert.Equal(t, o, table.Lookup(o.Key))
		}
	})

	t.Run("absent keys return the empty override", func(t *testing.T) {
		absent := []Key{
			{},
			{Scene: 0x00, Type: TypeChest, Flag: 0x03},
			{Scene: 0x00, Type: TypeCollectible, Flag: 0x02},
			{Scene: 0xFF, Type: TypeDelayed, Flag: 0},
			{Scene: 0x01, Type: TypeChest, Flag: 0x01},
		}
		for _, k := range absent {
			got := table.Lookup(k)
			assert.True(t, got.IsEmpty(), "lookup of %s returned %s", k, got)
		}
	})
}

func TestTable_EmptyTable(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)
	assert.True(t, table.Lookup(Key{Scene: 1, Type: TypeChest, Flag: 1}).IsEmpty())
}

func TestTable_DuplicateKey(t *testing.T) {
	overrides := append(sampleOverrides(), Override{
		Key:   Key{Scene: 0x55, Type: TypeChest, Flag: 0x01},
		Value: Value{Item: 0x05, Player: 1},
	})
	_, err := NewTable(overrides)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestTable_FromSentinel(t *testing.T) {
	overrides := sampleOverrides()
	stream := append(append([]Override{}, overrides[:2]...), Override{})
	stream = append(stream, overrides[2:]...)

	table, err := NewTableFromSentinel(stream)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.True(t, table.Lookup(overrides[3].Key).IsEmpty(), "entries after the sentinel are ignored")
}

func TestAltTable_Resolve(t *testing.T) {
	a := Key{Scene: 0x51, Type: TypeBaseItem, Flag: 0x3E}
	b := Key{Scene: 0x51, Type: TypeCollectible, Flag: 0x06}
	c := Key{Scene: 0x51, Type: TypeChest, Flag: 0x02}
	unrelated := Key{Scene: 0x10, Type: TypeChest, Flag: 0x00}

	alts, err := NewAltTable([]AltPair{
		{Alt: a, Primary: b},
		{Alt: b, Primary: c},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   Key
		want Key
	}{
		{"chain collapses", a, c},
		{"direct alternate", b, c},
		{"primary resolves to itself", c, c},
		{"unrelated key", unrelated, unrelated},
		{"zero key", Key{}, Key{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := alts.Resolve(tt.in)
			assert.Equal(t, tt.want, once)
			assert.Equal(t, once, alts.Resolve(once), "resolution must be idempotent")
		})
	}
}

func TestAltTable_Errors(t *testing.T) {
	a := Key{Scene: 1, Type: TypeChest, Flag: 1}
	b := Key{Scene: 1, Type: TypeChest, Flag: 2}
	c := Key{Scene: 1, Type: TypeChest, Flag: 3}

	_, err := NewAltTable([]AltPair{{Alt: a, Primary: b}, {Alt: b, Primary: c}, {Alt: c, Primary: a}})
	assert.ErrorIs(t, err, ErrAltCycle)

	_, err = NewAltTable([]AltPair{{Alt: a, Primary: b}, {Alt: a, Primary: c}})
	assert.Error(t, err)
}

func TestAltTable_Nil(t *testing.T) {
	var alts *AltTable
	k := Key{Scene: 2, Type: TypeSkull, Flag: 4}
	assert.Equal(t, k, alts.Resolve(k))
	assert.Zero(t, alts.Len())
}

func TestSearchKey(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		want    Key
	}{
		{
			name:    "chest uses low five bits",
			trigger: Trigger{Actor: ActorChest, Scene: 0x00, Params: 0x27E3},
			want:    Key{Scene: 0x00, Type: TypeChest, Flag: 0x03},
		},
		{
			name:    "treasure box shop winner rupee is excluded",
			trigger: Trigger{Actor: ActorChest, Scene: SceneTreasureBoxShop, Params: winnerRupee<<5 | 0x0A},
			want:    Key{},
		},
		{
			name:    "other treasure box shop chests are shuffled",
			trigger: Trigger{Actor: ActorChest, Scene: SceneTreasureBoxShop, Params: 0x71<<5 | 0x0A},
			want:    Key{Scene: SceneTreasureBoxShop, Type: TypeChest, Flag: 0x0A},
		},
		{
			name:    "collectible flag",
			trigger: Trigger{Actor: ActorCollectible, Scene: 0x51, Params: 0x0611},
			want:    Key{Scene: 0x51, Type: TypeCollectible, Flag: 0x06},
		},
		{
			name:    "skull token encodes its own scene",
			trigger: Trigger{Actor: ActorSkullToken, Scene: 0x55, Params: 0x0304},
			want:    Key{Scene: 0x03, Type: TypeSkull, Flag: 0x04},
		},
		{
			name:    "grotto salesman uses respawn scene",
			trigger: Trigger{Actor: ActorGrottoSalesman, Scene: SceneGrottos, RespawnScene: 0x5B, ItemID: 0x30},
			want:    Key{Scene: 0x5B, Type: TypeGrottoScrub, Flag: 0x30},
		},
		{
			name:    "salesman outside grottos is a base item",
			trigger: Trigger{Actor: ActorGrottoSalesman, Scene: 0x52, ItemID: 0x30},
			want:    Key{Scene: 0x52, Type: TypeBaseItem, Flag: 0x30},
		},
		{
			name:    "npc gift",
			trigger: Trigger{Actor: 0x0146, Scene: 0x55, ItemID: 0x3E},
			want:    Key{Scene: 0x55, Type: TypeBaseItem, Flag: 0x3E},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchKey(tt.trigger))
		})
	}
}

func TestNewFlagKey_RoundTrip(t *testing.T) {
	flags := []xflags.Flag{
		{Scene: 0x55, Room: 3, Setup: 2, Actor: 17, Subflag: 1},
		{Scene: xflags.GrottoScene, Room: 0, Grotto: 0x1C, Actor: 4},
	}
	for _, f := range flags {
		k := NewFlagKey(f)
		assert.Equal(t, TypeNewFlag, k.Type)
		assert.Equal(t, f, k.XFlag())
	}
}

func TestIncomingKey_DistinctFromDelayed(t *testing.T) {
	for _, n := range []uint32{0, 0x40, 0xFFFF} {
		in := IncomingKey(n)
		assert.Equal(t, TypeIncoming, in.Type)
		assert.NotEqual(t, DelayedKey(n), in)
		assert.NotZero(t, Compare(DelayedKey(n), in))
		assert.Equal(t, in, Unpack(in.Pack()))
	}
	assert.Equal(t, "incoming@ff:40", IncomingKey(0x40).String())
}

func TestOverride_Binary(t *testing.T) {
	o := Override{
		Key:   Key{Scene: 0x3E, Type: TypeNewFlag, Flag: 0x01020304},
		Value: Value{Item: 0x0143, Player: 7, LooksLike: 0x0015},
	}
	b := o.AppendBinary(nil)
	require.Len(t, b, EncodedSize)
	assert.Equal(t, []byte{0x3E, byte(TypeNewFlag), 1, 2, 3, 4, 0x01, 0x43, 7, 0x00, 0x15}, b)
	assert.Equal(t, o, DecodeOverride(b))
}

func TestParseType(t *testing.T) {
	for typ, name := range typeNames {
		got, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, typ, got)
		assert.Equal(t, name, typ.String())
	}
	_, err := ParseType("pot")
	assert.Error(t, err)
}
