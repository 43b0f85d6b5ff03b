package seed

import (
	"path/filepath"
	"testing"

	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/save"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "forest.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Forest Quick Check", s.Name)
	assert.Equal(t, "forest.yaml", s.FileName)
	assert.True(t, s.Settings.Multiworld)
	assert.Equal(t, engine.ChestsMatchesContents, s.Settings.ChestAppearance)
	require.Len(t, s.Overrides, 6)
	assert.Equal(t, override.Key{Scene: 0x55, Type: override.TypeChest, Flag: 1}, s.Overrides[0].Key)
	assert.Equal(t, uint16(items.ProgressiveHookshot), s.Overrides[0].Value.Item)
	assert.Equal(t, uint16(items.MirrorShield), s.Overrides[5].Value.LooksLike)
	require.Len(t, s.Rooms, 1)
	assert.Len(t, s.Rooms[0].Actors, 2)
	assert.Empty(t, s.Validate())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, s *Seed)
	}{
		{
			name: "defaults",
			yaml: "name: bare\n",
			check: func(t *testing.T, s *Seed) {
				assert.Equal(t, DefaultLocalPlayer, s.Settings.LocalPlayer)
				assert.Equal(t, engine.ChestsVanilla, s.Settings.ChestAppearance)
			},
		},
		{
			name:    "unknown field",
			yaml:    "name: x\nsetings: {}\n",
			wantErr: true,
		},
		{
			name:    "unknown key type",
			yaml:    "name: x\noverrides:\n  - key: {scene: 1, type: barrel, flag: 0}\n    value: {item: 1, player: 1}\n",
			wantErr: true,
		},
		{
			name: "explicit player kept",
			yaml: "name: x\nsettings: {local_player: 3}\n",
			check: func(t *testing.T, s *Seed) {
				assert.Equal(t, uint8(3), s.Settings.LocalPlayer)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "forest.yaml"))
	require.NoError(t, err)

	data, err := s.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: new_flag")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, s.Overrides, back.Overrides)
	assert.Equal(t, s.Alternates, back.Alternates)
	assert.Equal(t, s.Rooms, back.Rooms)
}

func TestCompile(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "forest.yaml"))
	require.NoError(t, err)

	cfg, err := s.Compile()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Overrides.Len())
	assert.Equal(t, 1, cfg.Alternates.Len())
	assert.Equal(t, uint32(2), cfg.FlagIndex.TotalBits())

	n, err := s.FlagBytes()
	require.NoError(t, err)
	assert.Equal(t, cfg.FlagIndex.ByteLen(), n)

	e, err := engine.New(cfg, save.NewFile(n))
	require.NoError(t, err)

	res := e.Collect(1, override.Trigger{Actor: 0x0146, Scene: 0x52, ItemID: 0x3F})
	assert.Equal(t, engine.Given, res.Status)
	assert.Equal(t, items.MagicMeter, res.Active.Item)

	res = e.CollectNewFlag(2, xflags.Flag{Scene: 0x51, Actor: 4})
	assert.Equal(t, engine.Given, res.Status)
	assert.Equal(t, items.PieceOfHeart, res.Active.Item)
}

func TestCompile_Errors(t *testing.T) {
	key := override.Key{Scene: 1, Type: override.TypeChest, Flag: 1}
	other := override.Key{Scene: 1, Type: override.TypeChest, Flag: 2}

	tests := []struct {
		name string
		seed Seed
	}{
		{
			name: "duplicate keys",
			seed: Seed{Overrides: []override.Override{
				{Key: key, Value: override.Value{Item: 1}},
				{Key: key, Value: override.Value{Item: 2}},
			}},
		},
		{
			name: "alternate cycle",
			seed: Seed{Alternates: []override.AltPair{
				{Alt: key, Primary: other},
				{Alt: other, Primary: key},
			}},
		},
		{
			name: "duplicate actor in room",
			seed: Seed{Rooms: []xflags.Room{{Scene: 1, Actors: []xflags.Actor{{Index: 2, Width: 1}, {Index: 2, Width: 1}}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.seed.Compile()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidate(t *testing.T) {
	key := override.Key{Scene: 1, Type: override.TypeChest, Flag: 1}

	s := &Seed{
		Settings: engine.Settings{
			ChestAppearance:    "sparkly",
			TriforceHunt:       true,
			MWProgressiveItems: true,
		},
		Overrides: []override.Override{
			{Key: key, Value: override.Value{Item: 0xFFF}},
			{Key: key, Value: override.Value{Item: 1, LooksLike: 0xFFE}},
			{Key: override.NewFlagKey(xflags.Flag{Scene: 0x51, Actor: 9}), Value: override.Value{Item: 1}},
			{Key: override.Key{Scene: 0x51, Type: override.TypeCollectible, Flag: 0x25}, Value: override.Value{Item: 1}},
			{Key: override.IncomingKey(0), Value: override.Value{Item: 1}},
		},
		Alternates: []override.AltPair{{Alt: override.Key{Scene: 2, Type: override.TypeChest}, Primary: override.Key{Scene: 3, Type: override.TypeChest}}},
		Rooms:      []xflags.Room{{Scene: 0x51, Actors: []xflags.Actor{{Index: 4, Width: 1}}}},
	}

	problems := s.Validate()
	assert.Contains(t, problems, "name is required")
	assert.Contains(t, problems, `settings.chest_appearance: unknown value "sparkly"`)
	assert.Contains(t, problems, "settings.triforce_goal must be set for a triforce hunt")
	assert.Contains(t, problems, "settings.mw_progressive_items requires multiworld")
	assert.Contains(t, problems, "overrides[0]: unknown item 0xfff")
	assert.Contains(t, problems, "overrides[1]: key chest@01:1 already used by overrides[0]")
	assert.Contains(t, problems, "overrides[1]: unknown looks_like item 0xffe")
	assert.Contains(t, problems, "overrides[2]: new_flag@51:900 is not tracked by any room")
	assert.Contains(t, problems, "overrides[3]: collectible@51:25 has no collected flag in the save file")
	assert.Contains(t, problems, "overrides[4]: incoming@ff:0 is reserved for received items")
	assert.Contains(t, problems, "alternates[0]: primary chest@03:0 has no override")
	assert.Len(t, problems, 11)
}
