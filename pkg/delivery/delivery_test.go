package delivery

import (
	"testing"

	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ovr(flag uint32, item uint16) override.Override {
	return override.Override{
		Key:   override.Key{Scene: 0xFF, Type: override.TypeDelayed, Flag: flag},
		Value: override.Value{Item: item, Player: 2},
	}
}

func TestOutgoing_Order(t *testing.T) {
	var q Outgoing
	head := ovr(0, 0x01)
	a, b, c := ovr(1, 0x02), ovr(2, 0x03), ovr(3, 0x04)

	require.True(t, q.Push(head))
	got, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, head, got, "first push bypasses into the head")

	for _, o := range []override.Override{a, b, c} {
		require.True(t, q.Push(o))
	}
	assert.Equal(t, 4, q.Len())

	var drained []override.Override
	for {
		q.Advance()
		o, ok := q.Head()
		if !ok {
			break
		}
		drained = append(drained, o)
	}
	assert.Equal(t, []override.Override{a, b, c}, drained)
	assert.Zero(t, q.Len())
}

func TestOutgoing_Full(t *testing.T) {
	var q Outgoing
	for i := range OutgoingCapacity + 1 {
		require.True(t, q.Push(ovr(uint32(i), 1)))
	}
	assert.False(t, q.Push(ovr(100, 1)), "queue is full")
	assert.Equal(t, OutgoingCapacity+1, q.Len())

	items := q.Items()
	assert.Equal(t, uint32(0), items[0].Key.Flag)
	assert.Equal(t, uint32(OutgoingCapacity), items[len(items)-1].Key.Flag)
}

func TestPending_PushPop(t *testing.T) {
	var slots [PendingCapacity]override.Override
	p := NewPending(&slots)

	a, b, c, d := ovr(1, 1), ovr(2, 2), ovr(3, 3), ovr(4, 4)
	assert.True(t, p.Push(a))
	assert.True(t, p.Push(b))
	assert.False(t, p.Push(ovr(1, 9)), "duplicate key is rejected")
	assert.Equal(t, 2, p.Len())

	assert.True(t, p.Push(c))
	assert.False(t, p.Push(d), "full queue drops silently")
	assert.False(t, p.Push(override.Override{}))

	assert.Equal(t, a, p.Peek())
	p.Pop()
	assert.Equal(t, b, p.Peek())
	assert.Equal(t, []override.Override{b, c}, p.Items())
	assert.Equal(t, b, slots[0], "queue writes through to caller storage")

	p.Pop()
	p.Pop()
	assert.Zero(t, p.Len())
	assert.True(t, p.Peek().IsEmpty())
	p.Pop()
	assert.Zero(t, p.Len())
}

func TestGate(t *testing.T) {
	ready := Status{Scene: 0x55}
	busy := Status{Scene: 0x55, MessageBoxOpen: true}

	t.Run("opens on the sixth qualifying frame", func(t *testing.T) {
		var g Gate
		for i := 1; i < ReadyFrames; i++ {
			assert.False(t, g.Update(ready), "frame %d", i)
		}
		assert.True(t, g.Update(ready))
		assert.True(t, g.Update(ready), "stays open while qualifying")
	})

	t.Run("a disqualifying frame resets the count", func(t *testing.T) {
		var g Gate
		for range ReadyFrames - 1 {
			g.Update(ready)
		}
		assert.False(t, g.Update(busy))
		assert.Zero(t, g.Frames())
		for i := 1; i < ReadyFrames; i++ {
			assert.False(t, g.Update(ready))
		}
		assert.True(t, g.Update(ready))
	})

	t.Run("reset closes", func(t *testing.T) {
		var g Gate
		for range ReadyFrames {
			g.Update(ready)
		}
		require.True(t, g.Open())
		g.Reset()
		assert.False(t, g.Open())
	})
}

func TestStatus_Qualifies(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"idle", Status{}, true},
		{"paused", Status{Paused: true}, false},
		{"cutscene", Status{InCutscene: true}, false},
		{"shop", Status{InShop: true}, false},
		{"minigame", Status{InMinigame: true}, false},
		{"swimming", Status{Swimming: true}, false},
		{"getting item", Status{ReceivingItem: true}, false},
		{"dead", Status{Dead: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Qualifies())
		})
	}
}
