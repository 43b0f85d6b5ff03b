package engine

import (
	"github.com/jwebster45206/itemshuffle/pkg/override"
)

// Registers is the shared interface read and written by the multiworld
// plugin. OutgoingKey is the packed key of the head of the outgoing queue,
// 0 when nothing is being sent; it is always written after the value fields.
type Registers struct {
	OutgoingKey    uint64 `json:"outgoing_key"`
	OutgoingItem   uint16 `json:"outgoing_item"`
	OutgoingPlayer uint8  `json:"outgoing_player"`
	IncomingPlayer uint8  `json:"incoming_player"`
	IncomingItem   uint16 `json:"incoming_item"`
}

// Registers returns a snapshot of the interop registers.
func (e *Engine) Registers() Registers {
	return e.regs
}

// PushPendingItem queues an item for local delivery. Duplicate keys and
// pushes into a full queue are dropped.
func (e *Engine) PushPendingItem(o override.Override) bool {
	if !e.pending.Push(o) {
		e.logger.Debug("Pending item dropped", "key", o.Key.String())
		return false
	}
	return true
}

// PopPendingItem drops the oldest pending item.
func (e *Engine) PopPendingItem() {
	e.pending.Pop()
}

// PendingItems returns the pending queue, oldest first.
func (e *Engine) PendingItems() []override.Override {
	return e.pending.Items()
}

// PushDelayedItem queues the override placed on delayed location flag, if
// the seed has one.
func (e *Engine) PushDelayedItem(flag uint32) bool {
	o := e.LookupOverrideByKey(override.DelayedKey(flag))
	if o.IsEmpty() {
		return false
	}
	return e.PushPendingItem(o)
}

// PushOutgoing queues o for another player. When the head register is free
// o goes straight into it and the outgoing registers are published.
func (e *Engine) PushOutgoing(o override.Override) bool {
	_, busy := e.outgoing.Head()
	if !e.outgoing.Push(o) {
		e.logger.Warn("Outgoing queue full, item dropped",
			"key", o.Key.String(),
			"item", o.Value.Item,
			"player", o.Value.Player)
		return false
	}
	if !busy {
		e.publishOutgoing()
	}
	return true
}

// Outgoing returns the item currently being sent.
func (e *Engine) Outgoing() (override.Override, bool) {
	return e.outgoing.Head()
}

// OutgoingItems returns the head and the queued items.
func (e *Engine) OutgoingItems() []override.Override {
	return e.outgoing.Items()
}

// AckOutgoing retires the head once the plugin has picked it up and
// publishes the next item.
func (e *Engine) AckOutgoing() {
	e.outgoing.Advance()
	e.publishOutgoing()
}

func (e *Engine) publishOutgoing() {
	e.regs.OutgoingKey = 0
	head, ok := e.outgoing.Head()
	if !ok {
		e.regs.OutgoingItem = 0
		e.regs.OutgoingPlayer = 0
		return
	}
	e.regs.OutgoingItem = head.Value.Item
	e.regs.OutgoingPlayer = head.Value.Player
	e.regs.OutgoingKey = head.Key.Pack()
}

// SetIncoming writes the incoming register. The item is moved to the
// pending queue on the next frame.
func (e *Engine) SetIncoming(player uint8, item uint16) {
	e.regs.IncomingItem = item
	e.regs.IncomingPlayer = player
}

// IncomingBusy reports whether the incoming register still holds an item.
func (e *Engine) IncomingBusy() bool {
	return e.regs.IncomingItem != 0
}

// takeIncoming moves the incoming register into the pending queue. The
// register is cleared only once the item is queued, so a rejected push
// retries on the next frame.
func (e *Engine) takeIncoming() bool {
	if e.regs.IncomingItem == 0 {
		return false
	}

	x := &e.file.Extended
	o := override.Override{
		Key: override.IncomingKey(uint32(x.InternalCount)),
		Value: override.Value{
			Item:   e.regs.IncomingItem,
			Player: e.settings.LocalPlayer,
		},
	}
	if !e.pending.Push(o) {
		return false
	}

	e.logger.Debug("Incoming item queued",
		"item", o.Value.Item,
		"from_player", e.regs.IncomingPlayer,
		"internal_count", x.InternalCount)
	x.InternalCount++
	e.clearIncoming()
	return true
}

func (e *Engine) clearIncoming() {
	e.regs.IncomingPlayer = 0
	e.regs.IncomingItem = 0
}
