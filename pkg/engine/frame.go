package engine

import (
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/override"
)

// FrameResult reports what happened during one frame.
type FrameResult struct {
	GateOpen       bool       `json:"gate_open"`
	MutexReleased  bool       `json:"mutex_released,omitempty"`
	IncomingQueued bool       `json:"incoming_queued,omitempty"`
	IceTrap        bool       `json:"ice_trap,omitempty"`
	Delivered      *Delivered `json:"delivered,omitempty"`
	Warp           *Warp      `json:"warp,omitempty"`
}

// Delivered is a pending item handed to the player.
type Delivered struct {
	Active     Active     `json:"active"`
	Dispatched Dispatched `json:"dispatched"`
}

// Frame advances the engine by one frame given the sampled player status.
func (e *Engine) Frame(status delivery.Status) FrameResult {
	var res FrameResult

	res.GateOpen = e.gate.Update(status)
	res.MutexReleased = e.mutex.tick(status.MessageBoxOpen)
	res.IncomingQueued = e.takeIncoming()

	if res.GateOpen {
		x := &e.file.Extended
		switch {
		case x.PendingIceTraps > 0 && status.Scene != override.SceneTreasureBoxShop:
			x.PendingIceTraps--
			res.IceTrap = true
			e.gate.Reset()
		case !e.pending.Peek().IsEmpty():
			res.Delivered = e.deliverPending()
			e.gate.Reset()
		}
	}

	if e.warp != nil {
		res.Warp = e.warp
		e.warp = nil
	}
	return res
}

// deliverPending hands the oldest pending item over. Items received from
// other players are only given locally and never sent back out.
func (e *Engine) deliverPending() *Delivered {
	o := e.pending.Peek()
	e.pending.Pop()

	a := e.ActivateOverride(o)
	if a.IsZero() {
		return nil
	}
	if o.Key.Type != override.TypeIncoming {
		return &Delivered{Active: a, Dispatched: e.Dispatch()}
	}

	var d Dispatched
	e.giveLocal(a, &d)
	return &Delivered{Active: a, Dispatched: d}
}
