// Package delivery holds the small fixed-capacity queues items pass through
// on their way to and from the local player, and the readiness gate that
// paces local delivery.
package delivery

import "github.com/jwebster45206/itemshuffle/pkg/override"

const (
	PendingCapacity  = 3
	OutgoingCapacity = 8
)

// Pending is the incoming queue. Its storage is owned by the caller,
// normally the extended save, so queued items survive a save and reload.
type Pending struct {
	slots *[PendingCapacity]override.Override
}

func NewPending(slots *[PendingCapacity]override.Override) *Pending {
	return &Pending{slots: slots}
}

// Push appends o unless an entry with the same key is already queued or
// the queue is full. It reports whether o was queued.
func (p *Pending) Push(o override.Override) bool {
	if o.IsEmpty() {
		return false
	}
	for i := range p.slots {
		slot := &p.slots[i]
		if slot.IsEmpty() {
			*slot = o
			return true
		}
		if slot.Key == o.Key {
			return false
		}
	}
	return false
}

// Peek returns the oldest queued item, or the empty override.
func (p *Pending) Peek() override.Override {
	return p.slots[0]
}

// Pop drops the oldest item.
func (p *Pending) Pop() {
	copy(p.slots[:], p.slots[1:])
	p.slots[PendingCapacity-1] = override.Override{}
}

func (p *Pending) Len() int {
	n := 0
	for _, o := range p.slots {
		if o.IsEmpty() {
			break
		}
		n++
	}
	return n
}

// Items returns the queued items, oldest first.
func (p *Pending) Items() []override.Override {
	return append([]override.Override(nil), p.slots[:p.Len()]...)
}

// Outgoing queues items for other players. Head is the item currently being
// transmitted; it is filled directly when free.
type Outgoing struct {
	head    override.Override
	hasHead bool
	queue   [OutgoingCapacity]override.Override
	n       int
}

// Push places o in the head register when it is free, otherwise at the end
// of the queue. A full queue drops o and Push returns false.
func (q *Outgoing) Push(o override.Override) bool {
	if !q.hasHead {
		q.head, q.hasHead = o, true
		return true
	}
	if q.n == OutgoingCapacity {
		return false
	}
	q.queue[q.n] = o
	q.n++
	return true
}

// Head returns the item in transmission.
func (q *Outgoing) Head() (override.Override, bool) {
	return q.head, q.hasHead
}

// Advance retires the head and shifts the next queued item into it.
func (q *Outgoing) Advance() {
	if q.n == 0 {
		q.head, q.hasHead = override.Override{}, false
		return
	}
	q.head = q.queue[0]
	copy(q.queue[:], q.queue[1:q.n])
	q.n--
	q.queue[q.n] = override.Override{}
}

// Len counts the head and every queued item.
func (q *Outgoing) Len() int {
	if !q.hasHead {
		return 0
	}
	return 1 + q.n
}

// Items returns the head followed by the queued items.
func (q *Outgoing) Items() []override.Override {
	if !q.hasHead {
		return nil
	}
	return append([]override.Override{q.head}, q.queue[:q.n]...)
}
