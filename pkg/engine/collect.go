package engine

import (
	"fmt"

	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// ActorRef identifies one live actor instance of the host.
type ActorRef uint32

// MutexTimeout is the number of frames a freestanding pickup may hold the
// collectible mutex without a message box appearing.
const MutexTimeout = 20

// collectibleMutex allows one freestanding pickup at a time to use the
// shared message box.
type collectibleMutex struct {
	holder ActorRef
	held   bool
	sawBox bool
	frames int
}

func (m *collectibleMutex) acquire(ref ActorRef) bool {
	if m.held && m.holder != ref {
		return false
	}
	*m = collectibleMutex{holder: ref, held: true}
	return true
}

func (m *collectibleMutex) release() {
	*m = collectibleMutex{}
}

// tick advances the mutex by one frame and reports whether it was released.
func (m *collectibleMutex) tick(messageBoxOpen bool) bool {
	if !m.held {
		return false
	}
	m.frames++
	if messageBoxOpen {
		m.sawBox = true
		return false
	}
	if m.sawBox || m.frames >= MutexTimeout {
		m.release()
		return true
	}
	return false
}

// CollectStatus is the outcome of a collection attempt.
type CollectStatus int

const (
	// Vanilla means no override exists and the host keeps its own behaviour.
	Vanilla CollectStatus = iota
	AlreadyCollected
	// Busy means another pickup holds the collectible mutex; retry later.
	Busy
	Given
)

func (s CollectStatus) String() string {
	switch s {
	case Vanilla:
		return "vanilla"
	case AlreadyCollected:
		return "already_collected"
	case Busy:
		return "busy"
	case Given:
		return "given"
	}
	return "unknown"
}

func (s CollectStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CollectStatus) UnmarshalText(b []byte) error {
	for c := Vanilla; c <= Given; c++ {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown collect status %q", b)
}

// CollectResult reports what a collection attempt did.
type CollectResult struct {
	Status     CollectStatus `json:"status"`
	Key        override.Key  `json:"key"`
	Active     Active        `json:"active"`
	Dispatched Dispatched    `json:"dispatched"`
}

// Collect runs the full pipeline for a trigger: key derivation, alternate
// resolution, lookup, collection check, activation, dispatch and marking
// the location collected.
func (e *Engine) Collect(ref ActorRef, t override.Trigger) CollectResult {
	return e.collectKey(ref, override.SearchKey(t))
}

// CollectNewFlag is Collect for locations tracked by the collection flag
// index, such as pots and crates.
func (e *Engine) CollectNewFlag(ref ActorRef, f xflags.Flag) CollectResult {
	return e.collectKey(ref, override.NewFlagKey(f))
}

func (e *Engine) collectKey(ref ActorRef, key override.Key) CollectResult {
	res := CollectResult{Key: key}
	if key.IsZero() {
		return res
	}
	key = e.alts.Resolve(key)
	res.Key = key

	o := e.overrides.Lookup(key)
	if o.IsEmpty() {
		return res
	}
	if e.collected(key) {
		res.Status = AlreadyCollected
		return res
	}

	freestanding := key.Type == override.TypeCollectible || key.Type == override.TypeNewFlag
	if freestanding && !e.mutex.acquire(ref) {
		res.Status = Busy
		return res
	}

	res.Active = e.ActivateOverride(o)
	if res.Active.IsZero() {
		if freestanding {
			e.mutex.release()
		}
		return res
	}

	res.Dispatched = e.Dispatch()
	e.markCollected(key)
	res.Status = Given

	// plain collectibles never open a message box
	if freestanding && res.Active.row.Collectible && !res.Active.Outgoing {
		e.mutex.release()
	}
	return res
}

// MutexHolder returns the actor holding the collectible mutex.
func (e *Engine) MutexHolder() (ActorRef, bool) {
	return e.mutex.holder, e.mutex.held
}
