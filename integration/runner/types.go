package runner

import (
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/pkg/items"
	"github.com/jwebster45206/itemshuffle/pkg/override"
	"github.com/jwebster45206/itemshuffle/pkg/xflags"
)

// Step actions
const (
	ActionCollect = "collect"
	ActionDelayed = "delayed"
	ActionFrames  = "frames"
	ActionChest   = "chest"
	ActionSave    = "save"
	ActionSync    = "sync"
	// ActionReset deletes the session and starts a fresh one from the seed
	ActionReset = "reset"
)

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name   string     `json:"name"`
	Seed   string     `json:"seed,omitempty"`   // Used for regular tests
	Slot   int        `json:"slot,omitempty"`   // Used for regular tests
	Room   string     `json:"room,omitempty"`   // Joins a multiworld room when set
	Player uint8      `json:"player,omitempty"` // Overrides the seed's local player
	Steps  []TestStep `json:"steps,omitempty"`  // Used for regular tests
	Cases  []string   `json:"cases,omitempty"`  // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single action against the session and its expected outcomes
type TestStep struct {
	Name   string `json:"name,omitempty"`
	Action string `json:"action"`

	Ref     uint32            `json:"ref,omitempty"`
	Trigger *override.Trigger `json:"trigger,omitempty"`
	Flag    *xflags.Flag      `json:"flag,omitempty"`
	Delayed *uint32           `json:"delayed,omitempty"`
	Frames  int               `json:"frames,omitempty"`
	Scene   uint8             `json:"scene,omitempty"`
	Vanilla items.ChestType   `json:"vanilla,omitempty"`

	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Step outcome
	Status    *string  `json:"status,omitempty"`     // Collect status
	Item      *uint16  `json:"item,omitempty"`       // Item the collect resolved to
	Sent      *bool    `json:"sent,omitempty"`       // Collect sent the item to another world
	Queued    *bool    `json:"queued,omitempty"`     // Delayed item was queued
	ChestType *string  `json:"chest_type,omitempty"` // Chest appearance
	Delivered []uint16 `json:"delivered,omitempty"`  // Items handed over during frames, in order
	Error     string   `json:"error,omitempty"`      // The API rejects the step with this message

	// Session properties - aligned with internal/session/session.go
	Inventory      []string `json:"inventory,omitempty"` // Items that must be owned (order independent)
	SkullTokens    *int16   `json:"skull_tokens,omitempty"`
	HeartPieces    *uint8   `json:"heart_pieces,omitempty"`
	TriforcePieces *uint16  `json:"triforce_pieces,omitempty"`
	IceTraps       *uint8   `json:"ice_traps,omitempty"`
	Pending        *int     `json:"pending,omitempty"`
	GameComplete   *bool    `json:"game_complete,omitempty"`
	OutgoingEmpty  *bool    `json:"outgoing_empty,omitempty"` // Outgoing register is free
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	IsReset  bool // True if this was a reset step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	Session  uuid.UUID // ID of the last session used for this test
}
