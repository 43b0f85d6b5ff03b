package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/pkg/delivery"
	"github.com/jwebster45206/itemshuffle/pkg/engine"
	"github.com/jwebster45206/itemshuffle/pkg/items"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running itemshuffle API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	SeedOverride      string // If set, overrides the seed for all test cases
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

func (r *Runner) createRequest(suite TestSuite) session.CreateRequest {
	req := session.CreateRequest{
		SeedFile: suite.Seed,
		Slot:     suite.Slot,
		Room:     suite.Room,
		Player:   suite.Player,
	}
	if r.SeedOverride != "" {
		req.SeedFile = r.SeedOverride
	}
	return req
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout*time.Duration(len(suite.Steps)+1))
	defer cancel()

	snap, err := CreateSession(ctx, r.Client, r.BaseURL, r.createRequest(suite))
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = snap.ID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)

		var stepResult TestResult
		if step.Action == ActionReset {
			stepResult = r.resetSession(ctx, &result.Session, suite, step)
		} else {
			stepResult = r.executeStep(ctx, result.Session, step)
		}
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	if err := DeleteSession(ctx, r.Client, r.BaseURL, result.Session); err != nil {
		r.Logger("    failed to delete session %s: %v", result.Session, err)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

// resetSession replaces the session with a fresh one from the suite's seed
func (r *Runner) resetSession(ctx context.Context, id *uuid.UUID, suite TestSuite, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name, IsReset: true}

	if err := DeleteSession(ctx, r.Client, r.BaseURL, *id); err != nil {
		result.Error = fmt.Errorf("failed to delete session: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	snap, err := CreateSession(ctx, r.Client, r.BaseURL, r.createRequest(suite))
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	*id = snap.ID

	if err := checkExpectations(step.Expectations, outcome{}, snap); err != nil {
		result.Error = fmt.Errorf("reset expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// outcome is what a step's own response reported
type outcome struct {
	collect   *engine.CollectResult
	queued    *bool
	chest     *items.ChestType
	delivered []uint16
}

// executeStep performs the step and checks its expectations
func (r *Runner) executeStep(ctx context.Context, id uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}

	out, err := r.perform(ctx, id, step)
	if step.Expectations.Error != "" {
		var apiErr *APIError
		switch {
		case err == nil:
			result.Error = fmt.Errorf("expected error containing '%s', but the step succeeded", step.Expectations.Error)
		case !errors.As(err, &apiErr):
			result.Error = err
		case !strings.Contains(strings.ToLower(apiErr.Message), strings.ToLower(step.Expectations.Error)):
			result.Error = fmt.Errorf("expected error containing '%s', got %v", step.Expectations.Error, apiErr)
		default:
			result.Success = true
		}
		result.Duration = time.Since(start)
		return result
	}
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	snap, err := GetSession(ctx, r.Client, r.BaseURL, id)
	if err != nil {
		result.Error = fmt.Errorf("failed to get session after step: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	if err := checkExpectations(step.Expectations, out, snap); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) perform(ctx context.Context, id uuid.UUID, step TestStep) (outcome, error) {
	var out outcome

	switch step.Action {
	case ActionCollect:
		req := handlers.CollectRequest{Ref: engine.ActorRef(step.Ref), Trigger: step.Trigger, Flag: step.Flag}
		var res engine.CollectResult
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "collect", req, http.StatusOK, &res); err != nil {
			return out, err
		}
		out.collect = &res

	case ActionDelayed:
		req := handlers.CollectRequest{Delayed: step.Delayed}
		var res handlers.DelayedResponse
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "collect", req, http.StatusOK, &res); err != nil {
			return out, err
		}
		out.queued = &res.Queued

	case ActionFrames:
		statuses := make([]delivery.Status, max(step.Frames, 1))
		for i := range statuses {
			statuses[i] = delivery.Status{Scene: step.Scene}
		}
		var res handlers.FramesResponse
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "frames", handlers.FramesRequest{Frames: statuses}, http.StatusOK, &res); err != nil {
			return out, err
		}
		out.delivered = []uint16{}
		for _, f := range res.Results {
			if f.Delivered != nil {
				out.delivered = append(out.delivered, uint16(f.Delivered.Active.Item))
			}
		}

	case ActionChest:
		if step.Trigger == nil {
			return out, fmt.Errorf("chest step needs a trigger")
		}
		var res handlers.ChestResponse
		req := handlers.ChestRequest{Trigger: *step.Trigger, Vanilla: step.Vanilla}
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "chest", req, http.StatusOK, &res); err != nil {
			return out, err
		}
		out.chest = &res.ChestType

	case ActionSave:
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "save", nil, http.StatusNoContent, nil); err != nil {
			return out, err
		}

	case ActionSync:
		var res multiworld.SyncResult
		if err := PostAction(ctx, r.Client, r.BaseURL, id, "sync", nil, http.StatusOK, &res); err != nil {
			return out, err
		}

	default:
		return out, fmt.Errorf("unknown action %q", step.Action)
	}
	return out, nil
}

// checkExpectations validates the test expectations against the step outcome and the session
func checkExpectations(exp Expectations, out outcome, snap *session.Snapshot) error {
	if exp.Status != nil || exp.Item != nil || exp.Sent != nil {
		if out.collect == nil {
			return fmt.Errorf("collect expectations on a step that did not collect")
		}
		if exp.Status != nil && out.collect.Status.String() != *exp.Status {
			return fmt.Errorf("expected status %s, got %s", *exp.Status, out.collect.Status)
		}
		if exp.Item != nil && uint16(out.collect.Active.Item) != *exp.Item {
			return fmt.Errorf("expected item 0x%02X, got 0x%02X", *exp.Item, uint16(out.collect.Active.Item))
		}
		if exp.Sent != nil && out.collect.Dispatched.Sent != *exp.Sent {
			return fmt.Errorf("expected sent to be %t, got %t", *exp.Sent, out.collect.Dispatched.Sent)
		}
	}

	if exp.Queued != nil {
		if out.queued == nil || *out.queued != *exp.Queued {
			return fmt.Errorf("expected queued to be %t", *exp.Queued)
		}
	}

	if exp.ChestType != nil {
		if out.chest == nil || out.chest.String() != *exp.ChestType {
			return fmt.Errorf("expected chest type %s, got %v", *exp.ChestType, out.chest)
		}
	}

	if exp.Delivered != nil && !slices.Equal(exp.Delivered, out.delivered) {
		return fmt.Errorf("expected delivered items %v, got %v", exp.Delivered, out.delivered)
	}

	inv := snap.Inventory
	for _, item := range exp.Inventory {
		if !slices.Contains(inv.Items, item) {
			return fmt.Errorf("expected inventory to contain '%s', but it's missing. Actual inventory: %v", item, inv.Items)
		}
	}

	if exp.SkullTokens != nil && inv.SkullTokens != *exp.SkullTokens {
		return fmt.Errorf("expected skull_tokens to be %d, got %d", *exp.SkullTokens, inv.SkullTokens)
	}
	if exp.HeartPieces != nil && inv.HeartPieces != *exp.HeartPieces {
		return fmt.Errorf("expected heart_pieces to be %d, got %d", *exp.HeartPieces, inv.HeartPieces)
	}
	if exp.TriforcePieces != nil && inv.TriforcePieces != *exp.TriforcePieces {
		return fmt.Errorf("expected triforce_pieces to be %d, got %d", *exp.TriforcePieces, inv.TriforcePieces)
	}
	if exp.IceTraps != nil && inv.PendingIceTraps != *exp.IceTraps {
		return fmt.Errorf("expected ice_traps to be %d, got %d", *exp.IceTraps, inv.PendingIceTraps)
	}
	if exp.GameComplete != nil && inv.GameComplete != *exp.GameComplete {
		return fmt.Errorf("expected game_complete to be %t, got %t", *exp.GameComplete, inv.GameComplete)
	}
	if exp.Pending != nil && len(snap.Pending) != *exp.Pending {
		return fmt.Errorf("expected %d pending items, got %d", *exp.Pending, len(snap.Pending))
	}
	if exp.OutgoingEmpty != nil && (snap.Registers.OutgoingKey == 0) != *exp.OutgoingEmpty {
		return fmt.Errorf("expected outgoing_empty to be %t, register holds key %d", *exp.OutgoingEmpty, snap.Registers.OutgoingKey)
	}

	return nil
}
