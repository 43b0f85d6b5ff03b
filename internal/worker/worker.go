// Package worker runs the multiworld relay loop of the server: on every
// tick it bridges each live multiworld session to its room.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL     = 10 * time.Second
	syncTimeout = 5 * time.Second
)

// releaseScript deletes the lock only if we own it.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Sessions is the set of live sessions the worker relays.
type Sessions interface {
	Live() []*session.Session
}

// TickResult summarizes one pass over the live sessions.
type TickResult struct {
	Synced   int
	Skipped  int
	Sent     int
	Received int
}

// Worker relays multiworld items for live sessions
type Worker struct {
	id          string
	sessions    Sessions
	redisClient *redis.Client
	interval    time.Duration
	log         *slog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a new worker instance
func New(sessions Sessions, redisClient *redis.Client, log *slog.Logger, workerID string, interval time.Duration) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	if workerID == "" {
		workerID = fmt.Sprintf("worker-%s", uuid.New().String()[:8])
	}

	return &Worker{
		id:          workerID,
		sessions:    sessions,
		redisClient: redisClient,
		interval:    interval,
		log:         log,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *Worker) ID() string {
	return w.id
}

// Start relays on every interval until Stop is called
func (w *Worker) Start() error {
	w.log.Info("Worker starting", "worker_id", w.id, "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.log.Info("Worker shutting down", "worker_id", w.id)
			return nil
		case <-ticker.C:
			if _, err := w.Tick(w.ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.log.Error("Error relaying items", "error", err, "worker_id", w.id)
			}
		}
	}
}

// Stop gracefully shuts down the worker
func (w *Worker) Stop() {
	w.log.Info("Worker stop requested", "worker_id", w.id)
	w.cancel()
}

// Tick syncs every live multiworld session once. Sessions locked by
// another worker are skipped. A failing session does not stop the others.
func (w *Worker) Tick(ctx context.Context) (TickResult, error) {
	var res TickResult
	var errs []error

	for _, s := range w.sessions.Live() {
		if !s.Multiworld() {
			continue
		}

		locked, err := w.acquireSessionLock(ctx, s.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to acquire relay lock: %w", err))
			continue
		}
		if !locked {
			w.log.Debug("Session locked by another worker", "worker_id", w.id, "session_id", s.ID.String())
			res.Skipped++
			continue
		}

		syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
		sync, err := s.Sync(syncCtx)
		cancel()
		w.releaseSessionLock(ctx, s.ID)

		if err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.ID, err))
			continue
		}
		res.Synced++
		res.Sent += sync.Sent
		if sync.Received {
			res.Received++
		}
		if sync.Sent > 0 || sync.Received {
			w.log.Debug("Items relayed",
				"worker_id", w.id,
				"session_id", s.ID.String(),
				"sent", sync.Sent,
				"received", sync.Received)
		}
	}
	return res, errors.Join(errs...)
}

func lockKey(id uuid.UUID) string {
	return fmt.Sprintf("relay-lock:%s", id.String())
}

// acquireSessionLock attempts to acquire the relay lock of a session
// Returns true if lock was acquired, false if already locked
func (w *Worker) acquireSessionLock(ctx context.Context, id uuid.UUID) (bool, error) {
	return w.redisClient.SetNX(ctx, lockKey(id), w.id, lockTTL).Result()
}

func (w *Worker) releaseSessionLock(ctx context.Context, id uuid.UUID) {
	if err := releaseScript.Run(ctx, w.redisClient, []string{lockKey(id)}, w.id).Err(); err != nil {
		w.log.Error("Failed to release relay lock", "error", err, "session_id", id.String())
	}
}
