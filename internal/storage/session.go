package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/itemshuffle/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const sessionIndexKey = "sessions"

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func sramKey(id uuid.UUID) string {
	return "sram:" + id.String()
}

// Session operations (Redis-backed)

// SaveSession writes the session metadata and its SRAM image in one
// transaction.
func (r *RedisStorage) SaveSession(ctx context.Context, rec *storage.SessionRecord) error {
	if rec == nil {
		return errors.New("session record cannot be nil")
	}

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("Failed to marshal session", "session_id", rec.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(rec.ID), data, r.ttl)
		pipe.Set(ctx, sramKey(rec.ID), rec.SRAM, r.ttl)
		pipe.SAdd(ctx, sessionIndexKey, rec.ID.String())
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save session", "session_id", rec.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns nil, nil when the session does not exist.
func (r *RedisStorage) LoadSession(ctx context.Context, id uuid.UUID) (*storage.SessionRecord, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Warn("Session not found", "session_id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var rec storage.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Error("Failed to unmarshal session", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	sram, err := r.client.Get(ctx, sramKey(id)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Error("Failed to load SRAM image", "session_id", id, "error", err)
		return nil, fmt.Errorf("failed to load sram: %w", err)
	}
	rec.SRAM = sram

	return &rec, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(id), sramKey(id))
		pipe.SRem(ctx, sessionIndexKey, id.String())
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete session", "session_id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListSessions returns the ids of every stored session. Ids whose records
// expired are dropped from the index on the way.
func (r *RedisStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	members, err := r.client.SMembers(ctx, sessionIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			r.logger.Warn("Invalid session id in index", "member", m)
			continue
		}
		n, err := r.client.Exists(ctx, sessionKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to list sessions: %w", err)
		}
		if n == 0 {
			r.client.SRem(ctx, sessionIndexKey, m)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
