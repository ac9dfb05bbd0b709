package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campusd/course-planner-api/internal/models"
	appErrors "github.com/campusd/course-planner-api/pkg/errors"
)

const scheduleKeyPrefix = "planner:schedule:"

// ScheduleStore persists schedule snapshots keyed by session id. Snapshots
// reference courses and sections by id only; the catalog itself is never
// duplicated into Redis. A nil client degrades to a no-op store so the
// planner keeps working in memory-only mode.
type ScheduleStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewScheduleStore constructs a schedule store. ttl <= 0 means snapshots
// never expire.
func NewScheduleStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ScheduleStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleStore{client: client, ttl: ttl, logger: logger}
}

// Save writes the snapshot for a session.
func (s *ScheduleStore) Save(ctx context.Context, sessionID string, snap models.ScheduleSnapshot) error {
	if s.client == nil {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal schedule snapshot: %w", err)
	}
	if err := s.client.Set(ctx, scheduleKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set schedule %s: %w", sessionID, err)
	}
	return nil
}

// Load reads the snapshot for a session. A missing key yields ErrCacheMiss.
func (s *ScheduleStore) Load(ctx context.Context, sessionID string) (models.ScheduleSnapshot, error) {
	var snap models.ScheduleSnapshot
	if s.client == nil {
		return snap, appErrors.ErrCacheMiss
	}
	raw, err := s.client.Get(ctx, scheduleKeyPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return snap, appErrors.ErrCacheMiss
		}
		return snap, fmt.Errorf("redis get schedule %s: %w", sessionID, err)
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal schedule snapshot %s: %w", sessionID, err)
	}
	return snap, nil
}

// Delete removes the snapshot for a session.
func (s *ScheduleStore) Delete(ctx context.Context, sessionID string) error {
	if s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, scheduleKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete schedule %s: %w", sessionID, err)
	}
	return nil
}
