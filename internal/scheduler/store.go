package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// LastRunStore remembers the start of the period in which a job last ran.
type LastRunStore interface {
	LastRun(ctx context.Context, job string) (time.Time, bool, error)
	SetLastRun(ctx context.Context, job string, periodStart time.Time) error
}

const redisKeyPrefix = "levelup:scheduler:lastrun:"

type RedisLastRunStore struct {
	rdb *redis.Client
}

func NewRedisLastRunStore(rdb *redis.Client) *RedisLastRunStore {
	return &RedisLastRunStore{
		rdb: rdb,
	}
}

func (s *RedisLastRunStore) LastRun(ctx context.Context, job string) (time.Time, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+job).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get last run of %s: %w", job, err)
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse last run of %s [%s]: %w", job, raw, err)
	}
	return t, true, nil
}

func (s *RedisLastRunStore) SetLastRun(ctx context.Context, job string, periodStart time.Time) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+job, periodStart.Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("set last run of %s: %w", job, err)
	}
	return nil
}

type MemoryLastRunStore struct {
	mu   sync.Mutex
	runs map[string]time.Time
}

func NewMemoryLastRunStore() *MemoryLastRunStore {
	return &MemoryLastRunStore{
		runs: make(map[string]time.Time),
	}
}

func (s *MemoryLastRunStore) LastRun(_ context.Context, job string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.runs[job]
	return t, ok, nil
}

func (s *MemoryLastRunStore) SetLastRun(_ context.Context, job string, periodStart time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[job] = periodStart
	return nil
}
