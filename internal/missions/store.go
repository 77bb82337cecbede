package missions

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/2beens/levelup/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
)

// FlagStore persists the completion flag of every mission, keyed by mission id.
type FlagStore interface {
	Flags(ctx context.Context) (map[string]bool, error)
	SetFlag(ctx context.Context, missionID string, completed bool) error
	SetFlags(ctx context.Context, flags map[string]bool) error
}

const DefaultFlagsKey = "levelup:missions:completed"

// RedisFlagStore keeps all flags in a single redis hash ("1" completed, "0" not).
type RedisFlagStore struct {
	rdb *redis.Client
	key string
}

func NewRedisFlagStore(rdb *redis.Client, key string) *RedisFlagStore {
	if key == "" {
		key = DefaultFlagsKey
	}
	return &RedisFlagStore{
		rdb: rdb,
		key: key,
	}
}

func (s *RedisFlagStore) Flags(ctx context.Context) (_ map[string]bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.missions.flags")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	raw, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}

	flags := make(map[string]bool, len(raw))
	for id, v := range raw {
		flags[id] = v == "1"
	}
	return flags, nil
}

func (s *RedisFlagStore) SetFlag(ctx context.Context, missionID string, completed bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.missions.setflag")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := s.rdb.HSet(ctx, s.key, missionID, flagValue(completed)).Err(); err != nil {
		return fmt.Errorf("hset %s %s: %w", s.key, missionID, err)
	}
	return nil
}

// SetFlags writes all flags in one HSET, so a reset is applied atomically.
func (s *RedisFlagStore) SetFlags(ctx context.Context, flags map[string]bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redis.missions.setflags")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if len(flags) == 0 {
		return nil
	}

	ids := make([]string, 0, len(flags))
	for id := range flags {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	values := make([]interface{}, 0, 2*len(ids))
	for _, id := range ids {
		values = append(values, id, flagValue(flags[id]))
	}

	if err := s.rdb.HSet(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", s.key, err)
	}
	return nil
}

func flagValue(completed bool) string {
	if completed {
		return "1"
	}
	return "0"
}

// MemoryFlagStore is used when no redis is configured; flags do not survive restarts.
type MemoryFlagStore struct {
	mu    sync.Mutex
	flags map[string]bool
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{
		flags: make(map[string]bool),
	}
}

func (s *MemoryFlagStore) Flags(_ context.Context) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := make(map[string]bool, len(s.flags))
	for id, v := range s.flags {
		flags[id] = v
	}
	return flags, nil
}

func (s *MemoryFlagStore) SetFlag(_ context.Context, missionID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[missionID] = completed
	return nil
}

func (s *MemoryFlagStore) SetFlags(_ context.Context, flags map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range flags {
		s.flags[id] = v
	}
	return nil
}
