package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultFeedKey  = "levelup:notify:feed"
	DefaultBadgeKey = "levelup:notify:badge"
	// feed entries kept
	FeedSize = 50
)

type Store interface {
	Push(ctx context.Context, n Notification) error
	Latest(ctx context.Context, limit int) ([]Notification, error)
	SetBadge(ctx context.Context, n Notification) error
	// Badge returns false when no status was stored yet.
	Badge(ctx context.Context) (Notification, bool, error)
}

type RedisStore struct {
	rdb      *redis.Client
	feedKey  string
	badgeKey string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		rdb:      rdb,
		feedKey:  DefaultFeedKey,
		badgeKey: DefaultBadgeKey,
	}
}

// Push prepends to the feed and trims it to FeedSize entries.
func (s *RedisStore) Push(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, s.feedKey, raw)
	pipe.LTrim(ctx, s.feedKey, 0, FeedSize-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context, limit int) ([]Notification, error) {
	if limit <= 0 || limit > FeedSize {
		limit = FeedSize
	}

	entries, err := s.rdb.LRange(ctx, s.feedKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}

	feed := make([]Notification, 0, len(entries))
	for _, e := range entries {
		var n Notification
		if err := json.Unmarshal([]byte(e), &n); err != nil {
			return nil, fmt.Errorf("unmarshal notification: %w", err)
		}
		feed = append(feed, n)
	}
	return feed, nil
}

func (s *RedisStore) SetBadge(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal badge: %w", err)
	}
	return s.rdb.Set(ctx, s.badgeKey, raw, 0).Err()
}

func (s *RedisStore) Badge(ctx context.Context) (Notification, bool, error) {
	raw, err := s.rdb.Get(ctx, s.badgeKey).Result()
	if errors.Is(err, redis.Nil) {
		return Notification{}, false, nil
	}
	if err != nil {
		return Notification{}, false, fmt.Errorf("get badge: %w", err)
	}

	var n Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return Notification{}, false, fmt.Errorf("unmarshal badge: %w", err)
	}
	return n, true, nil
}

type MemoryStore struct {
	mu       sync.Mutex
	feed     []Notification
	badge    Notification
	hasBadge bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Push(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = append([]Notification{n}, s.feed...)
	if len(s.feed) > FeedSize {
		s.feed = s.feed[:FeedSize]
	}
	return nil
}

func (s *MemoryStore) Latest(_ context.Context, limit int) ([]Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.feed) {
		limit = len(s.feed)
	}
	return append([]Notification{}, s.feed[:limit]...), nil
}

func (s *MemoryStore) SetBadge(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.badge = n
	s.hasBadge = true
	return nil
}

func (s *MemoryStore) Badge(_ context.Context) (Notification, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.badge, s.hasBadge, nil
}
