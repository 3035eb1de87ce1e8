package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationLock admits at most one action-generation run per assessment at
// a time. It narrows the read-then-write race window; the unique index on
// the actions collection is the hard guarantee behind it.
type GenerationLock interface {
	TryAcquire(ctx context.Context, assessmentID string) (bool, error)
	Release(ctx context.Context, assessmentID string) error
}

type generationLock struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationLock creates a Redis-backed generation lock. The TTL bounds
// how long a crashed run can block regeneration.
func NewGenerationLock(client *redis.Client) GenerationLock {
	return &generationLock{
		client: client,
		ttl:    2 * time.Minute,
	}
}

func (l *generationLock) key(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:genlock", assessmentID)
}

func (l *generationLock) TryAcquire(ctx context.Context, assessmentID string) (bool, error) {
	return l.client.SetNX(ctx, l.key(assessmentID), "1", l.ttl).Result()
}

func (l *generationLock) Release(ctx context.Context, assessmentID string) error {
	return l.client.Del(ctx, l.key(assessmentID)).Err()
}
