package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dealerpulse/internal/model"
)

// ScorecardCache caches assembled scorecards so dashboard polling does not
// hit Mongo on every request.
type ScorecardCache interface {
	Set(ctx context.Context, assessmentID string, scorecard *model.Scorecard) error
	Get(ctx context.Context, assessmentID string) (*model.Scorecard, error)
	Invalidate(ctx context.Context, assessmentID string) error
}

type scorecardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScorecardCache creates a scorecard cache with a 24h TTL.
func NewScorecardCache(client *redis.Client) ScorecardCache {
	return &scorecardCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *scorecardCache) key(assessmentID string) string {
	return fmt.Sprintf("assessment:%s:scorecard", assessmentID)
}

func (c *scorecardCache) Set(ctx context.Context, assessmentID string, scorecard *model.Scorecard) error {
	data, err := json.Marshal(scorecard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(assessmentID), data, c.ttl).Err()
}

func (c *scorecardCache) Get(ctx context.Context, assessmentID string) (*model.Scorecard, error) {
	data, err := c.client.Get(ctx, c.key(assessmentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var scorecard model.Scorecard
	if err := json.Unmarshal([]byte(data), &scorecard); err != nil {
		return nil, err
	}
	return &scorecard, nil
}

func (c *scorecardCache) Invalidate(ctx context.Context, assessmentID string) error {
	return c.client.Del(ctx, c.key(assessmentID)).Err()
}
