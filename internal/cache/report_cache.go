package cache

import (
	"context"
	"encoding/json"
	"time"

	"assessment-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// ReportCache keeps evaluated score reports close to the API. Reports are
// immutable once written, so a cache hit never serves stale data.
type ReportCache interface {
	Set(ctx context.Context, sessionID string, report *models.ScoreReport) error
	Get(ctx context.Context, sessionID string) (*models.ScoreReport, error)
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *reportCache) Set(ctx context.Context, sessionID string, report *models.ScoreReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "report:"+sessionID, data, c.ttl).Err()
}

func (c *reportCache) Get(ctx context.Context, sessionID string) (*models.ScoreReport, error) {
	data, err := c.client.Get(ctx, "report:"+sessionID).Result()
	if err != nil {
		return nil, err
	}
	var report models.ScoreReport
	err = json.Unmarshal([]byte(data), &report)
	return &report, err
}
