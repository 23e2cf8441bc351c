package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const reportSequenceKey = "labms:report_sequence"

// ReportNumberAllocator hands out the next report document id. Ids are of the
// form form_N with N strictly increasing; uniqueness under concurrent
// submissions comes from the allocator, not the store.
type ReportNumberAllocator interface {
	NextReportID(ctx context.Context) (string, error)
}

type redisAllocator struct {
	client *redis.Client
}

// NewRedisAllocator allocates report numbers with a Redis INCR counter.
func NewRedisAllocator(client *redis.Client) ReportNumberAllocator {
	return &redisAllocator{client: client}
}

func (a *redisAllocator) NextReportID(ctx context.Context) (string, error) {
	n, err := a.client.Incr(ctx, reportSequenceKey).Result()
	if err != nil {
		return "", fmt.Errorf("allocate report number: %w", err)
	}
	return fmt.Sprintf("form_%d", n), nil
}
