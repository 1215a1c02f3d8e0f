// Package cache provides a Redis-backed cache for the latest rebalancing
// plan per client, read through by the plan-fetch endpoint.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// DefaultPlanTTL bounds how long a cached plan can be served without a
// database read
const DefaultPlanTTL = 15 * time.Minute

// PlanCache caches the latest plan per client
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache creates a PlanCache on an existing Redis client
func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = DefaultPlanTTL
	}
	return &PlanCache{client: client, ttl: ttl}
}

func planKey(clientID string) string {
	return "plan:latest:" + clientID
}

// SetLatest stores the plan as the latest for a client
func (c *PlanCache) SetLatest(ctx context.Context, clientID string, plan *models.RebalancingPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := c.client.Set(ctx, planKey(clientID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache plan for %s: %w", clientID, err)
	}
	return nil
}

// GetLatest retrieves the cached latest plan for a client. A cache miss
// returns (nil, false, nil).
func (c *PlanCache) GetLatest(ctx context.Context, clientID string) (*models.RebalancingPlan, bool, error) {
	data, err := c.client.Get(ctx, planKey(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached plan for %s: %w", clientID, err)
	}

	var plan models.RebalancingPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached plan for %s: %w", clientID, err)
	}
	return &plan, true, nil
}
