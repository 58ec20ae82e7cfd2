// Package cache keeps rendered public portfolios in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-portfolio-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "portfolio:"

type portfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewPortfolioCache(client *redis.Client, ttl time.Duration) domain.PortfolioCache {
	return &portfolioCache{client: client, ttl: ttl}
}

func key(username string) string {
	return keyPrefix + username
}

// Get returns (nil, nil) on a miss.
func (c *portfolioCache) Get(ctx context.Context, username string) (*domain.PublicPortfolio, error) {
	raw, err := c.client.Get(ctx, key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", username, err)
	}

	var p domain.PublicPortfolio
	if err := json.Unmarshal(raw, &p); err != nil {
		// Stale shape from an older release; treat as a miss
		return nil, nil
	}
	return &p, nil
}

func (c *portfolioCache) Set(ctx context.Context, portfolio *domain.PublicPortfolio) error {
	raw, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key(portfolio.Username), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", portfolio.Username, err)
	}
	return nil
}

func (c *portfolioCache) Invalidate(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	if err := c.client.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", username, err)
	}
	return nil
}

// NoopCache is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*domain.PublicPortfolio, error) { return nil, nil }
func (NoopCache) Set(context.Context, *domain.PublicPortfolio) error           { return nil }
func (NoopCache) Invalidate(context.Context, string) error                     { return nil }
