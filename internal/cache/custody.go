// Package cache keeps rendered custody months in Redis. A nil client turns
// every call into a miss so the API keeps working without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/go-redis/redis/v8"

	"coparent/internal/config"
	"coparent/internal/model"
)

// View selects which rendering of a month is cached.
type View string

const (
	ViewMonth    View = "custody_opt"
	ViewHandoffs View = "handoff_only"
)

// NewRedisClient connects to Redis. It returns nil when no host is configured
// or the server does not answer a ping; callers treat nil as caching disabled.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) *redis.Client {
	if cfg.Host == "" {
		log.Info("redis disabled", slog.String("reason", "REDIS_HOST not set"))
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, caching disabled", slog.String("addr", client.Options().Addr), slog.Any("err", err))
		_ = client.Close()
		return nil
	}

	log.Info("redis connected", slog.String("addr", client.Options().Addr))
	return client
}

// CustodyCache stores custody months as JSON under per-family month keys.
type CustodyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCustodyCache(client *redis.Client, ttl time.Duration) *CustodyCache {
	return &CustodyCache{client: client, ttl: ttl}
}

// Key formats the Redis key for one family month, e.g.
// custody_opt:family:<id>:2024:03.
func Key(view View, familyID string, year int, month time.Month) string {
	return fmt.Sprintf("%s:family:%s:%d:%02d", view, familyID, year, int(month))
}

// Get returns the cached month. ok is false on a miss or when caching is disabled.
func (c *CustodyCache) Get(ctx context.Context, view View, familyID string, year int, month time.Month) (records []model.CustodyRecord, ok bool, err error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, Key(view, familyID, year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return records, true, nil
}

func (c *CustodyCache) Set(ctx context.Context, view View, familyID string, year int, month time.Month, records []model.CustodyRecord) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(view, familyID, year, month), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached view of the given months.
func (c *CustodyCache) Invalidate(ctx context.Context, familyID string, months ...time.Time) error {
	if c == nil || c.client == nil || len(months) == 0 {
		return nil
	}

	keys := make([]string, 0, 2*len(months))
	for _, m := range months {
		keys = append(keys,
			Key(ViewMonth, familyID, m.Year(), m.Month()),
			Key(ViewHandoffs, familyID, m.Year(), m.Month()),
		)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
