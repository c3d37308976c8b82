// Package cache memoizes report payloads in Redis, keyed on a version
// counter that every appointment or product mutation bumps. Reports are
// recomputed at most once per collection version instead of on every
// request; a missing or unreachable Redis degrades to direct computation.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type Reports struct {
	rdb    *redis.Client
	logger *slog.Logger
	ttl    time.Duration
	prefix string
}

// NewReports returns a nil-safe cache; a nil rdb disables memoization.
func NewReports(rdb *redis.Client, logger *slog.Logger, ttl time.Duration) *Reports {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Reports{rdb: rdb, logger: logger, ttl: ttl, prefix: "reports"}
}

func (c *Reports) enabled() bool {
	return c != nil && c.rdb != nil
}

// Version returns the current collection version. Version 0 means either a
// fresh deployment or Redis being unavailable; both are safe to compute from.
func (c *Reports) Version(ctx context.Context) int64 {
	if !c.enabled() {
		return 0
	}
	v, err := c.rdb.Get(ctx, c.prefix+":version").Int64()
	if err != nil && err != redis.Nil {
		c.logger.Warn("reports cache version read failed", "err", err)
		return 0
	}
	return v
}

// Bump invalidates all cached reports by advancing the collection version.
// Called after every appointment or product mutation.
func (c *Reports) Bump(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, c.prefix+":version").Err(); err != nil {
		c.logger.Warn("reports cache bump failed", "err", err)
	}
}

// Get returns the cached payload for view/params at the given version, or
// false on miss.
func (c *Reports) Get(ctx context.Context, view, params string, version int64) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key(view, params, version)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("reports cache read failed", "err", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *Reports) Set(ctx context.Context, view, params string, version int64, payload []byte) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Set(ctx, c.key(view, params, version), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("reports cache write failed", "err", err)
	}
}

func (c *Reports) key(view, params string, version int64) string {
	return fmt.Sprintf("%s:%s:%s:v%d", c.prefix, view, params, version)
}
