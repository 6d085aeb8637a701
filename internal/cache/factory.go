// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	RedisURL string
	// Prefix is the key prefix for Redis.
	Prefix string
	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration
	// CleanupInterval is the memory cache sweep interval.
	CleanupInterval time.Duration
}

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New creates the configured backend. It returns the backend name so the
// caller can log it. An unreachable Redis is an error; the caller decides
// whether to fall back to memory.
func New(cfg Config) (Cacher, string, error) {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if cfg.RedisURL != "" {
		opts := DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		opts.DefaultTTL = ttl
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		rc, err := NewRedisCache(opts)
		if err != nil {
			return nil, BackendRedis, fmt.Errorf("connecting to redis: %w", err)
		}
		return rc, BackendRedis, nil
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return NewMemoryCache(ttl, interval), BackendMemory, nil
}
