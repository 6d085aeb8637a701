// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process Cacher with per-entry expiry. It is the
// backend when no Redis URL is configured.
type MemoryCache struct {
	counters

	mu         sync.RWMutex
	entries    map[string]memoryEntry
	size       int64
	closed     bool
	defaultTTL time.Duration
	stopCh     chan struct{}
	now        func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a memory cache. A positive sweepInterval starts a
// goroutine that drops expired entries until Close.
func NewMemoryCache(defaultTTL, sweepInterval time.Duration) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
		now:        time.Now,
	}
	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}
	return c
}

// Get returns a copy of the cached value.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	closed := c.closed
	c.mu.RUnlock()

	switch {
	case closed:
		return nil, ErrCacheClosed
	case !ok || !c.now().Before(entry.expiresAt):
		c.misses.Add(1)
		return nil, ErrCacheMiss
	}
	c.hits.Add(1)
	return append([]byte(nil), entry.value...), nil
}

// Set stores a copy of value.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	entry := memoryEntry{value: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	c.size += int64(len(value)) - int64(len(c.entries[key].value))
	c.entries[key] = entry
	c.sets.Add(1)
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}
	c.remove(key)
	return nil
}

// Close stops the sweeper and rejects further calls.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.stopCh)
	}
	return nil
}

// Stats returns the counters with the live item count and byte size.
func (c *MemoryCache) Stats() Stats {
	s := c.snapshot()
	c.mu.RLock()
	s.Items = len(c.entries)
	s.Size = c.size
	c.mu.RUnlock()
	return s
}

// remove must be called with mu held.
func (c *MemoryCache) remove(key string) {
	if entry, ok := c.entries[key]; ok {
		c.size -= int64(len(entry.value))
		delete(c.entries, key)
	}
}

func (c *MemoryCache) sweep() {
	now := c.now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			c.remove(key)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
