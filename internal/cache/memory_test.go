// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want v", got)
	}

	// returned slice is a copy
	got[0] = 'x'
	again, _ := c.Get(ctx, "k")
	if string(again) != "v" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()

	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "short", []byte("v"), 10*time.Second)
	_ = c.Set(ctx, "default", []byte("v"), 0)

	now = now.Add(10 * time.Second)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired Get error = %v, want ErrCacheMiss", err)
	}
	if _, err := c.Get(ctx, "default"); err != nil {
		t.Errorf("default TTL entry expired early: %v", err)
	}

	c.sweep()
	if s := c.Stats(); s.Items != 1 || s.Size != 1 {
		t.Errorf("after sweep Items = %d, Size = %d, want 1 and 1", s.Items, s.Size)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, KeyCourses, []byte("12"), 0)
	_ = c.Set(ctx, KeyBlogPosts, []byte("345"), 0)

	if err := c.Delete(ctx, KeyCourses); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
	if _, err := c.Get(ctx, KeyCourses); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
	if _, err := c.Get(ctx, KeyBlogPosts); err != nil {
		t.Errorf("Delete removed unrelated key: %v", err)
	}
	if s := c.Stats(); s.Items != 1 || s.Size != 3 {
		t.Errorf("Items = %d, Size = %d, want 1 and 3", s.Items, s.Size)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if s := c.Stats(); s.HitRate != 0 {
		t.Errorf("empty HitRate = %v, want 0", s.HitRate)
	}

	_ = c.Set(ctx, "k", []byte("abc"), 0)
	_ = c.Set(ctx, "k", []byte("abcd"), 0)
	_, _ = c.Get(ctx, "k")
	_, _ = c.Get(ctx, "missing")

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.Sets != 2 {
		t.Errorf("Stats = %+v, want 1 hit, 1 miss, 2 sets", s)
	}
	if s.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", s.HitRate)
	}
	if s.Items != 1 || s.Size != 4 {
		t.Errorf("Items = %d, Size = %d, want 1 and 4", s.Items, s.Size)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Millisecond)
	_ = c.Close()
	_ = c.Close()

	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close = %v, want ErrCacheClosed", err)
	}
	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after Close = %v, want ErrCacheClosed", err)
	}
	if err := c.Delete(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Delete after Close = %v, want ErrCacheClosed", err)
	}
}
