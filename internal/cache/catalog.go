// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/olegiv/senatec-go/internal/model"
	"github.com/olegiv/senatec-go/internal/store"
)

// Listing cache keys.
const (
	KeyCourses      = "catalog:courses"
	KeyBlogPosts    = "catalog:blog_posts"
	KeyTestimonials = "catalog:testimonials"
)

// CatalogCache is a read-through cache in front of a store.Catalog.
// Listings are cached; single-record reads pass through. Course mutations
// drop the cached course listing once the write succeeds. Failed reads are
// never cached.
//
// Each key carries a generation that invalidate bumps. A fill stores its
// listing only if the generation it saw before reading the store is still
// current, so a read that raced a mutation cannot bring back the old list.
type CatalogCache struct {
	next         store.Catalog
	backend      Cacher
	courses      *TypedCache[[]model.Course]
	posts        *TypedCache[[]model.BlogPost]
	testimonials *TypedCache[[]model.Testimonial]
	logger       *slog.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

var _ store.Catalog = (*CatalogCache)(nil)

// NewCatalogCache wraps next with backend.
func NewCatalogCache(next store.Catalog, backend Cacher, logger *slog.Logger) *CatalogCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogCache{
		next:         next,
		backend:      backend,
		courses:      NewTypedCache[[]model.Course](backend, 0),
		posts:        NewTypedCache[[]model.BlogPost](backend, 0),
		testimonials: NewTypedCache[[]model.Testimonial](backend, 0),
		logger:       logger,
		generations:  make(map[string]uint64),
	}
}

// ListCourses returns the cached course listing.
func (c *CatalogCache) ListCourses(ctx context.Context) ([]model.Course, error) {
	return readThrough(ctx, c, c.courses, KeyCourses, c.next.ListCourses)
}

// GetCourse reads through to the store.
func (c *CatalogCache) GetCourse(ctx context.Context, id string) (model.Course, error) {
	return c.next.GetCourse(ctx, id)
}

// CreateCourse writes through and invalidates the course listing.
func (c *CatalogCache) CreateCourse(ctx context.Context, course model.Course) (model.Course, error) {
	created, err := c.next.CreateCourse(ctx, course)
	if err != nil {
		return created, err
	}
	c.invalidate(ctx, KeyCourses)
	return created, nil
}

// UpdateCourse writes through and invalidates the course listing.
func (c *CatalogCache) UpdateCourse(ctx context.Context, id string, patch store.CoursePatch) error {
	if err := c.next.UpdateCourse(ctx, id, patch); err != nil {
		return err
	}
	c.invalidate(ctx, KeyCourses)
	return nil
}

// DeleteCourse writes through and invalidates the course listing.
func (c *CatalogCache) DeleteCourse(ctx context.Context, id string) error {
	if err := c.next.DeleteCourse(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, KeyCourses)
	return nil
}

// ListPublishedBlogPosts returns the cached published posts.
func (c *CatalogCache) ListPublishedBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return readThrough(ctx, c, c.posts, KeyBlogPosts, c.next.ListPublishedBlogPosts)
}

// GetBlogPost reads through to the store.
func (c *CatalogCache) GetBlogPost(ctx context.Context, id string) (model.BlogPost, error) {
	return c.next.GetBlogPost(ctx, id)
}

// ListTestimonials returns the cached testimonials.
func (c *CatalogCache) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	return readThrough(ctx, c, c.testimonials, KeyTestimonials, c.next.ListTestimonials)
}

// Warm reloads every listing from the store and overwrites the cached
// copies, so visitors after a refresh never pay for the cold read. The
// first store error aborts the refresh and leaves older entries in place.
func (c *CatalogCache) Warm(ctx context.Context) error {
	courseGen := c.generation(KeyCourses)
	postGen := c.generation(KeyBlogPosts)
	testimonialGen := c.generation(KeyTestimonials)

	courses, err := c.next.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("loading courses: %w", err)
	}
	posts, err := c.next.ListPublishedBlogPosts(ctx)
	if err != nil {
		return fmt.Errorf("loading blog posts: %w", err)
	}
	testimonials, err := c.next.ListTestimonials(ctx)
	if err != nil {
		return fmt.Errorf("loading testimonials: %w", err)
	}

	return errors.Join(
		storeIfCurrent(ctx, c, c.courses, KeyCourses, courseGen, courses),
		storeIfCurrent(ctx, c, c.posts, KeyBlogPosts, postGen, posts),
		storeIfCurrent(ctx, c, c.testimonials, KeyTestimonials, testimonialGen, testimonials),
	)
}

func (c *CatalogCache) invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	c.generations[key]++
	c.mu.Unlock()

	if err := c.backend.Delete(ctx, key); err != nil {
		c.logger.Warn("failed to invalidate cache", "category", model.EventCategoryCache, "key", key, "error", err)
	}
}

func (c *CatalogCache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// readThrough returns the cached listing or loads it and stores it when no
// invalidation happened during the load.
func readThrough[T any](ctx context.Context, c *CatalogCache, tc *TypedCache[T], key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := tc.Get(ctx, key); ok {
		return value, nil
	}

	gen := c.generation(key)
	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := storeIfCurrent(ctx, c, tc, key, gen, value); err != nil {
		c.logger.Warn("failed to fill cache", "category", model.EventCategoryCache, "key", key, "error", err)
	}
	return value, nil
}

// storeIfCurrent writes value unless key was invalidated since gen was
// read. The lock is held across the write so an invalidation either sees
// the new entry and deletes it or bumps the generation first.
func storeIfCurrent[T any](ctx context.Context, c *CatalogCache, tc *TypedCache[T], key string, gen uint64, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		return nil
	}
	return tc.Set(ctx, key, value)
}
