package upstream

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"projectview/internal/domain/project"
	"projectview/internal/domain/queue"
)

// maxCacheEntries bounds the store; the least recently used answer goes
// first once it is full.
const maxCacheEntries = 512

type Backend interface {
	project.Source
	queue.Source
}

// Cache keeps backend answers for a short TTL and coalesces identical
// in-flight requests. Cached values are shared between callers and must be
// treated as read-only.
type Cache struct {
	backend Backend
	store   *expirable.LRU[string, any] // nil when ttl <= 0
	group   singleflight.Group
}

func NewCache(backend Backend, ttl time.Duration) *Cache {
	c := &Cache{backend: backend}
	if ttl > 0 {
		c.store = expirable.NewLRU[string, any](maxCacheEntries, nil, ttl)
	}
	return c
}

func (c *Cache) ListProjects(ctx context.Context, p project.ListParams) (*project.Snapshot, error) {
	key := "projects|" + p.WorkspaceName + "|" + projectQuery(p).Encode()
	return cached(ctx, c, key, func(ctx context.Context) (*project.Snapshot, error) {
		return c.backend.ListProjects(ctx, p)
	})
}

func (c *Cache) ListProjectStatistics(ctx context.Context, p project.ListParams) (*project.Snapshot, error) {
	key := "project_stats|" + p.WorkspaceName + "|" + projectQuery(p).Encode()
	return cached(ctx, c, key, func(ctx context.Context) (*project.Snapshot, error) {
		return c.backend.ListProjectStatistics(ctx, p)
	})
}

func (c *Cache) GetAnnotationQueue(ctx context.Context, workspace, id string) (queue.AnnotationQueue, error) {
	key := "annotation_queue|" + workspace + "|" + id
	return cached(ctx, c, key, func(ctx context.Context) (queue.AnnotationQueue, error) {
		return c.backend.GetAnnotationQueue(ctx, workspace, id)
	})
}

func (c *Cache) ListTraces(ctx context.Context, p queue.ItemsParams) (*queue.ItemsPage, error) {
	key := "traces|" + p.WorkspaceName + "|" + itemsQuery(p).Encode()
	return cached(ctx, c, key, func(ctx context.Context) (*queue.ItemsPage, error) {
		return c.backend.ListTraces(ctx, p)
	})
}

func (c *Cache) ListThreads(ctx context.Context, p queue.ItemsParams) (*queue.ItemsPage, error) {
	key := "threads|" + p.WorkspaceName + "|" + itemsQuery(p).Encode()
	return cached(ctx, c, key, func(ctx context.Context) (*queue.ItemsPage, error) {
		return c.backend.ListThreads(ctx, p)
	})
}

func (c *Cache) get(key string) (any, bool) {
	if c.store == nil {
		return nil, false
	}
	return c.store.Get(key)
}

func (c *Cache) set(key string, v any) {
	if c.store == nil {
		return
	}
	c.store.Add(key, v)
}

// cached serves key from the cache or runs fetch once for all concurrent
// callers. The shared fetch is detached from the first caller's
// cancellation; each caller still stops waiting when its own ctx ends.
// Errors are not cached.
func cached[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		return v.(T), nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.set(key, v)
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
