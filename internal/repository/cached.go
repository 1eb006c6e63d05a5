package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/conn-castle/distup/internal/gav"
)

// Cached memoizes latest-version and descriptor answers of another repository
// for a fixed lifetime. Errors are never cached.
type Cached struct {
	next  Repository
	cache *cache.Cache
}

type cachedDescriptor struct {
	deps *gav.Dependencies
}

// NewCached wraps next with a cache whose entries live for ttl.
func NewCached(next Repository, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache.New(ttl, 2*ttl)}
}

// FindLatestVersionOf implements Repository.
func (c *Cached) FindLatestVersionOf(ctx context.Context, g gav.Gav) (gav.Gav, error) {
	key := "latest|" + g.Key().String()
	if hit, ok := c.cache.Get(key); ok {
		return hit.(gav.Gav), nil
	}
	latest, err := c.next.FindLatestVersionOf(ctx, g)
	if err != nil {
		return gav.Gav{}, err
	}
	c.cache.Set(key, latest, cache.DefaultExpiration)
	return latest, nil
}

// ResolveDescriptor implements Repository. A missing descriptor is cached too.
func (c *Cached) ResolveDescriptor(ctx context.Context, g gav.Gav) (*gav.Dependencies, error) {
	key := "descriptor|" + g.String()
	if hit, ok := c.cache.Get(key); ok {
		return hit.(cachedDescriptor).deps, nil
	}
	deps, err := c.next.ResolveDescriptor(ctx, g)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, cachedDescriptor{deps: deps}, cache.DefaultExpiration)
	return deps, nil
}

// Resolve implements Repository without caching; content is cached on disk by the channel.
func (c *Cached) Resolve(ctx context.Context, a gav.Artifact) (string, error) {
	return c.next.Resolve(ctx, a)
}

// Flush drops every cached answer.
func (c *Cached) Flush() {
	c.cache.Flush()
}
