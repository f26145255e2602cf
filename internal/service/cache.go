package service

import (
	"context"
	"encoding/json"
	"time"

	"go-portfolio-app/internal/logger"
)

// Cache is the subset of the response cache the services need.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	keyPublicProjects = "public:projects"
	keyPublicBlogs    = "public:blogs"
	keyPublicSkills   = "public:skills"
	keyBlogPrefix     = "public:blog:"
)

// readThrough is a small JSON cache-aside helper. Cache failures are logged
// and treated as misses.
type readThrough struct {
	cache Cache
	ttl   time.Duration
	log   logger.Logger
}

func (rt readThrough) load(ctx context.Context, key string, dst interface{}) bool {
	if rt.cache == nil {
		return false
	}
	raw, ok, err := rt.cache.Get(ctx, key)
	if err != nil {
		rt.log.With(map[string]interface{}{"key": key}).Error(err, "cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		rt.log.With(map[string]interface{}{"key": key}).Error(err, "cache entry is corrupt")
		return false
	}
	return true
}

func (rt readThrough) store(ctx context.Context, key string, v interface{}) {
	if rt.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		rt.log.Error(err, "failed to encode cache entry")
		return
	}
	if err := rt.cache.Set(ctx, key, raw, rt.ttl); err != nil {
		rt.log.With(map[string]interface{}{"key": key}).Error(err, "cache write failed")
	}
}

func (rt readThrough) invalidate(ctx context.Context, keys ...string) {
	if rt.cache == nil {
		return
	}
	for _, key := range keys {
		if err := rt.cache.Delete(ctx, key); err != nil {
			rt.log.With(map[string]interface{}{"key": key}).Error(err, "cache invalidation failed")
		}
	}
}
