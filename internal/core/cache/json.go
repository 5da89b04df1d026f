package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetOrLoadJSON is GetOrLoad for JSON-encoded values. Load errors are
// returned as-is and never cached.
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}

// Entity caches one JSON record per id under a namespace. Entries are keyed
// by the id's generation, so a load that read the store before Invalidate
// writes to a key no later reader asks for.
type Entity[T any] struct {
	c   *Cache
	ns  string
	ttl time.Duration
}

func NewEntity[T any](c *Cache, ns string, ttl time.Duration) *Entity[T] {
	return &Entity[T]{c: c, ns: ns, ttl: ttl}
}

func (e *Entity[T]) genKey(id string) string { return e.ns + ":" + id + ":gen" }

func (e *Entity[T]) Key(id string, gen int64) string {
	return fmt.Sprintf("%s:%s:v%d", e.ns, id, gen)
}

// Get returns the cached record for id or loads it. When the generation
// cannot be read the cache is bypassed.
func (e *Entity[T]) Get(ctx context.Context, id string, load func(ctx context.Context) (*T, error)) (*T, error) {
	gen, err := e.c.Generation(ctx, e.genKey(id))
	if err != nil {
		return load(ctx)
	}
	return GetOrLoadJSON(e.c, ctx, e.Key(id, gen), e.ttl, load)
}

// Invalidate moves id to a new generation and drops the previous entry.
func (e *Entity[T]) Invalidate(ctx context.Context, id string) error {
	gen, err := e.c.Bump(ctx, e.genKey(id))
	if err != nil {
		return err
	}
	return e.c.Delete(ctx, e.Key(id, gen-1))
}
