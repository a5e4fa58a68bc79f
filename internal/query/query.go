// Package query caches keyed read results and runs mutations with lifecycle hooks.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Key identifies a cached query result.
type Key string

// Store is the byte cache behind a Client. cache.Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Client registers keyed queries over a Store.
type Client struct {
	store Store
	ttl   time.Duration
	group singleflight.Group

	// generations counts invalidations per key; a load started under an older
	// generation must not write its result back.
	mu          sync.Mutex
	generations map[Key]uint64
}

// NewClient creates a query client whose entries expire after ttl.
func NewClient(store Store, ttl time.Duration) *Client {
	return &Client{store: store, ttl: ttl, generations: make(map[Key]uint64)}
}

func (c *Client) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// storeIfCurrent caches payload unless key was invalidated after gen was read.
func (c *Client) storeIfCurrent(ctx context.Context, key Key, gen uint64, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[key] != gen {
		return
	}
	_ = c.store.Set(ctx, string(key), payload, c.ttl)
}

// Fetch returns the cached result for key, or runs fn and caches its result.
// Concurrent fetches of the same key share one call to fn. Errors are never cached.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if data, _ := c.store.Get(ctx, string(key)); data != nil {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	v, err, _ := c.group.Do(string(key), func() (interface{}, error) {
		gen := c.generation(key)
		result, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(result); err == nil {
			c.storeIfCurrent(ctx, key, gen, payload)
		}
		return result, nil
	})
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: unexpected result type %T", key, v)
	}
	return result, nil
}

// Invalidate drops the cached result for key so the next Fetch reloads it.
// A load of key still running at this point returns its result to its own
// callers but never caches it.
func (c *Client) Invalidate(ctx context.Context, key Key) error {
	c.mu.Lock()
	c.generations[key]++
	c.mu.Unlock()
	c.group.Forget(string(key))
	return c.store.Delete(ctx, string(key))
}

// Mutation wraps a write with success and error hooks.
type Mutation[In any] struct {
	Fn        func(ctx context.Context, in In) error
	OnSuccess func(ctx context.Context, in In)
	OnError   func(ctx context.Context, in In, err error)
}

// Run executes Fn and then exactly one of the hooks. It returns Fn's error.
func (m Mutation[In]) Run(ctx context.Context, in In) error {
	if err := m.Fn(ctx, in); err != nil {
		if m.OnError != nil {
			m.OnError(ctx, in, err)
		}
		return err
	}
	if m.OnSuccess != nil {
		m.OnSuccess(ctx, in)
	}
	return nil
}
