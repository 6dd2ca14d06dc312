package local

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when a key or member does not exist.
var ErrNotFound = errors.New("cache: key not found")

type entry struct {
	value     string
	expiresAt time.Time // zero means no TTL
}

// Cache is an in-process replacement for Redis, for single-node deployments
// and tests. Expired keys are dropped lazily on read and by a GC sweep.
type Cache struct {
	mu   sync.RWMutex
	kv   map[string]entry
	zset map[string]map[string]float64

	stop chan struct{}
	once sync.Once
}

// NewCache creates a local cache. gcInterval <= 0 uses one minute.
func NewCache(gcInterval time.Duration) *Cache {
	if gcInterval <= 0 {
		gcInterval = time.Minute
	}
	c := &Cache{
		kv:   make(map[string]entry),
		zset: make(map[string]map[string]float64),
		stop: make(chan struct{}),
	}
	go c.gcLoop(gcInterval)
	return c
}

// Close stops the GC goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) gcLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.kv {
				if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
					delete(c.kv, k)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.kv[key]
	c.mu.RUnlock()
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		return "", ErrNotFound
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.kv[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.kv, k)
		delete(c.zset, k)
	}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	e, ok := c.kv[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

func (c *Cache) ZIncrBy(_ context.Context, key string, delta float64, member string) error {
	c.mu.Lock()
	z, ok := c.zset[key]
	if !ok {
		z = make(map[string]float64)
		c.zset[key] = z
	}
	z[member] += delta
	c.mu.Unlock()
	return nil
}

// ScoredMember mirrors the adapter-level type; kept local so this package
// stands alone.
type ScoredMember struct {
	Member string
	Score  float64
}

func (c *Cache) zsorted(key string) []ScoredMember {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]ScoredMember, 0, len(c.zset[key]))
	for m, s := range c.zset[key] {
		out = append(out, ScoredMember{Member: m, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	return out
}

func (c *Cache) ZRevRange(_ context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	all := c.zsorted(key)
	n := int64(len(all))
	if start < 0 {
		start = 0
	}
	if stop < 0 || stop >= n {
		stop = n - 1
	}
	if start >= n || stop < start {
		return nil, nil
	}
	return all[start : stop+1], nil
}

func (c *Cache) ZScore(_ context.Context, key, member string) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	z, ok := c.zset[key]
	if !ok {
		return 0, ErrNotFound
	}
	s, ok := z[member]
	if !ok {
		return 0, ErrNotFound
	}
	return s, nil
}
