package cache

import (
	"context"
	"time"

	"github.com/kasuganosora/pokebattle/cache/local"
	cacheredis "github.com/kasuganosora/pokebattle/cache/redis"
)

// Cache is the KV and leaderboard surface the arena needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Sorted set, used for the win leaderboard.
	ZIncrBy(ctx context.Context, key string, delta float64, member string) error
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error)
	ZScore(ctx context.Context, key, member string) (float64, error)
}

// ScoredMember is one leaderboard row.
type ScoredMember struct {
	Member string  `json:"member"`
	Score  float64 `json:"score"`
}

// Message is a received pub/sub message.
type Message struct {
	Channel string
	Payload string
}

// PubSub carries battle event streams between the arena and its watchers.
type PubSub interface {
	Publish(ctx context.Context, channel, message string) error
	Subscribe(ctx context.Context, channels ...string) (<-chan *Message, func(), error)
}

// Config holds configuration for both the Redis and in-process backends.
type Config struct {
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	LocalGC        time.Duration `mapstructure:"local_gc_interval"`
	LocalPubSubBuf int           `mapstructure:"local_pubsub_buf"`
}

// NewCache returns a Redis-backed cache when RedisAddr is set, otherwise an
// in-process one.
func NewCache(cfg Config) (Cache, error) {
	if cfg.RedisAddr != "" {
		rc, err := cacheredis.New(cacheredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return &redisCacheAdapter{rc: rc}, nil
	}
	return &localCacheAdapter{c: local.NewCache(cfg.LocalGC)}, nil
}

// localCacheAdapter bridges the local package's member type to this one.
type localCacheAdapter struct {
	c *local.Cache
}

func (a *localCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.c.Get(ctx, key)
}

func (a *localCacheAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.c.Set(ctx, key, value, ttl)
}

func (a *localCacheAdapter) Del(ctx context.Context, keys ...string) error {
	return a.c.Del(ctx, keys...)
}

func (a *localCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	return a.c.Exists(ctx, key)
}

func (a *localCacheAdapter) ZIncrBy(ctx context.Context, key string, delta float64, member string) error {
	return a.c.ZIncrBy(ctx, key, delta, member)
}

func (a *localCacheAdapter) ZRevRange(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	rows, err := a.c.ZRevRange(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]ScoredMember, len(rows))
	for i, r := range rows {
		out[i] = ScoredMember{Member: r.Member, Score: r.Score}
	}
	return out, nil
}

func (a *localCacheAdapter) ZScore(ctx context.Context, key, member string) (float64, error) {
	return a.c.ZScore(ctx, key, member)
}

type redisCacheAdapter struct {
	rc *cacheredis.Client
}

func (a *redisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	return a.rc.Get(ctx, key)
}

func (a *redisCacheAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.rc.Set(ctx, key, value, ttl)
}

func (a *redisCacheAdapter) Del(ctx context.Context, keys ...string) error {
	return a.rc.Del(ctx, keys...)
}

func (a *redisCacheAdapter) Exists(ctx context.Context, key string) (bool, error) {
	return a.rc.Exists(ctx, key)
}

func (a *redisCacheAdapter) ZIncrBy(ctx context.Context, key string, delta float64, member string) error {
	return a.rc.ZIncrBy(ctx, key, delta, member)
}

func (a *redisCacheAdapter) ZRevRange(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	rows, err := a.rc.ZRevRangeWithScores(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]ScoredMember, len(rows))
	for i, r := range rows {
		out[i] = ScoredMember{Member: r.Member, Score: r.Score}
	}
	return out, nil
}

func (a *redisCacheAdapter) ZScore(ctx context.Context, key, member string) (float64, error) {
	return a.rc.ZScore(ctx, key, member)
}

// NewPubSub mirrors NewCache's backend selection for pub/sub.
func NewPubSub(cfg Config) (PubSub, error) {
	if cfg.RedisAddr != "" {
		rc, err := cacheredis.New(cacheredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return &redisPubSubAdapter{rc: rc}, nil
	}
	return &localPubSubAdapter{ps: local.NewPubSub(cfg.LocalPubSubBuf)}, nil
}

type localPubSubAdapter struct {
	ps *local.PubSub
}

func (a *localPubSubAdapter) Publish(ctx context.Context, channel, message string) error {
	return a.ps.Publish(ctx, channel, message)
}

func (a *localPubSubAdapter) Subscribe(ctx context.Context, channels ...string) (<-chan *Message, func(), error) {
	src, cancel, err := a.ps.Subscribe(ctx, channels...)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan *Message, cap(src))
	go func() {
		defer close(out)
		for msg := range src {
			out <- &Message{Channel: msg.Channel, Payload: msg.Payload}
		}
	}()
	return out, cancel, nil
}

type redisPubSubAdapter struct {
	rc *cacheredis.Client
}

func (a *redisPubSubAdapter) Publish(ctx context.Context, channel, message string) error {
	return a.rc.Publish(ctx, channel, message)
}

func (a *redisPubSubAdapter) Subscribe(ctx context.Context, channels ...string) (<-chan *Message, func(), error) {
	src, cancel, err := a.rc.Subscribe(ctx, channels...)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan *Message, 256)
	go func() {
		defer close(out)
		for msg := range src {
			out <- &Message{Channel: msg.Channel, Payload: msg.Payload}
		}
	}()
	return out, cancel, nil
}
