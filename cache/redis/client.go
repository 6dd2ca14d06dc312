package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key or member does not exist.
var ErrNotFound = errors.New("cache: key not found")

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client wraps go-redis with the operations the arena uses.
type Client struct {
	client *goredis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(cfg Config) (*Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

func (r *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *Client) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (r *Client) ZIncrBy(ctx context.Context, key string, delta float64, member string) error {
	return r.client.ZIncrBy(ctx, key, delta, member).Err()
}

// ScoredMember is one sorted-set row with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

func (r *Client) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) ([]ScoredMember, error) {
	rows, err := r.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ScoredMember, len(rows))
	for i, z := range rows {
		member, _ := z.Member.(string)
		out[i] = ScoredMember{Member: member, Score: z.Score}
	}
	return out, nil
}

func (r *Client) ZScore(ctx context.Context, key, member string) (float64, error) {
	s, err := r.client.ZScore(ctx, key, member).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, ErrNotFound
	}
	return s, err
}

func (r *Client) Publish(ctx context.Context, channel, message string) error {
	return r.client.Publish(ctx, channel, message).Err()
}

// Subscribe returns a message channel for the given channels and a cancel
// function. The goroutine exits when the subscription closes.
func (r *Client) Subscribe(ctx context.Context, channels ...string) (<-chan *Message, func(), error) {
	sub := r.client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, nil, err
	}
	out := make(chan *Message, 256)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			out <- &Message{Channel: msg.Channel, Payload: msg.Payload}
		}
	}()
	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}

// Message is a received pub/sub message.
type Message struct {
	Channel string
	Payload string
}
