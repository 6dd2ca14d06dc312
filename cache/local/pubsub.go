package local

import (
	"context"
	"sync"
)

// Message is an in-process pub/sub message.
type Message struct {
	Channel string
	Payload string
}

type subscriber struct {
	ch chan *Message
}

// PubSub is an in-process fan-out pub/sub implementation. Slow subscribers
// drop messages instead of blocking the publisher.
type PubSub struct {
	mu          sync.RWMutex
	subscribers map[string][]*subscriber
	bufSize     int
}

// NewPubSub creates a PubSub with the given per-subscriber buffer size.
func NewPubSub(bufSize int) *PubSub {
	if bufSize <= 0 {
		bufSize = 256
	}
	return &PubSub{
		subscribers: make(map[string][]*subscriber),
		bufSize:     bufSize,
	}
}

// Publish sends a message to every subscriber of the channel.
func (ps *PubSub) Publish(_ context.Context, channel, message string) error {
	msg := &Message{Channel: channel, Payload: message}
	ps.mu.RLock()
	subs := ps.subscribers[channel]
	ps.mu.RUnlock()
	for _, s := range subs {
		select {
		case s.ch <- msg:
		default:
		}
	}
	return nil
}

// Subscribe returns a message channel for the given channels and a cancel
// function that detaches the subscriber and closes the channel.
func (ps *PubSub) Subscribe(_ context.Context, channels ...string) (<-chan *Message, func(), error) {
	sub := &subscriber{ch: make(chan *Message, ps.bufSize)}

	ps.mu.Lock()
	for _, c := range channels {
		ps.subscribers[c] = append(ps.subscribers[c], sub)
	}
	ps.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			ps.mu.Lock()
			for _, c := range channels {
				subs := ps.subscribers[c]
				for i, s := range subs {
					if s == sub {
						ps.subscribers[c] = append(subs[:i], subs[i+1:]...)
						break
					}
				}
				if len(ps.subscribers[c]) == 0 {
					delete(ps.subscribers, c)
				}
			}
			ps.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel, nil
}
