package events

import (
	"context"
	"sync"
)

// ISubscription receives values published on a Bus.
type ISubscription[T any] interface {
	// Chan delivers published values. It holds at most one pending value:
	// a slow reader sees the latest value, never a backlog.
	Chan() <-chan T
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb for each value.
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(T)) ISubscription[T]
}

// Publisher is the sending side of a Bus.
type Publisher[T any] interface {
	Emit(ctx context.Context, v T) int
}

type Subscription[T any] struct {
	ch     chan T
	bus    *Bus[T]
	mu     sync.Mutex
	cancel context.CancelFunc
	once   sync.Once
}

func (s *Subscription[T]) Chan() <-chan T { return s.ch }

func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.bus.unsubscribe(s.ch)
	})
}

func (s *Subscription[T]) Watch(parentCtx context.Context, cb func(T)) ISubscription[T] {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				cb(v)
			}
		}
	}()

	return s
}

// Bus fans values out to subscribers without ever blocking the publisher.
type Bus[T any] struct {
	mu          sync.Mutex
	subscribers map[chan T]struct{}
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{
		subscribers: make(map[chan T]struct{}),
	}
}

func (b *Bus[T]) Subscribe() ISubscription[T] {
	ch := make(chan T, 1)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	return &Subscription[T]{ch: ch, bus: b}
}

func (b *Bus[T]) unsubscribe(ch chan T) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Emit delivers v to every subscriber, replacing any value a subscriber has not read yet.
// It returns the number of subscribers reached before ctx was cancelled.
func (b *Bus[T]) Emit(ctx context.Context, v T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for sub := range b.subscribers {
		if ctx.Err() != nil {
			return delivered
		}
		select {
		case sub <- v:
		default:
			// drop the stale value and retry once
			select {
			case <-sub:
			default:
			}
			select {
			case sub <- v:
			default:
				continue
			}
		}
		delivered++
	}
	return delivered
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
