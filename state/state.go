package state

import "sync"

const subscriberBuffer = 16

// Value holds a current value and republishes every update to subscribers.
// Subscribing delivers the current value immediately, then every change.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores val and fans it out. Subscribers that have fallen more than a
// buffer behind miss intermediate values, never the lock.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = val
	for _, ch := range v.subs {
		select {
		case ch <- val:
		default:
		}
	}
}

// Subscribe returns a channel of values and a cancel function. The channel is
// closed on cancel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	ch := make(chan T, subscriberBuffer)
	ch <- v.current
	v.subs[id] = ch
	v.mu.Unlock()

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if c, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(c)
		}
	}
	return ch, cancel
}
