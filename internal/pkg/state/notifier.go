package state

import "sync"

// Notifier fans a state snapshot out to subscribers in subscription order.
// The zero value is ready to use.
type Notifier[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a func that removes it
func (n *Notifier[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(id) })
	}
}

// Notify calls every subscriber with value. Subscribers run outside the
// notifier's lock and may unsubscribe themselves.
func (n *Notifier[T]) Notify(value T) {
	n.mu.Lock()
	subs := make([]subscription[T], len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

func (n *Notifier[T]) remove(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}
