// Package feed provides a small synchronous publish/subscribe list.
package feed

import "sync"

// Consumer receives published values.
type Consumer[T any] func(T)

type subscription[T any] struct {
	id       uint64
	consumer Consumer[T]
}

// Feed delivers each published value to every consumer, synchronously and
// in subscription order. The zero value is ready to use.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   []subscription[T]
	nextID uint64
}

// Subscribe registers consumer and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (f *Feed[T]) Subscribe(consumer Consumer[T]) (cancel func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, subscription[T]{id: id, consumer: consumer})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(id) })
	}
}

func (f *Feed[T]) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, sub := range f.subs {
		if sub.id == id {
			f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every consumer registered at the time of the call.
// Consumers may subscribe or cancel from inside the callback.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	subs := make([]subscription[T], len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, sub := range subs {
		sub.consumer(v)
	}
}

// Len returns the number of registered consumers.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
