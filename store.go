package priceholder

import "golang.org/x/exp/constraints"

// entry is the per-symbol state: the latest price, a version counter that
// increments on every Put, and a channel that is closed to wake waiters.
// The version lets waiters tell "no update yet" from "update occurred"
// without comparing values, since prices may repeat.
type entry[T constraints.Unsigned] struct {
	value   T
	ok      bool
	version uint64
	changed chan struct{}
}

// Store is an in-memory map from symbol to versioned price. Entries are
// created lazily on first touch of a symbol and never removed.
//
// Store is NOT safe for concurrent use. Callers must serialize all access
// externally; Holder does exactly that and is the intended entry point.
type Store[T constraints.Unsigned] struct {
	entries map[string]*entry[T]
}

// NewStore initializes and returns a new empty Store.
func NewStore[T constraints.Unsigned]() *Store[T] {
	return &Store[T]{
		entries: make(map[string]*entry[T]),
	}
}

// entry returns the state for symbol, creating an empty placeholder on first
// touch.
func (s *Store[T]) entry(symbol string) *entry[T] {
	e, ok := s.entries[symbol]
	if !ok {
		e = &entry[T]{changed: make(chan struct{})}
		s.entries[symbol] = e
	}
	return e
}

// Put stores value as the latest price for symbol and increments the
// symbol's version (new symbols start at version 1). Every goroutine
// currently waiting on the symbol is woken: the update and the wakeup happen
// together, so a waiter registered before Put cannot miss it.
func (s *Store[T]) Put(symbol string, value T) error {
	if symbol == "" {
		return ErrInvalidKey
	}
	e := s.entry(symbol)
	e.value = value
	e.ok = true
	e.version++
	close(e.changed)
	e.changed = make(chan struct{})
	return nil
}

// Get returns the latest price for symbol. The second return value is false
// if no price has been published yet. Get never creates an entry.
func (s *Store[T]) Get(symbol string) (T, bool) {
	var zero T
	e, ok := s.entries[symbol]
	if !ok || !e.ok {
		return zero, false
	}
	return e.value, true
}

// Watch returns the current version for symbol together with a channel that
// will be closed by the next Put on that symbol. A version of 0 means no
// price has been published. Version and channel are read as one unit, which
// is what makes the wait loop in Holder race-free: any Put after Watch closes
// the returned channel.
func (s *Store[T]) Watch(symbol string) (uint64, <-chan struct{}, error) {
	if symbol == "" {
		return 0, nil, ErrInvalidKey
	}
	e := s.entry(symbol)
	return e.version, e.changed, nil
}

// wakeAll closes every entry's change channel without replacing it, waking
// all blocked waiters. Used when the store is shut down; no Put may follow.
func (s *Store[T]) wakeAll() {
	for _, e := range s.entries {
		close(e.changed)
	}
}
