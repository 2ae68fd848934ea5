package priceholder

import (
	"context"
	"sync"

	"golang.org/x/exp/constraints"
)

// shared is the state common to all clones of a Holder: one Store guarded by
// one mutex. The mutex is only ever held for map operations, never across a
// blocking wait.
type shared[T constraints.Unsigned] struct {
	mu     sync.Mutex
	store  *Store[T]
	closed bool
}

// Holder provides safe concurrent access to one Store from any number of
// goroutines. Clones share the underlying Store; the Store lives as long as
// the longest-lived clone.
//
// Each Holder additionally tracks the last price version it delivered per
// symbol. NextPrice uses that as its baseline: a holder that has never
// observed a symbol gets the current price immediately if one exists, while
// repeated calls on the same holder each block for a strictly newer version.
// Clone starts with a fresh baseline.
type Holder[T constraints.Unsigned] struct {
	shared *shared[T]

	seenMu sync.Mutex
	seen   map[string]uint64
}

// New creates a fresh empty Store and returns the first Holder referring to
// it.
func New[T constraints.Unsigned]() *Holder[T] {
	return &Holder[T]{
		shared: &shared[T]{store: NewStore[T]()},
		seen:   make(map[string]uint64),
	}
}

// Clone returns a new Holder sharing the same underlying Store. Clone is
// cheap, never fails and never blocks. The clone has not observed any
// symbol yet.
func (h *Holder[T]) Clone() *Holder[T] {
	return &Holder[T]{
		shared: h.shared,
		seen:   make(map[string]uint64),
	}
}

// PutPrice publishes value as the latest price for symbol and wakes every
// goroutine blocked in NextPrice on that symbol. PutPrice never blocks.
func (h *Holder[T]) PutPrice(symbol string, value T) error {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	if h.shared.closed {
		return ErrClosed
	}
	return h.shared.store.Put(symbol, value)
}

// GetPrice returns the latest published price for symbol. The second return
// value is false if no price has been published yet.
func (h *Holder[T]) GetPrice(symbol string) (T, bool) {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	return h.shared.store.Get(symbol)
}

// NextPrice blocks until the price for symbol is newer than the last one
// this holder observed, then returns it. There is no timeout: the call
// blocks until a qualifying PutPrice occurs or the store is closed. Use
// NextPriceContext to bound the wait.
func (h *Holder[T]) NextPrice(symbol string) (T, error) {
	return h.NextPriceContext(context.Background(), symbol)
}

// NextPriceContext is NextPrice with a cancellation point: it additionally
// returns ctx.Err() if the context is cancelled or its deadline passes
// before a qualifying price arrives.
func (h *Holder[T]) NextPriceContext(ctx context.Context, symbol string) (T, error) {
	var zero T

	// The call defines its baseline: the newest version this holder had
	// delivered for the symbol when the call began.
	baseline := h.lastSeen(symbol)

	for {
		h.shared.mu.Lock()
		if h.shared.closed {
			h.shared.mu.Unlock()
			return zero, ErrClosed
		}
		version, changed, err := h.shared.store.Watch(symbol)
		if err != nil {
			h.shared.mu.Unlock()
			return zero, err
		}
		if version > baseline {
			value, _ := h.shared.store.Get(symbol)
			h.shared.mu.Unlock()
			h.observe(symbol, version)
			return value, nil
		}
		h.shared.mu.Unlock()

		// The lock is not held while suspended. Waking does not by itself
		// mean the condition holds (the channel is also closed on shutdown),
		// so the loop re-checks under the lock before returning.
		select {
		case <-changed:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Close marks the shared Store closed and wakes every blocked waiter with
// ErrClosed. All subsequent operations on any clone return ErrClosed.
// Close is idempotent and never blocks.
func (h *Holder[T]) Close() error {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	if h.shared.closed {
		return nil
	}
	h.shared.closed = true
	h.shared.store.wakeAll()
	return nil
}

func (h *Holder[T]) lastSeen(symbol string) uint64 {
	h.seenMu.Lock()
	defer h.seenMu.Unlock()
	return h.seen[symbol]
}

func (h *Holder[T]) observe(symbol string, version uint64) {
	h.seenMu.Lock()
	defer h.seenMu.Unlock()
	if version > h.seen[symbol] {
		h.seen[symbol] = version
	}
}
