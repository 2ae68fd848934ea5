// Package priceholder provides a concurrent price holder: an in-memory map
// from symbol to the latest published price, where any number of goroutines
// can block until the price for a symbol is next published or changed.
//
// The package keeps exactly one current value per symbol. It is a
// synchronization primitive, not a cache: there is no eviction, no history of
// past values and no persistence.
//
// Store holds the data and the per-symbol wakeup machinery but is not safe
// for concurrent use on its own. Holder wraps one Store behind a mutex and is
// the type most callers want: it can be cloned cheaply, and every clone
// observes the same underlying state from any goroutine.
package priceholder

import "golang.org/x/exp/constraints"

// PriceHolder is the interface implemented by Holder. Prices are unsigned
// integers; the full range of T is valid and values may legitimately repeat.
type PriceHolder[T constraints.Unsigned] interface {
	// PutPrice publishes a new price for symbol, waking any goroutines
	// blocked in NextPrice on that symbol.
	PutPrice(symbol string, value T) error

	// GetPrice returns the latest published price for symbol, if any.
	GetPrice(symbol string) (T, bool)

	// NextPrice blocks until a price newer than the last one this holder
	// observed for symbol is available, then returns it.
	NextPrice(symbol string) (T, error)
}

var _ PriceHolder[uint64] = (*Holder[uint64])(nil)
