// Package events carries typed storefront notifications between services
// and any subscribed UI surfaces. Dispatch is synchronous and in
// subscription order; publishers never learn who is listening.
package events

import (
	"sync"

	"souq-gateway/internal/domain"
)

// Event is implemented by every payload published on the bus.
type Event interface {
	EventName() string
}

// CartUpdated signals that cart contents changed. Badge and counter
// surfaces re-read the store on receipt; no payload is carried.
type CartUpdated struct{}

func (CartUpdated) EventName() string { return "cartUpdated" }

// CartNotice carries the display info for a transient add-to-cart
// confirmation.
type CartNotice struct {
	ProductID int64          `json:"productId"`
	Name      string         `json:"name"`
	Image     string         `json:"image,omitempty"`
	UnitPrice float64        `json:"price"`
	Quantity  int            `json:"quantity"`
	AddOns    []domain.AddOn `json:"addOns,omitempty"`
	Total     float64        `json:"total"`
}

func (CartNotice) EventName() string { return "showCartNotification" }

// WishlistUpdated carries the full wishlist membership after a mutation.
type WishlistUpdated struct {
	ProductIDs []int64 `json:"productIds"`
}

func (WishlistUpdated) EventName() string { return "wishlistUpdated" }

// WishlistAdded signals a single product joined the wishlist.
type WishlistAdded struct {
	ProductID int64 `json:"productId"`
}

func (WishlistAdded) EventName() string { return "productAddedToWishlist" }

// WishlistRemoved signals a single product left the wishlist.
type WishlistRemoved struct {
	ProductID int64 `json:"productId"`
}

func (WishlistRemoved) EventName() string { return "productRemovedFromWishlist" }

// Toast is the user-facing notification side channel.
type Toast struct {
	Level   string `json:"level"` // "success" or "error"
	Message string `json:"message"`
}

func (Toast) EventName() string { return "toast" }

// Handler receives every published event; implementations switch on the
// concrete type.
type Handler func(Event)

// Bus is an in-process publish/subscribe fan-out.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]Handler
	keys []int
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.keys = append(b.keys, id)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		for i, k := range b.keys {
			if k == id {
				b.keys = append(b.keys[:i], b.keys[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all current subscribers, in the order they
// subscribed. Delivery is synchronous; the caller must have already
// persisted any state the event announces.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.keys))
	for _, k := range b.keys {
		if fn, ok := b.subs[k]; ok {
			handlers = append(handlers, fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}
