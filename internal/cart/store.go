// Package cart holds the line items a visitor intends to book. The store is
// the sole owner of the list; consumers read snapshots and dispatch
// mutations. Every mutation persists the full list through the kvstore
// bridge so the cart survives a restart.
package cart

import (
	"encoding/json"
	"io"
	"log"
	"sync"

	"fiesta-storefront/internal/domain"
	"fiesta-storefront/internal/kvstore"
)

type Store struct {
	mu      sync.Mutex
	store   kvstore.Store
	items   []domain.CartItem
	subs    map[int]func([]domain.CartItem)
	nextSub int
	logger  *log.Logger
}

// New builds a Store hydrated from the bridge. A missing or malformed stored
// payload yields an empty cart, never an error.
func New(store kvstore.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		store:  store,
		subs:   make(map[int]func([]domain.CartItem)),
		logger: logger,
	}
	if raw, ok := store.Get(kvstore.KeyCart); ok {
		var items []domain.CartItem
		if err := json.Unmarshal(raw, &items); err != nil {
			logger.Printf("cart: discarding malformed stored cart: %v", err)
		} else {
			s.items = items
		}
	}
	return s
}

// AddItem merges into an existing line when the product is already present,
// keeping its position; otherwise the new line is appended. quantity values
// below 1 are treated as 1.
func (s *Store) AddItem(product domain.ProductSnapshot, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Product:   product,
		})
	}
	s.persistAndNotifyLocked()
}

// RemoveItem deletes the matching line; absent products are a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persistAndNotifyLocked()
}

// UpdateQuantity overwrites a line's quantity in place. Quantities below 1
// remove the line entirely.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(productID)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persistAndNotifyLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistAndNotifyLocked()
}

// Items returns a copy of the current line items in first-add order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// TotalItems is the sum of all quantities, not the distinct product count.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Subscribe registers fn to run after every mutation with a snapshot of the
// new state. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func([]domain.CartItem)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) snapshotLocked() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// persistAndNotifyLocked releases the mutex. Held as the tail call of every
// mutation so subscribers run outside the lock.
func (s *Store) persistAndNotifyLocked() {
	snapshot := s.snapshotLocked()
	subs := make([]func([]domain.CartItem), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Printf("cart: marshal failed: %v", err)
	} else {
		s.store.Set(kvstore.KeyCart, data)
	}
	for _, fn := range subs {
		fn(snapshot)
	}
}
