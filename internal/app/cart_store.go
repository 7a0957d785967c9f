package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dairydesk/internal/core"
)

// cartTTL is how long an untouched cart survives before the purge loop
// drops it. Carts are local drafts only; losing one costs a re-entry, not
// an order.
const cartTTL = 24 * time.Hour

// cartStore holds in-flight carts in memory. All cart mutations run under
// the store lock so concurrent dashboard requests cannot interleave edits.
type cartStore struct {
	mu      sync.Mutex
	carts   map[string]*core.Cart
	touched map[string]time.Time
}

func newCartStore() *cartStore {
	return &cartStore{
		carts:   make(map[string]*core.Cart),
		touched: make(map[string]time.Time),
	}
}

func (s *cartStore) put(cart *core.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.ID] = cart
	s.touched[cart.ID] = time.Now()
}

// with runs fn against the cart under the store lock. fn may mutate the
// cart; the store records the access time either way.
func (s *cartStore) with(cartID string, fn func(*core.Cart) error) (*core.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, fmt.Errorf("cart %s not found (it may have expired)", cartID)
	}
	if err := fn(cart); err != nil {
		return nil, err
	}
	s.touched[cartID] = time.Now()
	return cart, nil
}

// startPurge drops expired carts once an hour until ctx is cancelled.
func (s *cartStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.purgeExpired(time.Now())
			}
		}
	}()
}

func (s *cartStore) purgeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range s.touched {
		if now.Sub(at) > cartTTL {
			delete(s.carts, id)
			delete(s.touched, id)
		}
	}
}
