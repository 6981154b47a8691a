package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Session owns one cart for the lifetime of a signed-in session. The session
// is the cart's single logical owner: its lock serializes requests arriving
// for the same session, the store itself stays lock-free.
type Session struct {
	mu   sync.Mutex
	cart *Store
}

// With runs fn against the session's cart under the session lock.
func (s *Session) With(fn func(c *Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
}

// Items snapshots the current lines.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

// TotalItems reports the summed quantity.
func (s *Session) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalItems()
}

// TotalPrice reports the aggregate price.
func (s *Session) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

// Clear empties the cart.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Registry hands out cart sessions keyed by session id. Carts are ephemeral:
// they exist only in process memory and vanish on restart, which is the
// intended lifecycle, not a persistence gap.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

// SessionFor returns the cart session for the given id, creating an empty
// one on first access.
func (r *Registry) SessionFor(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[id]; ok {
		return sess
	}
	sess := &Session{cart: NewStore()}
	r.sessions[id] = sess
	return sess
}

// Drop discards the cart session for the given id, if any.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
