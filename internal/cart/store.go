package cart

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/pkg/enums"
)

// Customization is a priced add-on chosen for a cart line.
type Customization struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Price decimal.Decimal         `json:"price"`
	Type  enums.CustomizationType `json:"type"`
}

// Item is one cart line: a menu item plus the exact add-on combination it
// was added with. Two lines with the same menu item but different add-ons
// stay separate.
type Item struct {
	MenuItemID     string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	ImageURL       string          `json:"image_url,omitempty"`
	Customizations []Customization `json:"customizations,omitempty"`
	Quantity       int             `json:"quantity"`
}

// Key returns the line identity: menu item id plus the order-independent
// set of customization ids.
func (i Item) Key() string {
	return LineKey(i.MenuItemID, i.Customizations)
}

// UnitPrice is the price of a single unit including its add-ons.
func (i Item) UnitPrice() decimal.Decimal {
	total := i.Price
	for _, c := range i.Customizations {
		total = total.Add(c.Price)
	}
	return total
}

// LineKey derives the composite key identifying a cart line.
func LineKey(menuItemID string, customizations []Customization) string {
	if len(customizations) == 0 {
		return menuItemID
	}
	ids := make([]string, 0, len(customizations))
	for _, c := range customizations {
		ids = append(ids, c.ID)
	}
	sort.Strings(ids)
	return menuItemID + "|" + strings.Join(ids, ",")
}

// Store holds the in-memory cart for one session. It lives for the process
// lifetime only and is mutated by a single logical owner, so it carries no
// lock of its own; concurrent access across requests is serialized by the
// owning Registry entry.
type Store struct {
	items []Item
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem merges one unit into an existing line with the same composite key
// or appends a new line with quantity 1. The candidate's quantity field is
// ignored: every call adds exactly one unit.
func (s *Store) AddItem(candidate Item) {
	key := candidate.Key()
	for idx := range s.items {
		if s.items[idx].Key() == key {
			s.items[idx].Quantity++
			return
		}
	}
	candidate.Quantity = 1
	s.items = append(s.items, candidate)
}

// RemoveItem deletes the line matching the composite key. Missing lines are
// a no-op.
func (s *Store) RemoveItem(lineKey string) {
	for idx := range s.items {
		if s.items[idx].Key() == lineKey {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return
		}
	}
}

// IncreaseQuantity adds one unit to the matching line; no-op if absent.
func (s *Store) IncreaseQuantity(lineKey string) {
	for idx := range s.items {
		if s.items[idx].Key() == lineKey {
			s.items[idx].Quantity++
			return
		}
	}
}

// DecreaseQuantity removes one unit from the matching line, never dropping
// below 1. Lines are only removed via RemoveItem.
func (s *Store) DecreaseQuantity(lineKey string) {
	for idx := range s.items {
		if s.items[idx].Key() == lineKey {
			if s.items[idx].Quantity > 1 {
				s.items[idx].Quantity--
			}
			return
		}
	}
}

// Clear drops every line unconditionally.
func (s *Store) Clear() {
	s.items = nil
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems sums quantities across all lines.
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums quantity times unit price (base plus add-ons) across all
// lines. Recomputed on every call so it can never go stale.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
