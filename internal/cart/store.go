package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Pageblan/Carepulse/internal/notify"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Direction selects which way AdjustQuantity moves a line item.
type Direction string

const (
	Increment Direction = "inc"
	Decrement Direction = "dec"
)

// Store holds one browser session's cart. It lives in memory only and is
// torn down with the session. Totals are maintained incrementally; every
// operation applies its item mutation and both totals together or not at
// all, so TotalPrice and TotalQuantity stay recomputable from the items
// after every call.
type Store struct {
	mu       sync.Mutex
	items    map[string]*LineItem
	order    []string // product ids in insertion order
	total    int64
	quantity int
	selector int
	notifier notify.Notifier
}

func NewStore(notifier notify.Notifier) *Store {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Store{
		items:    make(map[string]*LineItem),
		selector: 1,
		notifier: notifier,
	}
}

// Add puts quantity units of the product in the cart. An existing line
// item keeps its add-time name and price and only grows its quantity.
func (s *Store) Add(p Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.items[p.ID]; ok {
		item.Quantity += quantity
		s.total += item.UnitPrice * int64(quantity)
	} else {
		s.items[p.ID] = &LineItem{
			ID:        p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  quantity,
		}
		s.order = append(s.order, p.ID)
		s.total += p.UnitPrice * int64(quantity)
	}
	s.quantity += quantity

	s.notifier.Success(fmt.Sprintf("%d %s added to the cart.", quantity, p.Name))
	return nil
}

// Remove drops the line item. Removing an absent product is a no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}

	qty := item.Quantity
	if qty < 1 {
		qty = 1 // items are never stored below 1
	}
	s.total -= item.UnitPrice * int64(qty)
	s.quantity -= qty

	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// AdjustQuantity moves a line item's quantity by one. Increment always
// succeeds; decrement stops at 1 and never removes the item. Adjusting
// an absent product is a no-op.
func (s *Store) AdjustQuantity(productID string, direction Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}

	switch direction {
	case Increment:
		item.Quantity++
		s.total += item.UnitPrice
		s.quantity++
	case Decrement:
		if item.Quantity > 1 {
			item.Quantity--
			s.total -= item.UnitPrice
			s.quantity--
		}
	}
}

// IncrementSelector raises the pending selection quantity. The selector
// is UI state independent of any line item and is never reset.
func (s *Store) IncrementSelector() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selector++
}

// DecrementSelector lowers the pending selection quantity, floor 1.
func (s *Store) DecrementSelector() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selector > 1 {
		s.selector--
	}
}

func (s *Store) Selector() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector
}

// Snapshot copies the current cart state, items in insertion order.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, *s.items[id])
	}
	return Snapshot{
		Items:         items,
		TotalPrice:    s.total,
		TotalQuantity: s.quantity,
	}
}
