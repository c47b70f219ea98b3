package editing

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"
)

var (
	ErrSaveDisabled    = errors.New("no unsaved changes")
	ErrNoOrderSelected = errors.New("no order selected")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrUnknownProduct  = errors.New("product is not part of the selected order")
)

// State of the working copy relative to the last persisted snapshot.
type State int

const (
	Clean State = iota
	Modified
)

func (s State) String() string {
	if s == Modified {
		return "modified"
	}
	return "clean"
}

// Saver persists a line patch. It is satisfied by the draft order repository.
type Saver interface {
	UpdateLines(ctx context.Context, patch entities.LinePatch) error
}

// Store holds the working copy of the selected order and its quantity overrides.
// A Store is not safe for concurrent use; its owner serializes access.
type Store struct {
	order      *entities.Order
	quantities map[string]int
	state      State
}

func NewStore() *Store {
	return &Store{quantities: map[string]int{}}
}

// SelectOrder replaces the working copy with order and seeds the overrides from its
// lines. The store becomes Clean.
func (s *Store) SelectOrder(order entities.Order) {
	working := order
	working.Lines = append([]entities.OrderLine(nil), order.Lines...)
	s.order = &working
	s.resetQuantities()
	s.state = Clean
}

func (s *Store) resetQuantities() {
	s.quantities = make(map[string]int, len(s.order.Lines))
	for _, l := range s.order.Lines {
		s.quantities[l.ProductID] = l.Quantity
	}
}

// Order returns the working copy, if an order is selected.
func (s *Store) Order() (entities.Order, bool) {
	if s.order == nil {
		return entities.Order{}, false
	}
	out := *s.order
	out.Lines = append([]entities.OrderLine(nil), s.order.Lines...)
	return out, true
}

// SetQuantity overrides the quantity of productID. Non-positive quantities and
// products absent from the working copy are rejected without any state change.
func (s *Store) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if s.order == nil {
		return ErrNoOrderSelected
	}
	if !s.hasProduct(productID) {
		return ErrUnknownProduct
	}
	s.quantities[productID] = quantity
	s.state = Modified
	return nil
}

// SetQuantityText applies raw text input from the quantity field. Anything that is not
// a positive integer is ignored; the return value reports whether it was applied.
func (s *Store) SetQuantityText(productID, text string) bool {
	q, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return s.SetQuantity(productID, q) == nil
}

// DeleteLine removes every line of productID from the working copy.
func (s *Store) DeleteLine(productID string) error {
	if s.order == nil {
		return ErrNoOrderSelected
	}
	if !s.hasProduct(productID) {
		return ErrUnknownProduct
	}
	kept := s.order.Lines[:0:0]
	for _, l := range s.order.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.order.Lines = kept
	delete(s.quantities, productID)
	s.state = Modified
	return nil
}

func (s *Store) hasProduct(productID string) bool {
	for _, l := range s.order.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}

// Quantities returns a copy of the override map.
func (s *Store) Quantities() map[string]int {
	out := make(map[string]int, len(s.quantities))
	for k, v := range s.quantities {
		out[k] = v
	}
	return out
}

func (s *Store) State() State {
	return s.state
}

// CanSave reports whether Save would issue a write.
func (s *Store) CanSave() bool {
	return s.order != nil && s.state == Modified
}

// Project computes the display lines and totals of the working copy. errs is keyed by
// product id and holds lines whose price could not be computed.
func (s *Store) Project() ([]pricing.ProjectedLine, pricing.Totals, map[string]error) {
	if s.order == nil {
		return nil, pricing.Aggregate(nil), nil
	}
	lines, errs := pricing.ProjectAll(s.order.Lines, s.quantities)
	return lines, pricing.Aggregate(lines), errs
}

// Patch is the full desired line set of the working copy. Deleted lines are absent.
func (s *Store) Patch() (entities.LinePatch, error) {
	if s.order == nil {
		return entities.LinePatch{}, ErrNoOrderSelected
	}
	patch := entities.LinePatch{
		OrderID: s.order.ID,
		Lines:   make([]entities.LinePatchItem, 0, len(s.order.Lines)),
	}
	for _, l := range s.order.Lines {
		patch.Lines = append(patch.Lines, entities.LinePatchItem{
			VariantID: l.VariantID,
			Quantity:  pricing.EffectiveQuantity(l, s.quantities),
		})
	}
	return patch, nil
}

// Save sends the patch through saver. It returns ErrSaveDisabled while Clean. On
// failure the store stays Modified; on success the working copy becomes the new
// baseline and the store is Clean.
func (s *Store) Save(ctx context.Context, saver Saver) (entities.LinePatch, error) {
	if s.order == nil {
		return entities.LinePatch{}, ErrNoOrderSelected
	}
	if s.state == Clean {
		return entities.LinePatch{}, ErrSaveDisabled
	}

	patch, err := s.Patch()
	if err != nil {
		return entities.LinePatch{}, err
	}
	if err := saver.UpdateLines(ctx, patch); err != nil {
		return patch, err
	}

	for i := range s.order.Lines {
		s.order.Lines[i].Quantity = pricing.EffectiveQuantity(s.order.Lines[i], s.quantities)
	}
	s.resetQuantities()
	s.state = Clean
	return patch, nil
}
