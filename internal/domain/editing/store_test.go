package editing

import (
	"context"
	"errors"
	"testing"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

type saverFunc func(ctx context.Context, patch entities.LinePatch) error

func (f saverFunc) UpdateLines(ctx context.Context, patch entities.LinePatch) error {
	return f(ctx, patch)
}

func sampleOrder() entities.Order {
	return entities.Order{
		ID:   "gid://shopify/DraftOrder/1",
		Name: "#D1",
		Lines: []entities.OrderLine{
			{ProductID: "p1", VariantID: "v1", UnitPrice: decimal.NewFromInt(100), Quantity: 2, Discount: pricing.Percent(decimal.NewFromInt(10))},
			{ProductID: "p2", VariantID: "v2", UnitPrice: decimal.NewFromInt(50), Quantity: 1, Discount: pricing.None()},
		},
	}
}

func sumQuantities(m map[string]int) int {
	total := 0
	for _, q := range m {
		total += q
	}
	return total
}

func TestStore_SelectOrder(t *testing.T) {
	s := NewStore()
	if s.CanSave() {
		t.Fatalf("expected save disabled before selection")
	}
	s.SelectOrder(sampleOrder())

	if s.State() != Clean {
		t.Fatalf("expected clean, got %s", s.State())
	}
	q := s.Quantities()
	if q["p1"] != 2 || q["p2"] != 1 {
		t.Fatalf("unexpected quantities %v", q)
	}
	_, totals, errs := s.Project()
	if errs != nil {
		t.Fatalf("unexpected errors %v", errs)
	}
	if totals.Quantity != 3 || totals.FinalPrice.StringFixed(2) != "230.00" {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestStore_SetQuantity(t *testing.T) {
	t.Run("valid quantity moves to modified", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		if err := s.SetQuantity("p1", 5); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if s.State() != Modified || !s.CanSave() {
			t.Fatalf("expected modified, got %s", s.State())
		}
	})

	t.Run("invalid quantities are rejected without state change", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		for _, q := range []int{0, -3} {
			if err := s.SetQuantity("p1", q); !errors.Is(err, ErrInvalidQuantity) {
				t.Fatalf("expected ErrInvalidQuantity, got %v", err)
			}
		}
		if err := s.SetQuantity("nope", 3); !errors.Is(err, ErrUnknownProduct) {
			t.Fatalf("expected ErrUnknownProduct, got %v", err)
		}
		for _, text := range []string{"", "abc", "1.5", "0", "-1"} {
			if s.SetQuantityText("p1", text) {
				t.Fatalf("expected %q to be ignored", text)
			}
		}
		if s.State() != Clean || s.Quantities()["p1"] != 2 {
			t.Fatalf("state changed on invalid input: %s %v", s.State(), s.Quantities())
		}
	})

	t.Run("text input", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		if !s.SetQuantityText("p2", " 4 ") {
			t.Fatalf("expected text to be applied")
		}
		if s.Quantities()["p2"] != 4 {
			t.Fatalf("expected 4, got %d", s.Quantities()["p2"])
		}
	})

	t.Run("totals follow every edit", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		for _, step := range []struct {
			product string
			qty     int
		}{{"p1", 3}, {"p2", 7}, {"p1", 1}, {"p2", 2}} {
			_ = s.SetQuantity(step.product, step.qty)
			_, totals, _ := s.Project()
			if totals.Quantity != sumQuantities(s.Quantities()) {
				t.Fatalf("expected %d, got %d", sumQuantities(s.Quantities()), totals.Quantity)
			}
		}
		_, totals, _ := s.Project()
		// 100*1*0.9 + 50*2
		if totals.FinalPrice.StringFixed(2) != "190.00" {
			t.Fatalf("expected 190.00, got %s", totals.FinalPrice.StringFixed(2))
		}
	})
}

func TestStore_DeleteLine(t *testing.T) {
	s := NewStore()
	s.SelectOrder(sampleOrder())

	if err := s.DeleteLine("p1"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.State() != Modified {
		t.Fatalf("expected modified, got %s", s.State())
	}
	patch, _ := s.Patch()
	if len(patch.Lines) != 1 || patch.Lines[0].VariantID != "v2" {
		t.Fatalf("deleted line still in patch: %+v", patch.Lines)
	}
	_, totals, _ := s.Project()
	if totals.Quantity != 1 || totals.FinalPrice.StringFixed(2) != "50.00" {
		t.Fatalf("unexpected totals %+v", totals)
	}

	_ = s.DeleteLine("p2")
	_, totals, _ = s.Project()
	if totals.Quantity != 0 || totals.FinalPrice.StringFixed(2) != "0.00" {
		t.Fatalf("expected empty totals, got %+v", totals)
	}

	if err := s.DeleteLine("p2"); !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestStore_DeleteLineKeepsSelectedOrderIntact(t *testing.T) {
	order := sampleOrder()
	s := NewStore()
	s.SelectOrder(order)
	_ = s.DeleteLine("p1")
	if len(order.Lines) != 2 || order.Lines[0].ProductID != "p1" {
		t.Fatalf("source order mutated: %+v", order.Lines)
	}
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled while clean", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		called := false
		_, err := s.Save(ctx, saverFunc(func(context.Context, entities.LinePatch) error {
			called = true
			return nil
		}))
		if !errors.Is(err, ErrSaveDisabled) || called {
			t.Fatalf("expected ErrSaveDisabled without a write, got %v called=%v", err, called)
		}
	})

	t.Run("no order selected", func(t *testing.T) {
		_, err := NewStore().Save(ctx, saverFunc(func(context.Context, entities.LinePatch) error { return nil }))
		if !errors.Is(err, ErrNoOrderSelected) {
			t.Fatalf("expected ErrNoOrderSelected, got %v", err)
		}
	})

	t.Run("failure keeps modified", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		_ = s.SetQuantity("p1", 4)
		boom := errors.New("boom")
		_, err := s.Save(ctx, saverFunc(func(context.Context, entities.LinePatch) error { return boom }))
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if s.State() != Modified || s.Quantities()["p1"] != 4 {
			t.Fatalf("expected modified with edits kept, got %s %v", s.State(), s.Quantities())
		}
	})

	t.Run("success returns to clean with new baseline", func(t *testing.T) {
		s := NewStore()
		s.SelectOrder(sampleOrder())
		_ = s.SetQuantity("p1", 4)
		_ = s.DeleteLine("p2")

		var sent entities.LinePatch
		patch, err := s.Save(ctx, saverFunc(func(_ context.Context, p entities.LinePatch) error {
			sent = p
			return nil
		}))
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if sent.OrderID != "gid://shopify/DraftOrder/1" || len(sent.Lines) != 1 {
			t.Fatalf("unexpected patch %+v", sent)
		}
		if sent.Lines[0] != (entities.LinePatchItem{VariantID: "v1", Quantity: 4}) {
			t.Fatalf("unexpected patch line %+v", sent.Lines[0])
		}
		if len(patch.Lines) != 1 {
			t.Fatalf("expected returned patch, got %+v", patch)
		}
		if s.State() != Clean || s.CanSave() {
			t.Fatalf("expected clean, got %s", s.State())
		}
		order, _ := s.Order()
		if order.Lines[0].Quantity != 4 {
			t.Fatalf("expected baseline quantity 4, got %d", order.Lines[0].Quantity)
		}
	})
}
