package pricing

import (
	"errors"
	"testing"

	"order_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(productID, unitPrice string, qty int, d entities.Discount) entities.OrderLine {
	return entities.OrderLine{
		ProductID: productID,
		VariantID: "v-" + productID,
		Title:     "Product " + productID,
		UnitPrice: dec(unitPrice),
		Quantity:  qty,
		Discount:  d,
	}
}

func TestParseDiscount(t *testing.T) {
	cases := []struct {
		in    string
		kind  entities.DiscountKind
		value string
	}{
		{in: "-", kind: entities.DiscountNone, value: "0"},
		{in: "", kind: entities.DiscountNone, value: "0"},
		{in: "  -  ", kind: entities.DiscountNone, value: "0"},
		{in: "10 %", kind: entities.DiscountPercent, value: "10"},
		{in: "12.5%", kind: entities.DiscountPercent, value: "12.5"},
		{in: "50", kind: entities.DiscountAbsolute, value: "50"},
		{in: "7.25", kind: entities.DiscountAbsolute, value: "7.25"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := ParseDiscount(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, d.Kind)
			assert.True(t, d.Value.Equal(dec(tc.value)), "value %s", d.Value)
		})
	}

	for _, bad := range []string{"abc", "10 %%", "%", "-5", "150 %", "ten percent"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseDiscount(bad)
			assert.True(t, errors.Is(err, ErrInvalidDiscountFormat), "got %v", err)
		})
	}
}

func TestDiscountFromApplied_MatchesStringEncoding(t *testing.T) {
	structured, err := DiscountFromApplied(&entities.AppliedDiscount{ValueType: "percentage", Value: "10"})
	require.NoError(t, err)
	text, err := ParseDiscount("10 %")
	require.NoError(t, err)
	assert.Equal(t, text.Kind, structured.Kind)
	assert.True(t, Resolve(dec("100"), 2, text).Equal(Resolve(dec("100"), 2, structured)))

	structured, err = DiscountFromApplied(&entities.AppliedDiscount{ValueType: "fixed_amount", Value: "50"})
	require.NoError(t, err)
	text, err = ParseDiscount("50")
	require.NoError(t, err)
	assert.Equal(t, text.Kind, structured.Kind)
	assert.True(t, text.Value.Equal(structured.Value))

	none, err := DiscountFromApplied(nil)
	require.NoError(t, err)
	assert.Equal(t, entities.DiscountNone, none.Kind)

	_, err = DiscountFromApplied(&entities.AppliedDiscount{ValueType: "bogus", Value: "1"})
	assert.ErrorIs(t, err, ErrInvalidDiscountFormat)

	for _, value := range []string{"ten", "", "1O"} {
		_, err = DiscountFromApplied(&entities.AppliedDiscount{ValueType: "percentage", Value: value})
		assert.ErrorIs(t, err, ErrInvalidDiscountFormat, "value %q", value)
	}
	_, err = DiscountFromApplied(&entities.AppliedDiscount{ValueType: "percentage", Value: "120"})
	assert.ErrorIs(t, err, ErrInvalidDiscountFormat)
}

func TestDiscountForLine_PrefersStructured(t *testing.T) {
	d, err := DiscountForLine(entities.RawOrderLine{
		AppliedDiscount: &entities.AppliedDiscount{ValueType: "percentage", Value: "5"},
		DiscountText:    "garbage",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.DiscountPercent, d.Kind)
}

func TestFormatDiscount(t *testing.T) {
	assert.Equal(t, "-", FormatDiscount(None()))
	assert.Equal(t, "10 %", FormatDiscount(Percent(dec("10"))))
	assert.Equal(t, "50", FormatDiscount(Absolute(dec("50"))))
}

func TestProject_FinalPriceProperties(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		p, err := Project(line("p1", "19.99", 3, None()), nil)
		require.NoError(t, err)
		assert.Equal(t, "59.97", p.FinalPrice.StringFixed(2))
		assert.True(t, p.DiscountedAmount.IsZero())
		assert.Equal(t, "-", p.DiscountText)
	})

	t.Run("percent", func(t *testing.T) {
		p, err := Project(line("p1", "33.33", 3, Percent(dec("15"))), nil)
		require.NoError(t, err)
		want := Round2(dec("33.33").Mul(dec("3")).Mul(dec("0.85")))
		assert.True(t, p.FinalPrice.Equal(want), "got %s want %s", p.FinalPrice, want)
	})

	t.Run("absolute", func(t *testing.T) {
		p, err := Project(line("p1", "12.50", 4, Absolute(dec("7.5"))), nil)
		require.NoError(t, err)
		assert.Equal(t, "42.50", p.FinalPrice.StringFixed(2))
		assert.Equal(t, "50.00", p.Subtotal.StringFixed(2))
	})

	t.Run("absolute larger than subtotal stays negative", func(t *testing.T) {
		p, err := Project(line("p1", "10", 1, Absolute(dec("25"))), nil)
		require.NoError(t, err)
		assert.Equal(t, "-15.00", p.FinalPrice.StringFixed(2))
	})

	t.Run("override quantity wins", func(t *testing.T) {
		p, err := Project(line("p1", "10", 1, None()), map[string]int{"p1": 5})
		require.NoError(t, err)
		assert.Equal(t, 5, p.Quantity)
		assert.Equal(t, "50.00", p.FinalPrice.StringFixed(2))
	})

	t.Run("invalid descriptor is rejected", func(t *testing.T) {
		l := line("p1", "10", 2, entities.Discount{})
		_, parseErr := ParseDiscount("oops")
		l.Err = parseErr
		p, err := Project(l, nil)
		assert.ErrorIs(t, err, ErrInvalidDiscountFormat)
		assert.True(t, p.Rejected())
		assert.ErrorIs(t, p.Cause(), ErrInvalidDiscountFormat)
		assert.Equal(t, 2, p.Quantity)
	})

	t.Run("line data error is rejected", func(t *testing.T) {
		l := line("p1", "0", 3, entities.Discount{})
		l.Err = ErrInvalidLineData
		p, err := Project(l, nil)
		assert.ErrorIs(t, err, ErrInvalidLineData)
		assert.True(t, p.Rejected())
		assert.True(t, p.FinalPrice.IsZero())
		assert.Equal(t, 3, p.Quantity)
	})
}

func TestAggregate(t *testing.T) {
	t.Run("worked example", func(t *testing.T) {
		lines := []entities.OrderLine{
			line("p1", "100", 2, Percent(dec("10"))),
			line("p2", "50", 1, None()),
		}
		projected, errs := ProjectAll(lines, map[string]int{"p1": 2, "p2": 1})
		require.Nil(t, errs)
		assert.Equal(t, "180.00", projected[0].FinalPrice.StringFixed(2))
		assert.Equal(t, "50.00", projected[1].FinalPrice.StringFixed(2))

		totals := Aggregate(projected)
		assert.Equal(t, 3, totals.Quantity)
		assert.Equal(t, "230.00", totals.FinalPrice.StringFixed(2))
	})

	t.Run("sum first then round", func(t *testing.T) {
		// 3 x 0.335 rounds per line to 0.34 (sum 1.02) but sums exactly to 1.005 => 1.01
		lines := []entities.OrderLine{
			line("a", "0.335", 1, None()),
			line("b", "0.335", 1, None()),
			line("c", "0.335", 1, None()),
		}
		projected, _ := ProjectAll(lines, nil)
		assert.Equal(t, "1.01", Aggregate(projected).FinalPrice.StringFixed(2))
	})

	t.Run("empty", func(t *testing.T) {
		totals := Aggregate(nil)
		assert.Equal(t, 0, totals.Quantity)
		assert.Equal(t, "0.00", totals.FinalPrice.StringFixed(2))
	})

	t.Run("rejected lines count quantity only", func(t *testing.T) {
		bad := line("bad", "10", 4, entities.Discount{})
		bad.Err = ErrInvalidDiscountFormat
		projected, errs := ProjectAll([]entities.OrderLine{line("ok", "10", 1, None()), bad}, nil)
		assert.Len(t, errs, 1)
		totals := Aggregate(projected)
		assert.Equal(t, 5, totals.Quantity)
		assert.Equal(t, "10.00", totals.FinalPrice.StringFixed(2))
	})
}
