package pricing

import (
	"fmt"

	"order_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ProjectedLine is a display-ready order line.
//
// Subtotal and FinalPrice are rounded to 2 decimals for display; the exact final
// price is kept so totals can be summed before rounding.
type ProjectedLine struct {
	ProductID        string            `json:"product_id"`
	VariantID        string            `json:"variant_id"`
	Title            string            `json:"title"`
	ImageURL         *string           `json:"image_url"`
	UnitPrice        decimal.Decimal   `json:"unit_price"`
	Quantity         int               `json:"quantity"`
	Discount         entities.Discount `json:"discount"`
	DiscountText     string            `json:"discount_text"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	DiscountedAmount decimal.Decimal   `json:"discounted_amount"`
	FinalPrice       decimal.Decimal   `json:"final_price"`

	exactFinal decimal.Decimal
	rejected   bool
	cause      error
}

// Rejected reports whether the line's price could not be computed.
func (p ProjectedLine) Rejected() bool {
	return p.rejected
}

// Cause is the error that rejected the line, nil for priced lines.
func (p ProjectedLine) Cause() error {
	return p.cause
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// EffectiveQuantity returns the override for the line's product if present, else the
// line's own quantity.
func EffectiveQuantity(line entities.OrderLine, overrides map[string]int) int {
	if q, ok := overrides[line.ProductID]; ok {
		return q
	}
	return line.Quantity
}

// Project computes the display line for line under the given quantity overrides.
//
// A line whose discount descriptor or stored data failed to parse returns an error
// wrapping ErrInvalidDiscountFormat or ErrInvalidLineData together with a rejected
// projection that still carries identity and quantity.
func Project(line entities.OrderLine, overrides map[string]int) (ProjectedLine, error) {
	qty := EffectiveQuantity(line, overrides)
	out := ProjectedLine{
		ProductID: line.ProductID,
		VariantID: line.VariantID,
		Title:     line.Title,
		ImageURL:  line.ImageURL,
		UnitPrice: line.UnitPrice,
		Quantity:  qty,
		Discount:  line.Discount,
	}

	if line.Err != nil {
		out.rejected = true
		out.cause = line.Err
		return out, fmt.Errorf("product %s: %w", line.ProductID, line.Err)
	}

	subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	discounted := Resolve(line.UnitPrice, qty, line.Discount)
	final := subtotal.Sub(discounted)

	out.DiscountText = FormatDiscount(line.Discount)
	out.Subtotal = Round2(subtotal)
	out.DiscountedAmount = Round2(discounted)
	out.FinalPrice = Round2(final)
	out.exactFinal = final
	return out, nil
}

// ProjectAll projects every line, collecting per-line errors instead of stopping.
// errs is keyed by product id.
func ProjectAll(lines []entities.OrderLine, overrides map[string]int) ([]ProjectedLine, map[string]error) {
	projected := make([]ProjectedLine, 0, len(lines))
	var errs map[string]error
	for _, l := range lines {
		p, err := Project(l, overrides)
		if err != nil {
			if errs == nil {
				errs = make(map[string]error)
			}
			errs[l.ProductID] = err
		}
		projected = append(projected, p)
	}
	return projected, errs
}
