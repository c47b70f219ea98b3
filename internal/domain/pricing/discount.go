package pricing

import (
	"errors"
	"fmt"
	"strings"

	"order_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDiscountFormat = errors.New("invalid discount format")
	ErrInvalidLineData       = errors.New("invalid line data")
)

const (
	noDiscountText      = "-"
	valueTypePercentage = "percentage"
	valueTypeFixed      = "fixed_amount"
)

var hundred = decimal.NewFromInt(100)

// None is the zero-discount descriptor.
func None() entities.Discount {
	return entities.Discount{Kind: entities.DiscountNone, Value: decimal.Zero}
}

// Percent builds a percentage discount.
func Percent(v decimal.Decimal) entities.Discount {
	return entities.Discount{Kind: entities.DiscountPercent, Value: v}
}

// Absolute builds an absolute (fixed amount) discount.
func Absolute(v decimal.Decimal) entities.Discount {
	return entities.Discount{Kind: entities.DiscountAbsolute, Value: v}
}

// ParseDiscount parses the display encoding of a discount.
//
//   - "" or "-"          => none
//   - "<number> %" / "<number>%" => percent
//   - "<number>"         => absolute
//
// Anything else, a negative value, or a percentage above 100 is
// ErrInvalidDiscountFormat.
func ParseDiscount(text string) (entities.Discount, error) {
	s := strings.TrimSpace(text)
	if s == "" || s == noDiscountText {
		return None(), nil
	}

	kind := entities.DiscountAbsolute
	if strings.HasSuffix(s, "%") {
		kind = entities.DiscountPercent
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return entities.Discount{}, fmt.Errorf("%w: %q", ErrInvalidDiscountFormat, text)
	}
	return validated(entities.Discount{Kind: kind, Value: v}, text)
}

// DiscountFromApplied converts the structured platform discount. A nil discount is
// none; a value that is not a number is ErrInvalidDiscountFormat.
func DiscountFromApplied(d *entities.AppliedDiscount) (entities.Discount, error) {
	if d == nil {
		return None(), nil
	}
	var build func(decimal.Decimal) entities.Discount
	switch strings.ToLower(strings.TrimSpace(d.ValueType)) {
	case valueTypePercentage, "%":
		build = Percent
	case valueTypeFixed, "absolute":
		build = Absolute
	default:
		return entities.Discount{}, fmt.Errorf("%w: unknown value type %q", ErrInvalidDiscountFormat, d.ValueType)
	}
	v, err := decimal.NewFromString(strings.TrimSpace(d.Value))
	if err != nil {
		return entities.Discount{}, fmt.Errorf("%w: %s value %q", ErrInvalidDiscountFormat, d.ValueType, d.Value)
	}
	return validated(build(v), d.ValueType)
}

// DiscountForLine resolves a raw line's descriptor, preferring the structured form.
func DiscountForLine(line entities.RawOrderLine) (entities.Discount, error) {
	if line.AppliedDiscount != nil {
		return DiscountFromApplied(line.AppliedDiscount)
	}
	return ParseDiscount(line.DiscountText)
}

func validated(d entities.Discount, raw string) (entities.Discount, error) {
	if d.Value.IsNegative() {
		return entities.Discount{}, fmt.Errorf("%w: negative value in %q", ErrInvalidDiscountFormat, raw)
	}
	if d.Kind == entities.DiscountPercent && d.Value.GreaterThan(hundred) {
		return entities.Discount{}, fmt.Errorf("%w: percentage above 100 in %q", ErrInvalidDiscountFormat, raw)
	}
	return d, nil
}

// FormatDiscount renders the display form used on the desk and in exported documents.
func FormatDiscount(d entities.Discount) string {
	switch d.Kind {
	case entities.DiscountPercent:
		return d.Value.String() + " %"
	case entities.DiscountAbsolute:
		return d.Value.String()
	default:
		return noDiscountText
	}
}

// Resolve returns the amount subtracted from unitPrice*quantity. The result is not
// rounded.
func Resolve(unitPrice decimal.Decimal, quantity int, d entities.Discount) decimal.Decimal {
	switch d.Kind {
	case entities.DiscountPercent:
		return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(d.Value).Div(hundred)
	case entities.DiscountAbsolute:
		// No clamping: a fixed discount larger than the line total yields a negative
		// final price, which is shown as-is.
		return d.Value
	default:
		return decimal.Zero
	}
}
