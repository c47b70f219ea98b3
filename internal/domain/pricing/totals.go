package pricing

import "github.com/shopspring/decimal"

// Totals is the footer of an order table. It is always derived from the current
// lines and never stored.
type Totals struct {
	Quantity   int             `json:"total_quantity"`
	FinalPrice decimal.Decimal `json:"total_final_price"`
}

// Aggregate folds projected lines into totals. Final prices are summed exactly and
// rounded once. Rejected lines count toward quantity only.
func Aggregate(lines []ProjectedLine) Totals {
	qty := 0
	sum := decimal.Zero
	for _, l := range lines {
		qty += l.Quantity
		if l.rejected {
			continue
		}
		sum = sum.Add(l.exactFinal)
	}
	return Totals{Quantity: qty, FinalPrice: Round2(sum)}
}
