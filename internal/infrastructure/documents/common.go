package documents

import (
	"context"

	"order_desk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

const (
	sheetTitle = "Price Breakdown"
	noPrice    = "-"
)

var tableHeaders = []string{"Image", "Product", "Unit Price", "Quantity", "Total Price", "Discount", "Final Price"}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func finalPriceText(l entities.BreakdownLine) string {
	if l.Rejected {
		return noPrice
	}
	return money(l.FinalPrice)
}

// lineImages fetches a thumbnail per line index. Lines without an image, or whose image
// could not be loaded, are absent.
func lineImages(ctx context.Context, src ImageSource, lines []entities.BreakdownLine) map[int][]byte {
	out := map[int][]byte{}
	if src == nil {
		return out
	}
	for i, l := range lines {
		if l.ImageURL == nil || *l.ImageURL == "" {
			continue
		}
		data, err := src.Thumbnail(ctx, *l.ImageURL)
		if err != nil || len(data) == 0 {
			continue
		}
		out[i] = data
	}
	return out
}
