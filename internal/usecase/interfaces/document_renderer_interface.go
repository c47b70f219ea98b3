package interfaces

import (
	"context"
	"order_desk/internal/domain/entities"
)

// IDocumentRenderer renders a price breakdown into one export format (pdf, xlsx).

type IDocumentRenderer interface {
	Render(ctx context.Context, breakdown entities.PriceBreakdown) ([]byte, error)
	ContentType() string
	Extension() string
}
