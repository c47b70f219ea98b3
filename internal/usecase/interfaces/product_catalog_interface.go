package interfaces

import (
	"context"
	"order_desk/internal/domain/entities"
)

// IProductCatalog returns every product matching a free-text query, variants included.
type IProductCatalog interface {
	SearchProducts(ctx context.Context, query string) ([]entities.Product, error)
}
