package interfaces

import (
	"context"
	"order_desk/internal/domain/entities"
)

// IImageRepository resolves product and variant images by global id in one batch.
type IImageRepository interface {
	LookupImages(ctx context.Context, productGIDs, variantGIDs []string) (entities.ImageSet, error)
}
