package entities

import "github.com/shopspring/decimal"

// ProductVariant is a purchasable variant of a catalog product.
type ProductVariant struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	ImageURL          string          `json:"image_url,omitempty"`
	InventoryQuantity int             `json:"inventory_quantity"`
	Price             decimal.Decimal `json:"price"`
}

// Product is a catalog product returned by the product search collaborator.
type Product struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	FeaturedImageURL string           `json:"featured_image_url,omitempty"`
	TotalInventory   int              `json:"total_inventory"`
	MaxVariantPrice  decimal.Decimal  `json:"max_variant_price"`
	Variants         []ProductVariant `json:"variants"`
}
