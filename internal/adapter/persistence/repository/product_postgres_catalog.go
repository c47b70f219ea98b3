package repository

import (
	"context"
	"fmt"
	"strings"

	"order_desk/internal/domain/entities"
	"order_desk/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// pgxQuerier is satisfied by *pgxpool.Pool and pgx.Tx.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const (
	searchProductsSQL = `
SELECT id, title, COALESCE(featured_image_url, ''), total_inventory, max_variant_price::text
FROM products
WHERE title ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY title, id`

	productVariantsSQL = `
SELECT product_id, id, title, COALESCE(image_url, ''), inventory_quantity, price::text
FROM product_variants
WHERE product_id = ANY($1)
ORDER BY product_id, position, id`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductPostgresCatalog serves the search box from the catalog tables.
//
// Tables:
//   - products(id, title, featured_image_url, total_inventory, max_variant_price)
//   - product_variants(id, product_id, title, image_url, inventory_quantity, price, position)

type ProductPostgresCatalog struct {
	db pgxQuerier
}

var _ interfaces.IProductCatalog = (*ProductPostgresCatalog)(nil)

func NewProductPostgresCatalog(db pgxQuerier) *ProductPostgresCatalog {
	return &ProductPostgresCatalog{db: db}
}

// SearchProducts matches titles case-insensitively; the empty query lists everything.
func (c *ProductPostgresCatalog) SearchProducts(ctx context.Context, query string) ([]entities.Product, error) {
	if c.db == nil {
		return nil, fmt.Errorf("product catalog not configured")
	}
	rows, err := c.db.Query(ctx, searchProductsSQL, likeEscaper.Replace(strings.TrimSpace(query)))
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	var products []entities.Product
	index := map[string]int{}
	for rows.Next() {
		var (
			p     entities.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.FeaturedImageURL, &p.TotalInventory, &price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if p.MaxVariantPrice, err = decimal.NewFromString(price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("product %s price %q: %w", p.ID, price, err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	if err := c.attachVariants(ctx, ids, products, index); err != nil {
		return nil, err
	}
	log.Debugf("[desk][catalog] search query=%q products=%d", query, len(products))
	return products, nil
}

func (c *ProductPostgresCatalog) attachVariants(ctx context.Context, ids []string, products []entities.Product, index map[string]int) error {
	rows, err := c.db.Query(ctx, productVariantsSQL, ids)
	if err != nil {
		return fmt.Errorf("load variants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			productID string
			v         entities.ProductVariant
			price     string
		)
		if err := rows.Scan(&productID, &v.ID, &v.Title, &v.ImageURL, &v.InventoryQuantity, &price); err != nil {
			return fmt.Errorf("scan variant: %w", err)
		}
		if v.Price, err = decimal.NewFromString(price); err != nil {
			return fmt.Errorf("variant %s price %q: %w", v.ID, price, err)
		}
		i, ok := index[productID]
		if !ok {
			continue
		}
		products[i].Variants = append(products[i].Variants, v)
	}
	return rows.Err()
}
