package request

import "strings"

// SearchRequest restarts the product search. An empty query lists every product.
type SearchRequest struct {
	Query string `json:"query"`
}

func (r SearchRequest) ResolveQuery() string {
	return strings.TrimSpace(r.Query)
}

type SelectProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (r SelectProductRequest) ResolveProductID() string {
	return strings.TrimSpace(r.ProductID)
}
