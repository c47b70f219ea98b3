package entities

// ImageSet is the result of one batched image lookup, keyed by global id
// (gid://shopify/Product/<id>, gid://shopify/ProductVariant/<id>).
type ImageSet struct {
	Products map[string]string `json:"products"`
	Variants map[string]string `json:"variants"`
}
