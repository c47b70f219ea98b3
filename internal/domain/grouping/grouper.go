package grouping

import (
	"strings"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"
)

const gidPrefix = "gid://shopify/"

// GlobalIDKind is the resource segment of a platform global identifier.
type GlobalIDKind string

const (
	KindProduct        GlobalIDKind = "Product"
	KindProductVariant GlobalIDKind = "ProductVariant"
)

// EncodeGlobalID builds "gid://shopify/<kind>/<id>". Ids already in global form are
// returned unchanged.
func EncodeGlobalID(kind GlobalIDKind, id string) string {
	if strings.HasPrefix(id, gidPrefix) {
		return id
	}
	return gidPrefix + string(kind) + "/" + id
}

// Grouping is the per-customer view of an order snapshot.
type Grouping struct {
	Customers map[string]*entities.Customer

	order      []string
	ProductIDs []string
	VariantIDs []string
}

// Group buckets orders by customer. Orders without a customer are dropped. Orders keep
// the input order within a customer and customers keep first-seen order.
//
// Each line's discount descriptor is parsed here, once; a malformed descriptor or a
// data error from the store is recorded on the line instead of failing the snapshot.
func Group(orders []entities.RawOrder) *Grouping {
	g := &Grouping{Customers: make(map[string]*entities.Customer)}
	seenProducts := make(map[string]struct{})
	seenVariants := make(map[string]struct{})

	for _, raw := range orders {
		if raw.Customer == nil || strings.TrimSpace(raw.Customer.ID) == "" {
			continue
		}

		c, ok := g.Customers[raw.Customer.ID]
		if !ok {
			c = &entities.Customer{
				ID:        raw.Customer.ID,
				FirstName: raw.Customer.FirstName,
				LastName:  raw.Customer.LastName,
				Email:     raw.Customer.Email,
				Phone:     raw.Customer.Phone,
			}
			g.Customers[c.ID] = c
			g.order = append(g.order, c.ID)
		}

		order := entities.Order{
			ID:             raw.ID,
			Name:           raw.Name,
			CreatedAt:      raw.CreatedAt,
			BillingAddress: raw.BillingAddress,
			SalesPerson:    raw.SalesPerson,
			Lines:          make([]entities.OrderLine, 0, len(raw.Lines)),
		}
		for _, rl := range raw.Lines {
			d, err := pricing.DiscountForLine(rl)
			if rl.DataErr != nil {
				d, err = entities.Discount{}, rl.DataErr
			}
			order.Lines = append(order.Lines, entities.OrderLine{
				ProductID: rl.ProductID,
				VariantID: rl.VariantID,
				Title:     rl.Title,
				UnitPrice: rl.UnitPrice,
				Quantity:  rl.Quantity,
				Discount:  d,
				Err:       err,
				ImageURL:  rl.ImageURL,
			})

			pgid := EncodeGlobalID(KindProduct, rl.ProductID)
			if _, dup := seenProducts[pgid]; !dup && rl.ProductID != "" {
				seenProducts[pgid] = struct{}{}
				g.ProductIDs = append(g.ProductIDs, pgid)
			}
			vgid := EncodeGlobalID(KindProductVariant, rl.VariantID)
			if _, dup := seenVariants[vgid]; !dup && rl.VariantID != "" {
				seenVariants[vgid] = struct{}{}
				g.VariantIDs = append(g.VariantIDs, vgid)
			}
		}
		c.Orders = append(c.Orders, order)
	}
	return g
}

// List returns customers in first-seen order.
func (g *Grouping) List() []*entities.Customer {
	out := make([]*entities.Customer, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.Customers[id])
	}
	return out
}

// First returns the first-seen customer.
func (g *Grouping) First() (*entities.Customer, bool) {
	if len(g.order) == 0 {
		return nil, false
	}
	return g.Customers[g.order[0]], true
}

// ApplyImages sets every line's image from the lookup result: variant image first,
// then product image, else nil. A nil set clears every image.
func (g *Grouping) ApplyImages(set *entities.ImageSet) {
	for _, id := range g.order {
		c := g.Customers[id]
		for oi := range c.Orders {
			lines := c.Orders[oi].Lines
			for li := range lines {
				lines[li].ImageURL = resolveImage(set, lines[li])
			}
		}
	}
}

// ReplaceOrder swaps in a persisted working copy of one of the customer's orders.
func (g *Grouping) ReplaceOrder(customerID string, order entities.Order) bool {
	c, ok := g.Customers[customerID]
	if !ok {
		return false
	}
	for i := range c.Orders {
		if c.Orders[i].ID == order.ID {
			c.Orders[i] = order
			return true
		}
	}
	return false
}

func resolveImage(set *entities.ImageSet, line entities.OrderLine) *string {
	if set == nil {
		return nil
	}
	if url, ok := set.Variants[EncodeGlobalID(KindProductVariant, line.VariantID)]; ok && url != "" {
		return &url
	}
	if url, ok := set.Products[EncodeGlobalID(KindProduct, line.ProductID)]; ok && url != "" {
		return &url
	}
	return nil
}
