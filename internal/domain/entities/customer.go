package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind identifies how a discount value is applied to a line.
type DiscountKind string

const (
	DiscountNone     DiscountKind = "none"
	DiscountPercent  DiscountKind = "percent"
	DiscountAbsolute DiscountKind = "absolute"
)

// Discount is the typed discount descriptor. It is parsed once when orders enter the
// desk; nothing downstream looks at the serialized form again.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// OrderLine is a draft order line as seen by the desk.
//
// Err is set when the discount descriptor or the stored line data could not be read;
// such a line is still listed and still persisted, but it has no computed price.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Discount  Discount        `json:"discount"`
	Err       error           `json:"-"`
	ImageURL  *string         `json:"image_url"`
}

// Order is a draft order belonging to a Customer.
type Order struct {
	ID             string      `json:"order_id"`
	Name           string      `json:"order_name"`
	CreatedAt      time.Time   `json:"created_at"`
	BillingAddress *Address    `json:"billing_address,omitempty"`
	SalesPerson    string      `json:"sales_person,omitempty"`
	Lines          []OrderLine `json:"line_items"`
}

// Customer groups every draft order of one platform customer.
type Customer struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Orders    []Order `json:"orders"`
}

// FullName returns "First Last".
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// FindOrder returns the order with the given id.
func (c Customer) FindOrder(orderID string) (Order, bool) {
	for _, o := range c.Orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}
