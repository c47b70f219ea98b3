package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppliedDiscount is the structured discount attached to a draft order line by the
// commerce platform.
//
// ValueType values seen on the platform:
//   - "percentage": Value is a percentage in [0, 100]
//   - "fixed_amount": Value is an absolute amount subtracted from the line
//
// Value is kept as the platform sent it and parsed with the rest of the descriptor.
type AppliedDiscount struct {
	ValueType string `json:"value_type"`
	Value     string `json:"value"`
}

// RawOrderLine is one line of a draft order exactly as the order store returns it.
//
// The discount may arrive structured (AppliedDiscount) or already serialized for
// display (DiscountText, e.g. "10 %", "50" or "-"). AppliedDiscount wins when both
// are set.
//
// DataErr is set by the order store when a required field (unit price) is missing or
// unreadable.
type RawOrderLine struct {
	ProductID       string           `json:"product_id"`
	VariantID       string           `json:"variant_id"`
	Title           string           `json:"title"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	Quantity        int              `json:"quantity"`
	AppliedDiscount *AppliedDiscount `json:"applied_discount,omitempty"`
	DiscountText    string           `json:"discount,omitempty"`
	ImageURL        *string          `json:"image_url,omitempty"`
	DataErr         error            `json:"-"`
}

// CustomerRef is the customer block embedded in a draft order.
type CustomerRef struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// Address is a billing address. Every field is optional on the platform.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

// RawOrder is an open (not yet confirmed) draft order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - status = "open" for orders shown on the desk
type RawOrder struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	CreatedAt      time.Time      `json:"created_at"`
	Customer       *CustomerRef   `json:"customer,omitempty"`
	BillingAddress *Address       `json:"billing_address,omitempty"`
	SalesPerson    string         `json:"sales_person,omitempty"`
	Lines          []RawOrderLine `json:"line_items"`
}

// LinePatchItem is one line of the persisted line set.
type LinePatchItem struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// LinePatch is the full desired post-edit line set for one order. Lines missing from
// Lines are removed from the order by the store.
type LinePatch struct {
	OrderID string          `json:"order_id"`
	Lines   []LinePatchItem `json:"lines"`
}
