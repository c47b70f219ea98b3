package entities

import "github.com/shopspring/decimal"

// NotProvided is printed for optional customer and address fields that are empty.
const NotProvided = "Not Provided"

// BreakdownLine is one row of the price breakdown table.
type BreakdownLine struct {
	Title        string          `json:"title"`
	ImageURL     *string         `json:"image_url,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	DiscountText string          `json:"discount"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	Rejected     bool            `json:"rejected,omitempty"`
}

// PriceBreakdown is everything printed on an exported order document. Text fields
// are already formatted for display.
type PriceBreakdown struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`

	OrderName   string `json:"order_name"`
	OrderID     string `json:"order_id"`
	OrderDate   string `json:"order_date"`
	SalesPerson string `json:"sales_person"`
	Address     string `json:"address"`
	Note        string `json:"note"`

	Lines           []BreakdownLine `json:"lines"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalFinalPrice decimal.Decimal `json:"total_final_price"`
}

// Document is a rendered export ready to be sent to the client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}
