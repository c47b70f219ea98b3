package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventDraftOrderUpdated = "draft_order.updated"

// DraftOrderUpdated is published after a line patch has been persisted.
type DraftOrderUpdated struct {
	Type            string          `json:"type"`
	OrderID         string          `json:"order_id"`
	OrderName       string          `json:"order_name"`
	CustomerID      string          `json:"customer_id"`
	Lines           []LinePatchItem `json:"lines"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalFinalPrice decimal.Decimal `json:"total_final_price"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
