package request

import (
	"encoding/json"
	"strings"
)

type SelectCustomerRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

func (r SelectCustomerRequest) ResolveCustomerID() string {
	return strings.TrimSpace(r.CustomerID)
}

type SelectOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (r SelectOrderRequest) ResolveOrderID() string {
	return strings.TrimSpace(r.OrderID)
}

// SetQuantityRequest accepts the quantity as typed into the field: a JSON number or
// a string ("3", " 3 ", "abc"). Validation happens in the use case.
type SetQuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// ResolveQuantity returns the raw text of the quantity field.
func (r SetQuantityRequest) ResolveQuantity() string {
	raw := strings.TrimSpace(string(r.Quantity))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Quantity, &s); err == nil {
		return s
	}
	return raw
}
