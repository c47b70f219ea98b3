package response

import (
	"order_desk/internal/domain/pricing"
	"order_desk/internal/usecase"
	"time"

	"github.com/shopspring/decimal"
)

type NotificationResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type CustomerOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderOptionResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

type OrderResponse struct {
	OrderID        string    `json:"order_id"`
	OrderName      string    `json:"order_name"`
	CreatedAt      time.Time `json:"created_at"`
	DateLabel      string    `json:"date_label"`
	SalesPerson    string    `json:"sales_person"`
	BillingAddress string    `json:"billing_address"`
}

// LineResponse carries money as fixed 2-decimal strings. Price fields are empty for a
// line whose discount could not be read; Error explains why.
type LineResponse struct {
	ProductID        string  `json:"product_id"`
	VariantID        string  `json:"variant_id"`
	Title            string  `json:"title"`
	ImageURL         *string `json:"image_url"`
	UnitPrice        string  `json:"unit_price"`
	Quantity         int     `json:"quantity"`
	Discount         string  `json:"discount"`
	Subtotal         string  `json:"subtotal,omitempty"`
	DiscountedAmount string  `json:"discounted_amount,omitempty"`
	FinalPrice       string  `json:"final_price,omitempty"`
	Error            string  `json:"error,omitempty"`
}

type TotalsResponse struct {
	TotalQuantity   int    `json:"total_quantity"`
	TotalFinalPrice string `json:"total_final_price"`
}

type SessionResponse struct {
	SessionID     string                   `json:"session_id"`
	Customers     []CustomerOptionResponse `json:"customers"`
	Customer      *CustomerResponse        `json:"customer,omitempty"`
	Orders        []OrderOptionResponse    `json:"orders"`
	Order         *OrderResponse           `json:"order,omitempty"`
	Lines         []LineResponse           `json:"lines"`
	Totals        TotalsResponse           `json:"totals"`
	State         string                   `json:"state"`
	CanSave       bool                     `json:"can_save"`
	Notifications []NotificationResponse   `json:"notifications"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func FromSessionView(v usecase.SessionView) SessionResponse {
	res := SessionResponse{
		SessionID:     v.ID,
		Customers:     make([]CustomerOptionResponse, 0, len(v.Customers)),
		Orders:        make([]OrderOptionResponse, 0, len(v.Orders)),
		Lines:         make([]LineResponse, 0, len(v.Lines)),
		Totals:        TotalsResponse{TotalQuantity: v.Totals.Quantity, TotalFinalPrice: money(v.Totals.FinalPrice)},
		State:         v.State,
		CanSave:       v.CanSave,
		Notifications: fromNotifications(v.Notifications),
	}
	for _, c := range v.Customers {
		res.Customers = append(res.Customers, CustomerOptionResponse{ID: c.ID, Name: c.Name})
	}
	for _, o := range v.Orders {
		res.Orders = append(res.Orders, OrderOptionResponse{ID: o.ID, Name: o.Name, Label: o.Label})
	}
	if v.Customer != nil {
		res.Customer = &CustomerResponse{
			ID:        v.Customer.ID,
			FirstName: v.Customer.FirstName,
			LastName:  v.Customer.LastName,
			Email:     v.Customer.Email,
			Phone:     v.Customer.Phone,
		}
	}
	if v.Order != nil {
		res.Order = &OrderResponse{
			OrderID:        v.Order.ID,
			OrderName:      v.Order.Name,
			CreatedAt:      v.Order.CreatedAt,
			DateLabel:      v.Order.DateLabel,
			SalesPerson:    v.Order.SalesPerson,
			BillingAddress: v.Order.BillingAddress,
		}
	}
	for _, l := range v.Lines {
		res.Lines = append(res.Lines, fromLine(l, v.LineErrors[l.ProductID]))
	}
	return res
}

func fromLine(l pricing.ProjectedLine, lineErr string) LineResponse {
	out := LineResponse{
		ProductID: l.ProductID,
		VariantID: l.VariantID,
		Title:     l.Title,
		ImageURL:  l.ImageURL,
		UnitPrice: money(l.UnitPrice),
		Quantity:  l.Quantity,
		Discount:  l.DiscountText,
	}
	if l.Rejected() {
		out.Error = lineErr
		return out
	}
	out.Subtotal = money(l.Subtotal)
	out.DiscountedAmount = money(l.DiscountedAmount)
	out.FinalPrice = money(l.FinalPrice)
	return out
}

func fromNotifications(ns []usecase.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, NotificationResponse{Message: n.Message, Kind: string(n.Kind)})
	}
	return out
}
