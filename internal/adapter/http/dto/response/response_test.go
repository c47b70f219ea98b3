package response

import (
	"testing"
	"time"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"
	"order_desk/internal/domain/search"
	"order_desk/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromSessionView(t *testing.T) {
	good, _ := pricing.Project(entities.OrderLine{
		ProductID: "1", VariantID: "11", Title: "Lamp",
		UnitPrice: decimal.NewFromInt(100), Quantity: 2, Discount: pricing.Percent(decimal.NewFromInt(10)),
	}, nil)
	bad, err := pricing.Project(entities.OrderLine{
		ProductID: "2", VariantID: "21", Title: "Shade",
		UnitPrice: decimal.NewFromInt(50), Quantity: 1, Err: pricing.ErrInvalidDiscountFormat,
	}, nil)
	lines := []pricing.ProjectedLine{good, bad}

	v := usecase.SessionView{
		ID:         "s-1",
		Customers:  []usecase.CustomerOption{{ID: "c1", Name: "Alice Doe"}},
		Customer:   &usecase.CustomerDetail{ID: "c1", FirstName: "Alice", LastName: "Doe"},
		Orders:     []usecase.OrderOption{{ID: "o1", Name: "#D1", Label: "05/03/2024 (09:00:00 am UTC)"}},
		Order:      &usecase.OrderDetail{ID: "o1", Name: "#D1", CreatedAt: time.Unix(0, 0).UTC(), BillingAddress: "Not Provided"},
		Lines:      lines,
		LineErrors: map[string]string{"2": err.Error()},
		Totals:     pricing.Aggregate(lines),
		State:      "modified",
		CanSave:    true,
		Notifications: []usecase.Notification{
			{Message: "Draft order updated successfully", Kind: usecase.NotificationSuccess},
		},
	}

	res := FromSessionView(v)
	if res.SessionID != "s-1" || res.State != "modified" || !res.CanSave {
		t.Fatalf("unexpected header fields: %+v", res)
	}
	if len(res.Customers) != 1 || res.Customer.FirstName != "Alice" || res.Order.OrderName != "#D1" {
		t.Fatalf("unexpected customer/order: %+v", res)
	}
	if res.Lines[0].FinalPrice != "180.00" || res.Lines[0].Subtotal != "200.00" || res.Lines[0].DiscountedAmount != "20.00" || res.Lines[0].Discount != "10 %" {
		t.Fatalf("unexpected first line: %+v", res.Lines[0])
	}
	if res.Lines[1].FinalPrice != "" || res.Lines[1].Error == "" || res.Lines[1].UnitPrice != "50.00" {
		t.Fatalf("unexpected rejected line: %+v", res.Lines[1])
	}
	if res.Totals.TotalQuantity != 3 || res.Totals.TotalFinalPrice != "180.00" {
		t.Fatalf("unexpected totals: %+v", res.Totals)
	}
	if len(res.Notifications) != 1 || res.Notifications[0].Kind != "success" {
		t.Fatalf("unexpected notifications: %+v", res.Notifications)
	}
}

func TestFromSessionView_Empty(t *testing.T) {
	res := FromSessionView(usecase.SessionView{ID: "s-2", State: "clean"})
	if res.Lines == nil || res.Customers == nil || res.Orders == nil || res.Notifications == nil {
		t.Fatalf("expected empty slices, got %+v", res)
	}
	if res.Totals.TotalFinalPrice != "0.00" {
		t.Fatalf("expected 0.00, got %s", res.Totals.TotalFinalPrice)
	}
}

func TestFromSearchView(t *testing.T) {
	thumb := "red.png"
	v := usecase.SearchView{
		Query: "chair",
		Results: []search.Result{
			{ID: "p1", Title: "Chair", Available: 9, Price: decimal.RequireFromString("80"), Variants: []search.VariantResult{
				{ID: "v1", Title: "Red", Available: 4, Price: decimal.RequireFromString("70.5"), Thumbnail: &thumb},
				{ID: "v2", Title: "Blue", Available: 5, Price: decimal.RequireFromString("80")},
			}},
		},
		Total:    1,
		Selected: []search.Tag{{ID: "p1", Title: "Chair"}},
	}

	res := FromSearchView(v)
	if res.Query != "chair" || res.Total != 1 || res.HasMore {
		t.Fatalf("unexpected header: %+v", res)
	}
	if res.Results[0].Price != "80.00" || len(res.Results[0].Variants) != 2 || res.Results[0].Variants[0].Price != "70.50" {
		t.Fatalf("unexpected result: %+v", res.Results[0])
	}
	if len(res.Selected) != 1 || res.Selected[0].Title != "Chair" {
		t.Fatalf("unexpected tags: %+v", res.Selected)
	}
}
