package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/grouping"
	"order_desk/internal/domain/pricing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo serves canned responses and records the requests it received.
type fakeDynamo struct {
	scanPages  []*dynamodb.ScanOutput
	scanCalls  int
	item       map[string]types.AttributeValue
	getErr     error
	updateErr  error
	updates    []*dynamodb.UpdateItemInput
	batch      func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error)
	batchCalls int
}

func (f *fakeDynamo) GetItem(_ context.Context, _ *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dynamodb.GetItemOutput{Item: f.item}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanCalls >= len(f.scanPages) {
		return &dynamodb.ScanOutput{}, nil
	}
	page := f.scanPages[f.scanCalls]
	f.scanCalls++
	return page, nil
}

func (f *fakeDynamo) BatchGetItem(_ context.Context, in *dynamodb.BatchGetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchGetItemOutput, error) {
	f.batchCalls++
	return f.batch(in)
}

func marshalItem(t *testing.T, it draftOrderItem) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func sampleItem() draftOrderItem {
	email := "alice@example.com"
	return draftOrderItem{
		ID:        "o1",
		Name:      "#D1",
		Status:    draftOrderStatusOpen,
		CreatedAt: "2024-03-05T09:00:00Z",
		Customer:  &customerItem{ID: "c1", FirstName: "Alice", LastName: "Doe", Email: &email},
		BillingAddress: &addressItem{
			Address1: "12 MG Road", City: "Pune", Country: "India", Zip: "411001",
		},
		SalesPerson: "Ravi",
		LineItems: []draftOrderLineItem{
			{ProductID: "1", VariantID: "11", Title: "Lamp", UnitPrice: "100.00", Quantity: 2, AppliedDiscount: &appliedDiscountItem{ValueType: "percentage", Value: "10"}},
			{ProductID: "2", VariantID: "21", Title: "Shade", UnitPrice: "50", Quantity: 1, Discount: "50"},
		},
	}
}

func TestDraftOrderDynamoRepository_ListOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("pages through results", func(t *testing.T) {
		second := sampleItem()
		second.ID = "o2"
		fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
			{
				Items:            []map[string]types.AttributeValue{marshalItem(t, sampleItem())},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "o1"}},
			},
			{Items: []map[string]types.AttributeValue{marshalItem(t, second)}},
		}}
		repo := NewDraftOrderDynamoRepository(fake, "")

		orders, err := repo.ListOpen(ctx)
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(orders) != 2 || fake.scanCalls != 2 {
			t.Fatalf("expected 2 orders over 2 pages, got %d/%d", len(orders), fake.scanCalls)
		}

		o := orders[0]
		if o.Name != "#D1" || o.CreatedAt.Year() != 2024 || o.SalesPerson != "Ravi" {
			t.Fatalf("unexpected order %+v", o)
		}
		if o.Customer == nil || o.Customer.Email == nil || *o.Customer.Email != "alice@example.com" {
			t.Fatalf("unexpected customer %+v", o.Customer)
		}
		if o.BillingAddress == nil || o.BillingAddress.City != "Pune" {
			t.Fatalf("unexpected address %+v", o.BillingAddress)
		}
		first := o.Lines[0]
		if first.AppliedDiscount == nil || first.AppliedDiscount.ValueType != "percentage" || first.AppliedDiscount.Value != "10" {
			t.Fatalf("unexpected applied discount %+v", first.AppliedDiscount)
		}
		if first.UnitPrice.StringFixed(2) != "100.00" {
			t.Fatalf("unexpected unit price %s", first.UnitPrice)
		}
		if o.Lines[1].DiscountText != "50" || o.Lines[1].AppliedDiscount != nil {
			t.Fatalf("unexpected second line %+v", o.Lines[1])
		}
	})

	listOne := func(t *testing.T, it draftOrderItem) entities.RawOrder {
		t.Helper()
		fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{{Items: []map[string]types.AttributeValue{marshalItem(t, it)}}}}
		orders, err := NewDraftOrderDynamoRepository(fake, "t").ListOpen(ctx)
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(orders) != 1 {
			t.Fatalf("expected 1 order, got %d", len(orders))
		}
		return orders[0]
	}

	t.Run("malformed or missing unit price rejects the line", func(t *testing.T) {
		for _, price := range []string{"1OO.00", ""} {
			it := sampleItem()
			it.LineItems[0].UnitPrice = price
			o := listOne(t, it)
			if !errors.Is(o.Lines[0].DataErr, pricing.ErrInvalidLineData) {
				t.Fatalf("price %q: expected ErrInvalidLineData, got %v", price, o.Lines[0].DataErr)
			}
			if o.Lines[1].DataErr != nil {
				t.Fatalf("expected second line untouched, got %v", o.Lines[1].DataErr)
			}

			g := grouping.Group([]entities.RawOrder{o})
			c, _ := g.First()
			projected, errs := pricing.ProjectAll(c.Orders[0].Lines, nil)
			if !projected[0].Rejected() || !errors.Is(errs["1"], pricing.ErrInvalidLineData) {
				t.Fatalf("price %q: expected rejected line, got %+v errs=%v", price, projected[0], errs)
			}
			totals := pricing.Aggregate(projected)
			if totals.Quantity != 3 || totals.FinalPrice.StringFixed(2) != "0.00" {
				t.Fatalf("price %q: expected quantity 3 and total 0.00, got %d/%s", price, totals.Quantity, totals.FinalPrice.StringFixed(2))
			}
		}
	})

	t.Run("malformed applied discount value is an invalid discount", func(t *testing.T) {
		it := sampleItem()
		it.LineItems[0].AppliedDiscount.Value = "ten"
		o := listOne(t, it)
		if o.Lines[0].AppliedDiscount == nil || o.Lines[0].AppliedDiscount.Value != "ten" {
			t.Fatalf("expected raw value kept, got %+v", o.Lines[0].AppliedDiscount)
		}

		g := grouping.Group([]entities.RawOrder{o})
		c, _ := g.First()
		projected, errs := pricing.ProjectAll(c.Orders[0].Lines, nil)
		if !projected[0].Rejected() || !errors.Is(errs["1"], pricing.ErrInvalidDiscountFormat) {
			t.Fatalf("expected invalid discount, got %+v errs=%v", projected[0], errs)
		}
	})

	t.Run("malformed created_at keeps the order", func(t *testing.T) {
		it := sampleItem()
		it.CreatedAt = "yesterday"
		o := listOne(t, it)
		if !o.CreatedAt.IsZero() || len(o.Lines) != 2 {
			t.Fatalf("expected zero time and both lines, got %v/%d", o.CreatedAt, len(o.Lines))
		}
	})
}

func TestDraftOrderDynamoRepository_UpdateLines(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces quantities and drops missing lines", func(t *testing.T) {
		fake := &fakeDynamo{item: marshalItem(t, sampleItem())}
		repo := NewDraftOrderDynamoRepository(fake, "")

		err := repo.UpdateLines(ctx, entities.LinePatch{OrderID: "o1", Lines: []entities.LinePatchItem{{VariantID: "11", Quantity: 5}}})
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(fake.updates) != 1 {
			t.Fatalf("expected 1 update, got %d", len(fake.updates))
		}
		in := fake.updates[0]
		if *in.TableName != "draft_orders" {
			t.Fatalf("unexpected table %s", *in.TableName)
		}
		var lines []draftOrderLineItem
		if err := attributevalue.Unmarshal(in.ExpressionAttributeValues[":line_items"], &lines); err != nil {
			t.Fatalf("unmarshal lines: %v", err)
		}
		if len(lines) != 1 || lines[0].Quantity != 5 || lines[0].Title != "Lamp" || lines[0].AppliedDiscount == nil {
			t.Fatalf("unexpected lines %+v", lines)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		fake := &fakeDynamo{}
		err := NewDraftOrderDynamoRepository(fake, "").UpdateLines(ctx, entities.LinePatch{OrderID: "o9"})
		if !errors.Is(err, ErrDraftOrderNotFound) {
			t.Fatalf("expected ErrDraftOrderNotFound, got %v", err)
		}
		if len(fake.updates) != 0 {
			t.Fatalf("expected no update")
		}
	})

	t.Run("order no longer open", func(t *testing.T) {
		it := sampleItem()
		it.Status = "completed"
		fake := &fakeDynamo{item: marshalItem(t, it)}
		err := NewDraftOrderDynamoRepository(fake, "").UpdateLines(ctx, entities.LinePatch{OrderID: "o1"})
		if !errors.Is(err, ErrDraftOrderNotFound) {
			t.Fatalf("expected ErrDraftOrderNotFound, got %v", err)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		fake := &fakeDynamo{item: marshalItem(t, sampleItem())}
		err := NewDraftOrderDynamoRepository(fake, "").UpdateLines(ctx, entities.LinePatch{OrderID: "o1", Lines: []entities.LinePatchItem{{VariantID: "99", Quantity: 1}}})
		if !errors.Is(err, ErrUnknownVariant) {
			t.Fatalf("expected ErrUnknownVariant, got %v", err)
		}
	})

	t.Run("condition failure", func(t *testing.T) {
		fake := &fakeDynamo{item: marshalItem(t, sampleItem()), updateErr: fmt.Errorf("op: %w", &types.ConditionalCheckFailedException{})}
		err := NewDraftOrderDynamoRepository(fake, "").UpdateLines(ctx, entities.LinePatch{OrderID: "o1", Lines: []entities.LinePatchItem{{VariantID: "11", Quantity: 1}}})
		if !errors.Is(err, ErrDraftOrderNotFound) {
			t.Fatalf("expected ErrDraftOrderNotFound, got %v", err)
		}
	})

	t.Run("store error passes through", func(t *testing.T) {
		boom := errors.New("throttled")
		fake := &fakeDynamo{getErr: boom}
		err := NewDraftOrderDynamoRepository(fake, "").UpdateLines(ctx, entities.LinePatch{OrderID: "o1"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected throttled, got %v", err)
		}
	})
}
