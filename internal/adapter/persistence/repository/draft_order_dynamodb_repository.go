package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"order_desk/internal/domain/entities"
	"order_desk/internal/domain/pricing"
	"order_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	defaultDraftOrdersTableName = "draft_orders"
	draftOrderStatusOpen        = "open"
)

var (
	ErrDraftOrderNotFound = errors.New("draft order not found or no longer open")
	ErrUnknownVariant     = errors.New("patch references a variant that is not on the order")
)

type appliedDiscountItem struct {
	ValueType string `dynamodbav:"value_type"`
	Value     string `dynamodbav:"value"`
}

type draftOrderLineItem struct {
	ProductID       string               `dynamodbav:"product_id"`
	VariantID       string               `dynamodbav:"variant_id"`
	Title           string               `dynamodbav:"title"`
	UnitPrice       string               `dynamodbav:"unit_price"`
	Quantity        int                  `dynamodbav:"quantity"`
	AppliedDiscount *appliedDiscountItem `dynamodbav:"applied_discount,omitempty"`
	Discount        string               `dynamodbav:"discount,omitempty"`
	ImageURL        *string              `dynamodbav:"image_url,omitempty"`
}

type customerItem struct {
	ID        string  `dynamodbav:"id"`
	FirstName string  `dynamodbav:"first_name"`
	LastName  string  `dynamodbav:"last_name"`
	Email     *string `dynamodbav:"email,omitempty"`
	Phone     *string `dynamodbav:"phone,omitempty"`
}

type addressItem struct {
	Address1 string `dynamodbav:"address1"`
	Address2 string `dynamodbav:"address2"`
	City     string `dynamodbav:"city"`
	Province string `dynamodbav:"province"`
	Country  string `dynamodbav:"country"`
	Zip      string `dynamodbav:"zip"`
}

type draftOrderItem struct {
	ID             string               `dynamodbav:"id"`
	Name           string               `dynamodbav:"name"`
	Status         string               `dynamodbav:"status"`
	CreatedAt      string               `dynamodbav:"created_at"`
	UpdatedAt      string               `dynamodbav:"updated_at,omitempty"`
	Customer       *customerItem        `dynamodbav:"customer,omitempty"`
	BillingAddress *addressItem         `dynamodbav:"billing_address,omitempty"`
	SalesPerson    string               `dynamodbav:"sales_person,omitempty"`
	LineItems      []draftOrderLineItem `dynamodbav:"line_items"`
}

// DraftOrderDynamoRepository reads and patches draft orders in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - status: "open" while the order can still be edited on the desk
//
// Line items are stored inline on the order item.

type DraftOrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IDraftOrderRepository = (*DraftOrderDynamoRepository)(nil)

func NewDraftOrderDynamoRepository(ddb dynamoAPI, tableName string) *DraftOrderDynamoRepository {
	return &DraftOrderDynamoRepository{
		ddb:       ddb,
		tableName: defaultString(tableName, defaultDraftOrdersTableName),
	}
}

// ListOpen scans every open draft order. Snapshots are loaded once per session, so a
// filtered scan is acceptable for desk-sized tables.
func (r *DraftOrderDynamoRepository) ListOpen(ctx context.Context) ([]entities.RawOrder, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#status = :open"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":open": &types.AttributeValueMemberS{Value: draftOrderStatusOpen},
		},
		ConsistentRead: aws.Bool(true),
	})

	var out []entities.RawOrder
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []draftOrderItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromDraftOrderItem(it))
		}
	}
	log.Debugf("[desk][repository] list open draft orders table=%s count=%d", r.tableName, len(out))
	return out, nil
}

// UpdateLines replaces the order's line set with the patch. Lines keep their stored
// attributes; only quantities change, and lines absent from the patch are dropped.
func (r *DraftOrderDynamoRepository) UpdateLines(ctx context.Context, patch entities.LinePatch) error {
	current, err := r.get(ctx, patch.OrderID)
	if err != nil {
		return err
	}
	if current.ID == "" || current.Status != draftOrderStatusOpen {
		return ErrDraftOrderNotFound
	}

	lines, err := applyLinePatch(current.LineItems, patch.Lines)
	if err != nil {
		return err
	}
	av, err := attributevalue.Marshal(lines)
	if err != nil {
		return err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: patch.OrderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :open"),
		UpdateExpression:    aws.String("SET #line_items = :line_items, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":line_items": av,
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
			":open":       &types.AttributeValueMemberS{Value: draftOrderStatusOpen},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#line_items": "line_items",
			"#updated_at": "updated_at",
			"#status":     "status",
		}, map[string]string{"#id": "id"}),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return ErrDraftOrderNotFound
		}
		return err
	}
	return nil
}

func (r *DraftOrderDynamoRepository) get(ctx context.Context, id string) (draftOrderItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return draftOrderItem{}, err
	}
	if len(out.Item) == 0 {
		return draftOrderItem{}, nil
	}
	var it draftOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return draftOrderItem{}, err
	}
	return it, nil
}

func applyLinePatch(current []draftOrderLineItem, patch []entities.LinePatchItem) ([]draftOrderLineItem, error) {
	byVariant := make(map[string]draftOrderLineItem, len(current))
	for _, l := range current {
		byVariant[l.VariantID] = l
	}
	out := make([]draftOrderLineItem, 0, len(patch))
	for _, p := range patch {
		l, ok := byVariant[p.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, p.VariantID)
		}
		l.Quantity = p.Quantity
		out = append(out, l)
	}
	return out, nil
}

func fromDraftOrderItem(it draftOrderItem) entities.RawOrder {
	o := entities.RawOrder{
		ID:          it.ID,
		Name:        it.Name,
		CreatedAt:   createdAt(it),
		SalesPerson: it.SalesPerson,
		Lines:       make([]entities.RawOrderLine, 0, len(it.LineItems)),
	}
	if it.Customer != nil {
		o.Customer = &entities.CustomerRef{
			ID:        it.Customer.ID,
			FirstName: it.Customer.FirstName,
			LastName:  it.Customer.LastName,
			Email:     it.Customer.Email,
			Phone:     it.Customer.Phone,
		}
	}
	if it.BillingAddress != nil {
		a := entities.Address(*it.BillingAddress)
		o.BillingAddress = &a
	}
	for _, l := range it.LineItems {
		line := entities.RawOrderLine{
			ProductID:    l.ProductID,
			VariantID:    l.VariantID,
			Title:        l.Title,
			Quantity:     l.Quantity,
			DiscountText: l.Discount,
			ImageURL:     l.ImageURL,
		}
		price, err := decimal.NewFromString(strings.TrimSpace(l.UnitPrice))
		if err != nil {
			log.Warnf("[desk][repository] malformed unit_price order_id=%s product_id=%s value=%q", it.ID, l.ProductID, l.UnitPrice)
			line.DataErr = fmt.Errorf("%w: unit_price %q", pricing.ErrInvalidLineData, l.UnitPrice)
		} else {
			line.UnitPrice = price
		}
		if l.AppliedDiscount != nil {
			line.AppliedDiscount = &entities.AppliedDiscount{
				ValueType: l.AppliedDiscount.ValueType,
				Value:     l.AppliedDiscount.Value,
			}
		}
		o.Lines = append(o.Lines, line)
	}
	return o
}

func createdAt(it draftOrderItem) time.Time {
	t, err := parseTime(it.CreatedAt)
	if err != nil {
		log.Warnf("[desk][repository] malformed created_at order_id=%s value=%q err=%v", it.ID, it.CreatedAt, err)
	}
	return t
}
