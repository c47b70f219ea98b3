package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func mediaRow(gid, url string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"gid": &types.AttributeValueMemberS{Value: gid},
		"url": &types.AttributeValueMemberS{Value: url},
	}
}

func TestImageDynamoRepository_LookupImages(t *testing.T) {
	ctx := context.Background()

	t.Run("splits products and variants", func(t *testing.T) {
		fake := &fakeDynamo{batch: func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			if n := len(in.RequestItems["product_media"].Keys); n != 3 {
				return nil, fmt.Errorf("expected 3 keys, got %d", n)
			}
			return &dynamodb.BatchGetItemOutput{Responses: map[string][]map[string]types.AttributeValue{
				"product_media": {
					mediaRow("gid://shopify/Product/1", "p1.jpg"),
					mediaRow("gid://shopify/ProductVariant/11", "v11.jpg"),
					mediaRow("gid://shopify/ProductVariant/12", ""),
				},
			}}, nil
		}}
		repo := NewImageDynamoRepository(fake, "")

		set, err := repo.LookupImages(ctx,
			[]string{"gid://shopify/Product/1", "gid://shopify/Product/1"},
			[]string{"gid://shopify/ProductVariant/11", "gid://shopify/ProductVariant/12"})
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if set.Products["gid://shopify/Product/1"] != "p1.jpg" || len(set.Products) != 1 {
			t.Fatalf("unexpected products %v", set.Products)
		}
		if set.Variants["gid://shopify/ProductVariant/11"] != "v11.jpg" || len(set.Variants) != 1 {
			t.Fatalf("unexpected variants %v", set.Variants)
		}
	})

	t.Run("chunks by 100 keys", func(t *testing.T) {
		var sizes []int
		fake := &fakeDynamo{batch: func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			sizes = append(sizes, len(in.RequestItems["media"].Keys))
			return &dynamodb.BatchGetItemOutput{}, nil
		}}
		ids := make([]string, 0, 250)
		for i := 0; i < 250; i++ {
			ids = append(ids, fmt.Sprintf("gid://shopify/Product/%d", i))
		}
		if _, err := NewImageDynamoRepository(fake, "media").LookupImages(ctx, ids, nil); err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if len(sizes) != 3 || sizes[0] != 100 || sizes[1] != 100 || sizes[2] != 50 {
			t.Fatalf("unexpected batch sizes %v", sizes)
		}
	})

	t.Run("follows unprocessed keys", func(t *testing.T) {
		fake := &fakeDynamo{}
		fake.batch = func(in *dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) {
			if fake.batchCalls == 1 {
				return &dynamodb.BatchGetItemOutput{
					Responses:       map[string][]map[string]types.AttributeValue{"product_media": {mediaRow("gid://shopify/Product/1", "a.jpg")}},
					UnprocessedKeys: map[string]types.KeysAndAttributes{"product_media": {Keys: []map[string]types.AttributeValue{{"gid": &types.AttributeValueMemberS{Value: "gid://shopify/Product/2"}}}}},
				}, nil
			}
			return &dynamodb.BatchGetItemOutput{
				Responses: map[string][]map[string]types.AttributeValue{"product_media": {mediaRow("gid://shopify/Product/2", "b.jpg")}},
			}, nil
		}
		set, err := NewImageDynamoRepository(fake, "").LookupImages(ctx, []string{"gid://shopify/Product/1", "gid://shopify/Product/2"}, nil)
		if err != nil {
			t.Fatalf("expected nil err, got %v", err)
		}
		if fake.batchCalls != 2 || len(set.Products) != 2 {
			t.Fatalf("expected 2 calls and 2 images, got %d/%v", fake.batchCalls, set.Products)
		}
	})

	t.Run("store error", func(t *testing.T) {
		boom := errors.New("network")
		fake := &fakeDynamo{batch: func(*dynamodb.BatchGetItemInput) (*dynamodb.BatchGetItemOutput, error) { return nil, boom }}
		if _, err := NewImageDynamoRepository(fake, "").LookupImages(ctx, []string{"gid://shopify/Product/1"}, nil); !errors.Is(err, boom) {
			t.Fatalf("expected network error, got %v", err)
		}
	})

	t.Run("nothing to look up", func(t *testing.T) {
		fake := &fakeDynamo{}
		set, err := NewImageDynamoRepository(fake, "").LookupImages(ctx, nil, nil)
		if err != nil || fake.batchCalls != 0 || set.Products == nil {
			t.Fatalf("expected empty set without calls, got %v %d", err, fake.batchCalls)
		}
	})
}
