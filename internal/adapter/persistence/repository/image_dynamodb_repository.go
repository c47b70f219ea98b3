package repository

import (
	"context"
	"fmt"

	"order_desk/internal/domain/entities"
	"order_desk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const (
	defaultMediaTableName = "product_media"

	// BatchGetItem accepts at most 100 keys per request.
	batchGetLimit        = 100
	maxUnprocessedPasses = 5
)

type mediaItem struct {
	GID string `dynamodbav:"gid"`
	URL string `dynamodbav:"url"`
}

// ImageDynamoRepository resolves product and variant image URLs.
//
// Table requirements:
//   - PK: gid (string), e.g. gid://shopify/Product/42
//   - url: image URL

type ImageDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IImageRepository = (*ImageDynamoRepository)(nil)

func NewImageDynamoRepository(ddb dynamoAPI, tableName string) *ImageDynamoRepository {
	return &ImageDynamoRepository{
		ddb:       ddb,
		tableName: defaultString(tableName, defaultMediaTableName),
	}
}

// LookupImages fetches every requested id. Ids with no stored image are absent from
// the returned maps.
func (r *ImageDynamoRepository) LookupImages(ctx context.Context, productGIDs, variantGIDs []string) (entities.ImageSet, error) {
	set := entities.ImageSet{Products: map[string]string{}, Variants: map[string]string{}}

	products := make(map[string]struct{}, len(productGIDs))
	for _, id := range productGIDs {
		products[id] = struct{}{}
	}
	variants := make(map[string]struct{}, len(variantGIDs))
	for _, id := range variantGIDs {
		variants[id] = struct{}{}
	}

	ids := make([]string, 0, len(products)+len(variants))
	for id := range products {
		ids = append(ids, id)
	}
	for id := range variants {
		if _, dup := products[id]; !dup {
			ids = append(ids, id)
		}
	}

	for start := 0; start < len(ids); start += batchGetLimit {
		end := min(start+batchGetLimit, len(ids))
		items, err := r.batchGet(ctx, ids[start:end])
		if err != nil {
			return entities.ImageSet{}, err
		}
		for _, it := range items {
			if it.URL == "" {
				continue
			}
			if _, ok := products[it.GID]; ok {
				set.Products[it.GID] = it.URL
			}
			if _, ok := variants[it.GID]; ok {
				set.Variants[it.GID] = it.URL
			}
		}
	}
	log.Debugf("[desk][repository] image lookup requested=%d products=%d variants=%d", len(ids), len(set.Products), len(set.Variants))
	return set, nil
}

func (r *ImageDynamoRepository) batchGet(ctx context.Context, ids []string) ([]mediaItem, error) {
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, map[string]types.AttributeValue{
			"gid": &types.AttributeValueMemberS{Value: id},
		})
	}
	request := map[string]types.KeysAndAttributes{
		r.tableName: {
			Keys:                     keys,
			ProjectionExpression:     aws.String("#gid, #url"),
			ExpressionAttributeNames: map[string]string{"#gid": "gid", "#url": "url"},
		},
	}

	var out []mediaItem
	for pass := 0; len(request) > 0; pass++ {
		if pass == maxUnprocessedPasses {
			return nil, fmt.Errorf("image lookup left %d keys unprocessed", len(request[r.tableName].Keys))
		}
		resp, err := r.ddb.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return nil, err
		}
		var items []mediaItem
		if err := attributevalue.UnmarshalListOfMaps(resp.Responses[r.tableName], &items); err != nil {
			return nil, err
		}
		out = append(out, items...)
		request = resp.UnprocessedKeys
	}
	return out, nil
}
