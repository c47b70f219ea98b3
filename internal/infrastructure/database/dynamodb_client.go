package database

import (
	"context"
	"order_desk/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	log "github.com/sirupsen/logrus"
)

// ConnectDynamoDB creates the client shared by the draft order and media repositories.
func ConnectDynamoDB(ctx context.Context, conf config.Config) *dynamodb.Client {
	cfg, err := NewDynamoDBConfig(ctx, conf)
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	log.Infof("[db][dynamodb] client ready region=%s endpoint=%q", cfg.Region, conf.DynamoDB.Endpoint)
	return dynamodb.NewFromConfig(cfg)
}

func NewDynamoDBConfig(ctx context.Context, conf config.Config) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(conf.AWS.AccessKeyID, conf.AWS.SecretAccessKey, "")

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.AWS.Region),
		awsconfig.WithCredentialsProvider(creds),
	}

	if endpoint := conf.DynamoDB.Endpoint; endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
			if service == dynamodb.ServiceID {
				return aws.Endpoint{URL: endpoint, SigningRegion: region, HostnameImmutable: true}, nil
			}
			return aws.Endpoint{}, &aws.EndpointNotFoundError{}
		})
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
