package repomanager

import (
	"context"
	"fmt"

	sc "github.com/akarpov87/custauth/internal/server/config"
	"github.com/akarpov87/custauth/internal/server/repositories/customers"
	"github.com/akarpov87/custauth/internal/server/repositories/tokens"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type DynamoRepositoryManager struct {
	customers customers.Repository
	tokens    tokens.Repository
}

// NewDynamoRepositoryManager builds a DynamoDB client from the service
// config. Explicit access keys take precedence over the default credential
// chain; a base endpoint override points the client at a local DynamoDB.
func NewDynamoRepositoryManager(ctx context.Context, c *sc.Config) (RepositoryManager, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}
	if c.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AWSAccessKeyID, c.AWSSecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config error: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.AWSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.AWSBaseEndpoint)
		}
	})

	return &DynamoRepositoryManager{
		customers: customers.NewDynamoRepository(client, c.CustomerTable),
		tokens:    tokens.NewDynamoRepository(client, c.TokenTable),
	}, nil
}

// RunMigrations is a no-op: the DynamoDB tables are provisioned out of band.
func (m *DynamoRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *DynamoRepositoryManager) Customers() customers.Repository {
	return m.customers
}

func (m *DynamoRepositoryManager) Tokens() tokens.Repository {
	return m.tokens
}

func (m *DynamoRepositoryManager) Close() error {
	return nil
}
