package tokens

import (
	"context"
	"fmt"

	"github.com/akarpov87/custauth/internal/server/auth"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by this repository.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoRepository keeps token records in a DynamoDB table whose composite
// key is (customer_email, kind). An unconditional PutItem is the upsert;
// DeleteItem on an absent key is a no-op, which gives the idempotent delete.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) key(identity string, kind auth.Kind) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"customer_email": &types.AttributeValueMemberS{Value: identity},
		"kind":           &types.AttributeValueMemberS{Value: string(kind)},
	}
}

func (r *DynamoRepository) Put(ctx context.Context, identity string, kind auth.Kind, token string) error {
	item := r.key(identity, kind)
	item["token"] = &types.AttributeValueMemberS{Value: token}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}

func (r *DynamoRepository) Delete(ctx context.Context, identity string, kind auth.Kind) error {
	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       r.key(identity, kind),
	}); err != nil {
		return fmt.Errorf("dynamodb error: %w", err)
	}
	return nil
}
