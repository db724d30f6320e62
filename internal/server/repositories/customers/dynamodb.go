package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/akarpov87/custauth/internal/server/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by this repository.
// Declared here so tests can substitute a fake.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// customerItem is the DynamoDB representation of a customer.
// The table's partition key is email.
type customerItem struct {
	Email          string            `dynamodbav:"email"`
	PasswordDigest string            `dynamodbav:"password_digest"`
	Profile        map[string]string `dynamodbav:"profile"`
	CreatedAt      time.Time         `dynamodbav:"created_at"`
}

// DynamoRepository stores customers in a DynamoDB table. Uniqueness of the
// email key is enforced with a conditional write, which also settles the
// concurrent-register race in the store rather than in the service.
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func (r *DynamoRepository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	customer.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(customerItem{
		Email:          customer.Email,
		PasswordDigest: customer.PasswordDigest,
		Profile:        customer.Profile,
		CreatedAt:      customer.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error encoding item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}

	return customer, nil
}

func (r *DynamoRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb error: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	var item customerItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("error decoding item: %w", err)
	}

	return &models.Customer{
		Email:          item.Email,
		PasswordDigest: item.PasswordDigest,
		Profile:        item.Profile,
		CreatedAt:      item.CreatedAt,
	}, nil
}

func (r *DynamoRepository) UpdatePassword(ctx context.Context, email, passwordDigest string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
		UpdateExpression:    aws.String("SET password_digest = :digest"),
		ConditionExpression: aws.String("attribute_exists(email)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":digest": &types.AttributeValueMemberS{Value: passwordDigest},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("dynamodb error: %w", err)
	}

	return nil
}
