package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/alienbase/auth-api/internal/domain"
)

// ResetTokenRepo persists single-use password-reset grants, keyed by the jti
// embedded in the signed token. Rows expire via the table TTL.
type ResetTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewResetTokenRepo(client *dynamodb.Client, tableName string) *ResetTokenRepo {
	return &ResetTokenRepo{client: client, tableName: tableName}
}

func (r *ResetTokenRepo) Put(ctx context.Context, t *domain.ResetToken) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal reset token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Consume marks the token used. The conditional update succeeds at most once
// per token id; a second call (replay) fails the condition and returns
// domain.ErrNotFound so the caller can report the token as invalid without
// distinguishing "never issued" from "already used".
func (r *ResetTokenRepo) Consume(ctx context.Context, tokenID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("token_id", tokenID),
		UpdateExpression:    aws.String("SET used = :t"),
		ConditionExpression: aws.String("attribute_exists(token_id) AND used = :f"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("reset token unknown or already used: %w", domain.ErrNotFound)
	}
	return err
}
