package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/alienbase/auth-api/internal/domain"
)

// OnboardingRepo stores the post-signup questionnaire, one row per user.
type OnboardingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOnboardingRepo(client *dynamodb.Client, tableName string) *OnboardingRepo {
	return &OnboardingRepo{client: client, tableName: tableName}
}

func (r *OnboardingRepo) Put(ctx context.Context, o *domain.Onboarding) error {
	item, err := attributevalue.MarshalMap(o)
	if err != nil {
		return fmt.Errorf("marshal onboarding: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *OnboardingRepo) Get(ctx context.Context, userID string) (*domain.Onboarding, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("onboarding not found: %w", domain.ErrNotFound)
	}
	var o domain.Onboarding
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
