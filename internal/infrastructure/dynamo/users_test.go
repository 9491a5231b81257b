package dynamo

import (
	"testing"
	"time"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// google_id and github_id are the hash keys of their GSIs. DynamoDB rejects
// writes carrying an empty string in an index key attribute, so unlinked
// users must marshal without them entirely (sparse index).
func TestUserMarshal_UnlinkedProviderIDsAbsent(t *testing.T) {
	u := &domain.User{
		UserID:       "u1",
		Email:        "a@b.com",
		PasswordHash: "x",
		Role:         domain.RoleUser,
		AuthProvider: domain.ProviderLocal,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	item, err := attributevalue.MarshalMap(u)
	require.NoError(t, err)

	_, hasGoogle := item["google_id"]
	_, hasGitHub := item["github_id"]
	assert.False(t, hasGoogle)
	assert.False(t, hasGitHub)
}

func TestUserMarshal_LinkedProviderIDPresent(t *testing.T) {
	u := &domain.User{
		UserID:       "u1",
		Email:        "a@b.com",
		AuthProvider: domain.ProviderGoogle,
		GoogleID:     "g-1",
	}
	item, err := attributevalue.MarshalMap(u)
	require.NoError(t, err)

	av, ok := item["google_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "g-1", av.Value)
	_, hasGitHub := item["github_id"]
	assert.False(t, hasGitHub)
}
