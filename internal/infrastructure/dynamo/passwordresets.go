package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-account-api/internal/domain"
)

// PasswordResetRepo manages pending password reset tokens.
// PK: account_id, SK: reset_id. Reset issuance deletes all rows for the
// account before inserting the new one, so at most one row is live.
type PasswordResetRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPasswordResetRepo(client *dynamodb.Client, tableName string) *PasswordResetRepo {
	return &PasswordResetRepo{client: client, tableName: tableName}
}

func (r *PasswordResetRepo) Put(ctx context.Context, p *domain.PendingPasswordReset) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal password reset: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// GetByAccount returns the live reset record for the account. With the
// single-active-token invariant the query yields at most one row; if a stale
// duplicate ever survives, the newest reset_id (ULIDs sort by time) wins.
func (r *PasswordResetRepo) GetByAccount(ctx context.Context, accountID string) (*domain.PendingPasswordReset, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("account_id = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":a": &types.AttributeValueMemberS{Value: accountID}},
		ScanIndexForward:          aws.Bool(false),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("password reset not found: %w", domain.ErrNotFound)
	}
	var p domain.PendingPasswordReset
	if err := attributevalue.UnmarshalMap(out.Items[0], &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteAllForAccount removes every reset row for the account.
func (r *PasswordResetRepo) DeleteAllForAccount(ctx context.Context, accountID string) error {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String("account_id = :a"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":a": &types.AttributeValueMemberS{Value: accountID}},
		ProjectionExpression:      aws.String("account_id, reset_id"),
	})
	if err != nil {
		return err
	}
	if len(out.Items) == 0 {
		return nil
	}

	writes := make([]types.WriteRequest, 0, len(out.Items))
	for _, item := range out.Items {
		resetID, ok := item["reset_id"].(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		writes = append(writes, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: compositeKey("account_id", accountID, "reset_id", resetID.Value),
			},
		})
	}

	// BatchWriteItem accepts at most 25 requests per call.
	for len(writes) > 0 {
		n := len(writes)
		if n > 25 {
			n = 25
		}
		_, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{r.tableName: writes[:n]},
		})
		if err != nil {
			return err
		}
		writes = writes[n:]
	}
	return nil
}
