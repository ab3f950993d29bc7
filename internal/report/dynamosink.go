package report

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/JCoe77/akamai-dom-automation/internal/model"
)

// DynamoSink records outcomes in a DynamoDB table, one item per outcome.
// The partition key is a run ID generated at construction so one run's
// outcomes can be queried together.
type DynamoSink struct {
	client    *dynamodb.Client
	tableName string
	flow      Flow
	runID     string
}

// NewDynamoSink creates a DynamoDB-backed outcome sink
func NewDynamoSink(client *dynamodb.Client, tableName string, flow Flow) *DynamoSink {
	return &DynamoSink{
		client:    client,
		tableName: tableName,
		flow:      flow,
		runID:     uuid.NewString(),
	}
}

// Describe implements Sink
func (s *DynamoSink) Describe() string {
	return fmt.Sprintf("DynamoDB table %s (run %s)", s.tableName, s.runID)
}

// Store implements Sink
func (s *DynamoSink) Store(ctx context.Context, outcomes []model.Outcome) error {
	now := time.Now().UTC()
	for i, o := range outcomes {
		item, err := attributevalue.MarshalMap(newOutcomeDTO(s.runID, string(s.flow), i, o, now))
		if err != nil {
			return fmt.Errorf("failed to marshal outcome for %s: %w", o.DomainName, err)
		}
		_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.tableName),
			Item:      item,
		})
		if err != nil {
			return fmt.Errorf("failed to store outcome for %s: %w", o.DomainName, err)
		}
	}
	return nil
}
