package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"ddb-archiver/internal/models"
)

// ErrWriteFailed covers every way a write to the archive table can fail
// (throttling, validation, transient service errors)
var ErrWriteFailed = errors.New("destination write failed")

// API is the subset of *dynamodb.Client used by this package
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Store writes archived records into a DynamoDB table
type Store struct {
	client API
	logger *logrus.Logger
}

// NewStore creates a store around a long-lived client
func NewStore(client API, logger *logrus.Logger) *Store {
	return &Store{
		client: client,
		logger: logger,
	}
}

// Put upserts the record into table. Existing items with the same key are overwritten.
func (s *Store) Put(ctx context.Context, table string, record models.Record) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal record: %w", ErrWriteFailed, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put item into %s: %w", ErrWriteFailed, table, err)
	}

	s.logger.Debugf("Put %d attributes into %s", len(item), table)
	return nil
}
