package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

// Checker validates that the archive table exists and is usable
type Checker struct {
	client API
	logger *logrus.Logger
}

// NewChecker creates a new table checker
func NewChecker(client API, logger *logrus.Logger) *Checker {
	return &Checker{
		client: client,
		logger: logger,
	}
}

// CheckTable verifies the table exists and is ACTIVE, and logs its key schema
func (c *Checker) CheckTable(ctx context.Context, table string) error {
	out, err := c.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	if out.Table == nil {
		return fmt.Errorf("table %s: empty description", table)
	}

	if status := out.Table.TableStatus; status != types.TableStatusActive && status != types.TableStatusUpdating {
		return fmt.Errorf("table %s is not writable, status: %s", table, status)
	}

	keys := make([]string, 0, len(out.Table.KeySchema))
	for _, k := range out.Table.KeySchema {
		keys = append(keys, fmt.Sprintf("%s(%s)", aws.ToString(k.AttributeName), k.KeyType))
	}
	c.logger.Infof("Archive table %s is %s, key schema: %s", table, out.Table.TableStatus, strings.Join(keys, ", "))

	return nil
}
