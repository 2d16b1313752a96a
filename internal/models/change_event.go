package models

import (
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// EventType is the kind of mutation a stream record describes
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventModify EventType = "MODIFY"
	EventRemove EventType = "REMOVE"
)

// ChangeEvent represents one mutation observed on the source table
type ChangeEvent struct {
	ID          string
	Type        EventType
	SourceTable string
	Before      map[string]events.DynamoDBAttributeValue // present for MODIFY and REMOVE
	After       map[string]events.DynamoDBAttributeValue
}

// Batch is the ordered set of change events delivered in one invocation
type Batch []ChangeEvent

// BatchFromStream converts a DynamoDB stream delivery into a Batch, keeping delivery order
func BatchFromStream(event events.DynamoDBEvent) Batch {
	batch := make(Batch, 0, len(event.Records))
	for _, record := range event.Records {
		batch = append(batch, ChangeEvent{
			ID:          record.EventID,
			Type:        EventType(record.EventName),
			SourceTable: tableFromARN(record.EventSourceArn),
			Before:      record.Change.OldImage,
			After:       record.Change.NewImage,
		})
	}
	return batch
}

// tableFromARN extracts the table name from a stream ARN such as
// arn:aws:dynamodb:us-east-1:123456789012:table/Accounts/stream/2024-01-01T00:00:00.000
func tableFromARN(arn string) string {
	idx := strings.Index(arn, ":table/")
	if idx < 0 {
		return ""
	}
	name := arn[idx+len(":table/"):]
	if slash := strings.IndexByte(name, '/'); slash >= 0 {
		name = name[:slash]
	}
	return name
}
