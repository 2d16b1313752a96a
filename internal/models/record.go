package models

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	TenantIDField  = "TenantID"
	AccountIDField = "AccountID"
)

// Record is a decoded before-image. No schema is enforced beyond the fields it arrived with.
type Record map[string]interface{}

// TenantID returns the raw tenant identifier, nil when absent
func (r Record) TenantID() interface{} {
	return r[TenantIDField]
}

// AccountID returns the raw account identifier, nil when absent
func (r Record) AccountID() interface{} {
	return r[AccountIDField]
}

// ArchivedRecord is the notification emitted after a record reaches the archive table
type ArchivedRecord struct {
	Table       string      `json:"table"`
	SourceTable string      `json:"source_table,omitempty"`
	EventID     string      `json:"event_id,omitempty"`
	TenantID    interface{} `json:"tenant_id"`
	AccountID   interface{} `json:"account_id"`
	ArchivedAt  time.Time   `json:"archived_at"`
	Record      Record      `json:"record"`
}

// StringSet, NumberSet and BinarySet keep DynamoDB set types intact when a
// record is written back; plain slices would be stored as lists.
type (
	StringSet []string
	NumberSet []string
	BinarySet [][]byte
)

func (s StringSet) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberSS{Value: append([]string(nil), s...)}, nil
}

func (s NumberSet) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberNS{Value: append([]string(nil), s...)}, nil
}

func (s BinarySet) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberBS{Value: append([][]byte(nil), s...)}, nil
}
