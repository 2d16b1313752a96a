package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ddb-archiver/internal/models"
)

type fakeConn struct {
	subject string
	data    []byte
	err     error
	closed  bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.subject = subject
	c.data = data
	return c.err
}

func (c *fakeConn) Close() {
	c.closed = true
}

func TestPublisher_Notify(t *testing.T) {
	conn := &fakeConn{}
	logger, _ := test.NewNullLogger()
	p := NewPublisherWithConn(conn, "archive.records", logger)

	err := p.Notify(context.Background(), &models.ArchivedRecord{
		Table:       "AccountsArchive",
		SourceTable: "Accounts",
		EventID:     "e1",
		TenantID:    "T1",
		AccountID:   "A1",
		ArchivedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Record: models.Record{
			"TenantID":  "T1",
			"AccountID": "A1",
			"Balance":   attributevalue.Number("10.5"),
			"Roles":     models.StringSet{"owner"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "archive.records", conn.subject)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, "AccountsArchive", got["table"])
	assert.Equal(t, "Accounts", got["source_table"])
	assert.Equal(t, "T1", got["tenant_id"])
	assert.Equal(t, "2026-01-02T03:04:05Z", got["archived_at"])
	assert.Equal(t, map[string]interface{}{
		"TenantID":  "T1",
		"AccountID": "A1",
		"Balance":   "10.5",
		"Roles":     []interface{}{"owner"},
	}, got["record"])
}

func TestPublisher_NotifyError(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	logger, _ := test.NewNullLogger()
	p := NewPublisherWithConn(conn, "archive.records", logger)

	err := p.Notify(context.Background(), &models.ArchivedRecord{Table: "AccountsArchive"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish to NATS")
}

func TestPublisher_Close(t *testing.T) {
	conn := &fakeConn{}
	logger, _ := test.NewNullLogger()
	NewPublisherWithConn(conn, "archive.records", logger).Close()
	assert.True(t, conn.closed)
}
