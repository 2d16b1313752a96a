package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"ddb-archiver/internal/models"
)

// Conn is the part of *nats.Conn the publisher needs
type Conn interface {
	Publish(subject string, data []byte) error
	Close()
}

// Publisher announces archived records on a NATS subject
type Publisher struct {
	conn    Conn
	subject string
	logger  *logrus.Logger
}

// NewPublisher connects to NATS and creates a publisher
func NewPublisher(url, subject string, maxReconnect int, reconnectWait time.Duration, logger *logrus.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("ddb-archiver"),
		nats.MaxReconnects(maxReconnect),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Warn("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Infof("Connected to NATS at %s", url)

	return NewPublisherWithConn(conn, subject, logger), nil
}

// NewPublisherWithConn creates a publisher on an existing connection
func NewPublisherWithConn(conn Conn, subject string, logger *logrus.Logger) *Publisher {
	return &Publisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}
}

// Notify publishes an archived record as JSON
func (p *Publisher) Notify(_ context.Context, archived *models.ArchivedRecord) error {
	data, err := json.Marshal(archived)
	if err != nil {
		return fmt.Errorf("failed to marshal archived record: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to NATS: %w", err)
	}

	p.logger.Debugf("Published archive notification for %s to %s", archived.Table, p.subject)
	return nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
