// Package archive moves deleted records from a change stream into an archive table.
package archive

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"ddb-archiver/internal/decode"
	"ddb-archiver/internal/models"
)

// Store writes a record to the destination table with upsert semantics
type Store interface {
	Put(ctx context.Context, table string, record models.Record) error
}

// Notifier is told about every record that reached the archive table
type Notifier interface {
	Notify(ctx context.Context, archived *models.ArchivedRecord) error
}

// Summary counts the outcomes of one batch
type Summary struct {
	Seen     int
	Skipped  int
	Archived int
	Failed   int
}

// Archiver writes the before-image of every REMOVE event to the destination table
type Archiver struct {
	store       Store
	destination string
	notifier    Notifier
	logger      *logrus.Logger
	now         func() time.Time
}

// NewArchiver creates an archiver. notifier may be nil.
func NewArchiver(store Store, destination string, notifier Notifier, logger *logrus.Logger) *Archiver {
	return &Archiver{
		store:       store,
		destination: destination,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// Process archives every REMOVE event of the batch in delivery order.
// A failed write is logged and never stops the rest of the batch.
func (a *Archiver) Process(ctx context.Context, batch models.Batch) Summary {
	var summary Summary

	for _, event := range batch {
		summary.Seen++
		if event.Type != models.EventRemove {
			summary.Skipped++
			continue
		}

		record := decode.Image(event.Before)

		if err := a.store.Put(ctx, a.destination, record); err != nil {
			summary.Failed++
			a.logger.Errorf("Failed to move item with TenantID: %v and AccountID: %v to archive table %s: %v",
				record.TenantID(), record.AccountID(), a.destination, err)
			continue
		}

		summary.Archived++
		a.logger.Infof("Moved item with TenantID: %v and AccountID: %v to archive table %s",
			record.TenantID(), record.AccountID(), a.destination)

		a.notify(ctx, event, record)
	}

	return summary
}

func (a *Archiver) notify(ctx context.Context, event models.ChangeEvent, record models.Record) {
	if a.notifier == nil {
		return
	}
	archived := &models.ArchivedRecord{
		Table:       a.destination,
		SourceTable: event.SourceTable,
		EventID:     event.ID,
		TenantID:    record.TenantID(),
		AccountID:   record.AccountID(),
		ArchivedAt:  a.now().UTC(),
		Record:      record,
	}
	if err := a.notifier.Notify(ctx, archived); err != nil {
		a.logger.Warnf("Failed to send archive notification for event %s: %v", event.ID, err)
	}
}

// Handle is the Lambda entry point for a DynamoDB stream delivery.
// It reports success for the whole batch even when individual writes failed.
func (a *Archiver) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	summary := a.Process(ctx, models.BatchFromStream(event))
	a.logger.Debugf("Batch done: %d seen, %d skipped, %d archived, %d failed",
		summary.Seen, summary.Skipped, summary.Archived, summary.Failed)
	return nil
}
