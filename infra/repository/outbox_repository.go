package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amirasaad/corebank/pkg/domain/events"
	"github.com/amirasaad/corebank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type outboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOutboxRepository returns a gorm backed repository.OutboxRepository.
func NewOutboxRepository(db *gorm.DB) repository.OutboxRepository {
	return &outboxRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Append implements repository.OutboxRepository.
func (r *outboxRepository) Append(ctx context.Context, evts []events.Event) error {
	if len(evts) == 0 {
		return nil
	}
	rows := make([]OutboxEvent, 0, len(evts))
	for i, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("encode %s: %w", evt.Type(), err)
		}
		rows = append(rows, OutboxEvent{
			ID:          evt.EventID(),
			AggregateID: evt.AggregateID(),
			EventType:   evt.Type(),
			Payload:     string(payload),
			Position:    i,
			CreatedAt:   evt.OccurredOn(),
		})
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(&rows).Error
	})
}

// Pending implements repository.OutboxRepository.
func (r *outboxRepository) Pending(ctx context.Context, limit int) ([]repository.OutboxRecord, error) {
	var rows []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at, position").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	records := make([]repository.OutboxRecord, 0, len(rows))
	for _, row := range rows {
		evt, err := events.Decode(row.EventType, []byte(row.Payload))
		if err != nil {
			return nil, fmt.Errorf("outbox event %s: %w", row.ID, err)
		}
		records = append(records, repository.OutboxRecord{
			Event:     evt,
			Attempts:  row.Attempts,
			LastError: row.LastError,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return records, nil
}

// MarkDispatched implements repository.OutboxRepository.
func (r *outboxRepository) MarkDispatched(ctx context.Context, eventIDs []uuid.UUID) error {
	if len(eventIDs) == 0 {
		return nil
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&OutboxEvent{}).
			Where("id IN ? AND dispatched_at IS NULL", eventIDs).
			Update("dispatched_at", r.now()).Error
	})
}

// MarkFailed implements repository.OutboxRepository.
func (r *outboxRepository) MarkFailed(ctx context.Context, eventID uuid.UUID, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return WrapError(func() error {
		return r.db.WithContext(ctx).Model(&OutboxEvent{}).
			Where("id = ?", eventID).
			Updates(map[string]any{
				"attempts":   gorm.Expr("attempts + 1"),
				"last_error": msg,
			}).Error
	})
}
