package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an account record in the database.
type Account struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Number            string              `gorm:"type:varchar(14);uniqueIndex;not null"`
	CustomerID        uuid.UUID           `gorm:"type:uuid;index;not null"`
	Name              string              `gorm:"size:100;not null"`
	Type              string              `gorm:"type:varchar(16);not null"`
	Status            string              `gorm:"type:varchar(16);not null"`
	Currency          string              `gorm:"type:varchar(3);not null"`
	Balance           decimal.Decimal     `gorm:"type:numeric(20,4);not null"`
	MinimumBalance    decimal.NullDecimal `gorm:"type:numeric(20,4)"`
	DailyLimit        decimal.NullDecimal `gorm:"type:numeric(20,4)"`
	OpenedAt          time.Time           `gorm:"not null"`
	LastTransactionAt *time.Time
	Version           int64 `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Transaction represents a persisted ledger entry.
type Transaction struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_account_position,priority:1"`
	Position             int             `gorm:"not null;index:idx_transactions_account_position,priority:2"`
	Type                 string          `gorm:"type:varchar(16);not null"`
	Status               string          `gorm:"type:varchar(16);not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	BalanceAfter         decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency             string          `gorm:"type:varchar(3);not null"`
	Description          string          `gorm:"type:text"`
	ExternalReference    string          `gorm:"size:128;index"`
	RelatedTransactionID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt            time.Time       `gorm:"autoCreateTime:false;not null"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime:false;not null"`
}

// Activity represents a persisted audit record.
type Activity struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID           `gorm:"type:uuid;not null;index:idx_activities_account_position,priority:1"`
	Position      int                 `gorm:"not null;index:idx_activities_account_position,priority:2"`
	Type          string              `gorm:"type:varchar(32);not null"`
	Description   string              `gorm:"type:text"`
	Amount        decimal.NullDecimal `gorm:"type:numeric(20,4)"`
	BalanceBefore decimal.Decimal     `gorm:"type:numeric(20,4);not null"`
	BalanceAfter  decimal.Decimal     `gorm:"type:numeric(20,4);not null"`
	Currency      string              `gorm:"type:varchar(3);not null"`
	Metadata      map[string]string   `gorm:"serializer:json;type:text"`
	CreatedAt     time.Time           `gorm:"autoCreateTime:false;not null"`
}

// OutboxEvent is a domain event waiting for, or done with, delivery.
type OutboxEvent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AggregateID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType    string    `gorm:"type:varchar(64);not null"`
	Payload      string    `gorm:"type:text;not null"`
	Position     int       `gorm:"not null"`
	Attempts     int       `gorm:"not null;default:0"`
	LastError    string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false;not null;index:idx_outbox_pending,priority:2"`
	DispatchedAt *time.Time `gorm:"index:idx_outbox_pending,priority:1"`
}

// TableName keeps the outbox table name stable.
func (OutboxEvent) TableName() string { return "outbox_events" }

// Models lists every persisted model, in dependency order.
func Models() []any {
	return []any{&Account{}, &Transaction{}, &Activity{}, &OutboxEvent{}}
}

// AutoMigrate creates the schema through gorm. Postgres deployments use the
// versioned SQL migrations instead.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
