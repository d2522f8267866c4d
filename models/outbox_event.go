package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/modabuy/storefront-backend/pkg/enums"
)

// OutboxEvent is a domain event recorded in the same transaction as the state
// change it describes. A background publisher drains unpublished rows.
type OutboxEvent struct {
	ID            uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AggregateType enums.OutboxAggregateType `gorm:"column:aggregate_type;type:varchar(30);not null" json:"aggregate_type"`
	AggregateID   uuid.UUID                 `gorm:"column:aggregate_id;type:uuid;not null" json:"aggregate_id"`
	EventType     enums.OutboxEventType     `gorm:"column:event_type;type:varchar(50);not null;index" json:"event_type"`
	Payload       []byte                    `gorm:"column:payload;type:jsonb;not null" json:"payload"`
	Attempts      int                       `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError     *string                   `gorm:"column:last_error;type:text" json:"last_error,omitempty"`
	PublishedAt   *time.Time                `gorm:"column:published_at;index" json:"published_at,omitempty"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OutboxEvent) TableName() string { return "outbox_events" }
