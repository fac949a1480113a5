package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OutboxEvent is written in the same transaction as the appointment change
// and shipped to Kafka by the outbox publisher. Topic = EventType.
type OutboxEvent struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"event_id"`

	AggregateType string         `gorm:"size:50;not null" json:"aggregate_type"`
	AggregateID   string         `gorm:"size:64;not null" json:"aggregate_id"`
	EventType     string         `gorm:"size:100;not null" json:"event_type"`
	Payload       datatypes.JSON `gorm:"not null" json:"payload"`

	PublishedAt *time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
