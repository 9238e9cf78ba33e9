package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemEvent is an assistant event persisted by the consumer service for
// audit purposes.
type SystemEvent struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type       string    `gorm:"type:varchar(50);not null;index"`
	Payload    *string   `gorm:"type:jsonb"`
	OccurredAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"default:now();not null"`
}

func (SystemEvent) TableName() string {
	return "system_events"
}
