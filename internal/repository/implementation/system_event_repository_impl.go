package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ai-assistant-be/internal/model"
	"ai-assistant-be/internal/repository/contract"
)

type systemEventRepository struct {
	db *gorm.DB
}

// NewSystemEventRepository creates the postgres-backed system event log.
func NewSystemEventRepository(db *gorm.DB) contract.ISystemEventRepository {
	return &systemEventRepository{db: db}
}

func (r *systemEventRepository) Create(ctx context.Context, event *model.SystemEvent) error {
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	return r.db.WithContext(ctx).Create(event).Error
}
