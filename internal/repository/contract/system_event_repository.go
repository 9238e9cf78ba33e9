package contract

import (
	"context"

	"ai-assistant-be/internal/model"
)

type ISystemEventRepository interface {
	Create(ctx context.Context, event *model.SystemEvent) error
}
