package ports

import (
	"context"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// MessageRepository persists contact messages. Lists are ordered newest first.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	List(ctx context.Context) ([]*domain.Message, error)
	ListByUserEmail(ctx context.Context, userEmail string) ([]*domain.Message, error)
	Update(ctx context.Context, id string, update domain.MessageUpdate, at time.Time) (*domain.Message, error)
}
