package ports

import (
	"context"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// CreateMessageInput carries a contact-form submission.
type CreateMessageInput struct {
	Name      string
	Email     string
	Phone     string
	Message   string
	UserID    string
	UserEmail string
}

// UpdateMessageInput carries an admin's triage change.
type UpdateMessageInput struct {
	ID          string
	CallerEmail string
	Status      *string
	IsRead      *bool
}

// MessageService defines use-case operations for contact messages.
type MessageService interface {
	Create(ctx context.Context, input CreateMessageInput) (*domain.Message, error)
	List(ctx context.Context, callerEmail string) ([]*domain.Message, error)
	Update(ctx context.Context, input UpdateMessageInput) (*domain.Message, error)
	ListByUser(ctx context.Context, userEmail string) ([]*domain.Message, error)
}
