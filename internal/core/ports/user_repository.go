package ports

import (
	"context"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// UserRepository persists users. Lookups that miss return domain.ErrUserNotFound.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update applies patch with $set semantics and refreshes updatedAt.
	Update(ctx context.Context, email string, patch domain.UserPatch, at time.Time) (*domain.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool, at time.Time) (*domain.User, error)
}
