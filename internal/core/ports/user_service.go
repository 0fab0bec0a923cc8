package ports

import (
	"context"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// CreateUserInput carries a new account. IsAdmin is echoed as supplied; it is
// not authorization-checked because account creation precedes any admin.
type CreateUserInput struct {
	Email    string
	Name     string
	PhotoURL string
	Phone    string
	Address  string
	Role     string
	Password string
	UID      string
	IsAdmin  *bool
}

// SetAdminInput carries an admin-status change. IsAdmin is untyped so the
// service can reject anything that is not a JSON boolean.
type SetAdminInput struct {
	TargetID       string
	IsAdmin        any
	RequesterEmail string
}

// UserService defines use-case operations for users. Every user it returns
// has already been sanitized.
type UserService interface {
	List(ctx context.Context, callerEmail string) ([]domain.PublicUser, error)
	Get(ctx context.Context, email string) (domain.PublicUser, error)
	Create(ctx context.Context, input CreateUserInput) (domain.PublicUser, error)
	Update(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error)
	SetAdmin(ctx context.Context, input SetAdminInput) (domain.PublicUser, error)
	RoleCheck(ctx context.Context, email string) (domain.RoleSummary, error)
}
