package ports

import (
	"context"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// GuardRepository persists guards. Unresolvable ids return domain.ErrGuardNotFound.
type GuardRepository interface {
	List(ctx context.Context) ([]*domain.Guard, error)
	FindByID(ctx context.Context, id string) (*domain.Guard, error)
	Create(ctx context.Context, guard *domain.Guard) (*domain.Guard, error)
	Update(ctx context.Context, id string, patch domain.GuardPatch, at time.Time) (*domain.Guard, error)

	// AppendTransaction and AppendPresence push a single entry onto the end of
	// the corresponding log; they are the only writers of those logs.
	AppendTransaction(ctx context.Context, id string, tx domain.Transaction, at time.Time) (*domain.Guard, error)
	AppendPresence(ctx context.Context, id string, entry domain.PresenceEntry, at time.Time) (*domain.Guard, error)

	Transactions(ctx context.Context, id string) ([]domain.Transaction, error)
	Presence(ctx context.Context, id string) ([]domain.PresenceEntry, error)
}
