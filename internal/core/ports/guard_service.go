package ports

import (
	"context"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// CreateGuardInput carries a new guard. Transactions and Presence are the raw
// decoded JSON values; anything but an array seeds an empty log.
type CreateGuardInput struct {
	Name         string
	Phone        string
	NID          string
	Address      string
	JoinDate     string
	DutyPlace    string
	DutyTime     string
	Transactions any
	Presence     any
}

// UpdateGuardInput is the allow-listed core-field patch. JoinDate is parsed
// by the service.
type UpdateGuardInput struct {
	Name      *string
	Phone     *string
	NID       *string
	Address   *string
	JoinDate  *string
	DutyPlace *string
	DutyTime  *string
}

// TransactionInput carries one ledger entry. Amount is untyped so the
// service can insist on a JSON number.
type TransactionInput struct {
	Type   string
	Amount any
	Date   string
	Note   *string
}

// PresenceInput carries one attendance entry.
type PresenceInput struct {
	Date   string
	Status string
}

// GuardService defines use-case operations for guards. Every method
// authorizes callerEmail as an admin before touching the store.
type GuardService interface {
	List(ctx context.Context, callerEmail string) ([]*domain.Guard, error)
	Get(ctx context.Context, callerEmail, id string) (*domain.Guard, error)
	Create(ctx context.Context, callerEmail string, input CreateGuardInput) (*domain.Guard, error)
	Update(ctx context.Context, callerEmail, id string, input UpdateGuardInput) (*domain.Guard, error)
	AppendTransaction(ctx context.Context, callerEmail, id string, input TransactionInput) (*domain.Guard, error)
	AppendPresence(ctx context.Context, callerEmail, id string, input PresenceInput) (*domain.Guard, error)
	Transactions(ctx context.Context, callerEmail, id string) ([]domain.Transaction, error)
	Presence(ctx context.Context, callerEmail, id string) ([]domain.PresenceEntry, error)
}
