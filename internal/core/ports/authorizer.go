package ports

import "context"

// AdminAuthorizer decides whether callerEmail currently holds admin privilege.
// It returns nil on success, domain.ErrEmailRequired when the email is blank,
// and domain.ErrForbidden when the user is unknown or not an admin.
type AdminAuthorizer interface {
	Authorize(ctx context.Context, callerEmail string) error
}
