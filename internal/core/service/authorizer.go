package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
	"github.com/sentinelforce/agency-api/internal/pkg/metrics"
)

// AdminAuthorizer re-derives admin privilege from the store on every call.
// Results are never cached.
type AdminAuthorizer struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewAdminAuthorizer(users ports.UserRepository, logger zerolog.Logger) *AdminAuthorizer {
	return &AdminAuthorizer{users: users, logger: logger}
}

// Authorize checks callerEmail against the users collection. An unknown user
// is reported as ErrForbidden, not ErrUserNotFound, so privileged routes do
// not reveal which accounts exist.
func (a *AdminAuthorizer) Authorize(ctx context.Context, callerEmail string) error {
	email := strings.TrimSpace(callerEmail)
	if email == "" {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("missing_email").Inc()
		return domain.ErrEmailRequired
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthorizationDecisionsTotal.WithLabelValues("denied").Inc()
			a.logger.Debug().Str("caller", email).Msg("admin check: unknown caller")
			return domain.ErrForbidden
		}
		metrics.AuthorizationDecisionsTotal.WithLabelValues("error").Inc()
		return err
	}

	if !user.IsAdmin {
		metrics.AuthorizationDecisionsTotal.WithLabelValues("denied").Inc()
		a.logger.Debug().Str("caller", email).Msg("admin check: caller is not an admin")
		return domain.ErrForbidden
	}

	metrics.AuthorizationDecisionsTotal.WithLabelValues("granted").Inc()
	return nil
}
