package ports

import (
	"context"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

// AuditRepository stores audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events without blocking the request that produced them.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// SubmissionLimiter throttles contact-form submissions per key.
type SubmissionLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
