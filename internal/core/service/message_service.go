package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
	"github.com/sentinelforce/agency-api/internal/pkg/metrics"
)

type MessageService struct {
	repo    ports.MessageRepository
	authz   ports.AdminAuthorizer
	limiter ports.SubmissionLimiter
	audit   ports.AuditSink
	logger  zerolog.Logger
	now     func() time.Time
}

// NewMessageService wires the message use cases. limiter may be nil, in which
// case submissions are not throttled.
func NewMessageService(
	repo ports.MessageRepository,
	authz ports.AdminAuthorizer,
	limiter ports.SubmissionLimiter,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		repo:    repo,
		authz:   authz,
		limiter: limiter,
		audit:   audit,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a contact-form submission. Anyone may submit.
func (s *MessageService) Create(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, domain.Invalid("name, email and message are required")
	}
	if !domain.ValidContactEmail(in.Email) {
		return nil, domain.Invalid("invalid email format")
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, strings.ToLower(in.Email))
		if err != nil {
			s.logger.Warn().Err(err).Str("email", in.Email).Msg("submission limiter failed, accepting anyway")
		} else if !allowed {
			return nil, domain.ErrTooManyRequests
		}
	}

	userEmail := in.UserEmail
	if userEmail == "" {
		userEmail = in.Email
	}

	now := s.now()
	msg := &domain.Message{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		UserID:    in.UserID,
		UserEmail: userEmail,
		Status:    domain.MessageNew,
		IsRead:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	metrics.MessagesCreatedTotal.Inc()
	s.logger.Info().Str("message_id", created.ID).Str("user_email", created.UserEmail).Msg("message received")
	return created, nil
}

// List returns every message, newest first. The caller must be an admin.
func (s *MessageService) List(ctx context.Context, callerEmail string) ([]*domain.Message, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Update applies an admin's status and/or read-flag change.
func (s *MessageService) Update(ctx context.Context, in ports.UpdateMessageInput) (*domain.Message, error) {
	if err := s.authz.Authorize(ctx, in.CallerEmail); err != nil {
		return nil, err
	}

	var update domain.MessageUpdate
	if in.Status != nil {
		status := domain.MessageStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.Invalid("status must be one of: new, in-progress, resolved")
		}
		update.Status = &status
	}
	update.IsRead = in.IsRead
	if update.Empty() {
		return nil, domain.Invalid("status or isRead is required")
	}

	updated, err := s.repo.Update(ctx, in.ID, update, s.now())
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Actor:      in.CallerEmail,
		Action:     domain.ActionUpdateMessage,
		Resource:   domain.ResourceMessage,
		ResourceID: updated.ID,
		At:         updated.UpdatedAt,
	})
	s.logger.Info().Str("message_id", updated.ID).Str("status", string(updated.Status)).Msg("message updated")
	return updated, nil
}

// ListByUser returns the messages filed under userEmail, newest first. The
// user is identified upstream; no authorization is applied here.
func (s *MessageService) ListByUser(ctx context.Context, userEmail string) ([]*domain.Message, error) {
	if !domain.ValidContactEmail(userEmail) {
		return nil, domain.Invalid("invalid email format")
	}
	return s.repo.ListByUserEmail(ctx, userEmail)
}
