package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	authz  ports.AdminAuthorizer
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, authz ports.AdminAuthorizer, audit ports.AuditSink, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		authz:  authz,
		audit:  audit,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// List returns every user, sanitized. The caller must be an admin.
func (s *UserService) List(ctx context.Context, callerEmail string) ([]domain.PublicUser, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.SanitizeAll(users), nil
}

// Get returns any user's public profile. No authorization is applied.
func (s *UserService) Get(ctx context.Context, email string) (domain.PublicUser, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return domain.Sanitize(user), nil
}

// Create registers a new account. The email must not already be registered.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (domain.PublicUser, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return domain.PublicUser{}, domain.ErrEmailRequired
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.PublicUser{}, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return domain.PublicUser{}, err
	}

	password, err := hashPassword(input.Password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	now := s.now()
	user := &domain.User{
		Email:     email,
		Name:      input.Name,
		PhotoURL:  input.PhotoURL,
		Phone:     input.Phone,
		Address:   input.Address,
		Role:      input.Role,
		Password:  password,
		UID:       input.UID,
		CreatedAt: now,
		UpdatedAt: now,
		LastLogin: &now,
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user created")
	return domain.Sanitize(created), nil
}

// Update merges patch into the user identified by email. Email and isAdmin
// cannot be changed here.
func (s *UserService) Update(ctx context.Context, email string, patch domain.UserPatch) (domain.PublicUser, error) {
	if patch.TouchesImmutable() {
		return domain.PublicUser{}, domain.ErrImmutableField
	}

	if patch.Password != nil {
		if *patch.Password == "" {
			return domain.PublicUser{}, domain.Invalid("password must not be empty")
		}
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return domain.PublicUser{}, err
		}
		patch.Password = &hashed
	}

	updated, err := s.repo.Update(ctx, email, patch, s.now())
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return domain.Sanitize(updated), nil
}

// SetAdmin changes a user's admin bit. The requester must be an existing
// admin; this is the only escalation path.
func (s *UserService) SetAdmin(ctx context.Context, input ports.SetAdminInput) (domain.PublicUser, error) {
	if err := s.authz.Authorize(ctx, input.RequesterEmail); err != nil {
		return domain.PublicUser{}, err
	}

	isAdmin, ok := input.IsAdmin.(bool)
	if !ok {
		return domain.PublicUser{}, domain.Invalid("isAdmin must be a boolean")
	}

	updated, err := s.repo.SetAdmin(ctx, input.TargetID, isAdmin, s.now())
	if err != nil {
		return domain.PublicUser{}, err
	}

	s.audit.Record(domain.AuditEvent{
		Actor:      input.RequesterEmail,
		Action:     domain.ActionSetAdmin,
		Resource:   domain.ResourceUser,
		ResourceID: updated.ID,
		At:         updated.UpdatedAt,
	})
	s.logger.Info().
		Str("user_id", updated.ID).
		Bool("is_admin", isAdmin).
		Str("requested_by", input.RequesterEmail).
		Msg("admin status changed")

	return domain.Sanitize(updated), nil
}

// RoleCheck reports a user's admin bit and role label.
func (s *UserService) RoleCheck(ctx context.Context, email string) (domain.RoleSummary, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.RoleSummary{}, err
	}

	role := user.Role
	if role == "" {
		role = domain.DefaultRole
	}
	return domain.RoleSummary{Email: user.Email, IsAdmin: user.IsAdmin, Role: role}, nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.Invalid("password must be at most 72 bytes")
		}
		return "", err
	}
	return string(hash), nil
}
