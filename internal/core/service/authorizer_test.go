package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Shared stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

var errStoreDown = errors.New("store unavailable")

type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(e domain.AuditEvent) {
	a.events = append(a.events, e)
}

// countingUserRepo wraps the in-memory repo and counts email lookups.
type countingUserRepo struct {
	*memory.UserRepository
	lookups int
	findErr error
}

func (r *countingUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.UserRepository.FindByEmail(ctx, email)
}

func seedUser(t *testing.T, repo interface {
	Create(context.Context, *domain.User) (*domain.User, error)
}, email string, admin bool) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := repo.Create(context.Background(), &domain.User{
		Email:     email,
		IsAdmin:   admin,
		Password:  "hash",
		UID:       "uid-" + email,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

// ---------------------------------------------------------------------------
// AdminAuthorizer
// ---------------------------------------------------------------------------

func TestAdminAuthorizer_MissingEmail(t *testing.T) {
	repo := &countingUserRepo{UserRepository: memory.NewUserRepository()}
	authz := NewAdminAuthorizer(repo, discardLogger)

	for _, email := range []string{"", "   "} {
		if err := authz.Authorize(context.Background(), email); !errors.Is(err, domain.ErrEmailRequired) {
			t.Fatalf("expected ErrEmailRequired for %q, got %v", email, err)
		}
	}
	if repo.lookups != 0 {
		t.Fatalf("store must not be queried without an email, got %d lookups", repo.lookups)
	}
}

func TestAdminAuthorizer_UnknownUserIsForbidden(t *testing.T) {
	authz := NewAdminAuthorizer(memory.NewUserRepository(), discardLogger)

	err := authz.Authorize(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Fatal("unknown caller must not surface as not-found")
	}
}

func TestAdminAuthorizer_NonAdminIsForbidden(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "bob@example.com", false)
	authz := NewAdminAuthorizer(repo, discardLogger)

	if err := authz.Authorize(context.Background(), "bob@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminAuthorizer_AdminGranted(t *testing.T) {
	repo := memory.NewUserRepository()
	seedUser(t, repo, "root@example.com", true)
	authz := NewAdminAuthorizer(repo, discardLogger)

	if err := authz.Authorize(context.Background(), "root@example.com"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAdminAuthorizer_StoreErrorPropagates(t *testing.T) {
	repo := &countingUserRepo{UserRepository: memory.NewUserRepository(), findErr: errStoreDown}
	authz := NewAdminAuthorizer(repo, discardLogger)

	if err := authz.Authorize(context.Background(), "root@example.com"); !errors.Is(err, errStoreDown) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAdminAuthorizer_NeverCaches(t *testing.T) {
	repo := &countingUserRepo{UserRepository: memory.NewUserRepository()}
	admin := seedUser(t, repo, "root@example.com", true)
	authz := NewAdminAuthorizer(repo, discardLogger)
	ctx := context.Background()

	if err := authz.Authorize(ctx, "root@example.com"); err != nil {
		t.Fatalf("first check: %v", err)
	}

	// Revoke directly in the store; the next check must observe it.
	if _, err := repo.SetAdmin(ctx, admin.ID, false, time.Now()); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := authz.Authorize(ctx, "root@example.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden after revocation, got %v", err)
	}
	if repo.lookups != 2 {
		t.Fatalf("expected one lookup per call, got %d", repo.lookups)
	}
}
