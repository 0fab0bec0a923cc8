package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byEmail {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// List returns users in creation order.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		out = append(out, cloneUser(u))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	stored.ID = newID()
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *UserRepository) Update(_ context.Context, email string, patch domain.UserPatch, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	setString(&u.Name, patch.Name)
	setString(&u.PhotoURL, patch.PhotoURL)
	setString(&u.Phone, patch.Phone)
	setString(&u.Address, patch.Address)
	setString(&u.Role, patch.Role)
	setString(&u.Password, patch.Password)
	setString(&u.UID, patch.UID)
	if patch.EmailVerified != nil {
		u.EmailVerified = *patch.EmailVerified
	}
	if patch.LastLogin != nil {
		t := *patch.LastLogin
		u.LastLogin = &t
	}
	u.UpdatedAt = at
	return cloneUser(u), nil
}

func (r *UserRepository) SetAdmin(_ context.Context, id string, isAdmin bool, at time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsAdmin = isAdmin
			u.UpdatedAt = at
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
