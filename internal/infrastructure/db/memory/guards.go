package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

type GuardRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Guard
}

func NewGuardRepository() *GuardRepository {
	return &GuardRepository{byID: make(map[string]*domain.Guard)}
}

func cloneGuard(g *domain.Guard) *domain.Guard {
	c := *g
	c.Transactions = append([]domain.Transaction{}, g.Transactions...)
	c.Presence = append([]domain.PresenceEntry{}, g.Presence...)
	return &c
}

func (r *GuardRepository) List(_ context.Context) ([]*domain.Guard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Guard, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, cloneGuard(g))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *GuardRepository) FindByID(_ context.Context, id string) (*domain.Guard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGuardNotFound
	}
	return cloneGuard(g), nil
}

func (r *GuardRepository) Create(_ context.Context, guard *domain.Guard) (*domain.Guard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneGuard(guard)
	stored.ID = newID()
	r.byID[stored.ID] = stored
	return cloneGuard(stored), nil
}

func (r *GuardRepository) Update(_ context.Context, id string, patch domain.GuardPatch, at time.Time) (*domain.Guard, error) {
	return r.mutate(id, at, func(g *domain.Guard) {
		setString(&g.Name, patch.Name)
		setString(&g.Phone, patch.Phone)
		setString(&g.NID, patch.NID)
		setString(&g.Address, patch.Address)
		setString(&g.DutyPlace, patch.DutyPlace)
		setString(&g.DutyTime, patch.DutyTime)
		if patch.JoinDate != nil {
			g.JoinDate = *patch.JoinDate
		}
	})
}

func (r *GuardRepository) AppendTransaction(_ context.Context, id string, tx domain.Transaction, at time.Time) (*domain.Guard, error) {
	return r.mutate(id, at, func(g *domain.Guard) {
		g.Transactions = append(g.Transactions, tx)
	})
}

func (r *GuardRepository) AppendPresence(_ context.Context, id string, entry domain.PresenceEntry, at time.Time) (*domain.Guard, error) {
	return r.mutate(id, at, func(g *domain.Guard) {
		g.Presence = append(g.Presence, entry)
	})
}

func (r *GuardRepository) Transactions(ctx context.Context, id string) ([]domain.Transaction, error) {
	g, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Transactions, nil
}

func (r *GuardRepository) Presence(ctx context.Context, id string) ([]domain.PresenceEntry, error) {
	g, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Presence, nil
}

func (r *GuardRepository) mutate(id string, at time.Time, fn func(*domain.Guard)) (*domain.Guard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrGuardNotFound
	}
	fn(g)
	g.UpdatedAt = at
	return cloneGuard(g), nil
}
