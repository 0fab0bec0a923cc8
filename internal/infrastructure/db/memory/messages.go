package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sentinelforce/agency-api/internal/core/domain"
)

type MessageRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Message
	order []string
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{byID: make(map[string]*domain.Message)}
}

func cloneMessage(m *domain.Message) *domain.Message {
	c := *m
	return &c
}

func (r *MessageRepository) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneMessage(msg)
	stored.ID = newID()
	r.byID[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneMessage(stored), nil
}

func (r *MessageRepository) List(_ context.Context) ([]*domain.Message, error) {
	return r.filter(func(*domain.Message) bool { return true }), nil
}

func (r *MessageRepository) ListByUserEmail(_ context.Context, userEmail string) ([]*domain.Message, error) {
	return r.filter(func(m *domain.Message) bool { return m.UserEmail == userEmail }), nil
}

func (r *MessageRepository) Update(_ context.Context, id string, update domain.MessageUpdate, at time.Time) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMessageNotFound
	}
	if update.Status != nil {
		m.Status = *update.Status
	}
	if update.IsRead != nil {
		m.IsRead = *update.IsRead
	}
	m.UpdatedAt = at
	return cloneMessage(m), nil
}

// filter returns matching messages newest first; equal timestamps fall back
// to reverse insertion order.
func (r *MessageRepository) filter(keep func(*domain.Message) bool) []*domain.Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Message, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if m := r.byID[r.order[i]]; keep(m) {
			out = append(out, cloneMessage(m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
