package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sentinelforce/agency-api/internal/core/domain"
	"github.com/sentinelforce/agency-api/internal/core/ports"
	"github.com/sentinelforce/agency-api/internal/pkg/metrics"
)

type GuardService struct {
	repo   ports.GuardRepository
	authz  ports.AdminAuthorizer
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewGuardService(repo ports.GuardRepository, authz ports.AdminAuthorizer, audit ports.AuditSink, logger zerolog.Logger) *GuardService {
	return &GuardService{
		repo:   repo,
		authz:  authz,
		audit:  audit,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *GuardService) List(ctx context.Context, callerEmail string) ([]*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *GuardService) Get(ctx context.Context, callerEmail, id string) (*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Create stores a new guard, seeding its logs from the optional input lists.
func (s *GuardService) Create(ctx context.Context, callerEmail string, in ports.CreateGuardInput) (*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Phone == "" || in.NID == "" || in.DutyPlace == "" || in.DutyTime == "" {
		return nil, domain.Invalid("name, phone, nid, dutyPlace and dutyTime are required")
	}

	now := s.now()
	joinDate := now
	if in.JoinDate != "" {
		parsed, err := domain.ParseDate(in.JoinDate)
		if err != nil {
			return nil, err
		}
		joinDate = parsed
	}

	transactions, err := domain.SeedTransactions(in.Transactions, now)
	if err != nil {
		return nil, err
	}
	presence, err := domain.SeedPresence(in.Presence, now)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Guard{
		Name:         in.Name,
		Phone:        in.Phone,
		NID:          in.NID,
		Address:      in.Address,
		JoinDate:     joinDate,
		DutyPlace:    in.DutyPlace,
		DutyTime:     in.DutyTime,
		Transactions: transactions,
		Presence:     presence,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(callerEmail, domain.ActionCreateGuard, created)
	s.logger.Info().Str("guard_id", created.ID).Msg("guard created")
	return created, nil
}

// Update overwrites core fields only. The input type has no slot for the
// transaction or presence logs, so they cannot be replaced here.
func (s *GuardService) Update(ctx context.Context, callerEmail, id string, in ports.UpdateGuardInput) (*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}

	patch := domain.GuardPatch{
		Name:      in.Name,
		Phone:     in.Phone,
		NID:       in.NID,
		Address:   in.Address,
		DutyPlace: in.DutyPlace,
		DutyTime:  in.DutyTime,
	}
	if in.JoinDate != nil {
		parsed, err := domain.ParseDate(*in.JoinDate)
		if err != nil {
			return nil, err
		}
		patch.JoinDate = &parsed
	}

	updated, err := s.repo.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, err
	}

	s.record(callerEmail, domain.ActionUpdateGuard, updated)
	s.logger.Info().Str("guard_id", updated.ID).Msg("guard updated")
	return updated, nil
}

// AppendTransaction adds one entry to the end of the guard's ledger.
func (s *GuardService) AppendTransaction(ctx context.Context, callerEmail, id string, in ports.TransactionInput) (*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}

	amount, ok := in.Amount.(float64)
	if in.Type == "" || !ok {
		return nil, domain.Invalid("type and numeric amount are required")
	}

	now := s.now()
	date := now
	if in.Date != "" {
		parsed, err := domain.ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	tx := domain.Transaction{Type: in.Type, Amount: amount, Date: date, Note: in.Note}
	updated, err := s.repo.AppendTransaction(ctx, id, tx, now)
	if err != nil {
		return nil, err
	}

	metrics.GuardLogAppendsTotal.WithLabelValues("transactions").Inc()
	s.record(callerEmail, domain.ActionAppendTransaction, updated)
	s.logger.Info().Str("guard_id", updated.ID).Str("type", tx.Type).Float64("amount", tx.Amount).Msg("transaction appended")
	return updated, nil
}

// AppendPresence adds one entry to the end of the guard's attendance log.
func (s *GuardService) AppendPresence(ctx context.Context, callerEmail, id string, in ports.PresenceInput) (*domain.Guard, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	if in.Date == "" || in.Status == "" {
		return nil, domain.Invalid("date and status are required")
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.AppendPresence(ctx, id, domain.PresenceEntry{Date: date, Status: in.Status}, s.now())
	if err != nil {
		return nil, err
	}

	metrics.GuardLogAppendsTotal.WithLabelValues("presence").Inc()
	s.record(callerEmail, domain.ActionAppendPresence, updated)
	s.logger.Info().Str("guard_id", updated.ID).Str("status", in.Status).Msg("presence appended")
	return updated, nil
}

// Transactions returns the ledger of guard id, empty when it has none.
func (s *GuardService) Transactions(ctx context.Context, callerEmail, id string) ([]domain.Transaction, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	txs, err := s.repo.Transactions(ctx, id)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return txs, nil
}

func (s *GuardService) Presence(ctx context.Context, callerEmail, id string) ([]domain.PresenceEntry, error) {
	if err := s.authz.Authorize(ctx, callerEmail); err != nil {
		return nil, err
	}
	entries, err := s.repo.Presence(ctx, id)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.PresenceEntry{}
	}
	return entries, nil
}

func (s *GuardService) record(actor, action string, g *domain.Guard) {
	s.audit.Record(domain.AuditEvent{
		Actor:      actor,
		Action:     action,
		Resource:   domain.ResourceGuard,
		ResourceID: g.ID,
		At:         g.UpdatedAt,
	})
}
