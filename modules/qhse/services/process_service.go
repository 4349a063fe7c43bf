package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

// QuotaChecker is the slice of the subscription service this module needs.
type QuotaChecker interface {
	CheckQuota(ctx context.Context, tenantID uuid.UUID, metric plan.Metric) error
}

type ProcessService struct {
	repo      process.Repository
	actions   action.Repository
	quota     QuotaChecker
	publisher eventbus.EventBus
	inTx      func(context.Context, func(context.Context) error) error
}

type ProcessOption func(*ProcessService)

// WithTransactor swaps the transaction wrapper. Tests use it to run the
// archive cascade without a database pool.
func WithTransactor(inTx func(context.Context, func(context.Context) error) error) ProcessOption {
	return func(s *ProcessService) {
		s.inTx = inTx
	}
}

func NewProcessService(
	repo process.Repository,
	actions action.Repository,
	quota QuotaChecker,
	publisher eventbus.EventBus,
	opts ...ProcessOption,
) *ProcessService {
	s := &ProcessService{
		repo:      repo,
		actions:   actions,
		quota:     quota,
		publisher: publisher,
		inTx:      composables.InTx,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProcessService) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*process.Process, error) {
	return s.repo.GetAll(ctx, tenantID, includeArchived)
}

func (s *ProcessService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*process.Process, error) {
	p, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return nil, serrors.NewNotFound("process")
		}
		return nil, err
	}
	return p, nil
}

// Create checks the process quota first. The check and the insert are not
// one atomic step, so two concurrent creates can both pass at count
// limit-1; the ceiling is a soft limit.
func (s *ProcessService) Create(ctx context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	if err := s.quota.CheckQuota(ctx, tenantID, plan.MetricProcesses); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, tenantID, p)
	if err != nil {
		return nil, errors.Wrap(err, "create process")
	}
	s.publisher.Publish(process.NewCreatedEvent(created))
	return created, nil
}

func (s *ProcessService) Update(ctx context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	updated, err := s.repo.Update(ctx, tenantID, p)
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return nil, serrors.NewNotFound("process")
		}
		return nil, err
	}
	return updated, nil
}

// Archive soft-deletes the process and every action attached to it, in one
// transaction so a crash cannot leave live actions on a dead process.
func (s *ProcessService) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	var archived *process.Process
	err := s.inTx(ctx, func(txCtx context.Context) error {
		p, err := s.repo.GetByID(txCtx, id, tenantID)
		if err != nil {
			return err
		}
		if err := s.repo.Archive(txCtx, id, tenantID); err != nil {
			return err
		}
		if err := s.actions.ArchiveByProcess(txCtx, id, tenantID); err != nil {
			return err
		}
		archived = p
		return nil
	})
	if err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return serrors.NewNotFound("process")
		}
		return err
	}
	s.publisher.Publish(process.NewArchivedEvent(archived))
	return nil
}

func (s *ProcessService) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Restore(ctx, id, tenantID); err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return serrors.NewNotFound("process")
		}
		return err
	}
	return nil
}
