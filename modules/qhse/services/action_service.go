package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/pkg/serrors"
)

type ActionService struct {
	repo      action.Repository
	processes process.Repository
}

func NewActionService(repo action.Repository, processes process.Repository) *ActionService {
	return &ActionService{
		repo:      repo,
		processes: processes,
	}
}

func (s *ActionService) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*action.Action, error) {
	return s.repo.GetAll(ctx, tenantID, includeArchived)
}

func (s *ActionService) GetByProcess(ctx context.Context, processID, tenantID uuid.UUID) ([]*action.Action, error) {
	return s.repo.GetByProcess(ctx, processID, tenantID)
}

func (s *ActionService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*action.Action, error) {
	a, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, action.ErrNotFound) {
			return nil, serrors.NewNotFound("action")
		}
		return nil, err
	}
	return a, nil
}

// Create verifies the parent process exists in the same tenant. A process
// ID from another tenant surfaces as not-found, never as forbidden.
func (s *ActionService) Create(ctx context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	if !a.Status().Valid() {
		return nil, serrors.NewInvalidInput("unknown action status: " + string(a.Status()))
	}
	if _, err := s.processes.GetByID(ctx, a.ProcessID(), tenantID); err != nil {
		if errors.Is(err, process.ErrNotFound) {
			return nil, serrors.NewNotFound("process")
		}
		return nil, err
	}

	created, err := s.repo.Create(ctx, tenantID, a)
	if err != nil {
		return nil, errors.Wrap(err, "create action")
	}
	return created, nil
}

func (s *ActionService) Update(ctx context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	if !a.Status().Valid() {
		return nil, serrors.NewInvalidInput("unknown action status: " + string(a.Status()))
	}
	updated, err := s.repo.Update(ctx, tenantID, a)
	if err != nil {
		if errors.Is(err, action.ErrNotFound) {
			return nil, serrors.NewNotFound("action")
		}
		return nil, err
	}
	return updated, nil
}

func (s *ActionService) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Archive(ctx, id, tenantID); err != nil {
		if errors.Is(err, action.ErrNotFound) {
			return serrors.NewNotFound("action")
		}
		return err
	}
	return nil
}

func (s *ActionService) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Restore(ctx, id, tenantID); err != nil {
		if errors.Is(err, action.ErrNotFound) {
			return serrors.NewNotFound("action")
		}
		return err
	}
	return nil
}
