package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/mapping"
	"github.com/qoveo/platform/pkg/repo"
)

type ActionRepository struct {
	scoped *repo.TenantScoped[*action.Action]
}

func NewActionRepository() action.Repository {
	return &ActionRepository{
		scoped: repo.NewTenantScoped(repo.Mapper[*action.Action]{
			Table:   "actions",
			Columns: []string{"process_id", "title", "status", "assignee_id", "due_date"},
			ID:      func(a *action.Action) uuid.UUID { return a.ID() },
			Args: func(a *action.Action) []any {
				return []any{
					a.ProcessID(),
					a.Title(),
					string(a.Status()),
					nullableUUIDArg(a.AssigneeID()),
					mapping.PointerToSQLNullTime(a.DueDate()),
				}
			},
			Scan: scanAction,
		}),
	}
}

func scanAction(rows pgx.Rows) (*action.Action, error) {
	var m models.Action
	if err := rows.Scan(
		&m.ID,
		&m.TenantID,
		&m.IsActive,
		&m.ProcessID,
		&m.Title,
		&m.Status,
		&m.AssigneeID,
		&m.DueDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainAction(&m)
}

func actionDomainErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return action.ErrNotFound
	}
	return err
}

func (r *ActionRepository) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*action.Action, error) {
	return r.scoped.FindAll(ctx, tenantID, includeArchived)
}

func (r *ActionRepository) GetByProcess(ctx context.Context, processID, tenantID uuid.UUID) ([]*action.Action, error) {
	return r.scoped.FindWhere(ctx, tenantID, "process_id = $2", processID)
}

func (r *ActionRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*action.Action, error) {
	a, err := r.scoped.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, actionDomainErr(err)
	}
	return a, nil
}

func (r *ActionRepository) Create(ctx context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	return r.scoped.Create(ctx, tenantID, a)
}

func (r *ActionRepository) Update(ctx context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	updated, err := r.scoped.Update(ctx, tenantID, a)
	if err != nil {
		return nil, actionDomainErr(err)
	}
	return updated, nil
}

func (r *ActionRepository) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	return actionDomainErr(r.scoped.Archive(ctx, id, tenantID))
}

func (r *ActionRepository) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	return actionDomainErr(r.scoped.Restore(ctx, id, tenantID))
}

func (r *ActionRepository) ArchiveByProcess(ctx context.Context, processID, tenantID uuid.UUID) error {
	_, err := r.scoped.ArchiveWhere(ctx, tenantID, "process_id = $3", processID)
	return err
}
