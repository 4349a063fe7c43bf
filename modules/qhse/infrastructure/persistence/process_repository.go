package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/modules/qhse/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/mapping"
	"github.com/qoveo/platform/pkg/repo"
)

type ProcessRepository struct {
	scoped *repo.TenantScoped[*process.Process]
}

func NewProcessRepository() process.Repository {
	return &ProcessRepository{
		scoped: repo.NewTenantScoped(repo.Mapper[*process.Process]{
			Table:   "processes",
			Columns: []string{"name", "description", "pilot_id"},
			ID:      func(p *process.Process) uuid.UUID { return p.ID() },
			Args: func(p *process.Process) []any {
				return []any{
					p.Name(),
					mapping.ValueToSQLNullString(p.Description()),
					nullableUUIDArg(p.PilotID()),
				}
			},
			Scan: scanProcess,
		}),
	}
}

func nullableUUIDArg(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func scanProcess(rows pgx.Rows) (*process.Process, error) {
	var m models.Process
	if err := rows.Scan(
		&m.ID,
		&m.TenantID,
		&m.IsActive,
		&m.Name,
		&m.Description,
		&m.PilotID,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainProcess(&m)
}

func processDomainErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return process.ErrNotFound
	}
	return err
}

func (r *ProcessRepository) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*process.Process, error) {
	return r.scoped.FindAll(ctx, tenantID, includeArchived)
}

func (r *ProcessRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*process.Process, error) {
	p, err := r.scoped.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, processDomainErr(err)
	}
	return p, nil
}

func (r *ProcessRepository) Create(ctx context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	return r.scoped.Create(ctx, tenantID, p)
}

func (r *ProcessRepository) Update(ctx context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	updated, err := r.scoped.Update(ctx, tenantID, p)
	if err != nil {
		return nil, processDomainErr(err)
	}
	return updated, nil
}

func (r *ProcessRepository) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	return processDomainErr(r.scoped.Archive(ctx, id, tenantID))
}

func (r *ProcessRepository) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	return processDomainErr(r.scoped.Restore(ctx, id, tenantID))
}

func (r *ProcessRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return r.scoped.Count(ctx, tenantID, true)
}
