package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/pkg/composables"
)

// UsageRepository counts live rows per quota metric. Counts are computed on
// demand and never cached; they are only as fresh as the moment of the query.
type UsageRepository struct{}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{}
}

func (r *UsageRepository) Count(ctx context.Context, tenantID uuid.UUID, metric plan.Metric) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var query string
	args := []any{tenantID}
	switch metric {
	case plan.MetricProcesses:
		query = `SELECT COUNT(*) FROM processes WHERE tenant_id = $1 AND is_active = true`
	case plan.MetricPilotUsers:
		query = `SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND role = $2 AND is_active = true`
		args = append(args, string(composables.RolePilot))
	case plan.MetricQualityManagers:
		query = `SELECT COUNT(*) FROM users WHERE tenant_id = $1 AND role = $2 AND is_active = true`
		args = append(args, string(composables.RoleQualityManager))
	default:
		return 0, fmt.Errorf("unknown quota metric: %s", metric)
	}

	var count int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
