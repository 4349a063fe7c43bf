package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/user"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/serrors"
)

// QuotaChecker is the slice of the subscription service the user service
// needs. Pilot and quality-manager seats are metered per plan.
type QuotaChecker interface {
	CheckQuota(ctx context.Context, tenantID uuid.UUID, metric plan.Metric) error
}

type UserService struct {
	repo  user.Repository
	quota QuotaChecker
}

func NewUserService(repo user.Repository, quota QuotaChecker) *UserService {
	return &UserService{
		repo:  repo,
		quota: quota,
	}
}

// quotaMetricFor maps metered roles to their plan metric. Roles outside the
// map are unmetered.
func quotaMetricFor(role composables.Role) (plan.Metric, bool) {
	switch role {
	case composables.RolePilot:
		return plan.MetricPilotUsers, true
	case composables.RoleQualityManager:
		return plan.MetricQualityManagers, true
	default:
		return "", false
	}
}

func (s *UserService) GetAll(ctx context.Context, tenantID uuid.UUID, includeArchived bool) ([]*user.User, error) {
	return s.repo.GetAll(ctx, tenantID, includeArchived)
}

func (s *UserService) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, serrors.NewNotFound("user")
		}
		return nil, err
	}
	return u, nil
}

// Create adds a member to the tenant. Seat quotas apply to the target role,
// not the caller's.
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, u *user.User) (*user.User, error) {
	if !u.Role().Valid() {
		return nil, serrors.NewInvalidInput("unknown role: " + string(u.Role()))
	}
	if metric, metered := quotaMetricFor(u.Role()); metered {
		if err := s.quota.CheckQuota(ctx, tenantID, metric); err != nil {
			return nil, err
		}
	}
	created, err := s.repo.Create(ctx, tenantID, u)
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return created, nil
}

// ChangeRole applies the same seat check when moving a user into a metered
// role. Moving out of one frees the seat implicitly, the live count drops.
func (s *UserService) ChangeRole(ctx context.Context, id, tenantID uuid.UUID, role composables.Role) (*user.User, error) {
	if !role.Valid() {
		return nil, serrors.NewInvalidInput("unknown role: " + string(role))
	}

	u, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, serrors.NewNotFound("user")
		}
		return nil, err
	}
	if u.Role() == role {
		return u, nil
	}

	if metric, metered := quotaMetricFor(role); metered {
		if err := s.quota.CheckQuota(ctx, tenantID, metric); err != nil {
			return nil, err
		}
	}

	u.SetRole(role)
	updated, err := s.repo.Update(ctx, tenantID, u)
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return updated, nil
}

func (s *UserService) Archive(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Archive(ctx, id, tenantID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return serrors.NewNotFound("user")
		}
		return err
	}
	return nil
}

func (s *UserService) Restore(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Restore(ctx, id, tenantID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return serrors.NewNotFound("user")
		}
		return err
	}
	return nil
}
