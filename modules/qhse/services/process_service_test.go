package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/modules/qhse/services"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

type inMemProcessRepository struct {
	processes map[uuid.UUID]*process.Process
	archived  map[uuid.UUID]bool
}

func newInMemProcessRepository() *inMemProcessRepository {
	return &inMemProcessRepository{
		processes: make(map[uuid.UUID]*process.Process),
		archived:  make(map[uuid.UUID]bool),
	}
}

func (r *inMemProcessRepository) GetAll(_ context.Context, tenantID uuid.UUID, includeArchived bool) ([]*process.Process, error) {
	var out []*process.Process
	for id, p := range r.processes {
		if p.TenantID() != tenantID {
			continue
		}
		if !includeArchived && r.archived[id] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *inMemProcessRepository) GetByID(_ context.Context, id, tenantID uuid.UUID) (*process.Process, error) {
	p, ok := r.processes[id]
	if !ok || p.TenantID() != tenantID {
		return nil, process.ErrNotFound
	}
	return p, nil
}

func (r *inMemProcessRepository) Create(_ context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	created := process.New(p.Name(),
		process.WithID(p.ID()),
		process.WithTenantID(tenantID),
		process.WithDescription(p.Description()),
		process.WithPilotID(p.PilotID()),
	)
	r.processes[created.ID()] = created
	return created, nil
}

func (r *inMemProcessRepository) Update(_ context.Context, tenantID uuid.UUID, p *process.Process) (*process.Process, error) {
	if _, ok := r.processes[p.ID()]; !ok {
		return nil, process.ErrNotFound
	}
	r.processes[p.ID()] = p
	return p, nil
}

func (r *inMemProcessRepository) Archive(_ context.Context, id, tenantID uuid.UUID) error {
	p, ok := r.processes[id]
	if !ok || p.TenantID() != tenantID {
		return process.ErrNotFound
	}
	r.archived[id] = true
	return nil
}

func (r *inMemProcessRepository) Restore(_ context.Context, id, tenantID uuid.UUID) error {
	p, ok := r.processes[id]
	if !ok || p.TenantID() != tenantID {
		return process.ErrNotFound
	}
	r.archived[id] = false
	return nil
}

func (r *inMemProcessRepository) Count(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for id, p := range r.processes {
		if p.TenantID() == tenantID && !r.archived[id] {
			count++
		}
	}
	return count, nil
}

type inMemActionRepository struct {
	actions          map[uuid.UUID]*action.Action
	archivedByParent []uuid.UUID
}

func newInMemActionRepository() *inMemActionRepository {
	return &inMemActionRepository{actions: make(map[uuid.UUID]*action.Action)}
}

func (r *inMemActionRepository) GetAll(_ context.Context, tenantID uuid.UUID, _ bool) ([]*action.Action, error) {
	var out []*action.Action
	for _, a := range r.actions {
		if a.TenantID() == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *inMemActionRepository) GetByProcess(_ context.Context, processID, tenantID uuid.UUID) ([]*action.Action, error) {
	var out []*action.Action
	for _, a := range r.actions {
		if a.TenantID() == tenantID && a.ProcessID() == processID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *inMemActionRepository) GetByID(_ context.Context, id, tenantID uuid.UUID) (*action.Action, error) {
	a, ok := r.actions[id]
	if !ok || a.TenantID() != tenantID {
		return nil, action.ErrNotFound
	}
	return a, nil
}

func (r *inMemActionRepository) Create(_ context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	created := action.New(a.ProcessID(), a.Title(),
		action.WithID(a.ID()),
		action.WithTenantID(tenantID),
		action.WithStatus(a.Status()),
	)
	r.actions[created.ID()] = created
	return created, nil
}

func (r *inMemActionRepository) Update(_ context.Context, tenantID uuid.UUID, a *action.Action) (*action.Action, error) {
	if _, ok := r.actions[a.ID()]; !ok {
		return nil, action.ErrNotFound
	}
	r.actions[a.ID()] = a
	return a, nil
}

func (r *inMemActionRepository) Archive(_ context.Context, id, tenantID uuid.UUID) error {
	if _, ok := r.actions[id]; !ok {
		return action.ErrNotFound
	}
	return nil
}

func (r *inMemActionRepository) Restore(_ context.Context, id, tenantID uuid.UUID) error {
	if _, ok := r.actions[id]; !ok {
		return action.ErrNotFound
	}
	return nil
}

func (r *inMemActionRepository) ArchiveByProcess(_ context.Context, processID, tenantID uuid.UUID) error {
	r.archivedByParent = append(r.archivedByParent, processID)
	return nil
}

type stubQuota struct {
	err   error
	asked []plan.Metric
}

func (s *stubQuota) CheckQuota(_ context.Context, _ uuid.UUID, metric plan.Metric) error {
	s.asked = append(s.asked, metric)
	return s.err
}

// passthroughTx runs the function directly, standing in for a database
// transaction.
func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newProcessService(repo *inMemProcessRepository, actions *inMemActionRepository, quota *stubQuota) *services.ProcessService {
	return services.NewProcessService(
		repo,
		actions,
		quota,
		eventbus.NewEventPublisher(logrus.New()),
		services.WithTransactor(passthroughTx),
	)
}

func TestProcessService_Create(t *testing.T) {
	tenantID := uuid.New()

	t.Run("within quota", func(t *testing.T) {
		quota := &stubQuota{}
		svc := newProcessService(newInMemProcessRepository(), newInMemActionRepository(), quota)

		created, err := svc.Create(context.Background(), tenantID, process.New("Purchasing"))
		require.NoError(t, err)
		assert.Equal(t, "Purchasing", created.Name())
		assert.Equal(t, tenantID, created.TenantID())
		assert.Equal(t, []plan.Metric{plan.MetricProcesses}, quota.asked)
	})

	t.Run("quota exhausted", func(t *testing.T) {
		quota := &stubQuota{err: serrors.NewQuotaExceeded(string(plan.MetricProcesses), 10)}
		repo := newInMemProcessRepository()
		svc := newProcessService(repo, newInMemActionRepository(), quota)

		_, err := svc.Create(context.Background(), tenantID, process.New("Purchasing"))
		require.Error(t, err)
		assert.Equal(t, serrors.CodeQuotaExceeded, serrors.CodeOf(err))
		assert.Empty(t, repo.processes)
	})
}

func TestProcessService_GetByID_CrossTenantIsNotFound(t *testing.T) {
	repo := newInMemProcessRepository()
	svc := newProcessService(repo, newInMemActionRepository(), &stubQuota{})

	owner := uuid.New()
	created, err := svc.Create(context.Background(), owner, process.New("Purchasing"))
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), created.ID(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
}

func TestProcessService_ArchiveCascadesToActions(t *testing.T) {
	tenantID := uuid.New()
	repo := newInMemProcessRepository()
	actions := newInMemActionRepository()
	svc := newProcessService(repo, actions, &stubQuota{})

	created, err := svc.Create(context.Background(), tenantID, process.New("Purchasing"))
	require.NoError(t, err)

	require.NoError(t, svc.Archive(context.Background(), created.ID(), tenantID))
	assert.True(t, repo.archived[created.ID()])
	assert.Equal(t, []uuid.UUID{created.ID()}, actions.archivedByParent)

	// archived processes disappear from the default listing
	listed, err := svc.GetAll(context.Background(), tenantID, false)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, svc.Restore(context.Background(), created.ID(), tenantID))
	listed, err = svc.GetAll(context.Background(), tenantID, false)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestActionService_CreateValidatesParentProcess(t *testing.T) {
	tenantID := uuid.New()
	processes := newInMemProcessRepository()
	actions := newInMemActionRepository()
	processSvc := newProcessService(processes, actions, &stubQuota{})
	svc := services.NewActionService(actions, processes)

	parent, err := processSvc.Create(context.Background(), tenantID, process.New("Purchasing"))
	require.NoError(t, err)

	t.Run("parent in same tenant", func(t *testing.T) {
		created, err := svc.Create(context.Background(), tenantID, action.New(parent.ID(), "Fix supplier audit"))
		require.NoError(t, err)
		assert.Equal(t, parent.ID(), created.ProcessID())
	})

	t.Run("parent from another tenant reads as missing", func(t *testing.T) {
		_, err := svc.Create(context.Background(), uuid.New(), action.New(parent.ID(), "Fix supplier audit"))
		require.Error(t, err)
		assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
	})

	t.Run("unknown parent", func(t *testing.T) {
		_, err := svc.Create(context.Background(), tenantID, action.New(uuid.New(), "Fix supplier audit"))
		require.Error(t, err)
		assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
	})
}
