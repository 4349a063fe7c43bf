package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoveo/platform/modules/core/domain/entities/plan"
	"github.com/qoveo/platform/modules/core/domain/entities/tenant"
	"github.com/qoveo/platform/modules/core/services"
	"github.com/qoveo/platform/pkg/eventbus"
	"github.com/qoveo/platform/pkg/serrors"
)

func newTenantFixture(opts ...services.TenantOption) (*services.TenantService, *inMemTenantRepository) {
	repo := newInMemTenantRepository()
	svc := services.NewTenantService(repo, eventbus.NewEventPublisher(logrus.New()), opts...)
	return svc, repo
}

func TestTenantService_Provision(t *testing.T) {
	svc, _ := newTenantFixture(services.WithTrialDays(30))

	created, err := svc.Provision(context.Background(), "Acme", "acme.example.com")
	require.NoError(t, err)

	assert.Equal(t, plan.TierTrial, created.Tier())
	assert.Equal(t, tenant.StatusTrial, created.Status())
	assert.True(t, created.IsActive())

	require.NotNil(t, created.EndDate())
	wantEnd := time.Now().AddDate(0, 0, 30)
	assert.WithinDuration(t, wantEnd, *created.EndDate(), time.Minute)
}

func TestTenantService_Provision_RequiresName(t *testing.T) {
	svc, _ := newTenantFixture()

	_, err := svc.Provision(context.Background(), "", "acme.example.com")
	assert.Equal(t, serrors.CodeInvalidInput, serrors.CodeOf(err))
}

func TestTenantService_GetByID_Unknown(t *testing.T) {
	svc, _ := newTenantFixture()

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
}

func TestTenantService_GetByDomain(t *testing.T) {
	svc, _ := newTenantFixture()

	created, err := svc.Provision(context.Background(), "Acme", "acme.example.com")
	require.NoError(t, err)

	found, err := svc.GetByDomain(context.Background(), "acme.example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID(), found.ID())

	_, err = svc.GetByDomain(context.Background(), "nobody.example.com")
	assert.Equal(t, serrors.CodeNotFound, serrors.CodeOf(err))
}
