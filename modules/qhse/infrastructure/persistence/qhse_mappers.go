package persistence

import (
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/modules/qhse/infrastructure/persistence/models"
	"github.com/qoveo/platform/pkg/mapping"
)

func parseNullableUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(value)
}

func toDomainProcess(m *models.Process) (*process.Process, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid process id")
	}
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid process tenant id")
	}
	pilotID, err := parseNullableUUID(mapping.SQLNullStringToValue(m.PilotID))
	if err != nil {
		return nil, errors.Wrap(err, "invalid process pilot id")
	}
	return process.New(
		m.Name,
		process.WithID(id),
		process.WithTenantID(tenantID),
		process.WithDescription(mapping.SQLNullStringToValue(m.Description)),
		process.WithPilotID(pilotID),
		process.WithIsActive(m.IsActive),
		process.WithCreatedAt(m.CreatedAt),
		process.WithUpdatedAt(m.UpdatedAt),
	), nil
}

func toDomainAction(m *models.Action) (*action.Action, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid action id")
	}
	tenantID, err := uuid.Parse(m.TenantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid action tenant id")
	}
	processID, err := uuid.Parse(m.ProcessID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid action process id")
	}
	assigneeID, err := parseNullableUUID(mapping.SQLNullStringToValue(m.AssigneeID))
	if err != nil {
		return nil, errors.Wrap(err, "invalid action assignee id")
	}
	return action.New(
		processID,
		m.Title,
		action.WithID(id),
		action.WithTenantID(tenantID),
		action.WithStatus(action.Status(m.Status)),
		action.WithAssigneeID(assigneeID),
		action.WithDueDate(mapping.SQLNullTimeToPointer(m.DueDate)),
		action.WithIsActive(m.IsActive),
		action.WithCreatedAt(m.CreatedAt),
		action.WithUpdatedAt(m.UpdatedAt),
	), nil
}
