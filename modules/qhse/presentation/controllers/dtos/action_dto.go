package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/qhse/domain/entities/action"
	"github.com/qoveo/platform/pkg/constants"
)

type CreateActionDTO struct {
	ProcessID  string `json:"processId" validate:"required,uuid4"`
	Title      string `json:"title" validate:"required,max=300"`
	AssigneeID string `json:"assigneeId" validate:"omitempty,uuid4"`
	DueDate    string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateActionDTO struct {
	Title      string `json:"title" validate:"required,max=300"`
	Status     string `json:"status" validate:"required,oneof=open in_progress closed"`
	AssigneeID string `json:"assigneeId" validate:"omitempty,uuid4"`
	DueDate    string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

func (dto *CreateActionDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func (dto *CreateActionDTO) ToEntity() *action.Action {
	opts := []action.Option{}
	if dto.AssigneeID != "" {
		opts = append(opts, action.WithAssigneeID(uuid.MustParse(dto.AssigneeID)))
	}
	if dto.DueDate != "" {
		due, _ := time.Parse("2006-01-02", dto.DueDate)
		opts = append(opts, action.WithDueDate(&due))
	}
	return action.New(uuid.MustParse(dto.ProcessID), dto.Title, opts...)
}

func (dto *UpdateActionDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func (dto *UpdateActionDTO) Apply(a *action.Action) {
	a.Retitle(dto.Title)
	a.SetStatus(action.Status(dto.Status))
	if dto.AssigneeID != "" {
		a.Assign(uuid.MustParse(dto.AssigneeID))
	}
	if dto.DueDate != "" {
		due, _ := time.Parse("2006-01-02", dto.DueDate)
		a.SetDueDate(&due)
	}
}
