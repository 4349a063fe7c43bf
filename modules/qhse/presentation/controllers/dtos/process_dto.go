package dtos

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/qoveo/platform/modules/qhse/domain/entities/process"
	"github.com/qoveo/platform/pkg/constants"
)

type CreateProcessDTO struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PilotID     string `json:"pilotId" validate:"omitempty,uuid4"`
}

type UpdateProcessDTO struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	PilotID     string `json:"pilotId" validate:"omitempty,uuid4"`
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

func (dto *CreateProcessDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func (dto *CreateProcessDTO) ToEntity() *process.Process {
	opts := []process.Option{process.WithDescription(dto.Description)}
	if dto.PilotID != "" {
		opts = append(opts, process.WithPilotID(uuid.MustParse(dto.PilotID)))
	}
	return process.New(dto.Name, opts...)
}

func (dto *UpdateProcessDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func (dto *UpdateProcessDTO) Apply(p *process.Process) {
	p.Rename(dto.Name)
	p.SetDescription(dto.Description)
	if dto.PilotID != "" {
		p.AssignPilot(uuid.MustParse(dto.PilotID))
	}
}
