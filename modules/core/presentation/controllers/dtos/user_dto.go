package dtos

import (
	"github.com/qoveo/platform/modules/core/domain/entities/user"
	"github.com/qoveo/platform/pkg/composables"
	"github.com/qoveo/platform/pkg/constants"
)

type CreateUserDTO struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=admin pilot quality_manager employee"`
}

type ChangeUserRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=admin pilot quality_manager employee"`
}

func (dto *CreateUserDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func (dto *CreateUserDTO) ToEntity() *user.User {
	return user.New(
		dto.FirstName,
		dto.LastName,
		dto.Email,
		user.WithRole(composables.Role(dto.Role)),
	)
}

func (dto *ChangeUserRoleDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}
