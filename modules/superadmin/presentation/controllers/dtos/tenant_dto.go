package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/qoveo/platform/pkg/constants"
)

type ProvisionTenantDTO struct {
	Name   string `json:"name" validate:"required,max=200"`
	Domain string `json:"domain" validate:"omitempty,hostname_rfc1123"`
}

func (dto *ProvisionTenantDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return fieldErrors(err), false
	}
	return nil, true
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
