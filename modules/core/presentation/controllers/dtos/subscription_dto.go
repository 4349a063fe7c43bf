package dtos

import (
	"github.com/go-playground/validator/v10"

	"github.com/qoveo/platform/pkg/constants"
)

type UpgradeSubscriptionDTO struct {
	Tier   string `json:"tier" validate:"required,oneof=trial tier-1 tier-2 tier-3 tier-4 unlimited"`
	Months int    `json:"months" validate:"required,gte=1,lte=60"`
}

func (dto *UpgradeSubscriptionDTO) Ok() (map[string]string, bool) {
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
