package constants

import "github.com/go-playground/validator/v10"

// Validate is the shared validator instance. Struct tag rules live on the
// DTOs themselves.
var Validate = validator.New()
