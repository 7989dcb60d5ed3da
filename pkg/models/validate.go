package models

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// Validate runs the struct-tag validation rules declared on a model.
// The persistence layer calls this before inserting documents so invalid
// records never reach the database regardless of which handler built them.
func Validate(v any) error {
	return validate.Struct(v)
}
