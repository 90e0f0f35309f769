// Package validator holds the shared validator instance used for query
// parameter structs; JSON bodies are validated through Gin binding tags.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

func GetValidator() *validator.Validate {
	return validate
}
