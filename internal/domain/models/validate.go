package models

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidEmail reports whether s is a bare email address, using the same rule
// as the `email` tag on request DTOs. Display-name forms are rejected.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}
