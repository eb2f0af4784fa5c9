package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		return Career(fl.Field().String()).Valid()
	})
	v.RegisterValidation("skill", func(fl validator.FieldLevel) bool {
		return Skill(fl.Field().String()).Valid()
	})
	return v
}

// ValidationError reports every field that violated its constraints so the
// caller can correct them in one pass.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// Validate runs the struct-tag rules against v. It returns a
// *ValidationError enumerating all violated fields, or nil.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("cannot be longer than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL with HTTP or HTTPS"
	case "career":
		return "is not a recognized career"
	case "skill":
		return "must be beginner, intermediate or advanced"
	}
	return "is invalid"
}
