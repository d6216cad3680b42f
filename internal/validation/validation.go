// Package validation turns go-playground/validator violations into the
// field -> messages reports the API returns on 422 responses.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the list of human-readable violations
// recorded against it. All failing fields are reported, not just the first.
type Errors map[string][]string

// Error implements the error interface.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msgs := range e {
		parts = append(parts, field+": "+strings.Join(msgs, ", "))
	}
	return strings.Join(parts, "; ")
}

// Add appends a violation message for a field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Validator adapts validator/v10 to echo's Validator interface and reports
// violations keyed by the JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New builds the request validator.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks a bound request struct. On failure it returns Errors with
// every violated field; rule evaluation is side-effect-free.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := Errors{}
	for _, fe := range violations {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// message renders one violation in the wording clients already rely on.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_with":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("The %s must have at least %s items.", field, fe.Param())
		default:
			return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("The %s may not have more than %s items.", field, fe.Param())
		default:
			return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
		}
	case "eqfield":
		return fmt.Sprintf("The %s and %s must match.", field, strings.ToLower(fe.Param()[:1])+fe.Param()[1:])
	case "gte", "gt":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
