package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rpattn/portfolio/internal/domain"
	"github.com/rpattn/portfolio/internal/service"
)

// Validator wraps a go-playground validate instance with the enum
// registrations this API needs. Failures for a payload are collected into a
// single ValidationError so the caller sees every problem at once.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds the shared payload validator.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names, not Go struct field names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidProjectStatus(domain.Status(fl.Field().String()))
	})
	_ = validate.RegisterValidation("assessmentstatus", func(fl validator.FieldLevel) bool {
		return domain.ValidAssessmentStatus(domain.Status(fl.Field().String()))
	})
	_ = validate.RegisterValidation("phase", func(fl validator.FieldLevel) bool {
		return domain.ValidPhase(domain.Phase(fl.Field().String()))
	})

	return &Validator{validate: validate}
}

// Check validates the payload and returns every problem found, empty when valid.
func (v *Validator) Check(payload any) []string {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problems = append(problems, problemMessage(fieldErr))
	}
	return problems
}

// CheckError is Check wrapped as a *service.ValidationError, nil when valid.
func (v *Validator) CheckError(payload any) error {
	problems := v.Check(payload)
	if len(problems) == 0 {
		return nil
	}
	return service.NewValidationError(problems...)
}

func problemMessage(fieldErr validator.FieldError) string {
	field := fieldErr.Field()
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "projectstatus":
		return fmt.Sprintf("%s must be one of %s", field, joinStatuses(domain.ProjectStatuses))
	case "assessmentstatus":
		return fmt.Sprintf("%s must be one of %s", field, joinStatuses(domain.AssessmentStatuses))
	case "phase":
		return fmt.Sprintf("%s must be one of %s", field, joinPhases(domain.Phases))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}

func joinStatuses(statuses []domain.Status) string {
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ", ")
}

func joinPhases(phases []domain.Phase) string {
	parts := make([]string, len(phases))
	for i, phase := range phases {
		parts[i] = string(phase)
	}
	return strings.Join(parts, ", ")
}
