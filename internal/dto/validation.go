package dto

import (
	"strings"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

// FieldError describes a single invalid field in a request.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is the result of an explicit request validation pass.
// It satisfies errors.Is(err, apperrors.ErrValidation).
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Field + ": " + fe.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match the whole list against apperrors.ErrValidation.
func (v ValidationErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// validate is the shared validator instance used by request Validate methods.
var validate = validator.New()

// structFieldErrors runs tag-based validation on a request struct and converts
// the outcome into FieldErrors.
func structFieldErrors(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "request", Reason: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Reason: "failed '" + fe.Tag() + "' constraint"})
	}
	return out
}
