package service

import (
	"fmt"
	"strings"

	"github.com/rpattn/portfolio/internal/repository"
)

// ErrNotFound re-exports the repository sentinel so callers outside the
// persistence layer only depend on one package for the check.
var ErrNotFound = repository.ErrNotFound

// ValidationError reports one or more payload problems. All failures for a
// request are collected before it is returned, so the caller sees the full
// list at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// NewValidationError builds a ValidationError from the given problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// ReferenceError reports that a write referenced an entity that does not
// exist or is no longer active. It identifies which reference failed so the
// caller can correct the right one.
type ReferenceError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Kind, e.ID, e.Reason)
}
