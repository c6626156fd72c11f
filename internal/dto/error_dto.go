package dto

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError carries a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError identifies an unknown id.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Id)
}

func NewNotFoundError(resource string, id uuid.UUID) error {
	return &NotFoundError{Resource: resource, Id: id.String()}
}

// StateConflictError marks an operation that is invalid for the current
// state of the record (duplicate subscription, duplicate periodic invoice,
// transition outside the lifecycle state machine).
type StateConflictError struct {
	Message string
}

func (e *StateConflictError) Error() string {
	return e.Message
}

func NewStateConflictError(format string, args ...interface{}) error {
	return &StateConflictError{Message: fmt.Sprintf(format, args...)}
}

// AlreadyProcessedError is raised when a payment claim that already reached
// a terminal status is validated or rejected again. It is never swallowed:
// a silent no-op here would hide a double-credit bug.
type AlreadyProcessedError struct {
	ClaimId uuid.UUID
	Status  string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("payment claim %s already processed (status=%s)", e.ClaimId, e.Status)
}

// ExternalDependencyError wraps a failure of a best-effort collaborator
// (notification dispatch, receipt rendering).
type ExternalDependencyError struct {
	Dependency string
	Err        error
}

func (e *ExternalDependencyError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Dependency, e.Err)
}

func (e *ExternalDependencyError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsStateConflict(err error) bool {
	var target *StateConflictError
	return errors.As(err, &target)
}

func IsAlreadyProcessed(err error) bool {
	var target *AlreadyProcessedError
	return errors.As(err, &target)
}

func IsExternalDependency(err error) bool {
	var target *ExternalDependencyError
	return errors.As(err, &target)
}
