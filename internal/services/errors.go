package services

import (
	"fmt"

	"github.com/peopledesk/peopledesk/internal/models"
)

// Domain error taxonomy. Handlers match these with errors.As and map them
// to HTTP statuses; services never write HTTP responses themselves.

// InvalidTransitionError is returned when the requested stage is not
// reachable from the review's current stage.
type InvalidTransitionError struct {
	From models.ReviewStage
	To   models.ReviewStage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// MissingFieldError is returned when a stage-specific required payload
// field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ForbiddenError is returned when the authorization guard denies the
// principal. Reason distinguishes wrong role from identity mismatch.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

// NotFoundError is returned when the addressed record does not exist.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Ref)
}

// InvalidReferenceError is returned when a foreign key in a request body
// does not resolve to an existing record.
type InvalidReferenceError struct {
	Entity string
	Ref    string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference: %s", e.Entity, e.Ref)
}

// ConcurrentModificationError is returned when a stage-guarded write finds
// the stored stage no longer matches the one read at fetch time.
type ConcurrentModificationError struct {
	ReviewID uint
	Expected models.ReviewStage
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("review %d was modified concurrently (expected stage %s)", e.ReviewID, e.Expected)
}
