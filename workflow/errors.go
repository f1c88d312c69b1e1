package workflow

import (
	"fmt"
	"strings"

	"github.com/mmdatafocus/props_backend/models"
)

// NotFoundError means a referenced prop/show/board document does not exist.
// Fatal; surfaced to the caller.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s: record not found", e.Collection, e.ID)
}

// InvalidTransitionError rejects a status change and carries the allowed
// alternatives so callers can render "valid options are: ...".
type InvalidTransitionError struct {
	From    models.PropStatus
	To      models.PropStatus
	Allowed []models.PropStatus
}

func (e *InvalidTransitionError) Error() string {
	labels := make([]string, 0, len(e.Allowed))
	for _, s := range e.Allowed {
		labels = append(labels, s.Label())
	}
	return fmt.Sprintf("cannot change status from %q to %q; valid options are: %s",
		e.From.Label(), e.To.Label(), strings.Join(labels, ", "))
}

// PersistenceError wraps a failed store write at the canonical status-write
// or history-write step. Fatal; nothing after it runs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed at %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// SideEffectError tags a non-fatal failure (upload, follow-up task,
// notification). It is always logged at its origin and never returned to the
// caller of UpdateStatus.
type SideEffectError struct {
	Step   string
	PropId string
	Err    error
}

func (e *SideEffectError) Error() string {
	return fmt.Sprintf("side effect %s failed for prop %s: %v", e.Step, e.PropId, e.Err)
}

func (e *SideEffectError) Unwrap() error { return e.Err }
