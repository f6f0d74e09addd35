package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("session version conflict")
	ErrReportNotReady  = errors.New("score report not ready")
)

// ValidationError means the answer payload is malformed or out of domain for
// the question. The session is unchanged; the caller re-prompts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid response: " + e.Reason
}

// StateError means the operation is not valid in the session's current
// lifecycle state, including out-of-sequence answers. No partial mutation.
type StateError struct {
	Op     string
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ExpiredError means the deadline passed; the session routes to expired and
// is never scored.
type ExpiredError struct {
	Deadline time.Time
}

func (e *ExpiredError) Error() string {
	return "session expired at " + e.Deadline.Format(time.RFC3339)
}
