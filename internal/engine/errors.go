package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInProgress is returned by operations that are only valid while a
	// session is in progress.
	ErrNotInProgress = errors.New("session is not in progress")

	// ErrSubmitInFlight is returned when Submit is called while another
	// submission for the same session is still outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrNoQuestions is wrapped by CreateError when the question source
	// returns an empty set.
	ErrNoQuestions = errors.New("question source returned no questions")
)

// CreateError means a session could not be started. Fatal to Start: no
// orchestrator state exists when it is returned.
type CreateError struct {
	Topic string
	Err   error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("cannot create session for topic %q: %v", e.Topic, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// GradingError means a submission failed. The session stays in progress and
// Submit may be retried.
type GradingError struct {
	SessionID string
	Err       error
}

func (e *GradingError) Error() string {
	return fmt.Sprintf("grading failed for session %s: %v", e.SessionID, e.Err)
}

func (e *GradingError) Unwrap() error { return e.Err }

// HintError is transient and never affects session state.
type HintError struct {
	Err error
}

func (e *HintError) Error() string { return fmt.Sprintf("hint unavailable: %v", e.Err) }

func (e *HintError) Unwrap() error { return e.Err }
