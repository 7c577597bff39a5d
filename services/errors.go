package services

import "fmt"

// ErrorKind classifies the recoverable workflow failures callers can act on.
type ErrorKind string

const (
	ErrNotFound               ErrorKind = "not_found"
	ErrInvalidState           ErrorKind = "invalid_state"
	ErrIncompleteAnswers      ErrorKind = "incomplete_answers"
	ErrMissingEvidence        ErrorKind = "missing_evidence"
	ErrJustificationTooShort  ErrorKind = "justification_too_short"
	ErrMissingConditions      ErrorKind = "missing_conditions"
	ErrTokenExpired           ErrorKind = "token_expired"
	ErrAlreadySubmitted       ErrorKind = "already_submitted"
	ErrValidation             ErrorKind = "validation_error"
	ErrConcurrentModification ErrorKind = "concurrent_modification"
)

// WorkflowError is a typed, caller-visible failure from the assessment
// workflow. MissingEvidence carries the offending question ids.
type WorkflowError struct {
	Kind            ErrorKind
	Message         string
	MissingEvidence []string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func newWorkflowError(kind ErrorKind, format string, args ...interface{}) *WorkflowError {
	return &WorkflowError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsWorkflowError unwraps err into a *WorkflowError if it is one.
func AsWorkflowError(err error) (*WorkflowError, bool) {
	wfErr, ok := err.(*WorkflowError)
	return wfErr, ok
}
