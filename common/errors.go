package common

import (
	"errors"
	"fmt"
)

// ErrTooManyInputs is used when a transaction carries more inputs than the protocol allows
var ErrTooManyInputs = errors.New("transaction exceeds the maximum number of inputs")

// ErrTooManyOutputs is used when a transaction carries more outputs than the protocol allows
var ErrTooManyOutputs = errors.New("transaction exceeds the maximum number of outputs")

// ValidationError is returned when an argument to a public operation is
// malformed or missing.  It is always detected before any network call is
// made, so a ValidationError guarantees no side effects happened.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the named argument.
func NewValidationError(field, reasonFmt string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reasonFmt, args...)}
}

// CodecError is returned when transaction bytes cannot be decoded: malformed
// length prefixes, wrong field arity, or values outside the protocol bounds.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// ProofError is returned when an inclusion proof cannot be produced, most
// commonly because the requested leaf is not present in the tree.
type ProofError struct {
	Reason string
}

func (e *ProofError) Error() string {
	return fmt.Sprintf("merkle proof: %s", e.Reason)
}

// ChainQueryError is returned when a required rootchain block is not yet
// available after the bounded retry budget has been exhausted.
type ChainQueryError struct {
	BlockNum uint64
}

func (e *ChainQueryError) Error() string {
	return fmt.Sprintf("block %d not found", e.BlockNum)
}

// RemoteServiceError is returned when the watcher answers with
// success=false.  Code and Description are surfaced verbatim from the
// service.
type RemoteServiceError struct {
	Code        string
	Description string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("watcher error %s: %s", e.Code, e.Description)
}

// SubmissionError wraps a transaction construction, signing or broadcast
// failure.  Submissions are never retried automatically.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
