// FILE: pkg/fault/fault.go
// PURPOSE: Typed failure kinds shared across the assistant pipelines.

package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can decide whether to absorb it,
// surface it to the user, or re-prompt.
type Kind string

const (
	// Transport covers model/service unreachable or errored.
	Transport Kind = "transport"
	// Parse covers classifier or extractor output that could not be used.
	Parse Kind = "parse"
	// Input covers malformed files, empty messages and missing uploads.
	Input Kind = "input"
	// Workflow covers user-recoverable workflow rejections (e.g. bad recipient).
	Workflow Kind = "workflow"
)

// Fault is an error with a kind and a user-presentable reason.
type Fault struct {
	Kind   Kind
	Reason string
	Err    error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Reason, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New creates a fault without an underlying cause.
func New(kind Kind, reason string) *Fault {
	return &Fault{Kind: kind, Reason: reason}
}

// Wrap attaches a kind and reason to an underlying error.
func Wrap(kind Kind, reason string, err error) *Fault {
	return &Fault{Kind: kind, Reason: reason, Err: err}
}

// KindOf returns the kind of err if it is (or wraps) a Fault.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

// Is reports whether err is a fault of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ReasonOf returns the user-presentable reason, or err.Error() for plain errors.
func ReasonOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		if f.Err != nil {
			return fmt.Sprintf("%s: %v", f.Reason, f.Err)
		}
		return f.Reason
	}
	return err.Error()
}
