package state

import (
	"errors"
	"fmt"
)

// FailureKind classifies background failures that are logged instead of returned.
type FailureKind int

const (
	IOFailure FailureKind = iota + 1
	DecodeFailure
	PersistenceFailure
)

func (k FailureKind) String() string {
	switch k {
	case IOFailure:
		return "io failure"
	case DecodeFailure:
		return "decode failure"
	case PersistenceFailure:
		return "persistence failure"
	default:
		return "unknown failure"
	}
}

// Failure records one swallowed background error.
type Failure struct {
	Kind FailureKind
	Op   string
	Path string
	Err  error
}

func (f *Failure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", f.Op, f.Path, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func newFailure(kind FailureKind, op, path string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Path: path, Err: err}
}

// IsFailure reports whether err wraps a Failure of the given kind.
func IsFailure(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}

// DeleteResult is the outcome of deleting one entry.
type DeleteResult struct {
	Path string
	Err  error
}

// DeleteOutcome aggregates a single or batched delete.
type DeleteOutcome struct {
	Results []DeleteResult
}

// Deleted lists the paths that were removed.
func (o DeleteOutcome) Deleted() []string {
	var out []string
	for _, r := range o.Results {
		if r.Err == nil {
			out = append(out, r.Path)
		}
	}
	return out
}

// Failed lists the entries that could not be removed.
func (o DeleteOutcome) Failed() []DeleteResult {
	var out []DeleteResult
	for _, r := range o.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Err joins every failure, or returns nil when all deletions succeeded.
func (o DeleteOutcome) Err() error {
	var errs []error
	for _, r := range o.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}
