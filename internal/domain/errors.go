package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range client input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrStoreConflict marks a uniqueness violation on a park's external code.
	ErrStoreConflict = errors.New("store conflict")
	// ErrTransientFetch marks directory failures that were worth retrying.
	ErrTransientFetch = errors.New("transient fetch failure")
	// ErrPermanentFetch marks directory failures that retrying cannot fix.
	ErrPermanentFetch = errors.New("permanent fetch failure")
)

// ValidationError describes which input was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FetchError is returned by the directory client once it gives up on a request.
type FetchError struct {
	Region     string
	StatusCode int
	Attempts   int
	Transient  bool
	Err        error
}

func (e *FetchError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch region %s: %s failure after %d attempt(s): status %d: %v",
			e.Region, kind, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch region %s: %s failure after %d attempt(s): %v", e.Region, kind, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	if e.Transient {
		return target == ErrTransientFetch
	}
	return target == ErrPermanentFetch
}

// ImportError terminates an import run. Summary holds the work committed before the failure.
type ImportError struct {
	Region  string
	Summary ImportSummary
	Err     error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import region %s: %v (committed: inserted=%d updated=%d total=%d)",
		e.Region, e.Err, e.Summary.Inserted, e.Summary.Updated, e.Summary.Total)
}

func (e *ImportError) Unwrap() error { return e.Err }
