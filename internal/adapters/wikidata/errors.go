package wikidata

import (
	"errors"
	"fmt"
)

// Sentinel kinds for endpoint failures. These allow errors.Is from callers.
var (
	// ErrRateLimited marks a 429/403 that survived the bounded retry. The
	// affected département is flagged for the manual retry pass; throttling
	// windows can last hours, so no in-process wait is attempted.
	ErrRateLimited = errors.New("rate limited by endpoint")

	// ErrTransient marks timeouts and 5xx responses.
	ErrTransient = errors.New("transient endpoint failure")

	// ErrUnknownDepartment marks a code outside the configured QID table.
	ErrUnknownDepartment = errors.New("unknown département")
)

// CollectionError carries the département whose collection failed together
// with the underlying cause, so a partial run can report exactly what is
// missing.
type CollectionError struct {
	Department string
	Err        error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting département %s: %v", e.Department, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }
