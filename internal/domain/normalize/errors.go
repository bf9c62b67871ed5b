package normalize

import "errors"

// Sentinel kinds for normalization errors.
var (
	// ErrMalformedRow marks a solution missing a required binding. The caller
	// drops the row and keeps the batch going.
	ErrMalformedRow = errors.New("malformed result row")
)
