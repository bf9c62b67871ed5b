package app

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEndpointUnavailable = errors.New("query endpoint unavailable")
	ErrNoCaptures          = errors.New("no raw captures found")
	ErrNoRepo              = errors.New("no hub repository configured")
)
