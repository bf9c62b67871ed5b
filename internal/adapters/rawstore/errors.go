package rawstore

import "errors"

// Sentinel kinds for raw capture errors.
var (
	ErrNotFound = errors.New("no capture for département")
	ErrStore    = errors.New("raw store failure")
)
