package hub

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnauthorized = errors.New("hub rejected the token")
	ErrUpload       = errors.New("hub upload failed")
	ErrNoToken      = errors.New("no hub token configured")
)
