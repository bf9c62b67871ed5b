package dataset

import "errors"

// Sentinel kinds for assembly errors.
var (
	// ErrExport marks an output write failure. Fatal to the run: a partial
	// export must never pass for a complete one.
	ErrExport = errors.New("dataset export failed")
)
