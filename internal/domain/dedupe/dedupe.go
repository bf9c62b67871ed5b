// Package dedupe implements the first-seen-wins merge rule for entity IDs.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen entity IDs so a record merged twice stays merged once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of recorded IDs.
	Size() int
}

// inMemoryDeduper implements Deduper with an unbounded map. The collection
// tops out at a few thousand entities per run, so no eviction is needed; the
// deduper lives exactly as long as one assembly pass.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// New creates an empty in-memory deduper.
func New() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
