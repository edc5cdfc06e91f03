// Package dedupe tracks seen subject handles so a batch scores each subject
// at most once.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Deduper records seen handles within one batch run.
type Deduper interface {
	// SeenAndRecord atomically checks if handle was seen and records it if not.
	// Returns true if handle was already seen, false if it was newly recorded.
	// Comparison is case-insensitive; handles differing only in case are the
	// same subject.
	SeenAndRecord(ctx context.Context, handle string) bool

	// Size returns the number of distinct handles recorded.
	Size() int
}

// inMemoryDeduper implements Deduper with a mutex-guarded set. Batches are
// bounded by their input size, so there is no eviction.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates an empty deduper for one batch run.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[string]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, handle string) bool {
	key := strings.ToLower(strings.TrimSpace(handle))
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
