// Package tracking records which extractions have been seen. A
// registry tracks at most one extraction per path; Add is the single
// invariant-preserving operation and is atomic in every backend.
package tracking

import (
	"fmt"

	"github.com/t7a/ambry"
)

// AlreadyTrackedError is returned by Add when the extraction's path
// is already tracked. Callers should treat it as "no-op, already
// present" rather than a failure.
type AlreadyTrackedError struct {
	Extraction ambry.Extraction
}

func (e *AlreadyTrackedError) Error() string {
	return fmt.Sprintf("extraction at path %s already tracked", e.Extraction.Path)
}

// Registry is the seen-status store for extractions, keyed by path.
type Registry interface {
	// List returns all tracked extractions, in no particular order.
	List() ([]ambry.Extraction, error)

	// Contains reports whether path is tracked.
	Contains(path string) (bool, error)

	// GetByPath returns the tracked extraction for path, or nil when
	// the path is not tracked.
	GetByPath(path string) (*ambry.Extraction, error)

	// GetByType returns all tracked extractions of the given type.
	GetByType(t ambry.ExtractionType) ([]ambry.Extraction, error)

	// Add starts tracking extraction. It fails with
	// *AlreadyTrackedError if the path is already tracked; the
	// check-then-insert is atomic with respect to concurrent callers.
	Add(extraction ambry.Extraction) error

	// Remove stops tracking extraction. Removing an untracked path is
	// a no-op, not an error.
	Remove(extraction ambry.Extraction) error
}
