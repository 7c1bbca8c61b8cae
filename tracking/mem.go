package tracking

import (
	"sync"

	"github.com/t7a/ambry"
)

// MemRegistry is an in-process Registry backed by a mutex-guarded
// map. Suitable for tests and single-process deployments.
type MemRegistry struct {
	mu     sync.Mutex
	byPath map[string]ambry.Extraction
}

func NewMemRegistry() *MemRegistry {
	return &MemRegistry{byPath: make(map[string]ambry.Extraction)}
}

func (r *MemRegistry) List() (extractions []ambry.Extraction, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byPath {
		extractions = append(extractions, x)
	}
	return
}

func (r *MemRegistry) Contains(path string) (ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok = r.byPath[path]
	return
}

func (r *MemRegistry) GetByPath(path string) (extraction *ambry.Extraction, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	x, ok := r.byPath[path]
	if !ok {
		return nil, nil
	}
	return &x, nil
}

func (r *MemRegistry) GetByType(t ambry.ExtractionType) (extractions []ambry.Extraction, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.byPath {
		if x.Type == t {
			extractions = append(extractions, x)
		}
	}
	return
}

func (r *MemRegistry) Add(extraction ambry.Extraction) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPath[extraction.Path]; ok {
		return &AlreadyTrackedError{Extraction: extraction}
	}
	r.byPath[extraction.Path] = extraction
	return
}

func (r *MemRegistry) Remove(extraction ambry.Extraction) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byPath, extraction.Path)
	return
}
