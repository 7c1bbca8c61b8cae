package tracking

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/t7a/ambry"
)

func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Fatalf(txt, args...)
	}
}

func sampleExtraction(path string) ambry.Extraction {
	return ambry.Extraction{
		Path:       path,
		Type:       ambry.Tar,
		SizeOnDisk: 10240,
		Files:      3,
	}
}

func TestAddUniqueness(t *testing.T) {
	r := NewMemRegistry()
	x := sampleExtraction("/mnt/data/sample.tar")

	err := r.Add(x)
	tassert(t, err == nil, "add: %v", err)

	err = r.Add(x)
	var already *AlreadyTrackedError
	tassert(t, errors.As(err, &already), "expected AlreadyTrackedError, got %v", err)
	tassert(t, already.Extraction.Path == x.Path, "path %s", already.Extraction.Path)

	// removing the path frees it for tracking again
	err = r.Remove(x)
	tassert(t, err == nil, "remove: %v", err)
	err = r.Add(x)
	tassert(t, err == nil, "re-add: %v", err)
}

func TestRemoveUntrackedIsNoop(t *testing.T) {
	r := NewMemRegistry()
	err := r.Remove(sampleExtraction("/mnt/data/never-seen.tar"))
	tassert(t, err == nil, "remove untracked: %v", err)
}

func TestContainsAndGetByPath(t *testing.T) {
	r := NewMemRegistry()
	x := sampleExtraction("/mnt/data/sample.tar")

	ok, err := r.Contains(x.Path)
	tassert(t, err == nil && !ok, "contains before add: %v %v", ok, err)
	got, err := r.GetByPath(x.Path)
	tassert(t, err == nil && got == nil, "get before add: %v %v", got, err)

	err = r.Add(x)
	tassert(t, err == nil, "add: %v", err)

	ok, err = r.Contains(x.Path)
	tassert(t, err == nil && ok, "contains after add: %v %v", ok, err)
	got, err = r.GetByPath(x.Path)
	tassert(t, err == nil, "get: %v", err)
	tassert(t, got != nil && *got == x, "got %+v, want %+v", got, x)
}

func TestGetByType(t *testing.T) {
	r := NewMemRegistry()

	tarX := sampleExtraction("/mnt/data/a.tar")
	zipX := ambry.Extraction{Path: "/mnt/data/b.zip", Type: ambry.Zip, SizeOnDisk: 1, Files: 1}
	tassert(t, r.Add(tarX) == nil, "add tar")
	tassert(t, r.Add(zipX) == nil, "add zip")

	tars, err := r.GetByType(ambry.Tar)
	tassert(t, err == nil, "get by type: %v", err)
	tassert(t, len(tars) == 1 && tars[0] == tarX, "tars %+v", tars)

	dirs, err := r.GetByType(ambry.Directory)
	tassert(t, err == nil, "get by type: %v", err)
	tassert(t, len(dirs) == 0, "dirs %+v", dirs)

	all, err := r.List()
	tassert(t, err == nil, "list: %v", err)
	tassert(t, len(all) == 2, "all %+v", all)
}

// Two near-simultaneous adds for the same path must not both pass
// the membership check.
func TestAddIsRaceSafe(t *testing.T) {
	r := NewMemRegistry()
	x := sampleExtraction("/mnt/data/contended.tar")

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- r.Add(x)
		}()
	}
	wg.Wait()
	close(results)

	var added, rejected int
	for err := range results {
		var already *AlreadyTrackedError
		switch {
		case err == nil:
			added++
		case errors.As(err, &already):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	tassert(t, added == 1, "added %d times", added)
	tassert(t, rejected == callers-1, "rejected %d times", rejected)
}

func TestListManyPaths(t *testing.T) {
	r := NewMemRegistry()
	for i := 0; i < 10; i++ {
		err := r.Add(sampleExtraction(fmt.Sprintf("/mnt/data/sample-%d.tar", i)))
		tassert(t, err == nil, "add %d: %v", i, err)
	}
	all, err := r.List()
	tassert(t, err == nil, "list: %v", err)
	tassert(t, len(all) == 10, "len %d", len(all))
}
