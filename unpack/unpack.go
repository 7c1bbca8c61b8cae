// Package unpack walks an extraction and emits an ordered manifest
// of its members with content fingerprints. One unpacker per
// container format, selected from a dispatch table keyed by the
// extraction's type.
//
// Member contents are read fully into memory before hashing; very
// large members are a known scaling limit. Member names are passed
// through as-is apart from re-rooting -- there is no path-traversal
// or archive-bomb hardening here.
package unpack

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/t7a/ambry"
)

// UnreadableArchiveError is returned when the underlying reader
// cannot open or validate the container (corrupt header, wrong
// magic).
type UnreadableArchiveError struct {
	Path string
	Err  error
}

func (e *UnreadableArchiveError) Error() string {
	return fmt.Sprintf("unreadable archive %s: %v", e.Path, e.Err)
}

func (e *UnreadableArchiveError) Unwrap() error { return e.Err }

// Unpacker walks one container format.
type Unpacker interface {
	// Unpack returns one object per member of extraction, in the
	// order the container yields them.
	Unpack(extraction ambry.Extraction) ([]ambry.UnpackedExtractionObject, error)
}

var unpackers = map[ambry.ExtractionType]Unpacker{
	ambry.Directory: DirectoryUnpacker{},
	ambry.Tar:       TarUnpacker{},
	ambry.Zip:       ZipUnpacker{},
}

// For returns the unpacker for an extraction type.
func For(t ambry.ExtractionType) (u Unpacker, ok bool) {
	u, ok = unpackers[t]
	return
}

// rooted normalizes a member name so the extraction's own directory
// is the root: "docs/", "./docs" and "docs" all become "/docs". All
// three unpackers route names through here, which is what makes a
// directory tree and an equivalent archive produce path-identical
// manifests.
func rooted(name string) string {
	return path.Join("/", filepath.ToSlash(name))
}

func fileObject(name string, content []byte) ambry.UnpackedExtractionObject {
	fp := ambry.FingerprintBytes(content)
	return ambry.UnpackedExtractionObject{
		Type:     ambry.FileObject,
		Path:     rooted(name),
		Metadata: &fp,
	}
}

func directoryObject(name string) ambry.UnpackedExtractionObject {
	return ambry.UnpackedExtractionObject{
		Type: ambry.DirectoryObject,
		Path: rooted(name),
	}
}
