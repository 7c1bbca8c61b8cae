package ambry

import (
	"fmt"
)

// ExtractionType tags the container format of an extraction.
type ExtractionType string

const (
	Tar       ExtractionType = "tar"
	Zip       ExtractionType = "zip"
	Directory ExtractionType = "directory"
)

// ParseExtractionType converts a string (e.g. from a query parameter
// or a Redis hash field) into an ExtractionType.
func ParseExtractionType(s string) (t ExtractionType, err error) {
	t = ExtractionType(s)
	switch t {
	case Tar, Zip, Directory:
		return t, nil
	}
	return "", fmt.Errorf("unknown extraction type: %s", s)
}

// Extraction is one artifact that appeared under the watched root.
// Path is the identity key; the registry tracks at most one
// Extraction per Path.
type Extraction struct {
	Path       string         `json:"path" msgpack:"path"`
	Type       ExtractionType `json:"type" msgpack:"type"`
	SizeOnDisk int64          `json:"size_on_disk" msgpack:"size_on_disk"`
	Files      int            `json:"files" msgpack:"files"`
}

// ObjectType tags one member of an extraction.
type ObjectType string

const (
	FileObject      ObjectType = "file"
	DirectoryObject ObjectType = "directory"
)

// UnpackedExtractionObject is one member discovered while unpacking
// an extraction. Path is relative to the extraction root, re-rooted
// at "/" so that directory trees and equivalent archives produce
// identical manifests. Metadata is nil for directories.
type UnpackedExtractionObject struct {
	Type     ObjectType   `json:"type" msgpack:"type"`
	Path     string       `json:"path" msgpack:"path"`
	Metadata *Fingerprint `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
}
