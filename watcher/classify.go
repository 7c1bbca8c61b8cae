package watcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/t7a/ambry"
	"github.com/t7a/ambry/unpack"
)

// Classify decides whether a created path is an extraction and of
// which type. A created directory always qualifies; files qualify by
// suffix. The bool is false for anything else.
func Classify(path string, isDir bool) (t ambry.ExtractionType, ok bool) {
	if isDir {
		return ambry.Directory, true
	}
	switch {
	case strings.HasSuffix(path, ".tar"), strings.HasSuffix(path, ".tar.gz"):
		return ambry.Tar, true
	case strings.HasSuffix(path, ".zip"):
		return ambry.Zip, true
	}
	return "", false
}

// Describe builds the Extraction record for a classified path,
// reading size and member count eagerly. This is the cheap
// detection-time pass; the full fingerprinting unpack happens later,
// if at all.
func Describe(path string, t ambry.ExtractionType) (extraction *ambry.Extraction, err error) {
	info, err := os.Stat(path)
	if err != nil {
		err = errors.Wrapf(err, "failed examining %s", path)
		return
	}

	var files int
	switch t {
	case ambry.Tar:
		files, err = countTarMembers(path)
	case ambry.Zip:
		files, err = countZipMembers(path)
	case ambry.Directory:
		files, err = countDirectoryMembers(path)
	default:
		err = errors.Errorf("extraction type %s is bound but not implemented", t)
	}
	if err != nil {
		return
	}

	return &ambry.Extraction{
		Path:       path,
		Type:       t,
		SizeOnDisk: info.Size(),
		Files:      files,
	}, nil
}

func countTarMembers(path string) (files int, err error) {
	tr, closer, err := unpack.OpenTar(path)
	if err != nil {
		return
	}
	defer closer.Close()

	for {
		_, err = tr.Next()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return 0, &unpack.UnreadableArchiveError{Path: path, Err: err}
		}
		files++
	}
}

func countZipMembers(path string) (files int, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return 0, &unpack.UnreadableArchiveError{Path: path, Err: err}
	}
	defer zr.Close()
	return len(zr.File), nil
}

func countDirectoryMembers(path string) (files int, err error) {
	err = filepath.Walk(path, func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if p != path {
			files++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "failed walking directory extraction %s", path)
		return 0, err
	}
	return
}
