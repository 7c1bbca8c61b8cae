package unpack

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/t7a/ambry"
)

// DirectoryUnpacker walks a plain directory extraction recursively.
type DirectoryUnpacker struct{}

func (DirectoryUnpacker) Unpack(extraction ambry.Extraction) (objects []ambry.UnpackedExtractionObject, err error) {
	root := extraction.Path

	err = filepath.Walk(root, func(p string, info os.FileInfo, werr error) error {
		if werr != nil {
			return werr
		}
		if p == root {
			// the extraction itself is not a member
			return nil
		}

		rel, rerr := filepath.Rel(root, p)
		if rerr != nil {
			return rerr
		}

		if info.IsDir() {
			objects = append(objects, directoryObject(rel))
			return nil
		}

		content, rerr := ioutil.ReadFile(p)
		if rerr != nil {
			return rerr
		}
		objects = append(objects, fileObject(rel, content))
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "failed walking directory extraction %s", root)
		return
	}
	return
}
