package unpack

import (
	"archive/tar"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/t7a/ambry"
)

// TarUnpacker enumerates the members of a tar archive, plain or
// gzip-compressed. Compression is selected by file suffix, fixed at
// detection time.
type TarUnpacker struct{}

func (TarUnpacker) Unpack(extraction ambry.Extraction) (objects []ambry.UnpackedExtractionObject, err error) {
	tr, closer, err := OpenTar(extraction.Path)
	if err != nil {
		return
	}
	defer closer.Close()

	for {
		var hdr *tar.Header
		hdr, err = tr.Next()
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return nil, &UnreadableArchiveError{Path: extraction.Path, Err: err}
		}

		if hdr.Typeflag != tar.TypeReg {
			// directories, symlinks, devices: no metadata
			objects = append(objects, directoryObject(hdr.Name))
			continue
		}

		var content []byte
		content, err = ioutil.ReadAll(tr)
		if err != nil {
			return nil, &UnreadableArchiveError{Path: extraction.Path, Err: err}
		}
		objects = append(objects, fileObject(hdr.Name, content))
	}
}

type tarCloser struct {
	closers []io.Closer
}

func (c *tarCloser) Close() (err error) {
	for _, closer := range c.closers {
		cerr := closer.Close()
		if err == nil {
			err = cerr
		}
	}
	return
}

// OpenTar opens a tar archive for member enumeration, transparently
// decompressing when path ends in .tar.gz. The returned closer must
// be closed when enumeration is done. Fails with
// *UnreadableArchiveError when the container cannot be opened.
func OpenTar(path string) (tr *tar.Reader, closer io.Closer, err error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, nil, &UnreadableArchiveError{Path: path, Err: err}
	}

	if !strings.HasSuffix(path, ".tar.gz") {
		return tar.NewReader(fh), fh, nil
	}

	gz, err := gzip.NewReader(fh)
	if err != nil {
		fh.Close()
		return nil, nil, &UnreadableArchiveError{Path: path, Err: err}
	}
	return tar.NewReader(gz), &tarCloser{closers: []io.Closer{gz, fh}}, nil
}
