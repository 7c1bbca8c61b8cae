package unpack

import (
	"archive/zip"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/t7a/ambry"
)

// ZipUnpacker enumerates the entries of a zip archive, reading files
// through the archive reader's decompression.
type ZipUnpacker struct{}

func (ZipUnpacker) Unpack(extraction ambry.Extraction) (objects []ambry.UnpackedExtractionObject, err error) {
	zr, err := zip.OpenReader(extraction.Path)
	if err != nil {
		return nil, &UnreadableArchiveError{Path: extraction.Path, Err: err}
	}
	defer zr.Close()

	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			objects = append(objects, directoryObject(member.Name))
			continue
		}

		var content []byte
		content, err = readZipMember(member)
		if err != nil {
			err = errors.Wrapf(err, "failed reading zip member %s of %s",
				member.Name, extraction.Path)
			return nil, err
		}
		objects = append(objects, fileObject(member.Name, content))
	}
	return
}

func readZipMember(member *zip.File) (content []byte, err error) {
	rd, err := member.Open()
	if err != nil {
		return
	}
	defer rd.Close()
	return ioutil.ReadAll(rd)
}
