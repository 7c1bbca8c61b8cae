// Package store is a content-addressable file store. A file is
// stored once under a path derived from the SHA1 of its bytes; two
// files with identical content land on the identical stored path
// regardless of their original names.
package store

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// FileNotFoundError is returned by Retrieve when no file has been
// stored under the requested digest.
type FileNotFoundError struct {
	Digest string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file of digest %s not present in file store", e.Digest)
}

// FileStore stores files under Dir in two levels of shard
// directories: Dir/<hex[0:2]>/<hex[2:4]>/<digest>. The full digest
// stays in the filename to make troubleshooting with UNIX tools
// easier.
type FileStore struct {
	Dir string
}

// Open returns a FileStore rooted at dir, creating dir if needed.
func Open(dir string) (s *FileStore, err error) {
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		err = errors.Wrapf(err, "failed creating file store root %s", dir)
		return
	}
	return &FileStore{Dir: dir}, nil
}

// shardPath maps a digest to its absolute storage path.
func (s *FileStore) shardPath(digest string) string {
	return filepath.Join(s.Dir, digest[0:2], digest[2:4], digest)
}

// Store copies file into the store and returns the SHA1 hex digest
// of its bytes. Storing content that is already present is a no-op;
// the existing copy is authoritative. The copy is written to a
// temporary name and renamed into place so readers never observe a
// partial file, and concurrent stores of the same content are safe
// to race.
func (s *FileStore) Store(file string) (digest string, err error) {
	digest, err = sha1File(file)
	if err != nil {
		return
	}

	abspath := s.shardPath(digest)
	if _, err = os.Stat(abspath); err == nil {
		log.Debugf("store: %s already present as %s", file, digest)
		return digest, nil
	}

	err = os.MkdirAll(filepath.Dir(abspath), 0755)
	if err != nil {
		err = errors.Wrapf(err, "failed creating shard directories for %s", digest)
		return
	}

	err = copyAtomic(abspath, file)
	if err != nil {
		err = errors.Wrapf(err, "failed storing %s as %s", file, digest)
		return
	}

	log.Debugf("store: %s stored as %s", file, digest)
	return
}

// Retrieve returns the stored path for digest.
func (s *FileStore) Retrieve(digest string) (path string, err error) {
	if len(digest) != sha1.Size*2 {
		return "", errors.Errorf("malformed digest: %s", digest)
	}
	path = s.shardPath(digest)
	if _, err = os.Stat(path); err != nil {
		return "", &FileNotFoundError{Digest: digest}
	}
	return
}

func sha1File(file string) (digest string, err error) {
	fh, err := os.Open(file)
	if err != nil {
		return
	}
	defer fh.Close()

	hash := sha1.New()
	_, err = io.Copy(hash, fh)
	if err != nil {
		err = errors.Wrapf(err, "failed hashing %s", file)
		return
	}
	digest = hex.EncodeToString(hash.Sum(nil))
	return
}

func copyAtomic(dst, src string) (err error) {
	fh, err := os.Open(src)
	if err != nil {
		return
	}
	defer fh.Close()

	tmp, err := renameio.TempFile("", dst)
	if err != nil {
		return
	}
	defer tmp.Cleanup()

	_, err = io.Copy(tmp, fh)
	if err != nil {
		return
	}
	return tmp.CloseAtomicallyReplace()
}
