// Package manifest persists unpack output. The registry itself never
// stores manifests; downstream consumers read these files instead of
// re-unpacking.
package manifest

import (
	"io/ioutil"

	"github.com/google/renameio"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"

	"github.com/t7a/ambry"
)

// Write serializes objects to path as msgpack, atomically.
func Write(path string, objects []ambry.UnpackedExtractionObject) (err error) {
	buf, err := msgpack.Marshal(objects)
	if err != nil {
		return errors.Wrapf(err, "failed serializing manifest")
	}
	err = renameio.WriteFile(path, buf, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed writing manifest to %s", path)
	}
	return
}

// Read loads a manifest previously written by Write.
func Read(path string) (objects []ambry.UnpackedExtractionObject, err error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading manifest %s", path)
	}
	err = msgpack.Unmarshal(buf, &objects)
	if err != nil {
		return nil, errors.Wrapf(err, "failed parsing manifest %s", path)
	}
	return
}
