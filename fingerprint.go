package ambry

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"

	"github.com/glaslos/ssdeep"
	log "github.com/sirupsen/logrus"
)

func init() {
	// ssdeep normally refuses inputs under its 4096-byte minimum;
	// extractions are full of small files, so hash those too.
	ssdeep.Force = true
}

// Fingerprint is the content metadata recorded for one file.
type Fingerprint struct {
	MD5    string `json:"md5" msgpack:"md5"`
	SHA1   string `json:"sha1" msgpack:"sha1"`
	SSDeep string `json:"ssdeep" msgpack:"ssdeep"`
	Size   uint64 `json:"size" msgpack:"size"`
}

// FingerprintBytes computes the fingerprint of buf. Deterministic;
// the ssdeep field is left empty for inputs the fuzzy hasher cannot
// handle (e.g. empty input).
func FingerprintBytes(buf []byte) (fp Fingerprint) {
	md5sum := md5.Sum(buf)
	sha1sum := sha1.Sum(buf)

	fp.MD5 = hex.EncodeToString(md5sum[:])
	fp.SHA1 = hex.EncodeToString(sha1sum[:])
	fp.Size = uint64(len(buf))

	fuzzy, err := ssdeep.FuzzyBytes(buf)
	if err != nil {
		log.Debugf("no ssdeep hash for %d-byte input: %v", len(buf), err)
		return
	}
	fp.SSDeep = fuzzy
	return
}
