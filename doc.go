/*

Ambry ingests archive-like artifacts ("extractions") dropped into a
watched directory, records each one exactly once in a tracking
registry, and can normalize any tracked extraction into a manifest of
its constituent objects with content fingerprints. A separate
content-addressable file store retains file bytes deduplicated by
SHA1 digest.

Vocabulary:

- extraction: a tar file, zip file, or plain directory that appeared
	under the watched root; identified by its absolute path
- manifest: ordered list of unpacked objects for one extraction
- object: one member of an extraction; a file (with fingerprint
	metadata) or a directory (without)
- relpath: an object's path inside its extraction, re-rooted so the
	extraction's own directory is "/"
- fingerprint: {size, md5, sha1, ssdeep} of an object's bytes
- digest: SHA1 hex of a file's bytes; the file store's address
- shard: two-character hexadecimal segment of a digest used as a
	subdirectory level in the file store, keeping directory sizes small
- registry: the store of seen extractions, keyed by path; in-memory
	or Redis-backed

*/

package ambry
