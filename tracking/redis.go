package tracking

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/t7a/ambry"
)

// Redis wire layout, shared with other processes that read the
// tracker: one set of tracked path-strings under keysKey, plus one
// hash per tracked path under dataPrefix + path holding the
// extraction's fields serialized as strings.
const (
	keysKey    = "ambry-tracking-keys"
	dataPrefix = "ambry-tracking::"
)

var ctx = context.Background()

// addScript makes the check-then-insert of Add a single server-side
// operation, so two near-simultaneous Adds for the same path cannot
// both pass the membership check.
var addScript = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[1], ARGV[1]) == 1 then
	return 0
end
redis.call("SADD", KEYS[1], ARGV[1])
redis.call("HSET", KEYS[2],
	"path", ARGV[1], "type", ARGV[2], "size_on_disk", ARGV[3], "files", ARGV[4])
return 1
`)

// RedisRegistry is a Registry backed by a networked Redis instance,
// shared by the watcher and the query facade.
type RedisRegistry struct {
	rdb *redis.Client
}

// NewRedisRegistry returns a registry talking to the Redis instance
// at addr (host:port).
func NewRedisRegistry(addr string) *RedisRegistry {
	return &RedisRegistry{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (r *RedisRegistry) List() (extractions []ambry.Extraction, err error) {
	paths, err := r.rdb.SMembers(ctx, keysKey).Result()
	if err != nil {
		err = errors.Wrapf(err, "failed listing tracked paths")
		return
	}
	for _, path := range paths {
		var x *ambry.Extraction
		x, err = r.getData(path)
		if err != nil {
			return nil, err
		}
		if x == nil {
			// membership without data; skip rather than fabricate
			continue
		}
		extractions = append(extractions, *x)
	}
	return
}

func (r *RedisRegistry) Contains(path string) (ok bool, err error) {
	ok, err = r.rdb.SIsMember(ctx, keysKey, path).Result()
	if err != nil {
		err = errors.Wrapf(err, "failed checking membership of %s", path)
	}
	return
}

func (r *RedisRegistry) GetByPath(path string) (extraction *ambry.Extraction, err error) {
	ok, err := r.Contains(path)
	if err != nil || !ok {
		return nil, err
	}
	return r.getData(path)
}

func (r *RedisRegistry) GetByType(t ambry.ExtractionType) (extractions []ambry.Extraction, err error) {
	all, err := r.List()
	if err != nil {
		return
	}
	for _, x := range all {
		if x.Type == t {
			extractions = append(extractions, x)
		}
	}
	return
}

func (r *RedisRegistry) Add(extraction ambry.Extraction) (err error) {
	added, err := addScript.Run(ctx, r.rdb,
		[]string{keysKey, dataPrefix + extraction.Path},
		extraction.Path,
		string(extraction.Type),
		strconv.FormatInt(extraction.SizeOnDisk, 10),
		strconv.Itoa(extraction.Files),
	).Int()
	if err != nil {
		return errors.Wrapf(err, "failed adding tracking for %s", extraction.Path)
	}
	if added == 0 {
		return &AlreadyTrackedError{Extraction: extraction}
	}
	return
}

func (r *RedisRegistry) Remove(extraction ambry.Extraction) (err error) {
	ok, err := r.Contains(extraction.Path)
	if err != nil || !ok {
		return err
	}
	err = r.rdb.Del(ctx, dataPrefix+extraction.Path).Err()
	if err != nil {
		return errors.Wrapf(err, "failed deleting tracking data for %s", extraction.Path)
	}
	err = r.rdb.SRem(ctx, keysKey, extraction.Path).Err()
	if err != nil {
		return errors.Wrapf(err, "failed deleting tracking membership for %s", extraction.Path)
	}
	return
}

func (r *RedisRegistry) getData(path string) (extraction *ambry.Extraction, err error) {
	raw, err := r.rdb.HGetAll(ctx, dataPrefix+path).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading tracking data for %s", path)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	t, err := ambry.ParseExtractionType(raw["type"])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed tracking data for %s", path)
	}
	size, err := strconv.ParseInt(raw["size_on_disk"], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed tracking data for %s", path)
	}
	files, err := strconv.Atoi(raw["files"])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed tracking data for %s", path)
	}

	return &ambry.Extraction{
		Path:       raw["path"],
		Type:       t,
		SizeOnDisk: size,
		Files:      files,
	}, nil
}
