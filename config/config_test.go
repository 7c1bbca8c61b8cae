package config

import (
	"os"
	"testing"
)

func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Fatalf(txt, args...)
	}
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"AMBRY_INPUT_DIR", "AMBRY_STORE_DIR", "AMBRY_LISTEN",
		"AMBRY_REDIS_HOST", "AMBRY_REDIS_PORT", "AMBRY_REDIS",
	} {
		key := key
		old, ok := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if ok {
				os.Setenv(key, old)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	tassert(t, cfg.InputDir == "/mnt/data", "input dir %s", cfg.InputDir)
	tassert(t, cfg.StoreDir == "/var/lib/ambry/store", "store dir %s", cfg.StoreDir)
	tassert(t, cfg.Listen == ":8080", "listen %s", cfg.Listen)
	tassert(t, cfg.RedisAddr == "redis:6379", "redis addr %s", cfg.RedisAddr)
}

func TestHostPortOverride(t *testing.T) {
	clearEnv(t)
	os.Setenv("AMBRY_REDIS_HOST", "localhost")
	os.Setenv("AMBRY_REDIS_PORT", "6380")
	cfg := FromEnv()
	tassert(t, cfg.RedisAddr == "localhost:6380", "redis addr %s", cfg.RedisAddr)
}

func TestFullAddrWins(t *testing.T) {
	clearEnv(t)
	os.Setenv("AMBRY_REDIS_HOST", "ignored")
	os.Setenv("AMBRY_REDIS", "redis.internal:7000")
	cfg := FromEnv()
	tassert(t, cfg.RedisAddr == "redis.internal:7000", "redis addr %s", cfg.RedisAddr)
}

func TestInputDirOverride(t *testing.T) {
	clearEnv(t)
	os.Setenv("AMBRY_INPUT_DIR", "/srv/drop")
	cfg := FromEnv()
	tassert(t, cfg.InputDir == "/srv/drop", "input dir %s", cfg.InputDir)
}
