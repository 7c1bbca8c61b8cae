package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"

	"github.com/t7a/ambry"
	"github.com/t7a/ambry/config"
	"github.com/t7a/ambry/manifest"
	"github.com/t7a/ambry/store"
	"github.com/t7a/ambry/tracking"
	"github.com/t7a/ambry/unpack"
	"github.com/t7a/ambry/watcher"
)

const usage = `ambry

Usage:
  ambry unpack <path> [-o <filename>]
  ambry store <file>
  ambry retrieve <digest>
  ambry ls [<type>]
  ambry get <path>
  ambry rm <path>

Options:
  -h --help     Show this screen.
  --version     Show version.
`

type Opts struct {
	Unpack   bool
	Store    bool
	Retrieve bool
	Ls       bool
	Get      bool
	Rm       bool
	Path     string
	File     string
	Digest   string
	Type     string
	Out      bool `docopt:"-o"`
	Filename string
}

func init() {
	if os.Getenv("DEBUG") == "1" {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {
	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.0")
	var opts Opts
	err := o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}

	cfg := config.FromEnv()

	switch {
	case opts.Unpack:
		err = cmdUnpack(opts)
	case opts.Store:
		err = cmdStore(cfg, opts.File)
	case opts.Retrieve:
		err = cmdRetrieve(cfg, opts.Digest)
	case opts.Ls:
		err = cmdLs(cfg, opts.Type)
	case opts.Get:
		err = cmdGet(cfg, opts.Path)
	case opts.Rm:
		err = cmdRm(cfg, opts.Path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// cmdUnpack classifies path the way the watcher would, unpacks it,
// and emits the manifest: JSON on stdout, or msgpack when -o is
// given.
func cmdUnpack(opts Opts) (err error) {
	info, err := os.Stat(opts.Path)
	if err != nil {
		return
	}

	extractionType, ok := watcher.Classify(opts.Path, info.IsDir())
	if !ok {
		return fmt.Errorf("%s doesn't look like an extraction", opts.Path)
	}

	extraction, err := watcher.Describe(opts.Path, extractionType)
	if err != nil {
		return
	}

	unpacker, ok := unpack.For(extraction.Type)
	if !ok {
		return fmt.Errorf("extraction type %s is bound but not implemented", extraction.Type)
	}
	objects, err := unpacker.Unpack(*extraction)
	if err != nil {
		return
	}

	if opts.Out {
		return manifest.Write(opts.Filename, objects)
	}

	buf, err := json.MarshalIndent(objects, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(buf))
	return
}

func cmdStore(cfg config.Config, file string) (err error) {
	s, err := store.Open(cfg.StoreDir)
	if err != nil {
		return
	}
	digest, err := s.Store(file)
	if err != nil {
		return
	}
	fmt.Println(digest)
	return
}

func cmdRetrieve(cfg config.Config, digest string) (err error) {
	s, err := store.Open(cfg.StoreDir)
	if err != nil {
		return
	}
	path, err := s.Retrieve(digest)
	if err != nil {
		return
	}
	fmt.Println(path)
	return
}

func cmdLs(cfg config.Config, typeFilter string) (err error) {
	registry := tracking.NewRedisRegistry(cfg.RedisAddr)

	var extractions []ambry.Extraction
	if typeFilter == "" {
		extractions, err = registry.List()
	} else {
		var t ambry.ExtractionType
		t, err = ambry.ParseExtractionType(typeFilter)
		if err != nil {
			return
		}
		extractions, err = registry.GetByType(t)
	}
	if err != nil {
		return
	}

	for _, x := range extractions {
		fmt.Printf("%s\t%s\t%d\t%d\n", x.Path, x.Type, x.SizeOnDisk, x.Files)
	}
	return
}

func cmdGet(cfg config.Config, path string) (err error) {
	registry := tracking.NewRedisRegistry(cfg.RedisAddr)
	x, err := registry.GetByPath(path)
	if err != nil {
		return
	}
	if x == nil {
		return fmt.Errorf("path not tracked: %s", path)
	}
	buf, err := json.MarshalIndent(x, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(buf))
	return
}

func cmdRm(cfg config.Config, path string) (err error) {
	registry := tracking.NewRedisRegistry(cfg.RedisAddr)
	x, err := registry.GetByPath(path)
	if err != nil {
		return
	}
	if x == nil {
		return fmt.Errorf("path not tracked: %s", path)
	}
	return registry.Remove(*x)
}
