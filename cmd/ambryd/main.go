package main

import (
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"

	"github.com/t7a/ambry/config"
	"github.com/t7a/ambry/server"
	"github.com/t7a/ambry/tracking"
	"github.com/t7a/ambry/watcher"
)

const usage = `ambryd

Usage:
  ambryd watch [<dir>]
  ambryd serve [<addr>]

Options:
  -h --help     Show this screen.
  --version     Show version.
`

type Opts struct {
	Watch bool
	Serve bool
	Dir   string
	Addr  string
}

func init() {
	if os.Getenv("DEBUG") == "1" {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	rc, msg := Run()
	if len(msg) > 0 {
		fmt.Fprintf(os.Stderr, msg+"\n")
	}
	os.Exit(rc)
}

func Run() (rc int, msg string) {
	defer Halt(&rc, &msg)

	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.0")
	var opts Opts
	err := o.Bind(&opts)
	Ck(err)

	cfg := config.FromEnv()
	registry := tracking.NewRedisRegistry(cfg.RedisAddr)

	switch {
	case opts.Watch:
		dir := opts.Dir
		if dir == "" {
			dir = cfg.InputDir
		}
		var src *watcher.Source
		src, err = watcher.NewSource(dir)
		Ck(err)
		defer src.Close()
		err = watcher.New(dir, registry, src).Run()
		Ck(err)
	case opts.Serve:
		addr := opts.Addr
		if addr == "" {
			addr = cfg.Listen
		}
		err = server.New(registry).ListenAndServe(addr)
		Ck(err)
	}
	return
}
