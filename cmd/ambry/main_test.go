package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmdtest"
	"github.com/pkg/fileutils"
)

var update = flag.Bool("update", false, "update test files with results")

func TestCLI(t *testing.T) {
	ts, err := cmdtest.Read("testdata")
	if err != nil {
		t.Fatal(err)
	}
	srcdir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	ts.Setup = func(rootdir string) (err error) {
		err = fileutils.CopyFile(
			filepath.Join(rootdir, "sample.txt"),
			filepath.Join(srcdir, "testdata", "sample.txt"))
		if err != nil {
			return
		}
		return os.Setenv("AMBRY_STORE_DIR", filepath.Join(rootdir, "store"))
	}
	ts.Commands["ambry"] = cmdtest.InProcessProgram("ambry", run)
	ts.Run(t, *update)
}
