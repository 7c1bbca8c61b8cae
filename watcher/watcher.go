// Package watcher observes a directory for new extractions and
// registers each one with a tracking registry. Only creation events
// for direct children of the watched root are considered; paths
// nested deeper are components of an extraction already being
// handled, not new extractions.
package watcher

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/t7a/ambry/tracking"
)

// Event is one filesystem creation observation.
type Event struct {
	Path  string
	IsDir bool
}

// EventSource produces creation events. The fsnotify-backed Source
// is the production implementation; tests use a synthetic one.
type EventSource interface {
	Events() <-chan Event
	Close() error
}

// Source is the fsnotify-backed EventSource.
type Source struct {
	watcher *fsnotify.Watcher
	events  chan Event
}

// NewSource watches dir (non-recursively) for creation events.
func NewSource(dir string) (src *Source, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		err = errors.Wrapf(err, "failed creating fsnotify watcher")
		return
	}
	err = w.Add(dir)
	if err != nil {
		w.Close()
		err = errors.Wrapf(err, "failed watching %s", dir)
		return
	}

	src = &Source{watcher: w, events: make(chan Event)}
	go src.run()
	return
}

func (s *Source) run() {
	defer close(s.events)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			info, err := os.Stat(ev.Name)
			if err != nil {
				// created and gone again before we could look
				log.Debugf("skipping %s: %v", ev.Name, err)
				continue
			}
			s.events <- Event{Path: ev.Name, IsDir: info.IsDir()}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watch error: %v", err)
		}
	}
}

func (s *Source) Events() <-chan Event { return s.events }

func (s *Source) Close() error { return s.watcher.Close() }

// Watcher consumes creation events for one watched root,
// classifies them, and adds qualifying extractions to the registry.
type Watcher struct {
	Dir      string
	Registry tracking.Registry
	Source   EventSource
}

func New(dir string, registry tracking.Registry, source EventSource) *Watcher {
	return &Watcher{Dir: filepath.Clean(dir), Registry: registry, Source: source}
}

// Run consumes events until the source closes. A single bad artifact
// never stops the loop.
func (w *Watcher) Run() (err error) {
	log.Infof("starting extraction directory watcher (watching: %s)", w.Dir)
	for ev := range w.Source.Events() {
		w.handle(ev)
	}
	log.Infof("event source closed, stopping directory watcher")
	return
}

func (w *Watcher) handle(ev Event) {
	if filepath.Dir(ev.Path) != w.Dir {
		log.Debugf("skipping %s: not a direct child of %s", ev.Path, w.Dir)
		return
	}

	extractionType, ok := Classify(ev.Path, ev.IsDir)
	if !ok {
		log.Infof("skipping file %s as doesn't look like extraction (wrong file ext)", ev.Path)
		return
	}

	extraction, err := Describe(ev.Path, extractionType)
	if err != nil {
		log.Warnf("skipping extraction %s: %v", ev.Path, err)
		return
	}

	log.Infof("picked up and adding tracking for new %s extraction: %s (%d files)",
		extraction.Type, extraction.Path, extraction.Files)

	err = w.Registry.Add(*extraction)
	var already *tracking.AlreadyTrackedError
	if errors.As(err, &already) {
		log.Warnf("skipping extraction %s, already in tracker", extraction.Path)
		return
	}
	if err != nil {
		log.Errorf("failed adding tracking for %s: %v", extraction.Path, err)
	}
}
