// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/oops"

	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
)

// logAdapter forwards every envelope it is notified with to the
// controller's log file. Manual policy: started on demand, e.g.
//
//	cx.Bus().Control(bus.StartAdapters(bus.AdapterName("log")))
type logAdapter struct {
	adapter.Base
}

func newLogAdapter() *logAdapter { return &logAdapter{} }

func (a *logAdapter) Name() string                { return "log" }
func (a *logAdapter) Policy() adapter.StartPolicy { return adapter.Manual }
func (a *logAdapter) Labels() []string            { return []string{"debug"} }

func (a *logAdapter) Start(cx *host.Context, _ bus.Bus, inbox <-chan *bus.Envelope) (*adapter.Handle, error) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for env := range inbox {
			cx.Client().LogMessage(fmt.Sprintf("envelope %s on %s", env.ID(), env.Name()))
		}
	}()
	return adapter.FromDone(done), nil
}

// watchAdapter publishes a filesChanged notification for every filesystem
// event under its directory. It follows the monitored application: the
// runtime starts it on launch and stops it shortly after the last exit.
type watchAdapter struct {
	adapter.Base
	dir string
}

func newWatchAdapter(dir string) *watchAdapter { return &watchAdapter{dir: dir} }

func (a *watchAdapter) Name() string                { return "watch" }
func (a *watchAdapter) Policy() adapter.StartPolicy { return adapter.OnAppLaunch }
func (a *watchAdapter) Labels() []string            { return []string{"watch-files"} }

func (a *watchAdapter) Start(_ *host.Context, b bus.Bus, inbox <-chan *bus.Envelope) (*adapter.Handle, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, oops.In("watch").Wrapf(err, "creating watcher")
	}
	if err := watcher.Add(a.dir); err != nil {
		_ = watcher.Close()
		return nil, oops.In("watch").With("dir", a.dir).Wrapf(err, "watching directory")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				bus.PublishTopic(b, filesChanged, ev.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				b.Log(slog.LevelWarn, "watch error: "+err.Error())
			case _, ok := <-inbox:
				if !ok {
					return
				}
			}
		}
	}()
	return adapter.FromDone(done), nil
}
