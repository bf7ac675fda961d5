// Copyright (C) 2025, VigilantDoomer
//
// This file is part of RoadGen program.
//
// RoadGen is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// RoadGen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with RoadGen.  If not, see <https://www.gnu.org/licenses/>.

// watch.go
package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Editors tend to produce several events per save
const WATCH_DEBOUNCE = 250 * time.Millisecond

// Progress slot for watch mode
const WATCH_SLOT = 0

// watchedFiles tells which file names are of interest. Directories are
// watched rather than files, since editors often save by renaming a new file
// over the old one, which would drop a watch set on the file itself
type watchedFiles map[string]bool

func newWatchedFiles(names ...string) watchedFiles {
	wf := make(watchedFiles)
	for _, name := range names {
		if name != "" {
			wf[filepath.Clean(name)] = true
		}
	}
	return wf
}

func (wf watchedFiles) dirs() []string {
	seen := make(map[string]bool)
	var res []string
	for name := range wf {
		dir := filepath.Dir(name)
		if !seen[dir] {
			seen[dir] = true
			res = append(res, dir)
		}
	}
	return res
}

// triggers reports whether the event should cause regeneration
func (wf watchedFiles) triggers(ev fsnotify.Event) bool {
	if !wf[filepath.Clean(ev.Name)] {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// WatchAndRegenerate generates the wad, then again every time road script or
// road config changes, until stop fires. Generation errors are reported and
// don't stop watching
func WatchAndRegenerate(pc *ProgramConfig, stop <-chan os.Signal) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "couldn't start watching files")
	}
	defer watcher.Close()

	wf := newWatchedFiles(pc.InputFileName, pc.RoadConfigFileName)
	for _, dir := range wf.dirs() {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "couldn't watch directory '%s'", dir)
		}
	}

	generation := 0
	regenerate := func() {
		generation++
		timeStart := time.Now()
		stats, err := RunOnce(pc)
		if err != nil {
			Log.Error("Error: %s\n", err.Error())
			Log.Push(WATCH_SLOT, "Generation #%d failed\n", generation)
		} else {
			PrintSummary(pc, stats, time.Since(timeStart))
			Log.Push(WATCH_SLOT, "Generation #%d succeeded\n", generation)
		}
		Log.Printf("Watching %s for changes, press Ctrl+C to stop\n", pc.InputFileName)
	}
	regenerate()

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !wf.triggers(ev) {
				continue
			}
			Log.Verbose(1, "Change detected: %s\n", ev.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(WATCH_DEBOUNCE)
			timerC = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			Log.Error("Watch error: %s\n", err.Error())
		case <-timerC:
			timerC = nil
			regenerate()
		case <-stop:
			Log.Printf("Stopped watching. Last state:\n")
			Log.Flush()
			return nil
		}
	}
}
