// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"skelview/conlog"
)

// Watcher reports changes of one file. The directory is watched so editors
// that replace the file are seen too.
type Watcher struct {
	w       *fsnotify.Watcher
	path    string
	changed chan struct{}
	done    chan struct{}
}

func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch config")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrap(err, "watch config")
	}
	w := &Watcher{
		w:       fw,
		path:    filepath.Clean(path),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			conlog.Printf("config: watch: %v\n", err)
		}
	}
}

// Changed reports whether the file changed since the last call. It never
// blocks and is meant to be polled once per frame.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
