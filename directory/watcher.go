// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package directory

import (
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/obligationd/background"
	"github.com/bitmark-inc/obligationd/messagebus"
)

// watch the local parties file and trigger a reload when it changes
type watcher struct {
	log      *logger.L
	fileName string
	watch    *fsnotify.Watcher
}

// the containing directory is watched rather than the file itself,
// editors and provisioning tools replace the file instead of
// writing it in place
func newWatcher(log *logger.L, fileName string) (background.Process, error) {

	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watch, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	err = watch.Add(filepath.Dir(filePath))
	if nil != err {
		watch.Close()
		return nil, err
	}

	return &watcher{
		log:      log,
		fileName: filePath,
		watch:    watch,
	}, nil
}

func (w *watcher) Run(_ interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event := <-w.watch.Events:
			log.Debugf("file event: %v", event)

			if path.Base(event.Name) != path.Base(w.fileName) {
				continue loop
			}

			if isChangeEvent(event) {
				log.Infof("parties file changed: %q", w.fileName)
				messagebus.Bus.Directory.Send("reload")
			}

		case err := <-w.watch.Errors:
			log.Errorf("watch error: %s", err)
		}
	}

	w.watch.Close()
	log.Info("stopped")
}

func isChangeEvent(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
