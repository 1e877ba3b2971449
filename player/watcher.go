// presence-kiosk - play a promo video loop while nobody is in front of the camera
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package player

import (
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod is how long the media file must be left alone before a
// change is reported. Copying a large video produces many writes.
const DefaultQuietPeriod = 2 * time.Second

// NewMediaWatcher watches the directory holding path, so replacing the file
// by rename is seen as well as writing it in place.
func NewMediaWatcher(path string, quiet time.Duration) (*MediaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	mw := &MediaWatcher{
		path:      path,
		watcher:   watcher,
		debounced: debounce.New(quiet),
	}
	go mw.run()
	return mw, nil
}

// MediaWatcher notices when the promo video is replaced.
type MediaWatcher struct {
	path      string
	watcher   *fsnotify.Watcher
	debounced func(func())
	pending   atomic.Bool
}

func (mw *MediaWatcher) run() {
	for {
		select {
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != mw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				mw.debounced(mw.changed)
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("media watcher error: %v", err)
		}
	}
}

func (mw *MediaWatcher) changed() {
	log.Printf("%s changed", mw.path)
	mw.pending.Store(true)
}

// RefreshPending reports whether the media changed since the last call.
func (mw *MediaWatcher) RefreshPending() bool {
	return mw.pending.Swap(false)
}

func (mw *MediaWatcher) Close() error {
	return mw.watcher.Close()
}
