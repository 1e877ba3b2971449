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

package detectlog

import (
	"errors"
	"io"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max-size-mb"`
	MaxBackups int    `yaml:"max-backups"`
}

func DefaultConfig() Config {
	return Config{
		Path:       "/var/log/person-detect.log",
		MaxSizeMB:  10,
		MaxBackups: 2,
	}
}

func (conf *Config) Validate() error {
	if conf.Path == "" {
		return errors.New("detection-log path must be set")
	}
	if conf.MaxSizeMB < 1 {
		return errors.New("max-size-mb should be at least 1")
	}
	return nil
}

func NewWriter(conf *Config) *Writer {
	return newWriter(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    conf.MaxSizeMB,
		MaxBackups: conf.MaxBackups,
	})
}

func newWriter(out io.WriteCloser) *Writer {
	return &Writer{out: out}
}

// Writer appends entries to the detection log, one line per write so a
// reader never sees two entries interleaved.
type Writer struct {
	mu  sync.Mutex
	out io.WriteCloser
}

func (w *Writer) WriteEntry(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.out, e.String()+"\n")
	return err
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}
