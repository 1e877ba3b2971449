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
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func testEntry(sec int, present bool, total int) Entry {
	return Entry{
		Time:    time.Date(2026, 5, 1, 13, 4, sec, 0, time.Local),
		Present: present,
		Total:   total,
	}
}

func TestWriterWritesLines(t *testing.T) {
	out := new(bufferCloser)
	w := newWriter(out)

	require.NoError(t, w.WriteEntry(testEntry(1, true, 1)))
	require.NoError(t, w.WriteEntry(testEntry(2, false, 1)))
	require.NoError(t, w.Close())

	assert.Equal(t,
		"Time: 2026-05-01 13:04:01, Detected person: true, Total persons: 1\n"+
			"Time: 2026-05-01 13:04:02, Detected person: false, Total persons: 1\n",
		out.String())
	assert.True(t, out.closed)
}

func TestWriterThenFileReadsLastEntry(t *testing.T) {
	conf := DefaultConfig()
	conf.Path = filepath.Join(t.TempDir(), "person-detect.log")
	w := NewWriter(&conf)
	defer w.Close()

	f := &File{Path: conf.Path}
	_, err := f.LastEntry()
	assert.True(t, os.IsNotExist(err))

	for i := 0; i < 5; i++ {
		require.NoError(t, w.WriteEntry(testEntry(i, i%2 == 0, i)))
	}

	entry, err := f.LastEntry()
	require.NoError(t, err)
	assert.True(t, entry.Present)
	assert.Equal(t, 4, entry.Total)
	assert.True(t, testEntry(4, true, 4).Time.Equal(entry.Time))
}

func TestReadLastLineIgnoresPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\nthi"), 0644))

	line, err := ReadLastLine(path)
	require.NoError(t, err)
	assert.Equal(t, "second", line)
}

func TestReadLastLineOfLongFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	var buf bytes.Buffer
	for buf.Len() < 3*tailSize {
		buf.WriteString(testEntry(0, false, 0).String() + "\n")
	}
	buf.WriteString(testEntry(9, true, 7).String() + "\r\n")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	line, err := ReadLastLine(path)
	require.NoError(t, err)
	assert.Equal(t, testEntry(9, true, 7).String(), line)
}

func TestReadLastLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err := ReadLastLine(empty)
	assert.ErrorIs(t, err, ErrNoEntry)

	partial := filepath.Join(dir, "partial")
	require.NoError(t, os.WriteFile(partial, []byte("Time: 2026"), 0644))
	_, err = ReadLastLine(partial)
	assert.ErrorIs(t, err, ErrNoEntry)
}

func TestConfigValidate(t *testing.T) {
	conf := DefaultConfig()
	assert.NoError(t, conf.Validate())

	conf.Path = ""
	assert.Error(t, conf.Validate())

	conf = DefaultConfig()
	conf.MaxSizeMB = 0
	assert.Error(t, conf.Validate())
}
