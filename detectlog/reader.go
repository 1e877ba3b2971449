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
	"io"
	"os"
	"strings"
)

// tailSize is how much of the end of the log is read to find the last line.
// Entries are well under 100 bytes.
const tailSize = 4096

// ReadLastLine returns the last newline terminated line of a file. Any
// partially written line after it is ignored.
func ReadLastLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	offset := info.Size() - tailSize
	if offset < 0 {
		offset = 0
	}
	buf := make([]byte, info.Size()-offset)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return "", err
	}
	buf = buf[:n]

	end := bytes.LastIndexByte(buf, '\n')
	if end < 0 {
		return "", ErrNoEntry
	}
	start := bytes.LastIndexByte(buf[:end], '\n') + 1
	return strings.TrimRight(string(buf[start:end]), "\r"), nil
}

// File is the reading side of the detection log.
type File struct {
	Path string
}

// LastEntry parses the last complete line of the log.
func (f *File) LastEntry() (Entry, error) {
	line, err := ReadLastLine(f.Path)
	if err != nil {
		return Entry{}, err
	}
	return Parse(line)
}
