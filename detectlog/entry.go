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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeFormat is the second precision timestamp used in log lines.
const TimeFormat = "2006-01-02 15:04:05"

const (
	timeToken    = "Time:"
	presentToken = "Detected person:"
	totalToken   = "Total persons:"
)

// ErrNoEntry is returned when a line holds no detection entry.
var ErrNoEntry = errors.New("no valid log data")

// Entry is one line of the detection log.
type Entry struct {
	Time    time.Time
	Present bool
	Total   int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s, %s %t, %s %d",
		timeToken, e.Time.Format(TimeFormat),
		presentToken, e.Present,
		totalToken, e.Total)
}

// Parse reads an entry from a log line. Fields after the presence flag are
// optional and unknown trailing fields are ignored.
func Parse(line string) (Entry, error) {
	ts, ok := field(line, timeToken)
	if !ok {
		return Entry{}, ErrNoEntry
	}
	t, err := time.ParseInLocation(TimeFormat, ts, time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("bad timestamp %q: %w", ts, err)
	}

	present, ok := field(line, presentToken)
	if !ok {
		return Entry{}, fmt.Errorf("line has no %q field", presentToken)
	}
	entry := Entry{
		Time:    t,
		Present: strings.EqualFold(present, "true"),
	}

	if total, ok := field(line, totalToken); ok {
		if n, err := strconv.Atoi(total); err == nil {
			entry.Total = n
		}
	}
	return entry, nil
}

// field returns the text after token up to the next comma.
func field(line, token string) (string, bool) {
	i := strings.Index(line, token)
	if i < 0 {
		return "", false
	}
	value := line[i+len(token):]
	if j := strings.IndexByte(value, ','); j >= 0 {
		value = value[:j]
	}
	return strings.TrimSpace(value), true
}
