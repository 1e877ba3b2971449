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

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
)

const recording = `{"timestamp": 1000000000, "detections": [{"box": [100, 50, 60, 120], "class": 0, "confidence": 0.9}]}
{"timestamp": 2000000000, "detections": [{"box": [102, 50, 60, 120], "class": 0, "confidence": 0.9}]}

{"timestamp": 3000000000}
{"timestamp": 4000000000, "detections": []}
{"timestamp": 5000000000, "detections": [{"box": [400, 50, 60, 120], "category": "person", "confidence": 0.8}]}
{"timestamp": 6000000000, "detections": [{"box": [400, 50, 60, 120], "class": 0, "confidence": 0.3}]}
{"timestamp": 7000000000, "detections": [{"box": [1, 2], "class": 0, "confidence": 0.9}]}
`

func TestPlaybackTester(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "frames.jsonl")
	require.NoError(t, os.WriteFile(filename, []byte(recording), 0644))

	conf, err := ParseConfig(nil)
	require.NoError(t, err)

	results, err := NewPlaybackTester(conf, detection.DefaultLabels, false).Detect(filename)
	require.NoError(t, err)

	assert.Equal(t, 5, results.frames)
	assert.Equal(t, 1, results.missing)
	assert.Equal(t, 2, results.total)
	assert.Equal(t, 3, results.presentFrames)
	assert.Equal(t, []int{0, 3}, results.appearances)
}

func TestPlaybackTesterMissingFile(t *testing.T) {
	conf, err := ParseConfig(nil)
	require.NoError(t, err)

	_, err = NewPlaybackTester(conf, detection.DefaultLabels, false).Detect(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
