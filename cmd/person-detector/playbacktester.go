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
	"bufio"
	"log"
	"os"

	"github.com/tidwall/gjson"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
)

// playbackResults summarises a run over a recorded file of frames.
type playbackResults struct {
	detection.NullListener

	verbose       bool
	frames        int
	missing       int
	presentFrames int
	total         int
	appearances   []int
}

func (r *playbackResults) FrameProcessed(res detection.Result) {
	r.frames++
	if res.Present() {
		r.presentFrames++
	}
	r.total = res.Total
}

func (r *playbackResults) FrameMissing() {
	r.missing++
}

func (r *playbackResults) PersonsAppeared(fresh []detection.Detection, total int) {
	if r.verbose {
		log.Printf("%d: %d new, total %d", r.frames, len(fresh), total)
	}
	r.appearances = append(r.appearances, r.frames)
}

// PlaybackTester runs a file holding one JSON frame per line through the
// detector pipeline without writing the detection log.
type PlaybackTester struct {
	config  *Config
	labels  []string
	verbose bool
}

func NewPlaybackTester(conf *Config, labels []string, verbose bool) *PlaybackTester {
	return &PlaybackTester{
		config:  conf,
		labels:  labels,
		verbose: verbose,
	}
}

func (pt *PlaybackTester) Detect(filename string) (*playbackResults, error) {
	if pt.verbose {
		log.Printf("TestFile is %s", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	results := &playbackResults{verbose: pt.verbose}
	processor := detection.NewProcessor(detection.DecodeJSON, &pt.config.Detection, pt.labels, nil, results)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, maxFrameSize), maxFrameSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if !gjson.ValidBytes(raw) {
			// Blank lines and comments are allowed between frames.
			continue
		}
		if err := processor.Process(raw); err != nil {
			log.Printf("line %d: %v", line, err)
		}
	}
	return results, scanner.Err()
}
