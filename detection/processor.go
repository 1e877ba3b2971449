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

package detection

import (
	"time"

	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/loglimiter"
)

const minLogInterval = time.Minute

// EntryWriter receives one detection log entry per processed frame.
type EntryWriter interface {
	WriteEntry(detectlog.Entry) error
}

// Listener is told about the outcome of each frame.
type Listener interface {
	FrameProcessed(Result)
	FrameMissing()
	PersonsAppeared(fresh []Detection, total int)
	PresenceChanged(present bool)
}

// NullListener can be embedded by listeners that only care about some events.
type NullListener struct{}

func (NullListener) FrameProcessed(Result)            {}
func (NullListener) FrameMissing()                    {}
func (NullListener) PersonsAppeared([]Detection, int) {}
func (NullListener) PresenceChanged(bool)             {}

// Listeners fans events out to several listeners.
type Listeners []Listener

func (ls Listeners) FrameProcessed(r Result) {
	for _, l := range ls {
		l.FrameProcessed(r)
	}
}

func (ls Listeners) FrameMissing() {
	for _, l := range ls {
		l.FrameMissing()
	}
}

func (ls Listeners) PersonsAppeared(fresh []Detection, total int) {
	for _, l := range ls {
		l.PersonsAppeared(fresh, total)
	}
}

func (ls Listeners) PresenceChanged(present bool) {
	for _, l := range ls {
		l.PresenceChanged(present)
	}
}

func NewProcessor(
	decode FrameDecoder,
	conf *Config,
	labels []string,
	writer EntryWriter,
	listener Listener,
) *Processor {
	if listener == nil {
		listener = NullListener{}
	}
	return &Processor{
		decode:   decode,
		filter:   NewFilter(conf, labels),
		tracker:  NewTracker(conf.IoUThreshold),
		writer:   writer,
		listener: listener,
		nowFunc:  time.Now,
		log:      loglimiter.New(minLogInterval),
	}
}

// Processor runs the per-frame detector pipeline: filter, match against the
// active set, log presence and notify listeners.
type Processor struct {
	decode   FrameDecoder
	filter   *Filter
	tracker  *Tracker
	writer   EntryWriter
	listener Listener
	last     Result
	present  bool
	nowFunc  func() time.Time
	log      *loglimiter.LogLimiter
}

// Process decodes a raw message and processes it.
func (p *Processor) Process(raw []byte) error {
	frame, err := p.decode(raw)
	if err != nil {
		return err
	}
	p.ProcessFrame(frame)
	return nil
}

// ProcessFrame returns the previous result unchanged, without writing a log
// entry, when the frame carries no model output.
func (p *Processor) ProcessFrame(frame *Frame) Result {
	if frame == nil || !frame.HasOutput {
		p.listener.FrameMissing()
		return p.last
	}

	result := p.tracker.Update(p.filter.Accept(frame.Detections))

	ts := frame.Time
	if ts.IsZero() {
		ts = p.nowFunc()
	}
	if p.writer != nil {
		entry := detectlog.Entry{
			Time:    ts.Truncate(time.Second),
			Present: result.Present(),
			Total:   result.Total,
		}
		if err := p.writer.WriteEntry(entry); err != nil {
			p.log.Printf("failed to write detection log: %v", err)
		}
	}

	if len(result.New) > 0 {
		p.listener.PersonsAppeared(result.New, result.Total)
	}
	if result.Present() != p.present {
		p.present = result.Present()
		p.listener.PresenceChanged(p.present)
	}
	p.listener.FrameProcessed(result)

	p.last = result
	return result
}

// Last returns the most recent result.
func (p *Processor) Last() Result {
	return p.last
}
