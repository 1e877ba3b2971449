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

package metrics

import (
	"sync/atomic"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
)

// Detector holds the person detector's metrics. It is a detection.Listener.
type Detector struct {
	registry

	Frames        atomic.Uint64
	MissingFrames atomic.Uint64
	Accepted      atomic.Uint64
	DecodeErrors  atomic.Uint64
	Total         atomic.Int64
	Active        atomic.Int64
	Present       atomic.Bool
}

func NewDetector() *Detector {
	d := &Detector{registry: newRegistry()}
	d.gauge("kiosk_detector_frames_total", "Frames with model output processed",
		func() float64 { return float64(d.Frames.Load()) })
	d.gauge("kiosk_detector_missing_frames_total", "Frames without model output",
		func() float64 { return float64(d.MissingFrames.Load()) })
	d.gauge("kiosk_detector_accepted_total", "Detections accepted by the filter",
		func() float64 { return float64(d.Accepted.Load()) })
	d.gauge("kiosk_detector_decode_errors_total", "Frame messages that failed to decode",
		func() float64 { return float64(d.DecodeErrors.Load()) })
	d.gauge("kiosk_detector_persons_total", "Distinct people counted since start",
		func() float64 { return float64(d.Total.Load()) })
	d.gauge("kiosk_detector_active", "People currently in view",
		func() float64 { return float64(d.Active.Load()) })
	d.gauge("kiosk_detector_present", "1 while someone is in view",
		func() float64 { return boolFloat(d.Present.Load()) })
	return d
}

func (d *Detector) FrameProcessed(r detection.Result) {
	d.Frames.Add(1)
	d.Accepted.Add(uint64(len(r.Accepted)))
	d.Total.Store(int64(r.Total))
	d.Active.Store(int64(len(r.Active)))
	d.Present.Store(r.Present())
}

func (d *Detector) FrameMissing() {
	d.MissingFrames.Add(1)
}

func (d *Detector) PersonsAppeared([]detection.Detection, int) {}

func (d *Detector) PresenceChanged(bool) {}
