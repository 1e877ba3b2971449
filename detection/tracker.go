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
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Detection is one accepted per-frame observation.
type Detection struct {
	// ID is set when the detection is first counted as a new person.
	ID         string
	Box        Box
	Category   string
	Confidence float64
}

// Result is the outcome of matching one frame against the active set.
type Result struct {
	Accepted []Detection
	New      []Detection
	Active   []Detection
	Total    int
}

// Present reports whether the frame had any accepted detection.
func (r Result) Present() bool {
	return len(r.Accepted) > 0
}

func NewTracker(iouThreshold float64) *Tracker {
	return &Tracker{
		iouThreshold: iouThreshold,
		newID:        uuid.NewString,
	}
}

// Tracker keeps the detections believed to still be on screen and the
// cumulative number of distinct appearances. Matching is a single frame
// greedy IoU test; boxes in the active set are never moved.
type Tracker struct {
	iouThreshold float64
	active       []Detection
	total        int
	newID        func() string
}

// Update classifies the accepted detections of a frame as new or continuing,
// then evicts active detections that nothing in the frame overlaps.
func (t *Tracker) Update(accepted []Detection) Result {
	var fresh []Detection
	for _, d := range accepted {
		// Newly appended entries take part in the scan, so two overlapping
		// boxes in one frame count once.
		if t.matchesAny(d, t.active) {
			continue
		}
		d.ID = t.newID()
		fresh = append(fresh, d)
		t.active = append(t.active, d)
	}
	t.total += len(fresh)

	t.active = lo.Filter(t.active, func(a Detection, _ int) bool {
		return t.matchesAny(a, accepted)
	})

	return Result{
		Accepted: accepted,
		New:      fresh,
		Active:   t.Active(),
		Total:    t.total,
	}
}

func (t *Tracker) matchesAny(d Detection, set []Detection) bool {
	return lo.ContainsBy(set, func(other Detection) bool {
		return IoU(d.Box, other.Box) > t.iouThreshold
	})
}

// Active returns a copy of the active set.
func (t *Tracker) Active() []Detection {
	active := make([]Detection, len(t.active))
	copy(active, t.active)
	return active
}

// Total never decreases.
func (t *Tracker) Total() int {
	return t.total
}
