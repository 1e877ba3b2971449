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

import "math"

// Box is an axis aligned rectangle in the pixel space of a frame.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Corners returns the box as (x1, y1, x2, y2).
func (b Box) Corners() (x1, y1, x2, y2 float64) {
	return b.X, b.Y, b.X + b.Width, b.Y + b.Height
}

// Area is zero for boxes with a non-positive width or height.
func (b Box) Area() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return b.Width * b.Height
}

// IoU returns the intersection over union of two boxes. Disjoint boxes give 0,
// as do degenerate ones where the union has no area.
func IoU(a, b Box) float64 {
	ax1, ay1, ax2, ay2 := a.Corners()
	bx1, by1, bx2, by2 := b.Corners()

	interW := math.Max(0, math.Min(ax2, bx2)-math.Max(ax1, bx1))
	interH := math.Max(0, math.Min(ay2, by2)-math.Max(ay1, by1))
	inter := interW * interH

	union := a.Area() + b.Area() - inter
	if union <= 0 || math.IsNaN(union) {
		return 0
	}
	return inter / union
}
