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

package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesired(t *testing.T) {
	assert.Equal(t, IdleNoPlayer, Desired(0, 5))
	assert.Equal(t, IdleNoPlayer, Desired(4, 5))
	assert.Equal(t, Playing, Desired(5, 5))
	assert.Equal(t, Playing, Desired(500, 5))
}

func TestNext(t *testing.T) {
	cases := []struct {
		actual, desired State
		next            State
		action          Action
	}{
		{IdleNoPlayer, IdleNoPlayer, IdleNoPlayer, ActionNone},
		{IdleNoPlayer, Playing, Playing, ActionStart},
		{Playing, Playing, Playing, ActionNone},
		{Playing, IdleNoPlayer, IdleNoPlayer, ActionStop},
	}
	for _, c := range cases {
		next, action := Next(c.actual, c.desired)
		assert.Equal(t, c.next, next, "%s -> %s", c.actual, c.desired)
		assert.Equal(t, c.action, action, "%s -> %s", c.actual, c.desired)
	}
}

func TestDebouncerCounts(t *testing.T) {
	d := NewDebouncer(5, false)
	assert.Equal(t, 0, d.Count())

	d.Observe(false)
	d.Observe(false)
	assert.Equal(t, 2, d.Count())

	d.Observe(true)
	assert.Equal(t, 0, d.Count())
}

func TestDebouncerPlayOnStart(t *testing.T) {
	d := NewDebouncer(5, true)
	assert.Equal(t, 5, d.Count())
	assert.Equal(t, ActionStart, d.Decide(IdleNoPlayer, true))
	assert.Equal(t, Playing, d.State())
}

func TestDebouncerNotAllowed(t *testing.T) {
	d := NewDebouncer(1, true)

	assert.Equal(t, ActionNone, d.Decide(IdleNoPlayer, false))
	assert.Equal(t, ActionStop, d.Decide(Playing, false))
	assert.Equal(t, IdleNoPlayer, d.State())
}

func TestDebouncerJustUnderThresholdNeverStarts(t *testing.T) {
	d := NewDebouncer(5, false)
	for i := 0; i < 4; i++ {
		d.Observe(false)
		assert.Equal(t, ActionNone, d.Decide(IdleNoPlayer, true))
	}
	d.Observe(true)
	assert.Equal(t, ActionNone, d.Decide(IdleNoPlayer, true))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "idle", IdleNoPlayer.String())
	assert.Equal(t, "playing", Playing.String())
	assert.Equal(t, "start", ActionStart.String())
	assert.Equal(t, "stop", ActionStop.String())
	assert.Equal(t, "none", ActionNone.String())
}
