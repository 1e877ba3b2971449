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

// State is whether the promo player should be, or is, running.
type State int

const (
	IdleNoPlayer State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case IdleNoPlayer:
		return "idle"
	case Playing:
		return "playing"
	}
	return "unknown"
}

func stateOf(running bool) State {
	if running {
		return Playing
	}
	return IdleNoPlayer
}

// Action is what has to be done to the player to reach the desired state.
type Action int

const (
	ActionNone Action = iota
	ActionStart
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionStart:
		return "start"
	case ActionStop:
		return "stop"
	}
	return "unknown"
}

// Desired returns Playing once nobody has been seen for threshold ticks.
func Desired(noPersonCount, threshold int) State {
	if noPersonCount >= threshold {
		return Playing
	}
	return IdleNoPlayer
}

// Next returns the state after moving from actual towards desired and the
// action needed to get there.
func Next(actual, desired State) (State, Action) {
	switch {
	case desired == Playing && actual != Playing:
		return Playing, ActionStart
	case desired == IdleNoPlayer && actual == Playing:
		return IdleNoPlayer, ActionStop
	}
	return actual, ActionNone
}

// NewDebouncer returns a Debouncer. With playOnStart the counter begins at
// the threshold so the promo starts on the first tick unless someone is seen.
func NewDebouncer(threshold int, playOnStart bool) *Debouncer {
	d := &Debouncer{threshold: threshold}
	if playOnStart {
		d.noPersonCount = threshold
	}
	return d
}

// Debouncer smooths the per-tick presence observations and keeps track of
// the state the player was last driven to.
type Debouncer struct {
	threshold     int
	noPersonCount int
	state         State
}

// Observe records one tick's observation. Ticks without an observation
// should not call Observe at all.
func (d *Debouncer) Observe(present bool) {
	if present {
		d.noPersonCount = 0
	} else {
		d.noPersonCount++
	}
}

func (d *Debouncer) Count() int {
	return d.noPersonCount
}

func (d *Debouncer) State() State {
	return d.state
}

// SetState overrides the tracked state, for when an action failed.
func (d *Debouncer) SetState(s State) {
	d.state = s
}

// Decide moves to the next state given the player's actual state. When
// allowed is false the player must not run, whatever the counter says.
func (d *Debouncer) Decide(actual State, allowed bool) Action {
	desired := Desired(d.noPersonCount, d.threshold)
	if !allowed {
		desired = IdleNoPlayer
	}
	next, action := Next(actual, desired)
	d.state = next
	return action
}
