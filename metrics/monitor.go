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

	"github.com/TheCacophonyProject/presence-kiosk/presence"
)

// Monitor holds the kiosk monitor's metrics. It is a presence.Listener.
type Monitor struct {
	registry

	Ticks         atomic.Uint64
	Unobserved    atomic.Uint64
	StaleTicks    atomic.Uint64
	Starts        atomic.Uint64
	Stops         atomic.Uint64
	Errors        atomic.Uint64
	NoPersonCount atomic.Int64
	Playing       atomic.Bool
}

func NewMonitor() *Monitor {
	m := &Monitor{registry: newRegistry()}
	m.gauge("kiosk_monitor_ticks_total", "Monitor ticks",
		func() float64 { return float64(m.Ticks.Load()) })
	m.gauge("kiosk_monitor_unobserved_ticks_total", "Ticks without a readable log entry",
		func() float64 { return float64(m.Unobserved.Load()) })
	m.gauge("kiosk_monitor_stale_ticks_total", "Ticks where the log entry was too old",
		func() float64 { return float64(m.StaleTicks.Load()) })
	m.gauge("kiosk_monitor_player_starts_total", "Player starts attempted",
		func() float64 { return float64(m.Starts.Load()) })
	m.gauge("kiosk_monitor_player_stops_total", "Player stops attempted",
		func() float64 { return float64(m.Stops.Load()) })
	m.gauge("kiosk_monitor_player_errors_total", "Player actions that failed",
		func() float64 { return float64(m.Errors.Load()) })
	m.gauge("kiosk_monitor_no_person_count", "Consecutive ticks without a person",
		func() float64 { return float64(m.NoPersonCount.Load()) })
	m.gauge("kiosk_monitor_playing", "1 while the player should be running",
		func() float64 { return boolFloat(m.Playing.Load()) })
	return m
}

func (m *Monitor) Ticked(s presence.Status) {
	m.Ticks.Add(1)
	if !s.Observed {
		m.Unobserved.Add(1)
	}
	if s.Stale {
		m.StaleTicks.Add(1)
	}
	switch s.Action {
	case presence.ActionStart:
		m.Starts.Add(1)
	case presence.ActionStop:
		m.Stops.Add(1)
	}
	if s.Err != nil {
		m.Errors.Add(1)
	}
	m.NoPersonCount.Store(int64(s.NoPersonCount))
	m.Playing.Store(s.State == presence.Playing)
}
