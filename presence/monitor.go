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
	"log"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/loglimiter"
	"github.com/TheCacophonyProject/presence-kiosk/player"
)

const minLogInterval = time.Minute

// EntrySource gives the latest detection log entry.
type EntrySource interface {
	LastEntry() (detectlog.Entry, error)
}

// Refresher reports that the player should be restarted to pick up new media.
type Refresher interface {
	RefreshPending() bool
}

// Listener is told the outcome of every tick.
type Listener interface {
	Ticked(Status)
}

// Listeners fans ticks out to several listeners.
type Listeners []Listener

func (ls Listeners) Ticked(s Status) {
	for _, l := range ls {
		l.Ticked(s)
	}
}

// Status describes one tick. Observed is false when no log entry could be
// read. Err holds the error from the player action, if any.
type Status struct {
	Time          time.Time
	Observed      bool
	Present       bool
	Stale         bool
	NoPersonCount int
	Running       bool
	State         State
	Action        Action
	Err           error
}

func NewMonitor(conf *Config, source EntrySource, p player.Player, listener Listener) (*Monitor, error) {
	w, err := conf.PlaybackWindow.Window()
	if err != nil {
		return nil, err
	}
	if listener == nil {
		listener = Listeners{}
	}
	m := &Monitor{
		Clock:      clock.New(),
		tick:       conf.Tick,
		staleAfter: conf.StaleAfter,
		window:     w,
		debouncer:  NewDebouncer(conf.DebounceThreshold, conf.PlayOnStart),
		source:     source,
		player:     p,
		listener:   listener,
		log:        loglimiter.New(minLogInterval),
	}
	if w != nil {
		w.Now = func() time.Time { return m.Clock.Now() }
	}
	return m, nil
}

// Monitor polls the detection log and keeps the player running only while
// nobody has been seen for a while.
type Monitor struct {
	Clock clock.Clock

	tick       time.Duration
	staleAfter time.Duration
	window     *Window
	debouncer  *Debouncer
	source     EntrySource
	player     player.Player
	refresher  Refresher
	listener   Listener
	log        *loglimiter.LogLimiter
}

func (m *Monitor) SetRefresher(r Refresher) {
	m.refresher = r
}

// Run ticks for the life of the process.
func (m *Monitor) Run() {
	m.run(nil)
}

func (m *Monitor) run(stop <-chan struct{}) {
	ticker := m.Clock.Ticker(m.tick)
	defer ticker.Stop()

	m.Tick()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick reads one observation and drives the player towards the state the
// debouncer wants. No failure here is fatal; the next tick retries.
func (m *Monitor) Tick() Status {
	now := m.Clock.Now()
	status := Status{Time: now}

	entry, err := m.source.LastEntry()
	switch {
	case err != nil:
		m.log.Printf("no observation from detection log: %v", err)
	case m.staleAfter > 0 && now.Sub(entry.Time) > m.staleAfter:
		m.log.Printf("detection log is stale, last entry at %s", entry.Time.Format(detectlog.TimeFormat))
		status.Observed = true
		status.Stale = true
		m.debouncer.Observe(false)
	default:
		status.Observed = true
		status.Present = entry.Present
		m.debouncer.Observe(entry.Present)
	}

	actual := m.debouncer.State()
	if running, err := m.player.IsRunning(); err != nil {
		m.log.Printf("failed to query player, assuming %s: %v", actual, err)
	} else {
		actual = stateOf(running)
	}
	status.Running = actual == Playing

	if m.refresher != nil && m.refresher.RefreshPending() && actual == Playing {
		log.Print("media changed, stopping player so it restarts")
		status.Action = ActionStop
		m.debouncer.SetState(IdleNoPlayer)
	} else {
		allowed := m.window == nil || m.window.Active()
		status.Action = m.debouncer.Decide(actual, allowed)
	}

	if status.Err = m.act(status.Action); status.Err != nil {
		m.log.Printf("failed to %s player: %v", status.Action, status.Err)
		m.debouncer.SetState(actual)
	}

	status.NoPersonCount = m.debouncer.Count()
	status.State = m.debouncer.State()
	m.listener.Ticked(status)
	return status
}

func (m *Monitor) act(action Action) error {
	switch action {
	case ActionStart:
		log.Printf("nobody seen for %d ticks, starting player", m.debouncer.Count())
		return m.player.Start()
	case ActionStop:
		log.Print("stopping player")
		return m.player.Stop()
	}
	return nil
}
