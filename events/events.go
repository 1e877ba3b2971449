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

package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/godbus/dbus"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
	"github.com/TheCacophonyProject/presence-kiosk/loglimiter"
)

const (
	PersonDetected  = "personDetected"
	PlayerThrottled = "playerThrottled"

	// Events beyond this many waiting to be sent are dropped.
	queueSize = 32

	minLogInterval = time.Minute
)

type event struct {
	kind    string
	details map[string]interface{}
	ts      time.Time
}

// NewRecorder returns a Recorder that queues events with the events service
// over the system bus.
func NewRecorder() *Recorder {
	return newRecorder(dbusQueue)
}

func newRecorder(queue func(detailsJSON []byte, ts time.Time) error) *Recorder {
	r := &Recorder{
		queue:   queue,
		pending: make(chan event, queueSize),
		nowFunc: time.Now,
		log:     loglimiter.New(minLogInterval),
	}
	go r.run()
	return r
}

// Recorder uses the event api to record things happening on the kiosk.
// Sending happens off the caller's goroutine so a slow bus never holds up
// frame processing.
type Recorder struct {
	detection.NullListener

	queue   func([]byte, time.Time) error
	pending chan event
	nowFunc func() time.Time
	log     *loglimiter.LogLimiter
}

// PersonsAppeared records a personDetected event for newly counted people.
func (r *Recorder) PersonsAppeared(fresh []detection.Detection, total int) {
	r.add(PersonDetected, map[string]interface{}{
		"count": len(fresh),
		"total": total,
	})
}

// WhenThrottled records that the player was not started due to throttling.
func (r *Recorder) WhenThrottled() {
	r.add(PlayerThrottled, nil)
}

func (r *Recorder) add(kind string, details map[string]interface{}) {
	select {
	case r.pending <- event{kind: kind, details: details, ts: r.nowFunc()}:
	default:
		r.log.Printf("event queue full, dropping %s event", kind)
	}
}

func (r *Recorder) run() {
	for e := range r.pending {
		description := map[string]interface{}{"type": e.kind}
		if e.details != nil {
			description["details"] = e.details
		}
		detailsJSON, err := json.Marshal(map[string]interface{}{"description": description})
		if err != nil {
			log.Printf("could not record %s event: %s", e.kind, err)
			continue
		}
		if err := r.queue(detailsJSON, e.ts); err != nil {
			r.log.Printf("could not record %s event: %s", e.kind, err)
		}
	}
}

func dbusQueue(detailsJSON []byte, ts time.Time) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	obj := conn.Object("org.cacophony.Events", "/org/cacophony/Events")
	return obj.Call("org.cacophony.Events.Queue", 0, detailsJSON, ts.UnixNano()).Err
}
