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
	"errors"
	"sync"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"

	"github.com/TheCacophonyProject/presence-kiosk/presence"
)

const (
	dbusName = "org.cacophony.KioskMonitor"
	dbusPath = "/org/cacophony/KioskMonitor"
)

// statusListener keeps the latest tick for the d-bus service.
type statusListener struct {
	mu   sync.Mutex
	last presence.Status
}

func (s *statusListener) Ticked(status presence.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = status
}

func (s *statusListener) get() presence.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

type service struct {
	status *statusListener
}

func startService(status *statusListener) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		status: status,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")

	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// Status returns the player state ("idle" or "playing") and the number of
// ticks since a person was last seen.
func (s *service) Status() (string, int32, *dbus.Error) {
	st := s.status.get()
	return st.State.String(), int32(st.NoPersonCount), nil
}
