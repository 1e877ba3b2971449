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
	"fmt"
	"log"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
)

// statusLED lights a GPIO pin while someone is in view.
type statusLED struct {
	detection.NullListener
	pin gpio.PinIO
}

// newStatusLED returns nil when no pin is configured.
func newStatusLED(pinName string) (*statusLED, error) {
	if pinName == "" {
		return nil, nil
	}

	log.Print("host initialisation")
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("unknown status LED pin %q", pinName)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to set status LED pin low: %v", err)
	}
	return &statusLED{pin: pin}, nil
}

func (led *statusLED) PresenceChanged(present bool) {
	level := gpio.Low
	if present {
		level = gpio.High
	}
	if err := led.pin.Out(level); err != nil {
		log.Printf("failed to set status LED: %v", err)
	}
}
