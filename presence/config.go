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
	"errors"
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04"

type Config struct {
	Tick              time.Duration  `yaml:"tick"`
	DebounceThreshold int            `yaml:"debounce-threshold"`
	PlayOnStart       bool           `yaml:"play-on-start"`
	StaleAfter        time.Duration  `yaml:"stale-after"`
	PlaybackWindow    PlaybackWindow `yaml:"playback-window"`
}

// PlaybackWindow holds "15:04" style times of day. Both empty means the
// promo may play at any time.
type PlaybackWindow struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func DefaultConfig() Config {
	return Config{
		Tick:              time.Second,
		DebounceThreshold: 5,
		PlayOnStart:       true,
	}
}

func (conf *Config) Validate() error {
	if conf.Tick <= 0 {
		return errors.New("tick must be positive")
	}
	if conf.DebounceThreshold < 1 {
		return errors.New("debounce-threshold should be at least 1")
	}
	if conf.StaleAfter < 0 {
		return errors.New("stale-after can't be negative")
	}
	_, err := conf.PlaybackWindow.Window()
	return err
}

// Window parses the configured times. It returns nil when no window is set.
func (pw PlaybackWindow) Window() (*Window, error) {
	if pw.Start == "" && pw.End == "" {
		return nil, nil
	}
	if pw.Start == "" || pw.End == "" {
		return nil, errors.New("playback-window needs both start and end")
	}
	start, err := time.Parse(timeOfDayLayout, pw.Start)
	if err != nil {
		return nil, fmt.Errorf("bad playback-window start: %w", err)
	}
	end, err := time.Parse(timeOfDayLayout, pw.End)
	if err != nil {
		return nil, fmt.Errorf("bad playback-window end: %w", err)
	}
	return NewWindow(start, end), nil
}
