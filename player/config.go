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

package player

import "errors"

type Config struct {
	ProcessName string   `yaml:"process-name"`
	Command     []string `yaml:"command"`
	MediaFile   string   `yaml:"media-file"`
	WatchMedia  bool     `yaml:"watch-media"`
}

func DefaultConfig() Config {
	return Config{
		ProcessName: "vlc",
		Command:     []string{"cvlc", "--fullscreen", "--loop"},
		MediaFile:   "/home/kiosk/promo.mp4",
		WatchMedia:  true,
	}
}

func (conf *Config) Validate() error {
	if conf.ProcessName == "" {
		return errors.New("process-name must be set")
	}
	if len(conf.Command) == 0 {
		return errors.New("player command must be set")
	}
	if conf.MediaFile == "" {
		return errors.New("media-file must be set")
	}
	return nil
}
