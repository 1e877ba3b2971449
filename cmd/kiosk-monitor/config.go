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
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/metrics"
	"github.com/TheCacophonyProject/presence-kiosk/player"
	"github.com/TheCacophonyProject/presence-kiosk/presence"
	"github.com/TheCacophonyProject/presence-kiosk/throttle"
)

type Config struct {
	DetectionLog detectlog.Config         `yaml:"detection-log"`
	Monitor      presence.Config          `yaml:"monitor"`
	Player       player.Config            `yaml:"player"`
	Throttler    throttle.ThrottlerConfig `yaml:"throttler"`
	Metrics      metrics.Config           `yaml:"metrics"`
}

func (conf *Config) Validate() error {
	if err := conf.DetectionLog.Validate(); err != nil {
		return err
	}
	if err := conf.Monitor.Validate(); err != nil {
		return err
	}
	if err := conf.Player.Validate(); err != nil {
		return err
	}
	if err := conf.Throttler.Validate(); err != nil {
		return err
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		DetectionLog: detectlog.DefaultConfig(),
		Monitor:      presence.DefaultConfig(),
		Player:       player.DefaultConfig(),
		Throttler:    throttle.DefaultThrottlerConfig(),
		Metrics:      metrics.DefaultConfig(),
	}
}

func ParseConfigFile(filename string) (*Config, error) {
	buf, err := os.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig()
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}
