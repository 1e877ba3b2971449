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
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/metrics"
)

type Config struct {
	FrameInput   string           `yaml:"frame-input"`
	FrameFormat  string           `yaml:"frame-format"`
	Detection    detection.Config `yaml:"detection"`
	DetectionLog detectlog.Config `yaml:"detection-log"`
	StatusLED    StatusLEDConfig  `yaml:"status-led"`
	Metrics      metrics.Config   `yaml:"metrics"`
}

type StatusLEDConfig struct {
	Pin string `yaml:"pin"`
}

func (conf *Config) Validate() error {
	if conf.FrameInput == "" {
		return fmt.Errorf("frame-input must be set")
	}
	if _, err := detection.DecoderFor(conf.FrameFormat); err != nil {
		return err
	}
	if err := conf.Detection.Validate(); err != nil {
		return err
	}
	if err := conf.DetectionLog.Validate(); err != nil {
		return err
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		FrameInput:   "/var/run/person-frames",
		FrameFormat:  detection.FormatMsgpack,
		Detection:    detection.DefaultConfig(),
		DetectionLog: detectlog.DefaultConfig(),
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
