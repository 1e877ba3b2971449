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

package detection

import "errors"

type Config struct {
	Threshold        float64  `yaml:"threshold"`
	IoUThreshold     float64  `yaml:"iou-threshold"`
	MaxDetections    int      `yaml:"max-detections"`
	Categories       []string `yaml:"categories"`
	LabelsFile       string   `yaml:"labels-file"`
	IgnoreDashLabels bool     `yaml:"ignore-dash-labels"`
}

func DefaultConfig() Config {
	return Config{
		Threshold:     0.55,
		IoUThreshold:  0.5,
		MaxDetections: 10,
		Categories:    []string{"person"},
	}
}

func (conf *Config) Validate() error {
	if conf.Threshold < 0 || conf.Threshold >= 1 {
		return errors.New("threshold should be in the range 0 - 1")
	}
	if conf.IoUThreshold < 0 || conf.IoUThreshold >= 1 {
		return errors.New("iou-threshold should be in the range 0 - 1")
	}
	if conf.MaxDetections < 0 {
		return errors.New("max-detections can't be negative")
	}
	return nil
}
