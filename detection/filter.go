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

import (
	"strings"
)

// RawDetection is a single model output before filtering. Class is -1 when
// the source supplied a category label directly.
type RawDetection struct {
	Box        Box
	Class      int
	Category   string
	Confidence float64
}

func NewFilter(conf *Config, labels []string) *Filter {
	categories := make(map[string]bool, len(conf.Categories))
	for _, c := range conf.Categories {
		categories[strings.ToLower(c)] = true
	}
	return &Filter{
		threshold:     conf.Threshold,
		maxDetections: conf.MaxDetections,
		ignoreDash:    conf.IgnoreDashLabels,
		categories:    categories,
		labels:        labels,
	}
}

// Filter turns raw model output into accepted detections.
type Filter struct {
	threshold     float64
	maxDetections int
	ignoreDash    bool
	categories    map[string]bool
	labels        []string
}

// Accept keeps detections above the confidence threshold whose category is
// wanted, in source order, up to the per-frame maximum.
func (f *Filter) Accept(raw []RawDetection) []Detection {
	var accepted []Detection
	for _, r := range raw {
		if f.maxDetections > 0 && len(accepted) >= f.maxDetections {
			break
		}
		if r.Confidence <= f.threshold {
			continue
		}
		category := f.label(r)
		if category == "" || (f.ignoreDash && category == "-") {
			continue
		}
		if len(f.categories) > 0 && !f.categories[strings.ToLower(category)] {
			continue
		}
		accepted = append(accepted, Detection{
			Box:        r.Box,
			Category:   category,
			Confidence: r.Confidence,
		})
	}
	return accepted
}

func (f *Filter) label(r RawDetection) string {
	if r.Category != "" {
		return r.Category
	}
	if r.Class >= 0 && r.Class < len(f.labels) {
		return f.labels[r.Class]
	}
	return ""
}
