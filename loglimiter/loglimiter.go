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

package loglimiter

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// maxTracked bounds the number of distinct messages remembered.
const maxTracked = 64

// New returns a new LogLimiter with the configured minimum log interval.
func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// LogLimiter will suppress log messages if the same log message is
// seen within some time interval. Different messages are limited
// independently, so a loop alternating between two failures still logs
// each of them once per interval.
type LogLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	nowFunc  func() time.Time
	lastSeen map[string]time.Time
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.nowFunc()
	if last, ok := limiter.lastSeen[s]; ok && now.Sub(last) < limiter.interval {
		return
	}

	log.Print(s)
	limiter.lastSeen[s] = now
	if len(limiter.lastSeen) > maxTracked {
		limiter.prune(now)
	}
}

// Reset forgets a message so the next occurrence is logged straight away.
func (limiter *LogLimiter) Reset(s string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.lastSeen, s)
}

func (limiter *LogLimiter) prune(now time.Time) {
	for s, last := range limiter.lastSeen {
		if now.Sub(last) >= limiter.interval {
			delete(limiter.lastSeen, s)
		}
	}
}
