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

package throttle

import (
	"errors"
	"log"
	"time"

	"github.com/juju/ratelimit"

	"github.com/TheCacophonyProject/presence-kiosk/player"
)

// ErrThrottled is returned by Start when too many starts were asked for.
var ErrThrottled = errors.New("player start throttled")

// Wrap returns p throttled as configured, or p itself when throttling is off.
func Wrap(p player.Player, config *ThrottlerConfig, listener ThrottledEventListener) player.Player {
	if !config.ApplyThrottling {
		return p
	}
	return NewThrottledPlayer(p, config, listener)
}

func NewThrottledPlayer(
	basePlayer player.Player,
	config *ThrottlerConfig,
	eventListener ThrottledEventListener,
) *ThrottledPlayer {
	return NewThrottledPlayerWithClock(basePlayer, config, eventListener, new(realClock))
}

func NewThrottledPlayerWithClock(
	basePlayer player.Player,
	config *ThrottlerConfig,
	listener ThrottledEventListener,
	clock ratelimit.Clock,
) *ThrottledPlayer {
	// The token bucket tracks the number of player starts available.
	bucket := ratelimit.NewBucketWithQuantumAndClock(config.Refill, config.MaxStarts, 1, clock)

	if listener == nil {
		listener = new(nullListener)
	}

	return &ThrottledPlayer{
		player:   basePlayer,
		listener: listener,
		bucket:   bucket,
	}
}

// ThrottledPlayer wraps a player so that it stops being started (ie gets
// throttled) if asked to start too often. This happens when the player
// keeps crashing straight after launch, and restarting it every tick would
// only hog the CPU the detector needs.
type ThrottledPlayer struct {
	player    player.Player
	listener  ThrottledEventListener
	bucket    *ratelimit.Bucket
	throttled bool
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

func (throttler *ThrottledPlayer) IsRunning() (bool, error) {
	return throttler.player.IsRunning()
}

// Start starts the player if a token is available. The listener hears about
// the first refused start only, not every retry after it.
func (throttler *ThrottledPlayer) Start() error {
	if throttler.bucket.TakeAvailable(1) == 0 {
		if !throttler.throttled {
			log.Print("player not started due to throttling")
			throttler.throttled = true
			throttler.listener.WhenThrottled()
		}
		return ErrThrottled
	}
	throttler.throttled = false
	return throttler.player.Start()
}

func (throttler *ThrottledPlayer) Stop() error {
	return throttler.player.Stop()
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Now implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
