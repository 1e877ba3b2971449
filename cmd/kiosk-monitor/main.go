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
	"log"
	"strings"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/events"
	"github.com/TheCacophonyProject/presence-kiosk/metrics"
	"github.com/TheCacophonyProject/presence-kiosk/player"
	"github.com/TheCacophonyProject/presence-kiosk/presence"
	"github.com/TheCacophonyProject/presence-kiosk/throttle"
)

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	Verbose    bool   `arg:"-v,--verbose" help:"log every tick"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/presence-kiosk.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	logConfig(conf)

	status := new(statusListener)
	log.Println("starting d-bus service")
	if err := startService(status); err != nil {
		return err
	}

	tickMetrics := metrics.NewMonitor()
	tickMetrics.StartServer(conf.Metrics.MonitorAddress)

	kioskPlayer := throttle.Wrap(player.NewProcessPlayer(&conf.Player), &conf.Throttler, events.NewRecorder())

	listeners := presence.Listeners{status, tickMetrics, watchdog{}}
	if args.Verbose {
		listeners = append(listeners, verboseListener{})
	}
	source := &detectlog.File{Path: conf.DetectionLog.Path}
	monitor, err := presence.NewMonitor(&conf.Monitor, source, kioskPlayer, listeners)
	if err != nil {
		return err
	}

	if conf.Player.WatchMedia {
		watcher, err := player.NewMediaWatcher(conf.Player.MediaFile, player.DefaultQuietPeriod)
		if err != nil {
			log.Printf("not watching media file: %v", err)
		} else {
			defer watcher.Close()
			monitor.SetRefresher(watcher)
		}
	}

	daemon.SdNotify(false, "READY=1")
	log.Print("monitoring detection log")
	monitor.Run()
	return nil
}

func logConfig(conf *Config) {
	log.Printf("detection log: %s", conf.DetectionLog.Path)
	log.Printf("monitor: tick %s, debounce threshold %d, play on start %t",
		conf.Monitor.Tick, conf.Monitor.DebounceThreshold, conf.Monitor.PlayOnStart)
	if conf.Monitor.StaleAfter > 0 {
		log.Printf("log entries stale after %s", conf.Monitor.StaleAfter)
	}
	if w := conf.Monitor.PlaybackWindow; w.Start != "" {
		log.Printf("playback window: %s to %s", w.Start, w.End)
	}
	log.Printf("player: %s (%s %s)", conf.Player.ProcessName,
		strings.Join(conf.Player.Command, " "), conf.Player.MediaFile)
	log.Printf("throttler: %+v", conf.Throttler)
	if conf.Metrics.MonitorAddress != "" {
		log.Printf("metrics address: %s", conf.Metrics.MonitorAddress)
	}
}

// watchdog tells systemd the monitor loop is alive.
type watchdog struct{}

func (watchdog) Ticked(presence.Status) {
	daemon.SdNotify(false, "WATCHDOG=1")
}

type verboseListener struct{}

func (verboseListener) Ticked(s presence.Status) {
	log.Printf("observed %t present %t stale %t: no person for %d, running %t, %s -> %s",
		s.Observed, s.Present, s.Stale, s.NoPersonCount, s.Running, s.Action, s.State)
}
