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
	"net"
	"os"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"

	"github.com/TheCacophonyProject/presence-kiosk/detection"
	"github.com/TheCacophonyProject/presence-kiosk/detectlog"
	"github.com/TheCacophonyProject/presence-kiosk/events"
	"github.com/TheCacophonyProject/presence-kiosk/loglimiter"
	"github.com/TheCacophonyProject/presence-kiosk/metrics"
)

const (
	maxFrameSize = 1 << 16

	frameLogIntervalFirstMin = 100
	frameLogInterval         = 5000

	framesPerSdNotify = 50
)

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	TestFile   string `arg:"-f,--testfile" help:"run a file of JSON frames through to see what the results are"`
	Verbose    bool   `arg:"-v,--verbose" help:"make logging more verbose"`
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

	labels, err := detection.LoadLabels(conf.Detection.LabelsFile)
	if err != nil {
		return err
	}

	if args.TestFile != "" {
		results, err := NewPlaybackTester(conf, labels, args.Verbose).Detect(args.TestFile)
		if err != nil {
			return err
		}
		log.Printf("Frames: %d (missing %d)  Persons: %d  Present frames: %d",
			results.frames, results.missing, results.total, results.presentFrames)
		return nil
	}

	decode, err := detection.DecoderFor(conf.FrameFormat)
	if err != nil {
		return err
	}

	status := new(statusListener)
	log.Println("starting d-bus service")
	if err := startService(status); err != nil {
		return err
	}

	led, err := newStatusLED(conf.StatusLED.Pin)
	if err != nil {
		return err
	}

	frameMetrics := metrics.NewDetector()
	frameMetrics.StartServer(conf.Metrics.DetectorAddress)

	logWriter := detectlog.NewWriter(&conf.DetectionLog)
	defer logWriter.Close()

	listeners := detection.Listeners{status, frameMetrics, events.NewRecorder()}
	if led != nil {
		listeners = append(listeners, led)
	}
	if args.Verbose {
		listeners = append(listeners, verboseListener{})
	}
	processor := detection.NewProcessor(decode, &conf.Detection, labels, logWriter, listeners)

	daemon.SdNotify(false, "READY=1")

	for {
		// Set up listener for frames sent by the inference process.
		os.Remove(conf.FrameInput)
		listener, err := net.Listen("unixpacket", conf.FrameInput)
		if err != nil {
			return err
		}
		log.Print("waiting for inference connection")

		conn, err := listener.Accept()
		if err != nil {
			log.Printf("socket accept failed: %v", err)
			continue
		}

		// Prevent concurrent connections.
		listener.Close()

		err = handleConn(conn, processor, frameMetrics)
		log.Printf("inference connection ended with: %v", err)
	}
}

func handleConn(conn net.Conn, processor *detection.Processor, frameMetrics *metrics.Detector) error {
	defer conn.Close()
	limiter := loglimiter.New(time.Minute)
	buf := make([]byte, maxFrameSize)
	totalFrames := 0
	notifyCount := 0

	log.Print("new inference connection, reading frames")

	for {
		n, err := conn.Read(buf)
		if err != nil {
			return err
		}
		totalFrames++

		if totalFrames%frameLogIntervalFirstMin == 0 &&
			totalFrames <= 10*frameLogIntervalFirstMin || totalFrames%frameLogInterval == 0 {
			log.Printf("%d frames for this connection", totalFrames)
		}

		if notifyCount++; notifyCount >= framesPerSdNotify {
			daemon.SdNotify(false, "WATCHDOG=1")
			notifyCount = 0
		}

		if err := processor.Process(buf[:n]); err != nil {
			frameMetrics.DecodeErrors.Add(1)
			limiter.Printf("bad frame: %v", err)
		}
	}
}

func logConfig(conf *Config) {
	log.Printf("frame input: %s (%s)", conf.FrameInput, conf.FrameFormat)
	log.Printf("detection: %+v", conf.Detection)
	log.Printf("detection log: %+v", conf.DetectionLog)
	if conf.StatusLED.Pin != "" {
		log.Printf("status LED pin: %s", conf.StatusLED.Pin)
	}
	if conf.Metrics.DetectorAddress != "" {
		log.Printf("metrics address: %s", conf.Metrics.DetectorAddress)
	}
}

type verboseListener struct {
	detection.NullListener
}

func (verboseListener) PersonsAppeared(fresh []detection.Detection, total int) {
	for _, d := range fresh {
		log.Printf("new %s %s (%.2f) at %+v, total %d", d.Category, d.ID, d.Confidence, d.Box, total)
	}
}

func (verboseListener) PresenceChanged(present bool) {
	log.Printf("person present: %t", present)
}
