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

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/prometheus/procfs"
	"go.uber.org/multierr"
)

// Player is the control surface of the external video player.
type Player interface {
	IsRunning() (bool, error)
	Start() error
	Stop() error
}

type process struct {
	PID  int
	Comm string
	Args []string
}

func NewProcessPlayer(conf *Config) *ProcessPlayer {
	return &ProcessPlayer{
		name:    conf.ProcessName,
		command: conf.Command,
		media:   conf.MediaFile,
		selfPID: os.Getpid(),
		list:    listProcesses,
		spawn:   spawnDetached,
		signal:  syscall.Kill,
	}
}

// ProcessPlayer finds the player in the process table by name and starts it
// as a detached child.
type ProcessPlayer struct {
	name    string
	command []string
	media   string
	selfPID int
	list    func() ([]process, error)
	spawn   func(args []string) error
	signal  func(pid int, sig syscall.Signal) error
}

func (p *ProcessPlayer) IsRunning() (bool, error) {
	pids, err := p.pids()
	if err != nil {
		return false, err
	}
	return len(pids) > 0, nil
}

func (p *ProcessPlayer) Start() error {
	if _, err := os.Stat(p.media); err != nil {
		return fmt.Errorf("media file: %w", err)
	}
	args := append(append([]string{}, p.command...), p.media)
	if err := p.spawn(args); err != nil {
		return fmt.Errorf("starting %s: %w", args[0], err)
	}
	return nil
}

// Stop sends SIGTERM to every matching process. Processes that exit before
// they are signalled are not an error.
func (p *ProcessPlayer) Stop() error {
	pids, err := p.pids()
	if err != nil {
		return err
	}
	var errs error
	for _, pid := range pids {
		err := p.signal(pid, syscall.SIGTERM)
		switch {
		case err == nil:
			log.Printf("sent SIGTERM to %s (pid %d)", p.name, pid)
		case errors.Is(err, syscall.ESRCH):
		default:
			errs = multierr.Append(errs, fmt.Errorf("signalling pid %d: %w", pid, err))
		}
	}
	return errs
}

func (p *ProcessPlayer) pids() ([]int, error) {
	procs, err := p.list()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	var pids []int
	for _, proc := range procs {
		if proc.PID != p.selfPID && p.matches(proc) {
			pids = append(pids, proc.PID)
		}
	}
	return pids, nil
}

func (p *ProcessPlayer) matches(proc process) bool {
	if strings.Contains(proc.Comm, p.name) {
		return true
	}
	return len(proc.Args) > 0 && strings.Contains(filepath.Base(proc.Args[0]), p.name)
}

func listProcesses() ([]process, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return nil, err
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, err
	}
	var out []process
	for _, proc := range procs {
		stat, err := proc.Stat()
		if err != nil {
			// Exited while listing.
			continue
		}
		if stat.State == "Z" {
			continue
		}
		args, _ := proc.CmdLine()
		out = append(out, process{PID: proc.PID, Comm: stat.Comm, Args: args})
	}
	return out, nil
}

// spawnDetached starts the player in its own process group, away from
// signals aimed at the monitor. The child is reaped in the background.
func spawnDetached(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	log.Printf("started %s (pid %d)", strings.Join(args, " "), cmd.Process.Pid)
	go cmd.Wait()
	return nil
}
