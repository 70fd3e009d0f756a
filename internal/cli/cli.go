// seehuhn.de/go/pdfview - a PDF viewer and annotator
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cli holds helpers shared by the pdfview commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"golang.org/x/term"

	"seehuhn.de/go/pdfview/config"
)

// Overrides are command-line values which replace settings from the
// configuration file.  Only flags which were given on the command line
// take effect.
type Overrides struct {
	Scale *float64
	DPR   *float64
	Host  *string
	Port  *int
}

// LoadConfig reads the configuration file at path, or the defaults if
// path is empty, and applies the flags set on the command line.
func LoadConfig(path string, fs *flag.FlagSet, o Overrides) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch {
		case o.Scale != nil && f.Name == "scale":
			cfg.Scale = *o.Scale
		case o.DPR != nil && f.Name == "dpr":
			cfg.DevicePixelRatio = *o.DPR
		case o.Host != nil && f.Name == "host":
			cfg.Server.Host = *o.Host
		case o.Port != nil && f.Name == "port":
			cfg.Server.Port = *o.Port
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger returns the logger for a command.
func Logger(cfg *config.Config, w io.Writer) *log.Logger {
	return log.New(w, cfg.LogPrefix, 0)
}

// ReadPassword returns a function which supplies passwords for encrypted
// documents.  The given passwords are tried first.  After that, the user
// is asked on the terminal, as long as standard input is a terminal.
func ReadPassword(passwords ...string) func(try int) string {
	return func(try int) string {
		if try < len(passwords) {
			return passwords[try]
		}
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return ""
		}
		fmt.Fprint(os.Stderr, "password: ")
		passwd, err := term.ReadPassword(fd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "XXX")
			return ""
		}
		fmt.Fprintln(os.Stderr, "***")
		return string(passwd)
	}
}

// StartProfile begins CPU profiling, if cpuprofile is non-empty.  The
// returned function stops CPU profiling and writes a memory profile, if
// memprofile is non-empty.
func StartProfile(cpuprofile, memprofile string) (stop func(), err error) {
	var cpuFile *os.File
	if cpuprofile != "" {
		cpuFile, err = os.Create(cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err = pprof.StartCPUProfile(cpuFile); err != nil {
			cpuFile.Close()
			return nil, fmt.Errorf("could not start CPU profile: %w", err)
		}
	}

	stop = func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}
		if memprofile == "" {
			return
		}
		f, err := os.Create(memprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create memory profile: %v\n", err)
			return
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			fmt.Fprintf(os.Stderr, "could not write memory profile: %v\n", err)
		}
	}
	return stop, nil
}
