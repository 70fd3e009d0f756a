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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seehuhn.de/go/pdfview/files"
	"seehuhn.de/go/pdfview/internal/buildinfo"
	"seehuhn.de/go/pdfview/internal/cli"
	"seehuhn.de/go/pdfview/server"
	"seehuhn.de/go/pdfview/viewer"
)

var (
	configFile = flag.String("config", "", "read settings from `file`")
	host       = flag.String("host", "localhost", "interface to listen on")
	port       = flag.Int("port", 8082, "port to listen on")
	passwdArg  = flag.String("password", "", "password for encrypted documents")
	version    = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdfview-serve - serve the PDF viewer over HTTP\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdfview-serve"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-serve [options] [file.pdf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdfview-serve"))
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pdfview-serve:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cli.LoadConfig(*configFile, flag.CommandLine,
		cli.Overrides{Host: host, Port: port})
	if err != nil {
		return err
	}
	logger := cli.Logger(cfg, os.Stderr)

	hub := server.NewHub(logger)
	go hub.Run()
	defer hub.Stop()

	// Passwords cannot be typed in while serving, so only the one
	// given on the command line is tried.
	var passwords []string
	if *passwdArg != "" {
		passwords = append(passwords, *passwdArg)
	}
	v := viewer.New(cfg,
		viewer.WithLogger(logger),
		viewer.WithNotifier(hub),
		viewer.WithPassword(func(try int) string {
			if try < len(passwords) {
				return passwords[try]
			}
			return ""
		}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if flag.NArg() == 1 {
		if err := v.Open(ctx, files.PathPicker{Path: flag.Arg(0)}); err != nil {
			return err
		}
	}

	srv := server.New(v, hub)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
