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

	"seehuhn.de/go/pdfview/internal/buildinfo"
	"seehuhn.de/go/pdfview/internal/cli"
	"seehuhn.de/go/pdfview/shell"
	"seehuhn.de/go/pdfview/viewer"
)

var (
	configFile = flag.String("config", "", "read settings from `file`")
	history    = flag.String("history", "", "keep the command history in `file`")
	scale      = flag.Float64("scale", 1, "initial zoom factor")
	passwdArg  = flag.String("password", "", "password for encrypted documents")
	version    = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdfview-shell - interactive PDF viewer shell\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdfview-shell"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-shell [options] [file.pdf]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdfview-shell"))
		return
	}
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pdfview-shell:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := cli.LoadConfig(*configFile, flag.CommandLine, cli.Overrides{Scale: scale})
	if err != nil {
		return err
	}
	if *history != "" {
		cfg.HistoryFile = *history
	}

	var passwords []string
	if *passwdArg != "" {
		passwords = append(passwords, *passwdArg)
	}
	v := viewer.New(cfg,
		viewer.WithLogger(cli.Logger(cfg, os.Stderr)),
		viewer.WithNotifier(viewer.NotifierFunc(func(msg string) {
			fmt.Fprintln(os.Stderr, "!", msg)
		})),
		viewer.WithPassword(cli.ReadPassword(passwords...)))

	sh, err := shell.New(v, shell.Config{HistoryFile: cfg.HistoryFile})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if flag.NArg() == 1 {
		sh.Open(ctx, flag.Arg(0))
	}
	return sh.Run(ctx)
}
