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
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"os"

	"golang.org/x/term"

	"seehuhn.de/go/pdfview/canvas"
	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/files"
	"seehuhn.de/go/pdfview/internal/buildinfo"
	"seehuhn.de/go/pdfview/internal/cli"
	"seehuhn.de/go/pdfview/render"
)

var (
	pageNum    = flag.Int("page", 1, "page number to render (1-based)")
	scale      = flag.Float64("scale", 1, "zoom factor")
	dpr        = flag.Float64("dpr", 1, "device pixel ratio")
	baseImage  = flag.String("base", "", "pre-rendered page bitmap (PNG, JPEG or WebP) to paint under the annotations")
	passwdArg  = flag.String("password", "", "PDF password")
	configFile = flag.String("config", "", "read settings from `file`")
	version    = flag.Bool("version", false, "print version information and exit")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pdfview-render - paint the annotations of a PDF page\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("pdfview-render"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-render [options] <in.pdf> <out.png>\n\n")
		fmt.Fprintf(os.Stderr, "Use \"-\" as the output file to write to standard output.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pdfview-render -page 2 -scale 1.5 notes.pdf page2.png\n")
		fmt.Fprintf(os.Stderr, "  pdfview-render -base scan.png notes.pdf - | display\n")
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("pdfview-render"))
		return
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, "pdfview-render:", err)
		os.Exit(1)
	}
}

func run(inName, outName string) error {
	stop, err := cli.StartProfile(*cpuprofile, *memprofile)
	if err != nil {
		return err
	}
	defer stop()

	cfg, err := cli.LoadConfig(*configFile, flag.CommandLine,
		cli.Overrides{Scale: scale, DPR: dpr})
	if err != nil {
		return err
	}
	logger := cli.Logger(cfg, os.Stderr)

	toTerminal := outName == "-" && term.IsTerminal(int(os.Stdout.Fd()))
	if toTerminal {
		return errors.New("refusing to write PNG data to a terminal")
	}

	picked, err := files.PathPicker{Path: inName}.Pick(context.Background())
	if err != nil {
		return err
	}

	var passwords []string
	if *passwdArg != "" {
		passwords = append(passwords, *passwdArg)
	}
	doc, err := engine.Load(context.Background(), picked.Data,
		&engine.Options{ReadPassword: cli.ReadPassword(passwords...)})
	if err != nil {
		return err
	}
	page, err := doc.Page(*pageNum)
	if err != nil {
		return fmt.Errorf("page %d: %w", *pageNum, err)
	}

	opt := &render.Options{
		Scale:  cfg.Scale,
		DPR:    cfg.DevicePixelRatio,
		Logger: logger,
	}
	if *baseImage != "" {
		f, err := os.Open(*baseImage)
		if err != nil {
			return err
		}
		opt.Base, err = render.DecodeBase(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", *baseImage, err)
		}
	}

	r := canvas.NewRaster(0, 0)
	if _, err := render.Paint(r, page, opt); err != nil {
		return err
	}
	if r.Err != nil {
		return r.Err
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, r.Image); err != nil {
		return err
	}
	if outName == "-" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	return files.DiskWriter{}.WriteFile(outName, buf.Bytes())
}
