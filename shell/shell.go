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

// Package shell implements an interactive command line for the viewer.
//
// The shell uses the same viewer state as the graphical front ends: it
// opens documents into tabs, selects tools, and renders pages to PNG
// files.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"seehuhn.de/go/pdfview/annotation"
	"seehuhn.de/go/pdfview/files"
	"seehuhn.de/go/pdfview/tools"
	"seehuhn.de/go/pdfview/viewer"
)

// Config configures a [Shell].
type Config struct {
	// HistoryFile is where the command history is kept.  An empty string
	// disables the history.
	HistoryFile string
}

// Shell is an interactive session.
type Shell struct {
	v   *viewer.Viewer
	rl  *readline.Instance
	out io.Writer

	page  int
	scale float64

	toolListener tools.ListenerID
}

// New creates a shell which reads commands from the terminal.
func New(v *viewer.Viewer, cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pdfview> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, err
	}

	s := newShell(v, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(v *viewer.Viewer, out io.Writer) *Shell {
	s := &Shell{
		v:     v,
		out:   out,
		scale: v.Config().Scale,
	}
	s.toolListener = v.Tools().AddListener(func(m tools.Mode) {
		fmt.Fprintf(s.out, "tool: %s\n", m)
	})
	return s
}

func completer() readline.AutoCompleter {
	pdfFiles := func(string) []string {
		names, _ := filepath.Glob("*.pdf")
		return names
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("open", readline.PcItemDynamic(pdfFiles)),
		readline.PcItem("tabs"),
		readline.PcItem("tab"),
		readline.PcItem("new"),
		readline.PcItem("close"),
		readline.PcItem("page"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("zoom"),
		readline.PcItem("tool"),
		readline.PcItem("annots"),
		readline.PcItem("trace"),
		readline.PcItem("render"),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// Close releases the terminal and detaches the shell from the viewer.
func (s *Shell) Close() error {
	s.v.Tools().RemoveListener(s.toolListener)
	if s.rl != nil {
		return s.rl.Close()
	}
	return nil
}

// Run reads and executes commands until the user quits, the input ends,
// or ctx is canceled.
func (s *Shell) Run(ctx context.Context) error {
	defer s.Close()

	fmt.Fprintln(s.out, `Type "help" for a list of commands.`)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.rl.SetPrompt(s.prompt())
		line, err := s.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		err = s.handleCommand(ctx, line)
		if err == errQuit {
			return nil
		} else if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Shell) prompt() string {
	if s.page == 0 {
		return "pdfview> "
	}
	return fmt.Sprintf("pdfview p%d> ", s.page)
}

var errQuit = errors.New("quit")

var errUsage = errors.New("wrong number of arguments")

const helpText = `Commands:
  open FILE      open a PDF file in the current tab
  tabs           list the open tabs
  tab N          switch to tab N
  new            open a new tab
  close [N]      close tab N, or the current tab
  page N         go to page N
  next, prev     go to the next or previous page
  zoom S         set the zoom factor
  tool [N]       list the tools, or select tool N
  annots         list the annotations on the current page
  trace          show the drawing commands for the current page
  render FILE    render the current page to a PNG file
  save           save the current document
  quit           leave the shell
`

func (s *Shell) handleCommand(ctx context.Context, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprint(s.out, helpText)

	case "open":
		if len(args) != 1 {
			return errUsage
		}
		return s.Open(ctx, args[0])
	case "tabs":
		s.printTabs()
	case "tab":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if err := s.v.SwitchTab(n); err != nil {
			return err
		}
		s.resetPage()
	case "new":
		s.v.NewTab()
		s.resetPage()
	case "close":
		n := s.v.ActiveTab()
		if len(args) > 0 {
			var err error
			if n, err = intArg(args); err != nil {
				return err
			}
		}
		if err := s.v.CloseTab(n); err != nil {
			return err
		}
		s.resetPage()

	case "page":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return s.gotoPage(n)
	case "next":
		return s.gotoPage(s.page + 1)
	case "prev":
		return s.gotoPage(s.page - 1)
	case "zoom":
		if len(args) != 1 {
			fmt.Fprintf(s.out, "zoom: %g\n", s.scale)
			return nil
		}
		scale, err := strconv.ParseFloat(args[0], 64)
		if err != nil || !(scale > 0) {
			return fmt.Errorf("invalid zoom factor %q", args[0])
		}
		s.scale = scale

	case "tool":
		if len(args) == 0 {
			s.printTools()
			return nil
		}
		n, err := intArg(args)
		if err != nil {
			return err
		}
		return s.v.Tools().Select(n)

	case "annots":
		return s.printAnnotations()
	case "trace":
		return s.trace()
	case "render":
		if len(args) != 1 {
			return errUsage
		}
		return s.render(ctx, args[0])
	case "save":
		return s.v.Save(files.DiskWriter{}, dirDownload("."))

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	return strconv.Atoi(args[0])
}

// Open opens the PDF file at path in the current tab.  Errors are reported
// to the user through the viewer.
func (s *Shell) Open(ctx context.Context, path string) error {
	err := s.v.Open(ctx, files.PathPicker{Path: path})
	if err != nil {
		// The viewer has already alerted the user.
		return nil
	}
	s.resetPage()
	n, _ := s.v.NumPages()
	fmt.Fprintf(s.out, "%s: %d pages\n", filepath.Base(path), n)
	return nil
}

// resetPage shows the first page of the document in the current tab.
func (s *Shell) resetPage() {
	s.page = 0
	if n, err := s.v.NumPages(); err == nil && n > 0 {
		s.page = 1
	}
}

func (s *Shell) gotoPage(n int) error {
	numPages, err := s.v.NumPages()
	if err != nil {
		return err
	}
	if n < 1 || n > numPages {
		return fmt.Errorf("page %d out of range 1-%d", n, numPages)
	}
	s.page = n
	return nil
}

func (s *Shell) printTabs() {
	for i, t := range s.v.Tabs() {
		mark := ' '
		if t.Active {
			mark = '*'
		}
		fmt.Fprintf(s.out, "%c %d %s", mark, i, t.FileName)
		if t.Title != "" {
			fmt.Fprintf(s.out, " %q", t.Title)
		}
		if t.FilePath != "" {
			fmt.Fprintf(s.out, " (%s)", t.FilePath)
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Shell) printTools() {
	tt := s.v.Tools()
	active := tt.ActiveIndex()
	for i, t := range tt.List() {
		mark := ' '
		if i == active {
			mark = '*'
		}
		fmt.Fprintf(s.out, "%c %d %-11s %s\n", mark, i, t.Icon, t.Mode)
	}
}

func (s *Shell) printAnnotations() error {
	records, err := s.v.Annotations(s.page)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(s.out, "no annotations")
	}
	for i, rec := range records {
		switch rec := rec.(type) {
		case *annotation.Ink:
			col, alpha, width := rec.StrokeStyle()
			fmt.Fprintf(s.out, "%d Ink: %d strokes, %s, width %g, alpha %g\n",
				i, len(rec.Strokes), col, width, alpha)
		case *annotation.FreeText:
			fmt.Fprintf(s.out, "%d FreeText: %q at %v, %s %gpt\n",
				i, rec.Text, rec.Rect, rec.Font().Family, rec.Font().Size)
		case nil:
			fmt.Fprintf(s.out, "%d (missing)\n", i)
		default:
			fmt.Fprintf(s.out, "%d %s\n", i, rec.AnnotationType())
		}
	}
	return nil
}

func (s *Shell) trace() error {
	rec, err := s.v.Trace(s.page, s.scale)
	if rec != nil {
		for _, op := range rec.Ops {
			fmt.Fprintln(s.out, op)
		}
	}
	return err
}

func (s *Shell) render(ctx context.Context, fname string) error {
	img, err := s.v.RenderPage(ctx, s.page, s.scale)
	if err != nil {
		return err
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return err
	}
	if err := (files.DiskWriter{}).WriteFile(fname, buf.Bytes()); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Fprintf(s.out, "wrote %s (%dx%d)\n", fname, b.Dx(), b.Dy())
	return nil
}

// dirDownload stores downloads in a directory.  Existing files are not
// overwritten.
type dirDownload string

func (d dirDownload) Download(data []byte, name string) error {
	path := filepath.Join(string(d), filepath.Base(name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	if err2 := f.Close(); err == nil {
		err = err2
	}
	return err
}
