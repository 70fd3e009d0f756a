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

package shell

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/pdfview/internal/testpdf"
	"seehuhn.de/go/pdfview/viewer"
)

func setup(t *testing.T) (*Shell, *bytes.Buffer, *[]string, string) {
	t.Helper()

	dir := t.TempDir()
	doc := &testpdf.Doc{
		MediaBox: "[0 0 100 50]",
		Pages: []testpdf.Page{
			{Annots: []string{
				"/Subtype /Ink /InkList [[10 10 20 20 30 10]] /IT /InkHighlight /C [1 1 0]",
				"/Subtype /FreeText /Rect [5 5 95 45] /Contents (Hi) /DA (/Cour 9 Tf)",
				"/Subtype /Square /Rect [0 0 1 1]",
			}},
			{},
			{},
		},
	}
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	var alerts []string
	v := viewer.New(nil,
		viewer.WithLogger(log.New(io.Discard, "", 0)),
		viewer.WithNotifier(viewer.NotifierFunc(func(msg string) {
			alerts = append(alerts, msg)
		})))
	out := &bytes.Buffer{}
	s := newShell(v, out)
	t.Cleanup(func() { s.Close() })
	return s, out, &alerts, path
}

func run(t *testing.T, s *Shell, line string) error {
	t.Helper()
	return s.handleCommand(context.Background(), line)
}

func TestOpenAndNavigate(t *testing.T) {
	s, out, alerts, path := setup(t)

	if err := run(t, s, "open "+path); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "doc.pdf: 3 pages") {
		t.Errorf("output %q", out.String())
	}
	if s.page != 1 {
		t.Errorf("page %d after open", s.page)
	}

	for _, c := range []struct {
		line string
		page int
		ok   bool
	}{
		{"next", 2, true},
		{"next", 3, true},
		{"next", 3, false},
		{"page 1", 1, true},
		{"prev", 1, false},
		{"page 0", 1, false},
		{"page x", 1, false},
	} {
		err := run(t, s, c.line)
		if (err == nil) != c.ok {
			t.Errorf("%s: err = %v", c.line, err)
		}
		if s.page != c.page {
			t.Errorf("%s: page %d, want %d", c.line, s.page, c.page)
		}
	}
	if s.prompt() != "pdfview p1> " {
		t.Errorf("prompt %q", s.prompt())
	}

	run(t, s, "open "+filepath.Join(filepath.Dir(path), "missing.pdf"))
	if len(*alerts) != 1 {
		t.Errorf("alerts %q", *alerts)
	}
}

func TestTabCommands(t *testing.T) {
	s, out, _, path := setup(t)
	run(t, s, "open "+path)
	run(t, s, "new")
	if s.page != 0 {
		t.Errorf("page %d in empty tab", s.page)
	}

	out.Reset()
	run(t, s, "tabs")
	want := "  0 doc.pdf (" + path + ")\n* 1 *new\n"
	if out.String() != want {
		t.Errorf("tabs output:\n%s\nwant:\n%s", out.String(), want)
	}

	if err := run(t, s, "tab 0"); err != nil {
		t.Fatal(err)
	}
	if s.page != 1 || s.v.Tabs()[0].FileName != "doc.pdf" || len(s.v.Tabs()) != 1 {
		t.Errorf("after switching back: page %d, tabs %+v", s.page, s.v.Tabs())
	}

	if err := run(t, s, "close 4"); err == nil {
		t.Error("closing missing tab succeeded")
	}
	if err := run(t, s, "close"); err != nil {
		t.Fatal(err)
	}
	if tt := s.v.Tabs(); len(tt) != 1 || !tt[0].Empty {
		t.Errorf("tabs after close %+v", tt)
	}
	if err := run(t, s, "next"); err == nil {
		t.Error("navigation without document succeeded")
	}
}

func TestToolCommand(t *testing.T) {
	s, out, _, _ := setup(t)

	run(t, s, "tool")
	if !strings.Contains(out.String(), "* 0 hand") {
		t.Errorf("tool list %q", out.String())
	}

	out.Reset()
	if err := run(t, s, "tool 2"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "tool: highlight\n" {
		t.Errorf("tool announcement %q", out.String())
	}
	if err := run(t, s, "tool 8"); err == nil {
		t.Error("missing tool selected")
	}

	s.Close()
	out.Reset()
	s.v.Tools().Select(1)
	if out.Len() != 0 {
		t.Errorf("closed shell still announces tools: %q", out.String())
	}
}

func TestAnnotsAndTrace(t *testing.T) {
	s, out, _, path := setup(t)
	run(t, s, "open "+path)

	out.Reset()
	if err := run(t, s, "annots"); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("annots output %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "0 Ink: 1 strokes") || !strings.Contains(lines[0], "alpha 0.8") {
		t.Errorf("ink line %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Hi"`) || !strings.Contains(lines[1], "Cour 9pt") {
		t.Errorf("free text line %q", lines[1])
	}
	if lines[2] != "2 Square" {
		t.Errorf("other line %q", lines[2])
	}

	out.Reset()
	if err := run(t, s, "trace"); err != nil {
		t.Fatal(err)
	}
	trace := out.String()
	for _, op := range []string{"SetSize(100, 50)", "Stroke", `FillText("Hi"`} {
		if !strings.Contains(trace, op) {
			t.Errorf("trace does not contain %s:\n%s", op, trace)
		}
	}

	run(t, s, "page 2")
	out.Reset()
	run(t, s, "annots")
	if out.String() != "no annotations\n" {
		t.Errorf("page 2: %q", out.String())
	}
}

func TestRenderCommand(t *testing.T) {
	s, out, _, path := setup(t)
	run(t, s, "open "+path)

	if err := run(t, s, "zoom 0"); err == nil {
		t.Error("zero zoom accepted")
	}
	if err := run(t, s, "zoom 2"); err != nil {
		t.Fatal(err)
	}

	fname := filepath.Join(t.TempDir(), "page.png")
	if err := run(t, s, "render "+fname); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(200x100)") {
		t.Errorf("output %q", out.String())
	}
	f, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("PNG size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestSaveCommand(t *testing.T) {
	s, _, alerts, path := setup(t)

	if err := run(t, s, "save"); err == nil {
		t.Error("saving empty tab succeeded")
	}
	if len(*alerts) != 1 {
		t.Errorf("alerts %q", *alerts)
	}

	run(t, s, "open "+path)
	before, _ := os.ReadFile(path)
	if err := run(t, s, "save"); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Error("document changed by saving")
	}
}

func TestDirDownload(t *testing.T) {
	dir := t.TempDir()
	d := dirDownload(dir)
	if err := d.Download([]byte("%PDF-"), "../up.pdf"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "up.pdf")); err != nil {
		t.Error(err)
	}
	if err := d.Download([]byte("%PDF-"), "up.pdf"); err == nil {
		t.Error("existing file overwritten")
	}
}

func TestMisc(t *testing.T) {
	s, out, _, _ := setup(t)
	if err := run(t, s, "quit"); err != errQuit {
		t.Errorf("quit: %v", err)
	}
	if err := run(t, s, "frobnicate"); err == nil {
		t.Error("unknown command accepted")
	}
	if err := run(t, s, "   "); err != nil {
		t.Error(err)
	}
	run(t, s, "help")
	if !strings.Contains(out.String(), "render FILE") {
		t.Errorf("help output %q", out.String())
	}
}
