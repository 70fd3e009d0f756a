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

package annotation

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/canvas"
)

func TestRenderMixed(t *testing.T) {
	records := []Record{
		&Ink{Strokes: [][]float64{{0, 0, 10, 10}}},
		&Other{Subtype: "Square"},
		&FreeText{Text: "note", Rect: rect.Rect{URx: 50, URy: 50}},
	}

	buf := &bytes.Buffer{}
	logger := log.New(buf, "", 0)
	rec := canvas.NewRecorder(100, 100)
	Render(rec, records, testTransform, logger)

	var painted []canvas.OpCode
	for _, code := range rec.Codes() {
		if code == canvas.OpStroke || code == canvas.OpFillText {
			painted = append(painted, code)
		}
	}
	want := []canvas.OpCode{canvas.OpStroke, canvas.OpFillText}
	if d := cmp.Diff(want, painted); d != "" {
		t.Errorf("unexpected paint order (-want +got):\n%s", d)
	}

	msg := buf.String()
	if !strings.Contains(msg, `unsupported annotation type "Square"`) {
		t.Errorf("missing diagnostic, log is %q", msg)
	}
	if strings.Count(msg, "\n") != 1 {
		t.Errorf("expected exactly one log line, got %q", msg)
	}
}

func TestRenderKeepsOrder(t *testing.T) {
	var records []Record
	for i := 0; i < 5; i++ {
		records = append(records, &FreeText{Text: string(rune('a' + i))})
	}
	rec := canvas.NewRecorder(100, 100)
	Render(rec, records, testTransform, log.New(&bytes.Buffer{}, "", 0))

	var got []string
	for _, op := range rec.Filter(canvas.OpFillText) {
		got = append(got, op.Args[0].(string))
	}
	if d := cmp.Diff([]string{"a", "b", "c", "d", "e"}, got); d != "" {
		t.Error(d)
	}
}

func TestRenderRecoversFromPanic(t *testing.T) {
	records := []Record{
		(*Ink)(nil),
		nil,
		&Ink{Strokes: [][]float64{{0, 0, 1, 1}}},
	}

	buf := &bytes.Buffer{}
	rec := canvas.NewRecorder(100, 100)
	Render(rec, records, testTransform, log.New(buf, "", 0))

	if got := rec.Count(canvas.OpStroke); got != 1 {
		t.Errorf("%d strokes, want 1", got)
	}
	msg := buf.String()
	if !strings.Contains(msg, "annotation 0: painting failed") {
		t.Errorf("panic not logged: %q", msg)
	}
	if !strings.Contains(msg, "annotation 1: missing record") {
		t.Errorf("nil record not logged: %q", msg)
	}
}

func TestOtherType(t *testing.T) {
	if got := (&Other{Subtype: "Link"}).AnnotationType(); got != "Link" {
		t.Errorf("got %q", got)
	}
	if got := (&Other{}).AnnotationType(); got != "Unknown" {
		t.Errorf("got %q", got)
	}
}
