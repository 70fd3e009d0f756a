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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfview/canvas"
)

// testTransform is an affine map with a flipped y axis, similar to the
// transformation of an unrotated page.
var testTransform = TransformFunc(func(x, y float64) (float64, float64) {
	return 2*x + 1, 100 - 2*y
})

// pathOps returns the path construction commands of the recorded
// drawing, in order.
func pathOps(rec *canvas.Recorder) []canvas.Op {
	var res []canvas.Op
	for _, op := range rec.Ops {
		switch op.Code {
		case canvas.OpMoveTo, canvas.OpLineTo, canvas.OpQuadraticCurveTo:
			res = append(res, op)
		}
	}
	return res
}

func TestInkEndsAtLastPoint(t *testing.T) {
	for n := 2; n <= 8; n++ {
		stroke := make([]float64, 0, 2*n)
		for i := 0; i < n; i++ {
			stroke = append(stroke, float64(3*i), float64(i*i))
		}
		ink := &Ink{Strokes: [][]float64{stroke}}

		rec := canvas.NewRecorder(200, 200)
		ink.Render(rec, testTransform)

		ops := pathOps(rec)
		last := ops[len(ops)-1]
		wantX, wantY := testTransform.ToDevice(stroke[2*n-2], stroke[2*n-1])
		want := canvas.Op{Code: canvas.OpLineTo, Args: []any{wantX, wantY}}
		if d := cmp.Diff(want, last); d != "" {
			t.Errorf("%d points: wrong final segment (-want +got):\n%s", n, d)
		}
		if got := rec.Count(canvas.OpQuadraticCurveTo); got != n-2 {
			t.Errorf("%d points: %d curves, want %d", n, got, n-2)
		}
	}
}

func TestInkTwoPoints(t *testing.T) {
	ink := &Ink{Strokes: [][]float64{{0, 0, 10, 20}}}
	rec := canvas.NewRecorder(100, 100)
	ink.Render(rec, testTransform)

	want := []canvas.OpCode{
		canvas.OpSave,
		canvas.OpSetStrokeColor,
		canvas.OpSetLineWidth,
		canvas.OpSetGlobalAlpha,
		canvas.OpBeginPath,
		canvas.OpMoveTo,
		canvas.OpLineTo,
		canvas.OpStroke,
		canvas.OpRestore,
	}
	if d := cmp.Diff(want, rec.Codes()); d != "" {
		t.Errorf("unexpected commands (-want +got):\n%s", d)
	}
}

func TestInkSmoothing(t *testing.T) {
	ink := &Ink{Strokes: [][]float64{{0, 0, 10, 0, 10, 10}}}
	rec := canvas.NewRecorder(100, 100)
	ink.Render(rec, TransformFunc(func(x, y float64) (float64, float64) { return x, y }))

	want := []canvas.Op{
		{Code: canvas.OpMoveTo, Args: []any{0.0, 0.0}},
		{Code: canvas.OpQuadraticCurveTo, Args: []any{10.0, 0.0, 10.0, 5.0}},
		{Code: canvas.OpLineTo, Args: []any{10.0, 10.0}},
	}
	if d := cmp.Diff(want, pathOps(rec)); d != "" {
		t.Errorf("unexpected path (-want +got):\n%s", d)
	}
}

func TestInkDegenerateStrokes(t *testing.T) {
	ink := &Ink{Strokes: [][]float64{nil, {}, {1, 2}, {1, 2, 3}}}
	rec := canvas.NewRecorder(100, 100)
	ink.Render(rec, testTransform)

	if len(rec.Ops) != 0 {
		t.Errorf("degenerate strokes issued commands: %v", rec.Ops)
	}
}

func TestInkMixedStrokes(t *testing.T) {
	ink := &Ink{Strokes: [][]float64{{1, 1}, {0, 0, 1, 1}, {5}, {0, 0, 1, 1, 2, 2, 3}}}
	rec := canvas.NewRecorder(100, 100)
	ink.Render(rec, testTransform)

	if got := rec.Count(canvas.OpStroke); got != 2 {
		t.Errorf("%d strokes drawn, want 2", got)
	}
	if rec.Depth() != 0 || rec.Err != nil {
		t.Errorf("unbalanced save/restore: depth %d, err %v", rec.Depth(), rec.Err)
	}
}

func TestInkStyle(t *testing.T) {
	cases := []struct {
		name      string
		ink       Ink
		wantColor canvas.Color
		wantAlpha float64
		wantWidth float64
	}{
		{"defaults", Ink{}, canvas.Black, 1, 1},
		{"rgb", Ink{Color: []float64{1, 0, 0}, Width: 3}, canvas.RGB(255, 0, 0), 1, 3},
		{"rgba", Ink{Color: []float64{0, 0, 1, 0.5}}, canvas.RGB(0, 0, 255), 0.5, 1},
		{"opacity", Ink{Color: []float64{0, 0, 0, 0.5}, Opacity: 0.5}, canvas.Black, 0.25, 1},
		{"highlight", Ink{Color: []float64{1, 1, 0, 0.3}, Opacity: 0.5, Highlight: true}, canvas.RGB(255, 255, 0), 0.8, 1},
		{"highlight opaque", Ink{Highlight: true}, canvas.Black, 0.8, 1},
		{"negative width", Ink{Width: -2}, canvas.Black, 1, 1},
		{"bad color", Ink{Color: []float64{1, 0}}, canvas.Black, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.ink.Strokes = [][]float64{{0, 0, 1, 1}}
			rec := canvas.NewRecorder(10, 10)
			c.ink.Render(rec, testTransform)

			if got := rec.Filter(canvas.OpSetStrokeColor)[0].Args[0]; got != c.wantColor {
				t.Errorf("color = %v, want %v", got, c.wantColor)
			}
			if got := rec.Filter(canvas.OpSetGlobalAlpha)[0].Args[0]; got != c.wantAlpha {
				t.Errorf("alpha = %v, want %v", got, c.wantAlpha)
			}
			if got := rec.Filter(canvas.OpSetLineWidth)[0].Args[0]; got != c.wantWidth {
				t.Errorf("width = %v, want %v", got, c.wantWidth)
			}
		})
	}
}

func TestHighlightAlwaysPointEight(t *testing.T) {
	for _, alpha := range []float64{0, 0.1, 0.5, 0.8, 1} {
		for _, opacity := range []float64{0, 0.2, 1} {
			ink := &Ink{
				Strokes:   [][]float64{{0, 0, 1, 1}, {2, 2, 3, 3, 4, 4}},
				Color:     []float64{0.2, 0.4, 0.6, alpha},
				Opacity:   opacity,
				Highlight: true,
			}
			rec := canvas.NewRecorder(10, 10)
			ink.Render(rec, testTransform)
			for _, op := range rec.Filter(canvas.OpSetGlobalAlpha) {
				if op.Args[0] != 0.8 {
					t.Errorf("alpha %g, opacity %g: global alpha %v", alpha, opacity, op.Args[0])
				}
			}
		}
	}
}
