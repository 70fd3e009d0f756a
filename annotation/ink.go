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
	"math"

	"seehuhn.de/go/pdfview/canvas"
)

// HighlightAlpha is the alpha value used for all strokes of a highlighter
// ink annotation.
const HighlightAlpha = 0.8

// Ink represents an ink annotation, a freehand "scribble" composed of one
// or more disjoint strokes.
type Ink struct {
	// Strokes lists the stroked paths.  Each stroke is a series of
	// alternating horizontal and vertical coordinates in default user
	// space.  A trailing odd coordinate is ignored.
	//
	// This corresponds to the /InkList entry in the PDF annotation
	// dictionary.
	Strokes [][]float64

	// Color (optional) is the stroke colour, given as r, g, b and an
	// optional alpha value, all in the range [0, 1].  If this is nil, black
	// is used.
	Color []float64

	// Width is the line width in user space units.  Zero means 1.
	Width float64

	// Highlight is set for highlighter strokes (intent /InkHighlight).
	// Highlighter strokes are always drawn with alpha [HighlightAlpha].
	Highlight bool

	// Opacity is the constant opacity value from the /CA entry.
	// Zero means fully opaque.
	Opacity float64
}

// AnnotationType returns "Ink".
// This implements the [Record] interface.
func (ink *Ink) AnnotationType() Type {
	return TypeInk
}

// StrokeStyle returns the colour, alpha value and line width used to draw
// the strokes of the annotation.
func (ink *Ink) StrokeStyle() (canvas.Color, float64, float64) {
	col, alpha := rgbColor(ink.Color)
	if op := ink.Opacity; op > 0 && op <= 1 {
		alpha *= op
	}
	if ink.Highlight {
		alpha = HighlightAlpha
	}

	width := ink.Width
	if !(width > 0) || math.IsInf(width, 0) {
		width = 1
	}
	return col, alpha, width
}

// Render draws all strokes of the annotation.
//
// Every stroke becomes one path.  The interior points are used as control
// points of quadratic curves which end halfway to the following point, and
// a final straight segment ends at the last point of the stroke.  A stroke
// with two points is a single line segment.  Strokes with fewer than two
// points are skipped.
//
// Each stroke is bracketed by Save and Restore, so that no drawing state
// leaks out of this function.
func (ink *Ink) Render(ctx canvas.Context, tr Transform) {
	col, alpha, width := ink.StrokeStyle()

	for _, stroke := range ink.Strokes {
		n := len(stroke) / 2
		if n < 2 {
			continue
		}

		ctx.Save()
		ctx.SetStrokeColor(col)
		ctx.SetLineWidth(width)
		ctx.SetGlobalAlpha(alpha)

		ctx.BeginPath()
		x, y := tr.ToDevice(stroke[0], stroke[1])
		ctx.MoveTo(x, y)
		for i := 2; i < 2*n-2; i += 2 {
			x1, y1 := tr.ToDevice(stroke[i], stroke[i+1])
			x2, y2 := tr.ToDevice(stroke[i+2], stroke[i+3])
			ctx.QuadraticCurveTo(x1, y1, (x1+x2)/2, (y1+y2)/2)
		}
		x, y = tr.ToDevice(stroke[2*n-2], stroke[2*n-1])
		ctx.LineTo(x, y)
		ctx.Stroke()

		ctx.Restore()
	}
}
