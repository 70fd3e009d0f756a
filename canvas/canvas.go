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

// Package canvas defines the 2D drawing context used to paint pages and
// annotations, together with two implementations.
//
// The [Context] interface follows the HTML canvas 2D API: drawing state is
// saved and restored on a stack, path coordinates are transformed by the
// current transformation at the time they are added, and colours are
// composited with a global alpha value.
//
// [Raster] paints into an [image.RGBA].  [Recorder] keeps a list of all
// calls, which can be inspected or replayed onto another context.
package canvas

import (
	"fmt"
	"image"
)

// Context is a 2D drawing context.
//
// Implementations are not safe for concurrent use.  All painting on one
// canvas must happen from a single goroutine.
type Context interface {
	// Save pushes a copy of the current drawing state onto the state stack.
	// The drawing state consists of the transformation, the colours, the
	// line width, the global alpha, the font, the text baseline and the
	// image smoothing settings.  The current path is not part of the state.
	Save()

	// Restore pops the most recently saved drawing state.
	Restore()

	// Scale adds a scaling transformation to the current transformation.
	Scale(sx, sy float64)

	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetLineWidth(width float64)
	SetGlobalAlpha(alpha float64)
	SetFont(f Font)
	SetTextBaseline(b Baseline)
	SetImageSmoothing(enabled bool, quality SmoothingQuality)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)

	// Stroke strokes the current path using the stroke colour, the line
	// width and the global alpha.
	Stroke()

	FillRect(x, y, width, height float64)

	// FillText paints a single line of text at (x, y), using the current
	// font, fill colour and text baseline.
	FillText(text string, x, y float64)

	// MeasureText returns the advance width of text in the current font.
	MeasureText(text string) float64

	// DrawImage scales img to the rectangle with top-left corner (x, y)
	// and the given size.
	DrawImage(img image.Image, x, y, width, height float64)
}

// Surface is a drawing target whose pixel buffer can be resized.
type Surface interface {
	// SetSize resizes the pixel buffer.  This clears the surface and
	// resets the drawing state, like assigning to the width and height of
	// an HTML canvas.
	SetSize(width, height int)

	// Size returns the current size of the pixel buffer.
	Size() (width, height int)

	// Context returns the drawing context of the surface.
	Context() Context
}

// Baseline selects the vertical reference point used by [Context.FillText].
type Baseline int

// These are the supported text baselines.
// The zero value is the alphabetic baseline, as for HTML canvas.
const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

func (b Baseline) String() string {
	switch b {
	case BaselineAlphabetic:
		return "alphabetic"
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Baseline(%d)", int(b))
	}
}

// SmoothingQuality selects the filter used when [Context.DrawImage] scales
// an image.
type SmoothingQuality int

// These are the supported smoothing qualities.
const (
	SmoothingLow SmoothingQuality = iota
	SmoothingMedium
	SmoothingHigh
)

func (q SmoothingQuality) String() string {
	switch q {
	case SmoothingLow:
		return "low"
	case SmoothingMedium:
		return "medium"
	case SmoothingHigh:
		return "high"
	default:
		return fmt.Sprintf("SmoothingQuality(%d)", int(q))
	}
}

// Font describes the font used for text.
type Font struct {
	// Family is a font family name.  This can be a generic family like
	// "sans-serif" or "monospace", or a PDF font name like "Helv".
	Family string

	// Size is the font size in canvas units.
	Size float64
}

// String returns the font in CSS shorthand notation, e.g. "10px sans-serif".
func (f Font) String() string {
	return fmt.Sprintf("%gpx %s", f.Size, f.Family)
}

// DefaultFont is the initial font of a new drawing context.
var DefaultFont = Font{Family: "sans-serif", Size: 10}
