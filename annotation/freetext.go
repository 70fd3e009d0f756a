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
	"strings"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/canvas"
)

// Defaults for free text annotations.
const (
	DefaultFontSize   = 10
	DefaultFontFamily = "sans-serif"

	// LineHeight is the distance between consecutive lines of text, as a
	// multiple of the font size.
	LineHeight = 1.4
)

// FreeText represents a free text annotation, which displays text directly
// on the page.
type FreeText struct {
	// Text is the text to display.  Lines are separated by "\r\n", "\r"
	// or "\n".
	//
	// This corresponds to the /Contents entry in the PDF annotation
	// dictionary.
	Text string

	// Rect is the annotation rectangle in default user space.
	// The text is anchored at the top-left corner.
	Rect rect.Rect

	// FontSize is the font size from the default appearance string.
	// Zero means [DefaultFontSize].
	FontSize float64

	// FontName is the font name from the default appearance string.
	// The empty string means [DefaultFontFamily].
	FontName string

	// FontColor (optional) is the text colour as r, g, b values in the
	// range [0, 1].  Any other number of components gives black.
	FontColor []float64
}

// AnnotationType returns "FreeText".
// This implements the [Record] interface.
func (f *FreeText) AnnotationType() Type {
	return TypeFreeText
}

// Font returns the font used to draw the text.
func (f *FreeText) Font() canvas.Font {
	size := f.FontSize
	if !(size > 0) || math.IsInf(size, 0) {
		size = DefaultFontSize
	}
	family := f.FontName
	if family == "" {
		family = DefaultFontFamily
	}
	return canvas.Font{Family: family, Size: size}
}

// TextColor returns the colour used to draw the text.
func (f *FreeText) TextColor() canvas.Color {
	if len(f.FontColor) != 3 {
		return canvas.Black
	}
	c, _ := rgbColor(f.FontColor)
	return c
}

// Render draws the text of the annotation.
//
// The first line is drawn with its top edge at the top-left corner of the
// annotation rectangle.  Each following line is moved down by
// [LineHeight] times the font size.
func (f *FreeText) Render(ctx canvas.Context, tr Transform) {
	x, y := tr.ToDevice(min(f.Rect.LLx, f.Rect.URx), max(f.Rect.LLy, f.Rect.URy))
	font := f.Font()

	ctx.Save()
	ctx.SetFont(font)
	ctx.SetFillColor(f.TextColor())
	ctx.SetTextBaseline(canvas.BaselineTop)

	lineHeight := font.Size * LineHeight
	for i, line := range SplitLines(f.Text) {
		ctx.FillText(line, x, y+float64(i)*lineHeight)
	}

	ctx.Restore()
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits s into lines.  Each of "\r\n", "\r" and "\n" ends a
// line.  The empty string gives a single empty line.
func SplitLines(s string) []string {
	return strings.Split(lineBreaks.Replace(s), "\n")
}
