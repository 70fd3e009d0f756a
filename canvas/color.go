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

package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Color is an sRGB colour with 8 bits per channel and a separate alpha
// value in the range [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Frequently used colours.
var (
	Black = Color{A: 1}
	White = Color{R: 255, G: 255, B: 255, A: 1}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromUnit converts normalised colour components in the range [0, 1] to an
// opaque colour.  Each component is scaled by 255 and rounded to the
// nearest integer; values outside the valid range are clamped.
func FromUnit(r, g, b float64) Color {
	return Color{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 1}
}

func unitToByte(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(math.Round(clamp(x, 0, 1) * 255))
}

// WithAlpha returns a copy of c with the given alpha value.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = clamp(alpha, 0, 1)
	return c
}

// String returns the colour in CSS notation, for example "rgb(255,0,0)" or
// "rgba(0,0,255,0.5)".
func (c Color) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// nrgba converts the colour to a Go colour, with the alpha value
// multiplied by globalAlpha.
func (c Color) nrgba(globalAlpha float64) color.NRGBA {
	a := clamp(c.A, 0, 1) * clamp(globalAlpha, 0, 1)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

func clamp[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
