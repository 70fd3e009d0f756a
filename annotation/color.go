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

// rgbColor converts an (r, g, b) or (r, g, b, a) array of values in the
// range [0, 1] into a canvas colour.  The second return value is the alpha
// value, which defaults to 1.  Arrays of any other length give black.
func rgbColor(c []float64) (canvas.Color, float64) {
	switch len(c) {
	case 3:
		return canvas.FromUnit(c[0], c[1], c[2]), 1
	case 4:
		alpha := c[3]
		if math.IsNaN(alpha) {
			alpha = 1
		}
		return canvas.FromUnit(c[0], c[1], c[2]), min(max(alpha, 0), 1)
	default:
		return canvas.Black, 1
	}
}
