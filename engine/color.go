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

package engine

// toRGB converts a colour given in DeviceGray, DeviceRGB or DeviceCMYK to
// DeviceRGB.  The colour space is determined by the number of components.
// The result is nil if the number of components is not 1, 3 or 4.
func toRGB(c []float64) []float64 {
	switch len(c) {
	case 1:
		return []float64{c[0], c[0], c[0]}
	case 3:
		return []float64{c[0], c[1], c[2]}
	case 4:
		k := 1 - c[3]
		return []float64{(1 - c[0]) * k, (1 - c[1]) * k, (1 - c[2]) * k}
	default:
		return nil
	}
}
