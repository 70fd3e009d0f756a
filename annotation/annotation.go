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

// Type is the PDF annotation subtype, e.g. "Ink" or "FreeText".
type Type string

// These are the annotation types which can be painted.
const (
	TypeInk      Type = "Ink"
	TypeFreeText Type = "FreeText"
)

// Record is an annotation read from a PDF page.
//
// The implementations in this package are [*Ink], [*FreeText] and
// [*Other].
type Record interface {
	// AnnotationType returns the annotation subtype.
	AnnotationType() Type
}

var (
	_ Record = (*Ink)(nil)
	_ Record = (*FreeText)(nil)
	_ Record = (*Other)(nil)
)

// Transform maps points from PDF user space to canvas space.
type Transform interface {
	ToDevice(x, y float64) (float64, float64)
}

// TransformFunc adapts an ordinary function to the [Transform] interface.
type TransformFunc func(x, y float64) (float64, float64)

// ToDevice calls f(x, y).
func (f TransformFunc) ToDevice(x, y float64) (float64, float64) {
	return f(x, y)
}
