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

// Other represents an annotation of a type which cannot be painted.
type Other struct {
	// Subtype is the value of the /Subtype entry in the annotation
	// dictionary.
	Subtype string
}

// AnnotationType returns the subtype of the annotation, or "Unknown" if the
// subtype is not set.
// This implements the [Record] interface.
func (o *Other) AnnotationType() Type {
	if o.Subtype == "" {
		return "Unknown"
	}
	return Type(o.Subtype)
}
