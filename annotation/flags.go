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

// Flags holds the annotation flags from the /F entry of an annotation
// dictionary.
type Flags uint16

// These are the flags which affect whether an annotation is shown on
// screen.
const (
	// FlagInvisible hides annotations of non-standard types for which no
	// renderer is available.
	FlagInvisible Flags = 1 << 0

	// FlagHidden hides the annotation, regardless of its type.
	FlagHidden Flags = 1 << 1

	// FlagPrint marks annotations which are printed with the page.
	FlagPrint Flags = 1 << 2

	// FlagNoView hides the annotation on screen, but allows it to be
	// printed.
	FlagNoView Flags = 1 << 5
)

// OnScreen reports whether an annotation with these flags is shown by a
// viewer.
func (f Flags) OnScreen() bool {
	return f&(FlagHidden|FlagNoView) == 0
}
