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

// Package annotation paints PDF annotations onto a 2D drawing context.
//
// Annotations are represented as [Record] values.  Ink annotations are
// drawn as smoothed freehand strokes, free text annotations as top-anchored
// multi-line text.  All other annotation types are reported and skipped.
//
// Coordinates in records are in PDF user space.  A [Transform], normally a
// [seehuhn.de/go/pdfview/viewport.Viewport], maps them to canvas space.
package annotation
