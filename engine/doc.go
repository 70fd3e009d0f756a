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

// Package engine reads PDF documents for display.
//
// The engine exposes what the viewer needs from a PDF file: the number of
// pages, the visible area and rotation of every page, and the ink and free
// text annotations of a page, decoded into [annotation.Record] values.
// Page content is not interpreted; [Page.PaintBase] paints a blank page.
//
// Parsing is done by github.com/ledongthuc/pdf.  Malformed files are
// reported as [*MalformedFileError], also when the parser panics.
package engine
