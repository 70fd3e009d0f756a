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
	"log"

	"seehuhn.de/go/pdfview/canvas"
)

// Render paints the annotations of one page, in the given order.
//
// Ink and free text annotations are drawn using tr to map user space to
// canvas space.  For every other annotation type a diagnostic is written
// to logger and the record is skipped.  A panic while painting one record
// is recovered and logged, and painting continues with the next record.
// If logger is nil, [log.Default] is used.
//
// Render does not save or restore the drawing state itself; each
// annotation type brackets its own drawing.
func Render(ctx canvas.Context, records []Record, tr Transform, logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	for i, rec := range records {
		renderRecord(ctx, i, rec, tr, logger)
	}
}

func renderRecord(ctx canvas.Context, idx int, rec Record, tr Transform, logger *log.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("annotation %d: painting failed: %v", idx, r)
		}
	}()

	switch rec := rec.(type) {
	case *Ink:
		rec.Render(ctx, tr)
	case *FreeText:
		rec.Render(ctx, tr)
	case nil:
		logger.Printf("annotation %d: missing record", idx)
	default:
		logger.Printf("unsupported annotation type %q", rec.AnnotationType())
	}
}
