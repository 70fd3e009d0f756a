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

// Package testpdf generates small PDF files for use in tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Doc describes a PDF document.
type Doc struct {
	// MediaBox is set on the root of the page tree and inherited by all
	// pages, e.g. "[0 0 612 792]".  If this is empty, no media box is
	// written.
	MediaBox string

	// Title, if set, is written to the document information dictionary.
	Title string

	// FormDA, if set, is the default appearance string of the interactive
	// form.
	FormDA string

	Pages []Page
}

// Page describes one page of a document.
type Page struct {
	// Entries holds additional entries of the page dictionary, written as
	// PDF source, e.g. "/Rotate 90 /CropBox [0 0 100 100]".
	Entries string

	// Annots lists the annotation dictionaries of the page, written as PDF
	// source without the enclosing "<<" and ">>", e.g.
	// "/Subtype /Ink /InkList [[0 0 10 10]]".
	Annots []string
}

// String returns a PDF literal string containing s.
func String(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, "\r", `\r`, "\n", `\n`)
	return "(" + r.Replace(s) + ")"
}

// Bytes returns the PDF file.
func (d *Doc) Bytes() []byte {
	w := &writer{}

	catalog := w.reserve()
	pages := w.reserve()

	var kids []string
	for _, p := range d.Pages {
		var annots []string
		for _, a := range p.Annots {
			ref := w.add("<< /Type /Annot " + a + " >>")
			annots = append(annots, ref)
		}

		page := w.reserve()
		dict := "<< /Type /Page /Parent " + ref(pages)
		if len(annots) > 0 {
			dict += " /Annots [" + strings.Join(annots, " ") + "]"
		}
		if p.Entries != "" {
			dict += " " + p.Entries
		}
		dict += " >>"
		w.set(page, dict)
		kids = append(kids, ref(page))
	}

	tree := fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d",
		strings.Join(kids, " "), len(kids))
	if d.MediaBox != "" {
		tree += " /MediaBox " + d.MediaBox
	}
	tree += " >>"
	w.set(pages, tree)

	root := "<< /Type /Catalog /Pages " + ref(pages)
	if d.FormDA != "" {
		root += " /AcroForm << /Fields [] /DA " + String(d.FormDA) + " >>"
	}
	root += " >>"
	w.set(catalog, root)

	info := ""
	if d.Title != "" {
		info = w.add("<< /Title " + String(d.Title) + " >>")
	}

	return w.finish(catalog, info)
}

func ref(num int) string {
	return fmt.Sprintf("%d 0 R", num)
}

type writer struct {
	objs []string
}

// reserve allocates an object number.  The object must later be filled
// in using set.
func (w *writer) reserve() int {
	w.objs = append(w.objs, "")
	return len(w.objs)
}

func (w *writer) set(num int, obj string) {
	w.objs[num-1] = obj
}

// add appends an object and returns a reference to it.
func (w *writer) add(obj string) string {
	num := w.reserve()
	w.set(num, obj)
	return ref(num)
}

func (w *writer) finish(catalog int, info string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(w.objs))
	for i, obj := range w.objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(buf, "xref\n0 %d\n", len(w.objs)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(buf, "%010d 00000 n\r\n", off)
	}

	trailer := fmt.Sprintf("<< /Size %d /Root %s", len(w.objs)+1, ref(catalog))
	if info != "" {
		trailer += " /Info " + info
	}
	trailer += " >>"
	fmt.Fprintf(buf, "trailer\n%s\nstartxref\n%d\n%%%%EOF\n", trailer, xref)
	return buf.Bytes()
}
