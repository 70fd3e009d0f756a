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

package testpdf

import (
	"bytes"
	"regexp"
	"strconv"
	"testing"
)

func TestXRefOffsets(t *testing.T) {
	d := &Doc{
		MediaBox: "[0 0 200 300]",
		Title:    "Test (1)",
		Pages: []Page{
			{Annots: []string{"/Subtype /Text"}},
			{Entries: "/Rotate 90"},
		},
	}
	data := d.Bytes()

	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Fatal("missing header")
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Fatal("missing trailer")
	}

	entry := regexp.MustCompile(`(\d{10}) 00000 n`)
	matches := entry.FindAllSubmatch(data, -1)
	if len(matches) != 6 {
		t.Fatalf("%d xref entries, want 6", len(matches))
	}
	for i, m := range matches {
		off, _ := strconv.Atoi(string(m[1]))
		want := strconv.Itoa(i+1) + " 0 obj"
		if !bytes.HasPrefix(data[off:], []byte(want)) {
			t.Errorf("object %d: offset %d does not point to %q", i+1, off, want)
		}
	}
}

func TestString(t *testing.T) {
	cases := map[string]string{
		"abc":     "(abc)",
		"a(b)c":   `(a\(b\)c)`,
		`x\y`:     `(x\\y)`,
		"l1\nl2":  `(l1\nl2)`,
		"l1\r\nx": `(l1\r\nx)`,
	}
	for in, want := range cases {
		if got := String(in); got != want {
			t.Errorf("String(%q) = %s, want %s", in, got, want)
		}
	}
}
