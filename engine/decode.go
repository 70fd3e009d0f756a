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

import (
	"math"

	"github.com/ledongthuc/pdf"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/annotation"
)

func (p *Page) decodeAnnotation(a pdf.Value) annotation.Record {
	subtype := a.Key("Subtype").Name()
	switch annotation.Type(subtype) {
	case annotation.TypeInk:
		return decodeInk(a)
	case annotation.TypeFreeText:
		return p.decodeFreeText(a)
	default:
		return &annotation.Other{Subtype: subtype}
	}
}

func decodeInk(a pdf.Value) *annotation.Ink {
	ink := &annotation.Ink{}

	inkList := a.Key("InkList")
	if inkList.Kind() == pdf.Array {
		n := inkList.Len()
		ink.Strokes = make([][]float64, 0, n)
		for i := 0; i < n; i++ {
			ink.Strokes = append(ink.Strokes, getNumbers(inkList.Index(i)))
		}
	}

	if c := a.Key("C"); c.Kind() == pdf.Array {
		if c.Len() == 0 {
			// An empty colour array means the annotation is transparent.
			ink.Color = []float64{0, 0, 0, 0}
		} else {
			ink.Color = toRGB(getNumbers(c))
		}
	}

	if w, ok := getNumber(a.Key("BS").Key("W")); ok {
		ink.Width = w
	} else if border := a.Key("Border"); border.Kind() == pdf.Array && border.Len() >= 3 {
		if w, ok := getNumber(border.Index(2)); ok {
			ink.Width = w
		}
	}

	if ca, ok := getNumber(a.Key("CA")); ok {
		ink.Opacity = ca
	}
	ink.Highlight = a.Key("IT").Name() == "InkHighlight"

	return ink
}

func (p *Page) decodeFreeText(a pdf.Value) *annotation.FreeText {
	ft := &annotation.FreeText{}

	if contents := a.Key("Contents"); contents.Kind() == pdf.String {
		ft.Text = contents.Text()
	}
	if r, ok := getRect(a.Key("Rect")); ok {
		ft.Rect = r
	}

	var da string
	if v := a.Key("DA"); v.Kind() == pdf.String {
		da = v.RawString()
	} else {
		da = p.doc.defaultAppearance()
	}
	app := ParseDA(da)
	ft.FontName = app.FontName
	ft.FontSize = app.FontSize
	ft.FontColor = app.Color

	return ft
}

// getNumber returns the value of a numeric PDF object.
func getNumber(v pdf.Value) (float64, bool) {
	switch v.Kind() {
	case pdf.Integer, pdf.Real:
		return v.Float64(), true
	default:
		return 0, false
	}
}

// getNumbers returns the numeric elements of a PDF array.
// Elements which are not numbers are skipped.
func getNumbers(v pdf.Value) []float64 {
	if v.Kind() != pdf.Array {
		return nil
	}
	n := v.Len()
	res := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if x, ok := getNumber(v.Index(i)); ok {
			res = append(res, x)
		}
	}
	return res
}

// getRect decodes a PDF rectangle.  The corners are normalised so that
// LLx <= URx and LLy <= URy.  Rectangles of zero width or height are
// allowed.
func getRect(v pdf.Value) (rect.Rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return rect.Rect{}, false
	}
	x := getNumbers(v)
	if len(x) != 4 {
		return rect.Rect{}, false
	}
	r := rect.Rect{
		LLx: min(x[0], x[2]),
		LLy: min(x[1], x[3]),
		URx: max(x[0], x[2]),
		URy: max(x[1], x[3]),
	}
	return r, true
}

// getBox decodes a page boundary box.  Unlike [getRect], empty rectangles
// are rejected.
func getBox(v pdf.Value) (rect.Rect, bool) {
	r, ok := getRect(v)
	if !ok || r.LLx == r.URx || r.LLy == r.URy {
		return rect.Rect{}, false
	}
	return r, true
}

// getFlags decodes the /F entry of an annotation dictionary.  Values which
// are not non-negative 32-bit integers are rejected.  Only the lower
// sixteen bits carry defined flags.
func getFlags(v pdf.Value) (annotation.Flags, bool) {
	f, ok := getNumber(v)
	if !ok || !(f >= 0 && f <= math.MaxUint32) || f != math.Trunc(f) {
		return 0, false
	}
	return annotation.Flags(uint32(f) & 0xFFFF), true
}
