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
	"seehuhn.de/go/pdfview/canvas"
	"seehuhn.de/go/pdfview/viewport"
)

// LetterBox is the page size used when a page has no valid media box.
var LetterBox = rect.Rect{LLx: 0, LLy: 0, URx: 612, URy: 792}

// maxTreeDepth limits the walk up the page tree when looking for
// inherited attributes.
const maxTreeDepth = 64

// Page is one page of a [Document].
type Page struct {
	// Number is the page number, starting from 1.
	Number int

	doc *Document
	v   pdf.Value
}

// inherited returns the value of an inheritable page attribute.
// The result is a null value if the attribute is not set.
func (p *Page) inherited(key string) pdf.Value {
	v := p.v
	for i := 0; i < maxTreeDepth && v.Kind() == pdf.Dict; i++ {
		if x := v.Key(key); !x.IsNull() {
			return x
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// MediaBox returns the media box of the page.  If the page has no valid
// media box, [LetterBox] is returned.
func (p *Page) MediaBox() rect.Rect {
	if box, ok := getBox(p.inherited("MediaBox")); ok {
		return box
	}
	return LetterBox
}

// Box returns the visible region of the page in user space.
// This is the crop box, clipped to the media box.  If no valid crop box is
// set, the media box is used.
func (p *Page) Box() rect.Rect {
	media := p.MediaBox()
	crop, ok := getBox(p.inherited("CropBox"))
	if !ok {
		return media
	}
	box := rect.Rect{
		LLx: max(crop.LLx, media.LLx),
		LLy: max(crop.LLy, media.LLy),
		URx: min(crop.URx, media.URx),
		URy: min(crop.URy, media.URy),
	}
	if box.LLx >= box.URx || box.LLy >= box.URy {
		return media
	}
	return box
}

// Rotate returns the clockwise rotation of the page in degrees.
// The result is one of 0, 90, 180 or 270.
func (p *Page) Rotate() int {
	v := p.inherited("Rotate")
	if v.Kind() != pdf.Integer && v.Kind() != pdf.Real {
		return 0
	}
	r := int(math.Round(v.Float64()/90)) * 90
	return ((r % 360) + 360) % 360
}

// Viewport returns the viewport for displaying the page at the given
// scale.
func (p *Page) Viewport(scale float64) (*viewport.Viewport, error) {
	return viewport.New(p.Box(), p.Rotate(), scale)
}

// PaintBase paints the page background.
// The page content itself is not rendered.
func (p *Page) PaintBase(ctx canvas.Context, vp *viewport.Viewport) error {
	ctx.Save()
	ctx.SetFillColor(canvas.White)
	ctx.FillRect(0, 0, vp.Width, vp.Height)
	ctx.Restore()
	return nil
}

// Annotations returns the annotations of the page, in the order in which
// they are listed in the page dictionary.  Annotation types other than ink
// and free text are returned as [*annotation.Other].  Entries of the
// /Annots array which are not dictionaries are skipped, and so are
// annotations whose flags hide them on screen.
func (p *Page) Annotations() (res []annotation.Record, err error) {
	defer catchMalformed(&err)

	annots := p.v.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil, nil
	}
	n := annots.Len()
	res = make([]annotation.Record, 0, n)
	for i := 0; i < n; i++ {
		a := annots.Index(i)
		if a.Kind() != pdf.Dict {
			continue
		}
		if f, ok := getFlags(a.Key("F")); ok && !f.OnScreen() {
			continue
		}
		res = append(res, p.decodeAnnotation(a))
	}
	return res, nil
}
