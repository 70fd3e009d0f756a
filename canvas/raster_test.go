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

package canvas

import (
	"image"
	"image/color"
	"testing"
)

func alphaAt(r *Raster, x, y int) uint8 {
	return r.Image.RGBAAt(x, y).A
}

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetFillColor(RGB(255, 0, 0))
	r.FillRect(2, 2, 4, 4)

	if got := r.Image.RGBAAt(3, 3); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("inside: %v", got)
	}
	if a := alphaAt(r, 0, 0); a != 0 {
		t.Errorf("outside: alpha %d", a)
	}
	if a := alphaAt(r, 6, 6); a != 0 {
		t.Errorf("past the edge: alpha %d", a)
	}
}

func TestRasterScale(t *testing.T) {
	r := NewRaster(10, 10)
	r.Scale(2, 2)
	r.FillRect(1, 1, 2, 2)

	if a := alphaAt(r, 5, 5); a != 255 {
		t.Errorf("scaled rectangle missing: alpha %d", a)
	}
	if a := alphaAt(r, 7, 7); a != 0 {
		t.Errorf("scaled rectangle too large: alpha %d", a)
	}
	if a := alphaAt(r, 1, 1); a != 0 {
		t.Errorf("scaled rectangle too far left: alpha %d", a)
	}
}

func TestRasterStroke(t *testing.T) {
	r := NewRaster(10, 10)
	r.SetLineWidth(2)
	r.BeginPath()
	r.MoveTo(0, 5)
	r.LineTo(10, 5)
	r.Stroke()

	for _, y := range []int{4, 5} {
		if a := alphaAt(r, 5, y); a < 250 {
			t.Errorf("row %d: alpha %d", y, a)
		}
	}
	for _, y := range []int{2, 7} {
		if a := alphaAt(r, 5, y); a != 0 {
			t.Errorf("row %d: alpha %d", y, a)
		}
	}
}

func TestRasterStrokeCorner(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetLineWidth(4)
	r.BeginPath()
	r.MoveTo(2, 10)
	r.LineTo(10, 10)
	r.LineTo(10, 2)
	r.Stroke()

	// The segments overlap at the corner; with consistent orientation the
	// overlap stays covered.
	if a := alphaAt(r, 10, 10); a < 250 {
		t.Errorf("corner: alpha %d", a)
	}
	if a := alphaAt(r, 16, 16); a != 0 {
		t.Errorf("far away: alpha %d", a)
	}
}

func TestRasterGlobalAlpha(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetGlobalAlpha(0.5)
	r.FillRect(0, 0, 4, 4)

	a := alphaAt(r, 1, 1)
	if a < 126 || a > 129 {
		t.Errorf("alpha = %d, want about 128", a)
	}

	r.SetGlobalAlpha(2) // ignored
	if got := r.State().GlobalAlpha; got != 0.5 {
		t.Errorf("global alpha = %g", got)
	}
}

func TestRasterSaveRestore(t *testing.T) {
	r := NewRaster(4, 4)
	r.SetLineWidth(3)
	r.Save()
	r.SetLineWidth(7)
	r.Scale(2, 2)
	r.Restore()

	s := r.State()
	if s.LineWidth != 3 {
		t.Errorf("line width = %g", s.LineWidth)
	}
	if s.CTM != initialState().CTM {
		t.Errorf("transformation not restored: %v", s.CTM)
	}

	r.Restore()
	if r.Err != ErrRestoreWithoutSave {
		t.Errorf("err = %v", r.Err)
	}
	r.SetSize(4, 4)
	if r.Err != nil {
		t.Errorf("SetSize did not clear the error")
	}
}

func TestRasterDrawImage(t *testing.T) {
	src := image.NewUniform(color.RGBA{B: 255, A: 255})
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, src.C)
		}
	}

	r := NewRaster(8, 8)
	r.SetImageSmoothing(false, SmoothingLow)
	r.DrawImage(img, 0, 0, 4, 4)

	if got := r.Image.RGBAAt(3, 3); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("inside: %v", got)
	}
	if a := alphaAt(r, 5, 5); a != 0 {
		t.Errorf("outside: alpha %d", a)
	}
}

func TestRasterFillText(t *testing.T) {
	inkRows := func(r *Raster) (lo, hi int) {
		lo, hi = -1, -1
		b := r.Image.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if alphaAt(r, x, y) != 0 {
					if lo < 0 {
						lo = y
					}
					hi = y
					break
				}
			}
		}
		return lo, hi
	}

	r := NewRaster(60, 60)
	r.SetFont(Font{Family: "sans-serif", Size: 20})
	r.SetTextBaseline(BaselineTop)
	r.FillText("M", 5, 10)
	lo, hi := inkRows(r)
	if lo < 10 || hi > 35 {
		t.Errorf("top baseline: ink in rows %d to %d", lo, hi)
	}

	// With an alphabetic baseline at y=0, a glyph without descender is
	// entirely outside the image.
	r = NewRaster(60, 60)
	r.SetFont(Font{Family: "sans-serif", Size: 20})
	r.FillText("M", 5, 0)
	if lo, _ := inkRows(r); lo >= 0 {
		t.Errorf("alphabetic baseline: unexpected ink in row %d", lo)
	}
}

func TestRasterReplay(t *testing.T) {
	rec := NewRecorder(20, 20)
	rec.SetFillColor(RGB(0, 128, 0))
	rec.FillRect(0, 0, 10, 10)

	r := NewRaster(20, 20)
	rec.ApplyTo(r)
	if got := r.Image.RGBAAt(5, 5); got != (color.RGBA{G: 128, A: 255}) {
		t.Errorf("replayed: %v", got)
	}
}
