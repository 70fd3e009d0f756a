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

// Package viewport maps PDF user space to canvas pixel space.
//
// A [Viewport] is valid for exactly one page at one zoom scale.  User space
// has its origin in the bottom-left corner of the page with the y axis
// pointing up; canvas space has its origin in the top-left corner with the
// y axis pointing down.  Rotated pages are turned clockwise, following the
// /Rotate entry of the page dictionary.
package viewport

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Viewport describes how one page is placed on a canvas.
// Viewports are immutable; a new viewport is needed whenever the scale
// changes.
type Viewport struct {
	// Box is the visible page area in user space.
	Box rect.Rect

	// Rotate is the clockwise page rotation in degrees: 0, 90, 180 or 270.
	Rotate int

	// Scale is the zoom factor.  A scale of 1 maps one PDF unit to one
	// canvas pixel.
	Scale float64

	// Width and Height give the size of the page in canvas pixels.
	Width, Height float64

	m    matrix.Matrix
	mInv matrix.Matrix
}

// New returns the viewport for a page with visible area box, shown with
// the given rotation at the given scale.
//
// The rotation is normalised to one of 0, 90, 180 or 270 degrees.
func New(box rect.Rect, rotate int, scale float64) (*Viewport, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("viewport: invalid scale %g", scale)
	}
	if box.Dx() == 0 || box.Dy() == 0 {
		return nil, fmt.Errorf("viewport: empty page box %v", box)
	}
	rotate = normalizeRotation(rotate)

	centerX := (box.LLx + box.URx) / 2
	centerY := (box.LLy + box.URy) / 2

	var a, b, c, d float64
	switch rotate {
	case 0:
		a, b, c, d = 1, 0, 0, -1
	case 90:
		a, b, c, d = 0, 1, 1, 0
	case 180:
		a, b, c, d = -1, 0, 0, 1
	case 270:
		a, b, c, d = 0, -1, -1, 0
	}

	var offsetX, offsetY, width, height float64
	if a == 0 {
		offsetX = math.Abs(centerY-box.LLy) * scale
		offsetY = math.Abs(centerX-box.LLx) * scale
		width = math.Abs(box.URy-box.LLy) * scale
		height = math.Abs(box.URx-box.LLx) * scale
	} else {
		offsetX = math.Abs(centerX-box.LLx) * scale
		offsetY = math.Abs(centerY-box.LLy) * scale
		width = math.Abs(box.URx-box.LLx) * scale
		height = math.Abs(box.URy-box.LLy) * scale
	}

	m := matrix.Matrix{
		a * scale,
		b * scale,
		c * scale,
		d * scale,
		offsetX - a*scale*centerX - c*scale*centerY,
		offsetY - b*scale*centerX - d*scale*centerY,
	}

	vp := &Viewport{
		Box:    box,
		Rotate: rotate,
		Scale:  scale,
		Width:  width,
		Height: height,
		m:      m,
		mInv:   m.Inv(),
	}
	return vp, nil
}

// normalizeRotation reduces r to one of 0, 90, 180 or 270.
func normalizeRotation(r int) int {
	r = ((r % 360) + 360) % 360
	r = int(math.Round(float64(r)/90)) * 90
	return r % 360
}

// ToDevice maps a point from user space to canvas space.
func (vp *Viewport) ToDevice(x, y float64) (float64, float64) {
	return vp.m.Apply(x, y)
}

// ToUser maps a point from canvas space back to user space.
func (vp *Viewport) ToUser(x, y float64) (float64, float64) {
	return vp.mInv.Apply(x, y)
}

// Matrix returns the transformation from user space to canvas space.
func (vp *Viewport) Matrix() matrix.Matrix {
	return vp.m
}

// PixelSize returns the canvas size rounded down to whole pixels.
func (vp *Viewport) PixelSize() (int, int) {
	return int(math.Floor(vp.Width)), int(math.Floor(vp.Height))
}

func (vp *Viewport) String() string {
	return fmt.Sprintf("viewport %gx%g (scale %g, rotate %d)",
		vp.Width, vp.Height, vp.Scale, vp.Rotate)
}
