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

// Package render paints PDF pages with their annotations.
//
// Painting a page is strictly sequential: the surface is set up for the
// page, the page background is painted, and finally the annotations of the
// page are drawn in the order in which they are listed.
package render

import (
	"errors"
	"fmt"
	"image"
	"log"
	"math"

	"seehuhn.de/go/pdfview/annotation"
	"seehuhn.de/go/pdfview/canvas"
	"seehuhn.de/go/pdfview/viewport"
)

// Page is a page which can be painted.
// [*engine.Page] implements this interface.
type Page interface {
	Viewport(scale float64) (*viewport.Viewport, error)
	Annotations() ([]annotation.Record, error)
}

// BasePainter is implemented by pages which can paint their own
// background.
type BasePainter interface {
	PaintBase(ctx canvas.Context, vp *viewport.Viewport) error
}

// MaxPixels is the largest number of pixels [Setup] allocates for a page.
const MaxPixels = 1 << 26

// ErrTooLarge is returned by [Setup] if the page would need more than
// [MaxPixels] pixels at the requested scale.
var ErrTooLarge = errors.New("render: page too large")

// Setup prepares a surface for painting the page p.
//
// The pixel buffer is resized to the viewport size at the given scale,
// rounded down to whole pixels.  High-quality image smoothing is enabled,
// and a uniform scaling by the device pixel ratio dpr is applied.  Values
// of dpr which are not positive and finite are replaced by 1.
//
// If the page needs more than [MaxPixels] pixels, [ErrTooLarge] is returned
// and the surface is left untouched.
func Setup(s canvas.Surface, p Page, scale, dpr float64) (*viewport.Viewport, canvas.Context, error) {
	vp, err := p.Viewport(scale)
	if err != nil {
		return nil, nil, err
	}

	if !(vp.Width*vp.Height <= MaxPixels) {
		return nil, nil, fmt.Errorf("%w: %gx%g pixels at scale %g",
			ErrTooLarge, vp.Width, vp.Height, scale)
	}

	s.SetSize(vp.PixelSize())
	ctx := s.Context()
	ctx.SetImageSmoothing(true, canvas.SmoothingHigh)

	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	ctx.Scale(dpr, dpr)

	return vp, ctx, nil
}

// Options control how a page is painted.
type Options struct {
	// Scale is the zoom factor.  A scale of 1 maps one PDF unit to one
	// pixel.
	Scale float64

	// DPR is the device pixel ratio.  Zero means 1.
	DPR float64

	// Base, if set, is a pre-rendered bitmap of the page.  It is stretched
	// to cover the whole page.  If Base is nil and the page implements
	// [BasePainter], the page paints its own background.
	Base image.Image

	// Logger receives diagnostics about annotations which cannot be
	// painted.  If this is nil, [log.Default] is used.
	Logger *log.Logger
}

// Paint paints the page p with its annotations onto the surface s.
//
// Errors are returned if the viewport cannot be set up, if the background
// cannot be painted, or if the annotations cannot be read.  Problems with
// individual annotations are logged and never cause an error.
func Paint(s canvas.Surface, p Page, opt *Options) (*viewport.Viewport, error) {
	if opt == nil {
		opt = &Options{Scale: 1}
	}

	vp, ctx, err := Setup(s, p, opt.Scale, opt.DPR)
	if err != nil {
		return nil, err
	}

	if opt.Base != nil {
		ctx.DrawImage(opt.Base, 0, 0, vp.Width, vp.Height)
	} else if bp, ok := p.(BasePainter); ok {
		err := bp.PaintBase(ctx, vp)
		if err != nil {
			return vp, err
		}
	}

	records, err := p.Annotations()
	if err != nil {
		return vp, err
	}
	annotation.Render(ctx, records, vp, opt.Logger)

	return vp, nil
}
