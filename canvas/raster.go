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
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Raster is a [Surface] which paints into an RGBA image.
//
// Paths are filled and stroked using an anti-aliasing rasterizer.  Lines
// are drawn with butt caps and round joins.  Text is drawn using the
// embedded Go fonts.  A new raster is fully transparent.
type Raster struct {
	Image *image.RGBA

	// Err is set if Restore is called without a matching Save.
	Err error

	state State
	stack []State

	path   [][]vec.Vec2 // in device coordinates
	cur    vec.Vec2
	hasCur bool

	rast  *vector.Rasterizer
	faces map[faceKey]font.Face
}

// State is the drawing state of a [Raster].
type State struct {
	CTM         matrix.Matrix
	StrokeColor Color
	FillColor   Color
	LineWidth   float64
	GlobalAlpha float64
	Font        Font
	Baseline    Baseline
	Smoothing   bool
	Quality     SmoothingQuality
}

func initialState() State {
	return State{
		CTM:         matrix.Identity,
		StrokeColor: Black,
		FillColor:   Black,
		LineWidth:   1,
		GlobalAlpha: 1,
		Font:        DefaultFont,
		Baseline:    BaselineAlphabetic,
		Smoothing:   true,
		Quality:     SmoothingLow,
	}
}

type faceKey struct {
	tf   *typeface
	size float64
}

// NewRaster allocates a new raster of the given size.
func NewRaster(width, height int) *Raster {
	r := &Raster{}
	r.SetSize(width, height)
	return r
}

// SetSize implements the [Surface] interface.
func (r *Raster) SetSize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	r.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	r.Err = nil
	r.state = initialState()
	r.stack = r.stack[:0]
	r.path = nil
	r.hasCur = false
	if r.rast == nil {
		r.rast = vector.NewRasterizer(width, height)
	} else {
		r.rast.Reset(width, height)
	}
}

// Size implements the [Surface] interface.
func (r *Raster) Size() (int, int) {
	b := r.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Context implements the [Surface] interface.
func (r *Raster) Context() Context {
	return r
}

// State returns a copy of the current drawing state.
func (r *Raster) State() State {
	return r.state
}

// Depth returns the number of saved drawing states.
func (r *Raster) Depth() int {
	return len(r.stack)
}

// Fill paints the whole image with the colour c, ignoring the drawing
// state.
func (r *Raster) Fill(c color.Color) {
	draw.Draw(r.Image, r.Image.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Save implements the [Context] interface.
func (r *Raster) Save() {
	r.stack = append(r.stack, r.state)
}

// Restore implements the [Context] interface.
func (r *Raster) Restore() {
	n := len(r.stack)
	if n == 0 {
		if r.Err == nil {
			r.Err = ErrRestoreWithoutSave
		}
		return
	}
	r.state = r.stack[n-1]
	r.stack = r.stack[:n-1]
}

// Scale implements the [Context] interface.
func (r *Raster) Scale(sx, sy float64) {
	if !isFinite(sx) || !isFinite(sy) {
		return
	}
	r.state.CTM = matrix.Scale(sx, sy).Mul(r.state.CTM)
}

// SetStrokeColor implements the [Context] interface.
func (r *Raster) SetStrokeColor(c Color) {
	r.state.StrokeColor = c
}

// SetFillColor implements the [Context] interface.
func (r *Raster) SetFillColor(c Color) {
	r.state.FillColor = c
}

// SetLineWidth implements the [Context] interface.
// Values which are not positive and finite are ignored.
func (r *Raster) SetLineWidth(width float64) {
	if width > 0 && isFinite(width) {
		r.state.LineWidth = width
	}
}

// SetGlobalAlpha implements the [Context] interface.
// Values outside the range [0, 1] are ignored.
func (r *Raster) SetGlobalAlpha(alpha float64) {
	if alpha >= 0 && alpha <= 1 {
		r.state.GlobalAlpha = alpha
	}
}

// SetFont implements the [Context] interface.
func (r *Raster) SetFont(f Font) {
	if f.Size > 0 && isFinite(f.Size) {
		r.state.Font = f
	}
}

// SetTextBaseline implements the [Context] interface.
func (r *Raster) SetTextBaseline(b Baseline) {
	r.state.Baseline = b
}

// SetImageSmoothing implements the [Context] interface.
func (r *Raster) SetImageSmoothing(enabled bool, quality SmoothingQuality) {
	r.state.Smoothing = enabled
	r.state.Quality = quality
}

// BeginPath implements the [Context] interface.
func (r *Raster) BeginPath() {
	r.path = r.path[:0]
	r.hasCur = false
}

func (r *Raster) toDevice(x, y float64) vec.Vec2 {
	px, py := r.state.CTM.Apply(x, y)
	return vec.Vec2{X: px, Y: py}
}

// MoveTo implements the [Context] interface.
func (r *Raster) MoveTo(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	p := r.toDevice(x, y)
	r.path = append(r.path, []vec.Vec2{p})
	r.cur = p
	r.hasCur = true
}

// LineTo implements the [Context] interface.
func (r *Raster) LineTo(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	if !r.hasCur {
		r.MoveTo(x, y)
		return
	}
	p := r.toDevice(x, y)
	n := len(r.path) - 1
	r.path[n] = append(r.path[n], p)
	r.cur = p
}

// QuadraticCurveTo implements the [Context] interface.
// The curve is approximated by straight line segments.
func (r *Raster) QuadraticCurveTo(cpx, cpy, x, y float64) {
	if !isFinite(cpx) || !isFinite(cpy) || !isFinite(x) || !isFinite(y) {
		return
	}
	if !r.hasCur {
		r.MoveTo(cpx, cpy)
	}
	p0 := r.cur
	p1 := r.toDevice(cpx, cpy)
	p2 := r.toDevice(x, y)

	n := len(r.path) - 1
	r.path[n] = appendQuadratic(r.path[n], p0, p1, p2)
	r.cur = p2
}

// Stroke implements the [Context] interface.
func (r *Raster) Stroke() {
	ctm := r.state.CTM
	scale := math.Sqrt(math.Abs(ctm[0]*ctm[3] - ctm[1]*ctm[2]))
	halfWidth := r.state.LineWidth * scale / 2
	if halfWidth < 0.5 {
		halfWidth = 0.5
	}

	w, h := r.Size()
	r.rast.Reset(w, h)
	painted := false
	for _, sub := range r.path {
		if strokeSubpath(r.rast, sub, halfWidth) {
			painted = true
		}
	}
	if !painted {
		return
	}
	col := r.state.StrokeColor.nrgba(r.state.GlobalAlpha)
	r.rast.Draw(r.Image, r.Image.Bounds(), image.NewUniform(col), image.Point{})
}

// FillRect implements the [Context] interface.
func (r *Raster) FillRect(x, y, width, height float64) {
	if !isFinite(x) || !isFinite(y) || !isFinite(width) || !isFinite(height) {
		return
	}
	if width == 0 || height == 0 {
		return
	}
	corners := [4]vec.Vec2{
		r.toDevice(x, y),
		r.toDevice(x+width, y),
		r.toDevice(x+width, y+height),
		r.toDevice(x, y+height),
	}

	w, h := r.Size()
	r.rast.Reset(w, h)
	r.rast.MoveTo(float32(corners[0].X), float32(corners[0].Y))
	for _, p := range corners[1:] {
		r.rast.LineTo(float32(p.X), float32(p.Y))
	}
	r.rast.ClosePath()

	col := r.state.FillColor.nrgba(r.state.GlobalAlpha)
	r.rast.Draw(r.Image, r.Image.Bounds(), image.NewUniform(col), image.Point{})
}

// FillText implements the [Context] interface.
//
// Only the scaling part of the current transformation is applied to the
// glyphs; the text is always drawn horizontally.
func (r *Raster) FillText(text string, x, y float64) {
	if text == "" || !isFinite(x) || !isFinite(y) {
		return
	}
	f := r.state.Font
	tf := resolveFamily(f.Family)
	if err := tf.load(); err != nil {
		return
	}

	switch r.state.Baseline {
	case BaselineTop:
		y += tf.ascent(f.Size)
	case BaselineMiddle:
		y += (tf.ascent(f.Size) + tf.descent(f.Size)) / 2
	case BaselineBottom:
		y += tf.descent(f.Size)
	}

	ctm := r.state.CTM
	deviceSize := f.Size * math.Sqrt(math.Abs(ctm[0]*ctm[3]-ctm[1]*ctm[2]))
	if !(deviceSize > 0) {
		return
	}
	face, err := r.face(tf, deviceSize)
	if err != nil {
		return
	}

	p := r.toDevice(x, y)
	col := r.state.FillColor.nrgba(r.state.GlobalAlpha)
	d := &font.Drawer{
		Dst:  r.Image,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)},
	}
	d.DrawString(norm.NFC.String(text))
}

func (r *Raster) face(tf *typeface, size float64) (font.Face, error) {
	key := faceKey{tf: tf, size: size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face, err := tf.face(size)
	if err != nil {
		return nil, err
	}
	if r.faces == nil {
		r.faces = make(map[faceKey]font.Face)
	}
	r.faces[key] = face
	return face, nil
}

// MeasureText implements the [Context] interface.
func (r *Raster) MeasureText(text string) float64 {
	return measure(r.state.Font, text)
}

// DrawImage implements the [Context] interface.
//
// The image is scaled using the filter selected by the image smoothing
// settings: nearest neighbour if smoothing is disabled, and approximate
// bilinear, bilinear or Catmull-Rom for low, medium and high quality.
func (r *Raster) DrawImage(img image.Image, x, y, width, height float64) {
	if img == nil || !isFinite(x) || !isFinite(y) || !isFinite(width) || !isFinite(height) {
		return
	}
	p := r.toDevice(x, y)
	q := r.toDevice(x+width, y+height)
	dr := image.Rect(
		int(math.Round(p.X)), int(math.Round(p.Y)),
		int(math.Round(q.X)), int(math.Round(q.Y)),
	)
	if dr.Empty() {
		return
	}

	var opts *xdraw.Options
	if a := r.state.GlobalAlpha; a < 1 {
		opts = &xdraw.Options{
			DstMask: image.NewUniform(color.Alpha{A: uint8(math.Round(a * 255))}),
		}
	}
	r.interpolator().Scale(r.Image, dr, img, img.Bounds(), draw.Over, opts)
}

func (r *Raster) interpolator() xdraw.Interpolator {
	if !r.state.Smoothing {
		return xdraw.NearestNeighbor
	}
	switch r.state.Quality {
	case SmoothingHigh:
		return xdraw.CatmullRom
	case SmoothingMedium:
		return xdraw.BiLinear
	default:
		return xdraw.ApproxBiLinear
	}
}

func toFixed(x float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(x * 64))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
