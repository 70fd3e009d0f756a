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
	"math"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/vec"
)

// flatness is the maximal distance, in device pixels, between a curve and
// the line segments approximating it.
const flatness = 0.25

// appendQuadratic appends points approximating the quadratic Bézier curve
// with control points p0, p1, p2 to path.  The start point p0 is not
// appended.
func appendQuadratic(path []vec.Vec2, p0, p1, p2 vec.Vec2) []vec.Vec2 {
	// The distance between the curve and its chord is bounded by
	// |p0 - 2p1 + p2| / 4.  Splitting into n pieces divides this by n².
	dev := p0.Sub(p1.Mul(2)).Add(p2).Length() / 4
	n := int(math.Ceil(math.Sqrt(dev / flatness)))
	n = min(max(n, 1), 100)

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		p := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		path = append(path, p)
	}
	return path
}

// strokeSubpath adds the outline of a stroked polyline to the rasterizer.
// Each segment becomes a quadrilateral, and interior vertices are covered
// by a disc to give round joins.  All shapes are added with the same
// orientation, so that overlaps do not cancel out.
//
// The return value indicates whether anything was added.
func strokeSubpath(z *vector.Rasterizer, pts []vec.Vec2, w float64) bool {
	added := false
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		d := p1.Sub(p0)
		l := d.Length()
		if l == 0 {
			continue
		}
		n := vec.Vec2{X: -d.Y / l * w, Y: d.X / l * w}

		a := p0.Add(n)
		b := p1.Add(n)
		c := p1.Sub(n)
		e := p0.Sub(n)
		z.MoveTo(float32(a.X), float32(a.Y))
		z.LineTo(float32(b.X), float32(b.Y))
		z.LineTo(float32(c.X), float32(c.Y))
		z.LineTo(float32(e.X), float32(e.Y))
		z.ClosePath()
		added = true

		if i < len(pts)-1 {
			addDisc(z, p1, w)
		}
	}
	return added
}

// addDisc adds a disc with centre c and radius w.  The orientation matches
// the segment outlines added by strokeSubpath.
func addDisc(z *vector.Rasterizer, c vec.Vec2, w float64) {
	n := int(math.Ceil(2 * math.Pi * w / 2))
	n = min(max(n, 8), 64)
	for i := 0; i < n; i++ {
		phi := -2 * math.Pi * float64(i) / float64(n)
		x := c.X + w*math.Cos(phi)
		y := c.Y + w*math.Sin(phi)
		if i == 0 {
			z.MoveTo(float32(x), float32(y))
		} else {
			z.LineTo(float32(x), float32(y))
		}
	}
	z.ClosePath()
}
