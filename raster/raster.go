// seehuhn.de/go/landscape - decision landscape figures
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

// Package raster converts the vector parts of a figure (contour lines,
// annotation boxes, legend frames) into anti-aliased pixel coverage.
//
// Paths are given in user space and mapped to device pixels by the CTM.
// Coverage is delivered one scanline at a time through an emit callback,
// see [Painter] for compositing coverage onto an image.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of one scanline, starting at pixel xMin.
// The coverage slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// polyline is a flattened subpath, stored as a range of points.
type polyline struct {
	start, end int
	closed     bool
}

// Rasterizer turns paths into per-pixel coverage values between 0 and 1.
// A single Rasterizer is meant to be reused for all paths of a figure;
// its buffers grow as needed and are kept between calls.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve and arc approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space units.
	Width float64

	// Cap is the style of stroke end points.
	Cap graphics.LineCapStyle

	// Join is the style of stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins, relative to the width.
	MiterLimit float64

	// Dash gives alternating on/off lengths in user space units.
	// Nil means a solid line.
	Dash []float64

	// DashPhase is the offset into the dash pattern.
	DashPhase float64

	cover       []float32
	area        []float32
	rowHasEdges []bool
	edges       []edge

	noEdges                            bool
	devXMin, devXMax, devYMin, devYMax float64

	pts       []vec.Vec2
	lines     []polyline
	dashPts   []vec.Vec2
	dashLines []polyline
	poly      []vec.Vec2
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with an
// identity CTM, a solid stroke of width 1, butt caps and miter joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.Dash = nil
	r.DashPhase = 0
}

// Fill fills the path using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasterizer) Fill(p path.Path, emit EmitFunc) {
	r.flatten(p)
	r.beginEdges()
	for _, ln := range r.lines {
		pts := r.pts[ln.start:ln.end]
		if len(pts) < 3 {
			continue
		}
		for i := 1; i < len(pts); i++ {
			r.addEdge(pts[i-1], pts[i])
		}
		r.addEdge(pts[len(pts)-1], pts[0])
	}
	r.sweep(emit)
}

// linearPart applies the 2x2 part of the CTM.
func (r *Rasterizer) linearPart(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flatten converts p into polylines in r.pts and r.lines.
// Consecutive duplicate points are dropped, so a polyline with a single
// point is a degenerate subpath which was drawn but has no extent.
func (r *Rasterizer) flatten(p path.Path) {
	r.pts = r.pts[:0]
	r.lines = r.lines[:0]

	start := -1
	drawn := false
	var current vec.Vec2

	finish := func(closed bool) {
		if start >= 0 && drawn {
			end := len(r.pts)
			if closed && end-start > 1 && r.pts[end-1] == r.pts[start] {
				end--
				r.pts = r.pts[:end]
			}
			r.lines = append(r.lines, polyline{start: start, end: end, closed: closed})
		} else if start >= 0 {
			r.pts = r.pts[:start]
		}
		start = -1
		drawn = false
	}
	lineTo := func(_, to vec.Vec2) {
		if last := r.pts[len(r.pts)-1]; to.Sub(last).Length() < zeroLengthThreshold {
			return
		}
		r.pts = append(r.pts, to)
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			finish(false)
			current = pts[0]
			start = len(r.pts)
			r.pts = append(r.pts, current)
		case path.CmdLineTo:
			if start >= 0 {
				lineTo(current, pts[0])
				drawn = true
			}
			current = pts[0]
		case path.CmdQuadTo:
			if start >= 0 {
				r.flattenQuad(current, pts[0], pts[1], lineTo)
				drawn = true
			}
			current = pts[1]
		case path.CmdCubeTo:
			if start >= 0 {
				r.flattenCube(current, pts[0], pts[1], pts[2], lineTo)
				drawn = true
			}
			current = pts[2]
		case path.CmdClose:
			if start >= 0 {
				current = r.pts[start]
			}
			finish(true)
		}
	}
	finish(false)
}

// flattenQuad approximates a quadratic Bézier curve by line segments.
// The segment count is chosen from the device space deviation of the
// control point.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2, lineTo func(from, to vec.Vec2)) {
	dev := r.linearPart(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)).Length()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

// flattenCube approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (r *Rasterizer) flattenCube(p0, p1, p2, p3 vec.Vec2, lineTo func(from, to vec.Vec2)) {
	d1 := r.linearPart(p0.Sub(p1.Mul(2)).Add(p2)).Length()
	d2 := r.linearPart(p1.Sub(p2.Mul(2)).Add(p3)).Length()
	n := 1
	if m := max(d1, d2); m > 0 {
		n = max(1, int(math.Ceil(math.Sqrt(3*m/(4*r.Flatness)))))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		lineTo(prev, pt)
		prev = pt
	}
}

// beginEdges clears the edge list.
func (r *Rasterizer) beginEdges() {
	r.edges = r.edges[:0]
	r.noEdges = true
}

// addEdge transforms a user space segment to device space and records it.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	c := r.CTM
	x0 := c[0]*p0.X + c[2]*p0.Y + c[4]
	y0 := c[1]*p0.X + c[3]*p0.Y + c[5]
	x1 := c[0]*p1.X + c[2]*p1.Y + c[4]
	y1 := c[1]*p1.X + c[3]*p1.Y + c[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.noEdges {
		r.devXMin, r.devXMax = min(x0, x1), max(x0, x1)
		r.devYMin, r.devYMax = min(y0, y1), max(y0, y1)
		r.noEdges = false
		return
	}
	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)
}

// sweep rasterises the collected edges with the nonzero rule.
//
// Every pixel accumulates two values. cover is the signed vertical extent
// of all edge pieces inside the pixel, area is the same weighted by the
// fraction of the pixel to the right of the crossing. The coverage of a
// pixel is the running sum of cover over all pixels to its left, plus its
// own area.
func (r *Rasterizer) sweep(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}
	width, height := xMax-xMin, yMax-yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		cov := r.cover[off : off+width]
		integrate(cov, r.area[off:off+width])
		if trimmed, skip := trimZeros(cov); trimmed != nil {
			emit(yMin+row, xMin+skip, trimmed)
		}
	}
}

// accumulate adds the part of e inside scanline y to the cover and area
// buffers. The buffers are indexed by x-xMin; contributions left of xMin
// are folded into the first pixel, contributions right of xMax are dropped.
func accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	deposit := func(pix int, s0, s1 float64) {
		c := sign * float32(s1-s0)
		if pix < xMin {
			cover[0] += c
			area[0] += c
			return
		}
		if pix >= xMax {
			return
		}
		xMid := e.x0 + e.dxdy*((s0+s1)/2-e.y0)
		frac := xMid - float64(pix)
		cover[pix-xMin] += c
		area[pix-xMin] += c * float32(1-frac)
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	left := int(math.Floor(min(xTop, xBot)))
	right := int(math.Floor(max(xTop, xBot)))

	switch {
	case right < xMin:
		deposit(xMin-1, top, bot)
	case left >= xMax:
		// no contribution
	case left == right:
		deposit(left, top, bot)
	default:
		dydx := 1 / e.dxdy
		for pix := left; pix <= right; pix++ {
			ya := e.y0 + dydx*(float64(pix)-e.x0)
			yb := e.y0 + dydx*(float64(pix+1)-e.x0)
			s0 := max(min(ya, yb), top)
			s1 := min(max(ya, yb), bot)
			if s1 > s0 {
				deposit(pix, s0, s1)
			}
		}
	}
}

// integrate turns accumulated cover/area values into nonzero-rule coverage.
// The result is stored in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero value, together with the offset of its first element.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

const (
	// defaultFlatness is the default approximation tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// defaultMiterLimit matches the PDF default; corners sharper than about
	// 11.5 degrees get a bevel instead of a miter.
	defaultMiterLimit = 10.0

	// horizontalEdgeThreshold is the smallest device space height of an
	// edge which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// zeroLengthThreshold is the shortest user space segment kept by
	// flattening.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is the cross product below which two segment
	// directions count as parallel and need no join.
	collinearityThreshold = 1e-6
)
