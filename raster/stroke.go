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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the outline of p using Width, Cap, Join, MiterLimit, Dash
// and DashPhase.
//
// The stroke is the union of one quadrilateral per segment plus join and
// cap pieces. All pieces are emitted with the same orientation and filled
// together with the nonzero rule, so overlaps are painted once.
func (r *Rasterizer) Stroke(p path.Path, emit EmitFunc) {
	r.flatten(p)
	if len(r.Dash) > 0 {
		r.applyDash()
	}

	d := r.Width / 2
	r.beginEdges()
	for _, ln := range r.lines {
		pts := r.pts[ln.start:ln.end]
		if len(pts) == 1 {
			r.addDot(pts[0], d)
			continue
		}

		n := len(pts) - 1
		if ln.closed {
			n++
		}
		for i := range n {
			a, b := pts[i], pts[(i+1)%len(pts)]
			t := unit(b.Sub(a))
			nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
			r.addPolygon(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
		}

		for i := 1; i < len(pts)-1; i++ {
			r.addJoin(pts[i-1], pts[i], pts[i+1], d)
		}
		if ln.closed {
			last := len(pts) - 1
			r.addJoin(pts[last], pts[0], pts[1], d)
			r.addJoin(pts[last-1], pts[last], pts[0], d)
			continue
		}
		r.addCap(pts[0], unit(pts[0].Sub(pts[1])), d)
		r.addCap(pts[len(pts)-1], unit(pts[len(pts)-1].Sub(pts[len(pts)-2])), d)
	}
	r.sweep(emit)
}

// unit returns v scaled to length 1.
func unit(v vec.Vec2) vec.Vec2 {
	return v.Mul(1 / v.Length())
}

// addPolygon adds a closed polygon to the edge list, reversing it if
// needed so that all pieces of a stroke share one orientation.
func (r *Rasterizer) addPolygon(pts ...vec.Vec2) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	for i, p := range pts {
		r.addEdge(p, pts[(i+1)%len(pts)])
	}
}

// addJoin adds the corner piece at b, between segments a-b and b-c.
func (r *Rasterizer) addJoin(a, b, c vec.Vec2, d float64) {
	t1 := unit(b.Sub(a))
	t2 := unit(c.Sub(b))
	cross := t1.X*t2.Y - t1.Y*t2.X
	if math.Abs(cross) < collinearityThreshold && t1.Dot(t2) > 0 {
		return
	}

	if r.Join == graphics.LineJoinRound {
		r.addDisc(b, d)
		return
	}

	// The gap opens on the outer side of the turn: right for a left turn.
	side := -1.0
	if cross < 0 {
		side = 1
	}
	n1 := vec.Vec2{X: -t1.Y, Y: t1.X}.Mul(side * d)
	n2 := vec.Vec2{X: -t2.Y, Y: t2.X}.Mul(side * d)

	if r.Join == graphics.LineJoinMiter {
		cosHalf := math.Sqrt((1 + t1.Dot(t2)) / 2)
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+1e-10 {
			bisector := n1.Add(n2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				tip := b.Add(bisector.Mul(d / (cosHalf * l)))
				r.addPolygon(b, b.Add(n1), tip, b.Add(n2))
				return
			}
		}
	}
	r.addPolygon(b, b.Add(n1), b.Add(n2))
}

// addCap adds the end piece at p; t points away from the line.
func (r *Rasterizer) addCap(p, t vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p, d)
	case graphics.LineCapSquare:
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(d)
		ext := p.Add(t.Mul(d))
		r.addPolygon(p.Add(nrm), ext.Add(nrm), ext.Sub(nrm), p.Sub(nrm))
	}
}

// addDot renders a subpath without extent. Only round and square caps
// produce output, matching PDF semantics; square dots are axis aligned.
func (r *Rasterizer) addDot(p vec.Vec2, d float64) {
	switch r.Cap {
	case graphics.LineCapRound:
		r.addDisc(p, d)
	case graphics.LineCapSquare:
		r.addPolygon(
			vec.Vec2{X: p.X - d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y + d},
			vec.Vec2{X: p.X - d, Y: p.Y + d},
		)
	}
}

// addDisc adds a polygonal circle with enough vertices to stay within the
// flatness tolerance in device space.
func (r *Rasterizer) addDisc(center vec.Vec2, radius float64) {
	devR := max(
		r.linearPart(vec.Vec2{X: radius}).Length(),
		r.linearPart(vec.Vec2{Y: radius}).Length(),
	)
	n := 8
	if devR > r.Flatness {
		step := 2 * math.Acos(1-r.Flatness/devR)
		if step > 0 {
			n = max(n, int(math.Ceil(2*math.Pi/step)))
		}
	}

	r.poly = r.poly[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.poly = append(r.poly, vec.Vec2{
			X: center.X + radius*math.Cos(phi),
			Y: center.Y + radius*math.Sin(phi),
		})
	}
	r.addPolygon(r.poly...)
}

// applyDash replaces the flattened polylines by the "on" pieces of the
// dash pattern. Pieces are always open; a piece of length zero becomes a
// single point. Odd-length patterns repeat with on and off swapped.
func (r *Rasterizer) applyDash() {
	pattern := r.Dash
	n := len(pattern)
	var total float64
	for _, v := range pattern {
		total += v
	}
	if n%2 == 1 {
		total *= 2
	}
	if total <= 0 {
		return
	}
	phase := math.Mod(r.DashPhase, total)
	if phase < 0 {
		phase += total
	}

	out := r.dashPts[:0]
	lines := r.dashLines[:0]
	pieceStart := -1
	begin := func(p vec.Vec2) {
		pieceStart = len(out)
		out = append(out, p)
	}
	extend := func(p vec.Vec2) {
		if p.Sub(out[len(out)-1]).Length() >= zeroLengthThreshold {
			out = append(out, p)
		}
	}
	end := func() {
		if pieceStart >= 0 {
			lines = append(lines, polyline{start: pieceStart, end: len(out)})
		}
		pieceStart = -1
	}

	for _, ln := range r.lines {
		pts := r.pts[ln.start:ln.end]
		if ln.closed {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		if len(pts) < 2 {
			continue
		}

		idx := 0
		left := phase
		for left >= pattern[idx%n] {
			left -= pattern[idx%n]
			idx++
		}
		remain := pattern[idx%n] - left
		on := idx%2 == 0
		if on {
			begin(pts[0])
		}

		for k := 1; k < len(pts); k++ {
			a, b := pts[k-1], pts[k]
			segLen := b.Sub(a).Length()
			pos := 0.0
			for segLen-pos > remain {
				pos += remain
				q := a.Add(b.Sub(a).Mul(pos / segLen))
				if on {
					extend(q)
					end()
				} else {
					begin(q)
				}
				idx++
				on = idx%2 == 0
				remain = pattern[idx%n]
			}
			remain -= segLen - pos
			if on {
				extend(b)
			}
		}
		end()
	}

	r.pts, r.dashPts = out, r.pts
	r.lines, r.dashLines = lines, r.lines
}
