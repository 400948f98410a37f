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

// Package contour extracts iso-value lines from gridded data.
//
// Lines are returned in index space: the value in row i, column j of the
// matrix sits at (j+0.5, i+0.5), which is the centre of the corresponding
// raster cell. NaN values are masked: no line passes through a grid
// square which has a NaN corner.
package contour

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/geom/vec"
)

// Line is a contour line at one level.
type Line struct {
	Level  float64
	Points []vec.Vec2
	Closed bool // the last point connects back to the first
}

// Length returns the arc length of the line.
func (l Line) Length() float64 {
	var total float64
	for i := 1; i < len(l.Points); i++ {
		total += l.Points[i].Sub(l.Points[i-1]).Length()
	}
	if l.Closed && len(l.Points) > 1 {
		total += l.Points[0].Sub(l.Points[len(l.Points)-1]).Length()
	}
	return total
}

// LabelAnchor returns the point at half the arc length of the line, and the
// direction of the line there in radians.
func (l Line) LabelAnchor() (vec.Vec2, float64) {
	pts := l.Points
	if l.Closed && len(pts) > 1 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	switch len(pts) {
	case 0:
		return vec.Vec2{}, 0
	case 1:
		return pts[0], 0
	}

	left := l.Length() / 2
	for i := 1; i < len(pts); i++ {
		d := pts[i].Sub(pts[i-1])
		seg := d.Length()
		if seg == 0 {
			continue
		}
		if left <= seg || i == len(pts)-1 {
			t := min(left/seg, 1)
			return pts[i-1].Add(d.Mul(t)), math.Atan2(d.Y, d.X)
		}
		left -= seg
	}
	return pts[0], 0
}

// edgeKey identifies the grid edge a contour point lies on.
// Horizontal edges join (i, j) and (i, j+1), vertical ones join (i, j)
// and (i+1, j).
type edgeKey struct {
	i, j     int
	vertical bool
}

type segment struct {
	a, b edgeKey
}

// Extract computes the contour lines of m for every level, in the order of
// the levels. Lines of one level are ordered by their first grid square in
// row-major order.
func Extract(m *mat.Dense, levels []float64) []Line {
	rows, cols := m.Dims()
	var res []Line
	for _, level := range levels {
		if math.IsNaN(level) {
			continue
		}
		segs := marchingSquares(m, rows, cols, level)
		for _, keys := range join(segs) {
			line := Line{Level: level}
			n := len(keys)
			if n > 2 && keys[0] == keys[n-1] {
				line.Closed = true
				keys = keys[:n-1]
			}
			for _, k := range keys {
				p := crossing(m, k, level)
				if len(line.Points) > 0 && line.Points[len(line.Points)-1] == p {
					continue
				}
				line.Points = append(line.Points, p)
			}
			if line.Closed && len(line.Points) > 1 && line.Points[0] == line.Points[len(line.Points)-1] {
				line.Points = line.Points[:len(line.Points)-1]
			}
			res = append(res, line)
		}
	}
	return res
}

// marchingSquares returns one or two segments for every grid square the
// level passes through.
func marchingSquares(m *mat.Dense, rows, cols int, level float64) []segment {
	var segs []segment
	for i := 0; i+1 < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			a := m.At(i, j)     // bottom left
			b := m.At(i, j+1)   // bottom right
			c := m.At(i+1, j+1) // top right
			d := m.At(i+1, j)   // top left
			if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c) || math.IsNaN(d) {
				continue
			}

			bottom := edgeKey{i, j, false}
			top := edgeKey{i + 1, j, false}
			left := edgeKey{i, j, true}
			right := edgeKey{i, j + 1, true}

			var idx int
			for bit, v := range []float64{a, b, c, d} {
				if v >= level {
					idx |= 1 << bit
				}
			}
			centreAbove := (a+b+c+d)/4 >= level

			add := func(p, q edgeKey) {
				segs = append(segs, segment{p, q})
			}
			switch idx {
			case 1, 14:
				add(left, bottom)
			case 2, 13:
				add(bottom, right)
			case 3, 12:
				add(left, right)
			case 4, 11:
				add(right, top)
			case 6, 9:
				add(bottom, top)
			case 7, 8:
				add(left, top)
			case 5:
				if centreAbove {
					add(bottom, right)
					add(top, left)
				} else {
					add(left, bottom)
					add(right, top)
				}
			case 10:
				if centreAbove {
					add(left, bottom)
					add(right, top)
				} else {
					add(bottom, right)
					add(top, left)
				}
			}
		}
	}
	return segs
}

// join links segments sharing an edge into chains of edge keys.
// A closed chain repeats its first key at the end.
func join(segs []segment) [][]edgeKey {
	at := make(map[edgeKey][]int, 2*len(segs))
	for k, s := range segs {
		at[s.a] = append(at[s.a], k)
		at[s.b] = append(at[s.b], k)
	}
	used := make([]bool, len(segs))

	// next returns the unused segment at key and its far end.
	next := func(key edgeKey) (edgeKey, bool) {
		for _, k := range at[key] {
			if used[k] {
				continue
			}
			used[k] = true
			if segs[k].a == key {
				return segs[k].b, true
			}
			return segs[k].a, true
		}
		return edgeKey{}, false
	}

	var chains [][]edgeKey
	for k, s := range segs {
		if used[k] {
			continue
		}
		used[k] = true
		chain := []edgeKey{s.a, s.b}
		for {
			key, ok := next(chain[len(chain)-1])
			if !ok {
				break
			}
			chain = append(chain, key)
		}
		if chain[0] != chain[len(chain)-1] {
			var back []edgeKey
			for key := chain[0]; ; {
				var ok bool
				key, ok = next(key)
				if !ok {
					break
				}
				back = append(back, key)
			}
			if len(back) > 0 {
				rev := make([]edgeKey, 0, len(back)+len(chain))
				for i := len(back) - 1; i >= 0; i-- {
					rev = append(rev, back[i])
				}
				chain = append(rev, chain...)
			}
		}
		chains = append(chains, chain)
	}
	return chains
}

// crossing returns the index space position where the level crosses
// the edge, by linear interpolation between the two grid values.
func crossing(m *mat.Dense, k edgeKey, level float64) vec.Vec2 {
	i1, j1 := k.i, k.j+1
	if k.vertical {
		i1, j1 = k.i+1, k.j
	}
	v0, v1 := m.At(k.i, k.j), m.At(i1, j1)
	t := 0.5
	if v1 != v0 {
		t = (level - v0) / (v1 - v0)
	}
	t = min(max(t, 0), 1)
	return vec.Vec2{
		X: float64(k.j) + 0.5 + t*float64(j1-k.j),
		Y: float64(k.i) + 0.5 + t*float64(i1-k.i),
	}
}
