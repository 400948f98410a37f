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
)

// kappa places the cubic control points for a quarter circle.
const kappa = 0.5522847498307936

// Polyline returns the path through pts, closed if closed is set.
func Polyline(pts []vec.Vec2, closed bool) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
		if closed && len(pts) > 0 {
			yield(path.CmdClose, nil)
		}
	}
}

// Rectangle returns the closed path around the axis parallel rectangle
// with corners ll and ur.
func Rectangle(ll, ur vec.Vec2) path.Path {
	return Polyline([]vec.Vec2{
		ll,
		{X: ur.X, Y: ll.Y},
		ur,
		{X: ll.X, Y: ur.Y},
	}, true)
}

// RoundedRectangle is like [Rectangle], but with the corners replaced by
// quarter circles of the given radius. The radius is reduced to half the
// shorter side if needed.
func RoundedRectangle(ll, ur vec.Vec2, radius float64) path.Path {
	w, h := ur.X-ll.X, ur.Y-ll.Y
	radius = min(radius, math.Abs(w)/2, math.Abs(h)/2)
	if radius <= 0 {
		return Rectangle(ll, ur)
	}
	rx, ry := radius, radius
	if w < 0 {
		rx = -rx
	}
	if h < 0 {
		ry = -ry
	}
	kx, ky := kappa*rx, kappa*ry
	x0, x1, y0, y1 := ll.X, ur.X, ll.Y, ur.Y
	return func(yield func(path.Command, []vec.Vec2) bool) {
		segs := []struct {
			cmd path.Command
			pts []vec.Vec2
		}{
			{path.CmdMoveTo, []vec.Vec2{{X: x0 + rx, Y: y0}}},
			{path.CmdLineTo, []vec.Vec2{{X: x1 - rx, Y: y0}}},
			{path.CmdCubeTo, []vec.Vec2{{X: x1 - rx + kx, Y: y0}, {X: x1, Y: y0 + ry - ky}, {X: x1, Y: y0 + ry}}},
			{path.CmdLineTo, []vec.Vec2{{X: x1, Y: y1 - ry}}},
			{path.CmdCubeTo, []vec.Vec2{{X: x1, Y: y1 - ry + ky}, {X: x1 - rx + kx, Y: y1}, {X: x1 - rx, Y: y1}}},
			{path.CmdLineTo, []vec.Vec2{{X: x0 + rx, Y: y1}}},
			{path.CmdCubeTo, []vec.Vec2{{X: x0 + rx - kx, Y: y1}, {X: x0, Y: y1 - ry + ky}, {X: x0, Y: y1 - ry}}},
			{path.CmdLineTo, []vec.Vec2{{X: x0, Y: y0 + ry}}},
			{path.CmdCubeTo, []vec.Vec2{{X: x0, Y: y0 + ry - ky}, {X: x0 + rx - kx, Y: y0}, {X: x0 + rx, Y: y0}}},
			{path.CmdClose, nil},
		}
		for _, s := range segs {
			if !yield(s.cmd, s.pts) {
				return
			}
		}
	}
}
