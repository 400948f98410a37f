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

package landscape

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/landscape/grid"
)

// Region is a rectangle of real parameter values to be marked on every
// panel, for example the range of current market prices.
type Region struct {
	Label    string
	XLo, XHi float64
	YLo, YHi float64

	// Inclusive draws the box around the outer edges of the end cells,
	// instead of from cell centre to cell centre.
	Inclusive bool
}

// IndexBox is a region resolved against the axes of one panel.
// X and Y are the column and row indices of the lower left cell, W and H
// the index differences to the upper right cell.
type IndexBox struct {
	X, Y int
	W, H int

	Inclusive bool
}

// Corners returns the lower left and upper right corner of the box in
// panel index space, where the centre of cell (i, j) is at (j+0.5, i+0.5).
// An inclusive box is half a cell larger on every side.
func (b IndexBox) Corners() (vec.Vec2, vec.Vec2) {
	grow := 0.0
	if b.Inclusive {
		grow = 0.5
	}
	ll := vec.Vec2{X: float64(b.X) + 0.5 - grow, Y: float64(b.Y) + 0.5 - grow}
	ur := vec.Vec2{X: float64(b.X+b.W) + 0.5 + grow, Y: float64(b.Y+b.H) + 0.5 + grow}
	return ll, ur
}

// OutOfRangeWarning reports a region bound outside the axis range of a
// panel. The bound was clamped to the nearest end of the axis.
type OutOfRangeWarning struct {
	Panel    grid.PanelSpec
	Region   string
	Bound    string // "x_lo", "x_hi", "y_lo" or "y_hi"
	Value    float64
	Min, Max float64
}

func (w *OutOfRangeWarning) Error() string {
	where := ""
	if w.Panel != (grid.PanelSpec{}) {
		where = "panel " + w.Panel.String() + ": "
	}
	return fmt.Sprintf("%sregion %q: %s = %g outside axis range [%g, %g], clamped",
		where, w.Region, w.Bound, w.Value, w.Min, w.Max)
}

// ResolveBox maps the bounds of r to the nearest grid indices of the axes.
// On ties the lower index is used. Bounds outside the axis range are
// clamped and reported as warnings. If either axis is empty, the zero box
// is returned.
func ResolveBox(xs, ys []float64, r Region) (IndexBox, []*OutOfRangeWarning) {
	if len(xs) == 0 || len(ys) == 0 {
		return IndexBox{Inclusive: r.Inclusive}, nil
	}

	var warnings []*OutOfRangeWarning
	resolve := func(axis []float64, v float64, bound string) int {
		lo, hi := floats.Min(axis), floats.Max(axis)
		if v < lo || v > hi {
			warnings = append(warnings, &OutOfRangeWarning{
				Region: r.Label,
				Bound:  bound,
				Value:  v,
				Min:    lo,
				Max:    hi,
			})
		}
		return nearestIndex(axis, v)
	}

	x0 := resolve(xs, r.XLo, "x_lo")
	x1 := resolve(xs, r.XHi, "x_hi")
	y0 := resolve(ys, r.YLo, "y_lo")
	y1 := resolve(ys, r.YHi, "y_hi")
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	box := IndexBox{X: x0, Y: y0, W: x1 - x0, H: y1 - y0, Inclusive: r.Inclusive}
	return box, warnings
}

// nearestIndex returns the index of the axis value closest to v.
// The axis need not be evenly spaced. An empty axis gives 0.
func nearestIndex(axis []float64, v float64) int {
	if len(axis) == 0 {
		return 0
	}
	d := make([]float64, len(axis))
	for i, a := range axis {
		d[i] = math.Abs(a - v)
	}
	return floats.MinIdx(d)
}
