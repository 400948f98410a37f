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

// Package testcases provides synthetic result tables for tests and demos.
package testcases

import (
	"seehuhn.de/go/landscape/grid"
	"seehuhn.de/go/landscape/palette"
)

// TestCase is a named result table.
type TestCase struct {
	Name        string // lowercase a-z and _ only
	Description string

	// Categories lists the declared categories, a subset of
	// [palette.Default]. Nil means all default categories.
	Categories []string

	Records []grid.Record

	// Threshold is the overlay saturation margin, zero for the default.
	Threshold float64

	// Valid is false for tables which must be rejected by the renderer.
	Valid bool
}

// Table returns the records as a table.
func (tc TestCase) Table() *grid.Table {
	return grid.NewTable(tc.Records)
}

// Palette returns the declared categories as a palette.
func (tc TestCase) Palette() (*palette.Palette, error) {
	pal := palette.Default()
	if tc.Categories == nil {
		return pal, nil
	}
	return pal.Subset(tc.Categories...)
}

// sweep calls f for every point of the cartesian product of xs and ys,
// with y in the outer loop, and collects the resulting records.
func sweep(sector, scenario string, xs, ys []float64, f func(x, y float64) grid.Record) []grid.Record {
	res := make([]grid.Record, 0, len(xs)*len(ys))
	for _, y := range ys {
		for _, x := range xs {
			r := f(x, y)
			r.Sector = sector
			r.Scenario = scenario
			r.X = x
			r.Y = y
			res = append(res, r)
		}
	}
	return res
}

// steps returns n values starting at start with spacing step.
func steps(start, step float64, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = start + float64(i)*step
	}
	return res
}
