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

package testcases

import (
	"math"

	"seehuhn.de/go/landscape/grid"
)

var basicCases = []TestCase{
	{
		Name:        "two_by_two",
		Description: "2x2 grid, h2 on the left and ccs on the right, margins all 10",
		Categories:  []string{"h2", "ccs"},
		Records: []grid.Record{
			{Sector: "steel", Scenario: "normal", Category: "h2", X: 100, Y: 50, Cost: 80, Margin: 10},
			{Sector: "steel", Scenario: "normal", Category: "ccs", X: 200, Y: 50, Cost: 90, Margin: 10},
			{Sector: "steel", Scenario: "normal", Category: "h2", X: 100, Y: 150, Cost: 70, Margin: 10},
			{Sector: "steel", Scenario: "normal", Category: "ccs", X: 200, Y: 150, Cost: 60, Margin: 10},
		},
		Threshold: 20,
		Valid:     true,
	},
	{
		Name:        "uniform",
		Description: "a single category everywhere, with saturated margins",
		Categories:  []string{"ccs"},
		Records: sweep("cement", "normal", steps(0, 100, 4), steps(30, 30, 3), func(x, y float64) grid.Record {
			return grid.Record{Category: "ccs", Cost: 70 + x/100, Margin: 500}
		}),
		Valid: true,
	},
	{
		Name:        "diagonal",
		Description: "the choice switches from h2 to ccs along the diagonal, margins vanish at the switch",
		Records: sweep("steel", "normal", steps(0, 100, 8), steps(30, 30, 8), func(x, y float64) grid.Record {
			h2 := 1.2*y - 20
			ccs := 0.2*x + 30
			r := grid.Record{Cost: math.Min(h2, ccs), Margin: math.Abs(h2 - ccs)}
			if h2 <= ccs {
				r.Category = "h2"
			} else {
				r.Category = "ccs"
			}
			return r
		}),
		Valid: true,
	},
}
