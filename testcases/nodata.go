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

var noDataCases = []TestCase{
	{
		Name:        "hole",
		Description: "no viable technology in the centre of the grid",
		Categories:  []string{"h2", "ccu"},
		Records: sweep("chem", "normal", steps(0, 100, 5), steps(30, 30, 5), func(x, y float64) grid.Record {
			if x == 200 && y == 90 {
				return grid.Record{Cost: math.NaN(), Margin: math.NaN()}
			}
			cat := "h2"
			if x > 200 {
				cat = "ccu"
			}
			return grid.Record{Category: cat, Cost: 100 + 2*y + x, Margin: 40}
		}),
		Valid: true,
	},
	{
		Name:        "missing_cost",
		Description: "a category is given but the cost is missing in the top row",
		Categories:  []string{"efuel", "comp"},
		Records: sweep("plane", "normal", steps(0, 200, 4), steps(60, 60, 3), func(x, y float64) grid.Record {
			r := grid.Record{Category: "efuel", Cost: 300 + 4*y, Margin: math.NaN()}
			if x >= 400 {
				r.Category = "comp"
			}
			if y == 180 {
				r.Cost = math.NaN()
			}
			return r
		}),
		Valid: true,
	},
}
