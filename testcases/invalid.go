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
	"seehuhn.de/go/landscape/grid"
)

var invalidCases = []TestCase{
	{
		Name:        "unknown_category",
		Description: "one grid point uses a category which is not declared",
		Categories:  []string{"h2", "ccs"},
		Records: sweep("steel", "normal", steps(100, 100, 3), steps(50, 50, 3), func(x, y float64) grid.Record {
			cat := "h2"
			if x == 300 && y == 150 {
				cat = "nuclear"
			}
			return grid.Record{Category: cat, Cost: x, Margin: 5}
		}),
	},
	{
		Name:        "incomplete",
		Description: "the second panel misses one grid point",
		Categories:  []string{"h2", "ccs"},
		Records: append(
			sweep("steel", "normal", steps(100, 100, 3), steps(50, 50, 3), func(x, y float64) grid.Record {
				return grid.Record{Category: "ccs", Cost: x, Margin: 5}
			}),
			sweep("cement", "normal", steps(100, 100, 3), steps(50, 50, 3), func(x, y float64) grid.Record {
				return grid.Record{Category: "ccs", Cost: x, Margin: 5}
			})[1:]...),
	},
}
