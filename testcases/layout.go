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

var layoutCases = []TestCase{
	{
		Name:        "uneven_axes",
		Description: "x values are not evenly spaced",
		Categories:  []string{"h2", "ccs"},
		Records: sweep("steel", "normal", []float64{10, 20, 30, 40, 80, 160}, steps(50, 25, 4), func(x, y float64) grid.Record {
			cat := "h2"
			if x > 30 {
				cat = "ccs"
			}
			return grid.Record{Category: cat, Cost: x + y, Margin: x / 2}
		}),
		Valid: true,
	},
	{
		Name:        "two_sectors",
		Description: "3x3 grids for two sectors, listed in reverse order",
		Categories:  []string{"h2", "ccu", "ccs"},
		Records: append(
			sweep("cement", "normal", steps(300, -100, 3), steps(90, -30, 3), threeWay),
			sweep("steel", "normal", steps(300, -100, 3), steps(90, -30, 3), threeWay)...),
		Valid: true,
	},
	{
		Name:        "two_scenarios",
		Description: "two rows, the second without DAC compensation",
		Records: append(
			sweep("ship", "normal", steps(0, 250, 5), steps(40, 40, 5), compOrH2),
			sweep("ship", "comp", steps(0, 250, 5), steps(40, 40, 5), func(x, y float64) grid.Record {
				r := compOrH2(x, y)
				r.Category = "h2"
				return r
			})...),
		Valid: true,
	},
}

func threeWay(x, y float64) grid.Record {
	cats := []string{"h2", "ccu", "ccs"}
	i := int(x/100+y/30) % 3
	return grid.Record{Category: cats[i], Cost: x + 10*y, Margin: y}
}

func compOrH2(x, y float64) grid.Record {
	h2 := 80 + 4.5*y
	comp := 150 + 1.05*x
	if h2 <= comp {
		return grid.Record{Category: "h2", Cost: h2, Margin: comp - h2}
	}
	return grid.Record{Category: "comp", Cost: comp, Margin: h2 - comp}
}
