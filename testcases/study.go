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
	"slices"

	"seehuhn.de/go/landscape/grid"
)

var studyCases = []TestCase{
	{
		Name:        "full",
		Description: "three scenarios and five sectors with a simple linear cost model",
		Records:     study(),
		Valid:       true,
	},
	{
		Name:        "retrofit",
		Description: "new and retrofitted steel plants, with and without full climate neutrality",
		Categories:  []string{"h2", "comp", "ccu", "ccs"},
		Records:     retrofit(),
		Valid:       true,
	},
}

// route is a linear abatement cost model in EUR/t CO2, as a function of
// the CO2 price x and the hydrogen price y.
type route struct {
	category string
	base     float64
	perX     float64
	perY     float64
}

// studyRoutes gives the available routes per sector.
var studyRoutes = map[string][]route{
	"chem": {
		{"h2", 50, 0, 5},
		{"ccu", 100, 0.8, 3.5},
		{"comp", 150, 1, 0},
	},
	"plane": {
		{"h2", 300, 0, 6},
		{"efuel", 100, 0.6, 6},
		{"comp", 200, 1.1, 0},
	},
	"ship": {
		{"h2", 80, 0, 4.5},
		{"efuel", 60, 0.5, 5},
		{"comp", 150, 1.05, 0},
	},
	"steel": {
		{"h2", -40, 0, 1.2},
		{"ccu", 60, 0.3, 0.6},
		{"ccs", 90, 0.05, 0},
		{"comp", 120, 0.5, 0},
	},
	"cement": {
		{"ccu", 40, 0.25, 0.7},
		{"ccs", 70, 0.04, 0},
		{"comp", 110, 0.45, 0},
	},
}

// StudySectors and StudyScenarios give the panel order of the study figure.
var (
	StudySectors   = []string{"chem", "plane", "ship", "steel", "cement"}
	StudyScenarios = []string{"normal", "ccu", "comp"}
)

// RetrofitCases and RetrofitScenarios give the panel order of the retrofit
// figure. The scenario of a panel is the case followed by the scenario
// suffix, for example "brownfield_comp".
var (
	RetrofitCases     = []string{"greenfield", "brownfield"}
	RetrofitScenarios = []string{"", "_comp"}
)

// retrofitRoutes modifies the steel routes for existing plants: a blast
// furnace retrofit makes CCS cheaper and the switch to hydrogen dearer.
var retrofitRoutes = map[string]map[string]float64{
	"greenfield": {},
	"brownfield": {"h2": 40, "ccs": -40},
}

// study evaluates the routes on the sweep grid. In the "ccu" scenario the
// utilised CO2 must be bought at the CO2 price; the "comp" scenario
// excludes compensation.
func study() []grid.Record {
	xs := steps(0, 100, 13)
	ys := steps(30, 15, 15)
	var res []grid.Record
	for _, scenario := range StudyScenarios {
		for _, sector := range StudySectors {
			routes := studyRoutes[sector]
			res = append(res, sweep(sector, scenario, xs, ys, func(x, y float64) grid.Record {
				costs := make([]float64, 0, len(routes))
				cats := make([]string, 0, len(routes))
				for _, r := range routes {
					if scenario == "comp" && r.category == "comp" {
						continue
					}
					c := r.base + r.perX*x + r.perY*y
					if scenario == "ccu" && r.category == "ccu" {
						c += 0.5 * x
					}
					costs = append(costs, c)
					cats = append(cats, r.category)
				}
				return cheapest(cats, costs)
			})...)
		}
	}
	return res
}

// retrofit evaluates the steel routes for new and existing plants. In the
// "_comp" scenarios the residual emissions of all routes except
// compensation are offset at the CO2 price.
func retrofit() []grid.Record {
	xs := steps(0, 100, 11)
	ys := steps(30, 15, 13)
	routes := studyRoutes["steel"]
	var res []grid.Record
	for _, c := range RetrofitCases {
		for _, suffix := range RetrofitScenarios {
			res = append(res, sweep("steel", c+suffix, xs, ys, func(x, y float64) grid.Record {
				costs := make([]float64, len(routes))
				cats := make([]string, len(routes))
				for i, r := range routes {
					v := r.base + retrofitRoutes[c][r.category] + r.perX*x + r.perY*y
					if suffix == "_comp" && r.category != "comp" {
						v += 0.1 * x
					}
					costs[i] = v
					cats[i] = r.category
				}
				return cheapest(cats, costs)
			})...)
		}
	}
	return res
}

// cheapest returns the record for the cheapest route. The margin is the
// cost difference to the runner-up, or NaN if there is only one route.
func cheapest(cats []string, costs []float64) grid.Record {
	best := slices.Index(costs, slices.Min(costs))
	margin := math.NaN()
	if len(costs) > 1 {
		rest := slices.Delete(slices.Clone(costs), best, best+1)
		margin = slices.Min(rest) - costs[best]
	}
	return grid.Record{Category: cats[best], Cost: costs[best], Margin: margin}
}
