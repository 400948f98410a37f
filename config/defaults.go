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

package config

import (
	"fmt"
	"maps"
	"slices"

	"seehuhn.de/go/landscape"
	"seehuhn.de/go/landscape/contour"
	"seehuhn.de/go/landscape/palette"
)

// Presets lists the built-in figure configurations by name.
var Presets = map[string]func() *Config{
	"study":    Default,
	"storage":  TransportStorage,
	"retrofit": Retrofit,
	"bfccs":    BlastFurnaceCCS,
}

// Preset returns the built-in configuration with the given name.
func Preset(name string) (*Config, error) {
	f, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: %v)",
			name, slices.Sorted(maps.Keys(Presets)))
	}
	return f(), nil
}

// Default returns the configuration of the main study figure: three
// scenarios for five sectors, where the third scenario excludes DAC
// compensation and uses a reduced palette.
func Default() *Config {
	c := base()
	c.Rows = []Row{
		{Scenario: "normal", Title: "Case 1: all options allowed"},
		{Scenario: "ccu", Title: "Case 2: CCU source required"},
		{
			Scenario:   "comp",
			Title:      "Case 3: CCU source required +\nfull climate neutrality +\nno full DACCS allowed",
			Categories: []string{"h2", "efuel", "ccu", "ccs"},
			LegendNames: []string{
				"H2/NH3\n+ DACCS",
				"E-fuel\n+ DACCS",
				"CCU\n+ DACCS",
				"CCS\n+ DACCS",
			},
		},
	}
	return c
}

// TransportStorage returns the configuration of the sensitivity figure,
// which varies the cost of CO2 transport and storage between rows.
func TransportStorage() *Config {
	c := base()
	for _, cost := range []int{8, 30, 100, 200} {
		c.Rows = append(c.Rows, Row{
			Scenario: fmt.Sprint(cost),
			Title:    fmt.Sprintf("CO2 transport and\nstorage cost:\n%d EUR/tCO2", cost),
		})
	}
	return c
}

// Retrofit returns the configuration of the steel retrofit figure, which
// compares new plants to retrofitted blast furnaces. The panel scenarios
// are "greenfield", "greenfield_comp", "brownfield" and "brownfield_comp".
func Retrofit() *Config {
	c := steelBase()
	c.Sectors = []Sector{
		{Label: "steel", Title: "Steel sector:\ngreenfield case", Case: "greenfield"},
		{Label: "steel", Title: "Steel sector:\nretrofit case", Case: "brownfield"},
	}
	c.Output.Path = "retrofit.png"
	return c
}

// BlastFurnaceCCS returns the configuration of the sensitivity figure for
// the capital cost of CCS at blast furnaces.
func BlastFurnaceCCS() *Config {
	c := steelBase()
	c.Sectors = []Sector{
		{Label: "steel", Title: "Low BF-CCS CAPEX:\n-50%", Case: "lowCCS"},
		{Label: "steel", Title: "Base assumption", Case: "normal"},
		{Label: "steel", Title: "High BF-CCS CAPEX:\n+50%", Case: "highCCS"},
	}
	c.Output.Path = "bfccs.png"
	return c
}

// steelBase holds the settings shared by the steel plant figures. The
// second row requires full climate neutrality, so that every route except
// compensation needs carbon dioxide removal.
func steelBase() *Config {
	c := &Config{
		Categories: categories("h2", "comp", "ccu", "ccs"),
		Rows: []Row{
			{Scenario: "", Title: "Standard case"},
			{
				Scenario: "_comp",
				Title:    "Climate neutrality case",
				LegendNames: []string{
					"H2/NH3\n+ CDR",
					"Compen-\nsation",
					"CCU\n+ CDR",
					"CCS\n+ CDR",
				},
			},
		},
		Levels:    &Levels{Default: []float64{0, 50, 100, 150, 200, 250}},
		Threshold: landscape.DefaultThreshold,
		Regions: []Region{
			{Label: ">2050", XLo: 80, XHi: 800, YLo: 57, YHi: 180},
		},
		Axes: Axes{
			XLabel: "Non-fossil CO2 cost (EUR/tCO2)",
			YLabel: "Low-emission H2 cost (EUR/MWh)",
			XTicks: 11,
			YTicks: 7,
		},
		Style: Style{ContourColor: "#3B3B3B"},
	}
	c.Categories[1].Name = "Compen-\nsation"

	sec := landscape.DefaultSecondary()
	c.Secondary = &Secondary{Factor: sec.Factor, Decimals: sec.Decimals, Label: "Low-emission H2 cost (EUR/kg)"}
	return c
}

// categories returns the default palette entries with the given labels,
// or all of them if no label is given.
func categories(labels ...string) []Category {
	var res []Category
	for _, cat := range palette.DefaultCategories() {
		if len(labels) > 0 && !slices.Contains(labels, cat.Label) {
			continue
		}
		res = append(res, Category{
			Label: cat.Label,
			Name:  cat.Name,
			Color: palette.Hex(cat.Color),
		})
	}
	return res
}

// base holds the settings shared by the study figures.
func base() *Config {
	c := &Config{
		Sectors: []Sector{
			{Label: "chem", Title: "Chemical feedstocks (CF)"},
			{Label: "plane", Title: "Aviation"},
			{Label: "ship", Title: "Maritime"},
			{Label: "steel", Title: "Steel"},
			{Label: "cement", Title: "Cement"},
		},
		Threshold: landscape.DefaultThreshold,
		Regions: []Region{
			{Label: ">2050", XLo: 100, XHi: 700, YLo: 60, YHi: 160},
			{Label: "2022", XLo: 900, XHi: 1200, YLo: 120, YHi: 240, Inclusive: true},
		},
		Axes: Axes{
			XLabel: "CO2 from DAC cost (EUR/tCO2)",
			YLabel: "Green H2 cost (EUR/MWh)",
			XTicks: 11,
			YTicks: 7,
		},
		Output:     Output{Path: "landscape.png"},
		Categories: categories(),
	}

	levels := contour.DefaultLevels()
	c.Levels = &Levels{Default: levels.Default, Sectors: levels.BySector}

	sec := landscape.DefaultSecondary()
	c.Secondary = &Secondary{Factor: sec.Factor, Decimals: sec.Decimals, Label: "Green H2 cost (EUR/kg)"}
	return c
}
