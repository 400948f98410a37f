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
	"maps"
	"regexp"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/landscape/grid"
)

var validName = regexp.MustCompile(`^[a-z_]+$`)

func TestCases(t *testing.T) {
	seen := make(map[string]bool)
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, tc := range All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				if !validName.MatchString(tc.Name) {
					t.Errorf("invalid name %q", tc.Name)
				}
				if seen[name] {
					t.Errorf("duplicate name %q", name)
				}
				seen[name] = true

				if got, ok := Lookup(name); !ok || got.Name != tc.Name {
					t.Errorf("Lookup(%q) failed", name)
				}

				pal, err := tc.Palette()
				if err != nil {
					t.Fatal(err)
				}
				tab := tc.Table()
				if err := tab.Validate(); err != nil {
					t.Fatal(err)
				}

				var panelErr error
				for _, scenario := range tab.Scenarios() {
					for _, sector := range tab.Sectors() {
						spec := grid.PanelSpec{Scenario: scenario, Sector: sector}
						if _, err := grid.NewPanel(spec, tab.Panel(spec), pal); err != nil && panelErr == nil {
							panelErr = err
						}
					}
				}
				if tc.Valid && panelErr != nil {
					t.Errorf("valid case fails: %v", panelErr)
				} else if !tc.Valid && panelErr == nil {
					t.Error("invalid case is accepted")
				}
			})
		}
	}
}

func TestStudyMargins(t *testing.T) {
	tc, ok := Lookup("study_full")
	if !ok {
		t.Fatal("study case missing")
	}
	for _, r := range tc.Records {
		if !(r.Margin >= 0) {
			t.Fatalf("record %+v: invalid margin", r)
		}
		if r.Scenario == "comp" && r.Category == "comp" {
			t.Fatalf("record %+v: compensation in the comp scenario", r)
		}
	}
	if n := len(tc.Records); n != 3*5*13*15 {
		t.Errorf("expected %d records, got %d", 3*5*13*15, n)
	}
}

func TestRetrofitScenarios(t *testing.T) {
	tc, ok := Lookup("study_retrofit")
	if !ok {
		t.Fatal("retrofit case missing")
	}
	tab := tc.Table()

	var want []string
	for _, c := range RetrofitCases {
		for _, suffix := range RetrofitScenarios {
			want = append(want, c+suffix)
		}
	}
	if got := tab.Scenarios(); !slices.Equal(got, want) {
		t.Errorf("expected scenarios %q, got %q", want, got)
	}
	if got := tab.Sectors(); !slices.Equal(got, []string{"steel"}) {
		t.Errorf("unexpected sectors %q", got)
	}

	// offsetting residual emissions never makes a point cheaper
	type point struct {
		scenario string
		x, y     float64
	}
	cost := make(map[point]float64)
	for _, r := range tc.Records {
		cost[point{r.Scenario, r.X, r.Y}] = r.Cost
	}
	for _, r := range tc.Records {
		base, ok := strings.CutSuffix(r.Scenario, "_comp")
		if !ok {
			continue
		}
		if c := cost[point{base, r.X, r.Y}]; r.Cost < c {
			t.Errorf("%s at (%g, %g): cost %g below %g", r.Scenario, r.X, r.Y, r.Cost, c)
		}
	}
}
