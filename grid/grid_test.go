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

package grid

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"seehuhn.de/go/landscape/palette"
)

// sweep builds a 3x3 grid for two sectors. Points are listed in a
// shuffled order so that the reshape has to sort them.
func sweep() []Record {
	xs := []float64{300, 100, 200}
	ys := []float64{90, 30, 60}
	cats := []string{"h2", "ccs", "ccu"}
	var recs []Record
	for _, sector := range []string{"steel", "cement"} {
		for a, y := range ys {
			for b, x := range xs {
				recs = append(recs, Record{
					Sector:   sector,
					Scenario: "normal",
					Category: cats[(a+b)%3],
					X:        x,
					Y:        y,
					Cost:     x + y/1000 + float64(len(sector)),
					Margin:   float64(a*3 + b),
				})
			}
		}
	}
	return recs
}

func TestReshapeRoundTrip(t *testing.T) {
	pal := palette.Default()
	tab := NewTable(sweep())

	for _, sector := range tab.Sectors() {
		spec := PanelSpec{Scenario: "normal", Sector: sector}
		recs := tab.Panel(spec)
		p, err := NewPanel(spec, recs, pal)
		if err != nil {
			t.Fatal(err)
		}

		wantX := []float64{100, 200, 300}
		wantY := []float64{30, 60, 90}
		for j := range wantX {
			if p.X[j] != wantX[j] || p.Y[j] != wantY[j] {
				t.Fatalf("%s: unexpected axes %v %v", sector, p.X, p.Y)
			}
		}

		for _, r := range recs {
			i, j, ok := indexOf(p, r.X, r.Y)
			if !ok {
				t.Fatalf("%s: point (%g, %g) not on the axes", sector, r.X, r.Y)
			}
			if got := p.Costs.At(i, j); got != r.Cost {
				t.Errorf("%s: cost at (%g, %g) is %g, expected %g", sector, r.X, r.Y, got, r.Cost)
			}
			if got := p.Margins.At(i, j); got != r.Margin {
				t.Errorf("%s: margin at (%g, %g) is %g, expected %g", sector, r.X, r.Y, got, r.Margin)
			}
			code, _ := pal.Code(r.Category)
			if got := p.Codes.At(i, j); got != code {
				t.Errorf("%s: code at (%g, %g) is %g, expected %g", sector, r.X, r.Y, got, code)
			}
		}
	}
}

func indexOf(p *Panel, x, y float64) (int, int, bool) {
	i, j := -1, -1
	for k, v := range p.Y {
		if v == y {
			i = k
		}
	}
	for k, v := range p.X {
		if v == x {
			j = k
		}
	}
	return i, j, i >= 0 && j >= 0
}

func TestReshapeField(t *testing.T) {
	recs := NewTable(sweep()).Panel(PanelSpec{Scenario: "normal", Sector: "steel"})
	m, l, err := Reshape(recs, FieldMargin, palette.Default())
	if err != nil {
		t.Fatal(err)
	}
	r, c := m.Dims()
	if r != 3 || c != 3 || l.Rows() != 3 || l.Cols() != 3 {
		t.Fatalf("unexpected dimensions %dx%d", r, c)
	}
	// y=30 was listed second, x=100 second: margin 1*3+1
	if got := m.At(0, 0); got != 4 {
		t.Errorf("margin at (100, 30) is %g, expected 4", got)
	}
}

func TestIncompleteGrid(t *testing.T) {
	recs := NewTable(sweep()).Panel(PanelSpec{Scenario: "normal", Sector: "steel"})

	cases := map[string]struct {
		recs      []Record
		missing   int
		duplicate int
	}{
		"missing":   {recs[1:], 1, 0},
		"duplicate": {append(recs[:len(recs):len(recs)], recs[4]), 0, 1},
		"both":      {append(recs[1:len(recs):len(recs)], recs[4]), 1, 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			spec := PanelSpec{Scenario: "normal", Sector: "steel"}
			_, err := NewPanel(spec, tc.recs, palette.Default())
			var incomplete *IncompleteGridError
			if !errors.As(err, &incomplete) {
				t.Fatalf("expected IncompleteGridError, got %v", err)
			}
			if len(incomplete.Missing) != tc.missing || len(incomplete.Duplicate) != tc.duplicate {
				t.Errorf("got %d missing and %d duplicate points",
					len(incomplete.Missing), len(incomplete.Duplicate))
			}
			if incomplete.Spec != spec {
				t.Errorf("error does not name the panel: %v", err)
			}
		})
	}

	if _, err := NewLayout(nil); !errors.Is(err, ErrEmptyPanel) {
		t.Errorf("expected ErrEmptyPanel, got %v", err)
	}
}

func TestNoData(t *testing.T) {
	recs := []Record{
		{Sector: "s", Scenario: "a", Category: "h2", X: 1, Y: 1, Cost: 10, Margin: 1},
		{Sector: "s", Scenario: "a", Category: "", X: 2, Y: 1, Cost: math.NaN(), Margin: math.NaN()},
		{Sector: "s", Scenario: "a", Category: "ccs", X: 1, Y: 2, Cost: math.NaN(), Margin: 0},
		{Sector: "s", Scenario: "a", Category: "ccs", X: 2, Y: 2, Cost: 20, Margin: math.NaN()},
	}
	p, err := NewPanel(PanelSpec{Scenario: "a", Sector: "s"}, recs, palette.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(p.Codes.At(0, 1)) {
		t.Error("point without category should have no code")
	}
	if !math.IsNaN(p.Codes.At(1, 0)) {
		t.Error("point without cost should have no code")
	}
	if p.Codes.At(1, 1) != 0.8 {
		t.Errorf("ccs: expected code 0.8, got %g", p.Codes.At(1, 1))
	}
	if !math.IsNaN(p.Margins.At(1, 1)) {
		t.Error("missing margin was replaced")
	}

	masked := p.Masked()
	if !math.IsNaN(masked.At(0, 1)) || masked.At(1, 1) != 20 {
		t.Errorf("unexpected masked costs %v", masked.RawMatrix().Data)
	}
}

func TestUnknownCategory(t *testing.T) {
	recs := []Record{
		{Sector: "s", Scenario: "a", Category: "nuclear", X: 1, Y: 1, Cost: 10},
	}
	_, err := NewPanel(PanelSpec{Scenario: "a", Sector: "s"}, recs, palette.Default())
	var unknown *palette.UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := Record{Sector: "s", Scenario: "a", Category: "h2", X: 1, Y: 1}
	cases := map[string]func(*Record){
		"sector":   func(r *Record) { r.Sector = "" },
		"scenario": func(r *Record) { r.Scenario = "" },
		"x":        func(r *Record) { r.X = math.Inf(1) },
		"y":        func(r *Record) { r.Y = math.NaN() },
		"margin":   func(r *Record) { r.Margin = -1 },
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			bad := good
			modify(&bad)
			err := NewTable([]Record{good, bad}).Validate()
			var schema *SchemaError
			if !errors.As(err, &schema) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schema.Record != 2 {
				t.Errorf("expected record 2, got %d", schema.Record)
			}
		})
	}
	if err := NewTable([]Record{good}).Validate(); err != nil {
		t.Error(err)
	}
}

func TestReadCSV(t *testing.T) {
	in := `sector,scenario,type,co2_LCO,h2_LCO,fscp,delta_fscp,comment
steel,normal,h2,100,50,80,10,x
steel,normal,ccs,200,50,90,10,
steel,normal,h2,100,150,,nan,
steel,normal,,200,150,nan,,
`
	tab, err := ReadCSV(strings.NewReader(in), Columns{})
	if err != nil {
		t.Fatal(err)
	}
	recs := tab.Records()
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	if recs[1].Category != "ccs" || recs[1].X != 200 || recs[1].Cost != 90 {
		t.Errorf("unexpected record %+v", recs[1])
	}
	if !math.IsNaN(recs[2].Cost) || !math.IsNaN(recs[2].Margin) {
		t.Errorf("missing values not NaN: %+v", recs[2])
	}
	if recs[3].Category != "" {
		t.Errorf("expected empty category, got %q", recs[3].Category)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tab, Columns{}); err != nil {
		t.Fatal(err)
	}
	again, err := ReadCSV(&buf, Columns{})
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range again.Records() {
		if r.Category != recs[i].Category || r.X != recs[i].X || r.Y != recs[i].Y {
			t.Errorf("record %d changed: %+v", i, r)
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	cases := map[string]struct {
		in   string
		line int
		col  string
	}{
		"missing_column": {"sector,scenario,type,co2_LCO,h2_LCO,fscp\n", 1, "delta_fscp"},
		"bad_number":     {"sector,scenario,type,co2_LCO,h2_LCO,fscp,delta_fscp\ns,a,h2,1,abc,1,1\n", 2, "h2_LCO"},
		"missing_x":      {"sector,scenario,type,co2_LCO,h2_LCO,fscp,delta_fscp\ns,a,h2,,1,1,1\n", 2, "co2_LCO"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tc.in), Columns{})
			var schema *SchemaError
			if !errors.As(err, &schema) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schema.Line != tc.line || schema.Column != tc.col {
				t.Errorf("expected line %d column %q, got %v", tc.line, tc.col, err)
			}
		})
	}
}

func TestReadCSVCustomColumns(t *testing.T) {
	in := "sector,scenario,tech,x,y,fscp,delta_fscp\ncement,ccu,ccs,1,2,3,4\n"
	tab, err := ReadCSV(strings.NewReader(in), Columns{Category: "tech", X: "x", Y: "y"})
	if err != nil {
		t.Fatal(err)
	}
	r := tab.Records()[0]
	if r.Category != "ccs" || r.X != 1 || r.Y != 2 || r.Cost != 3 || r.Margin != 4 {
		t.Errorf("unexpected record %+v", r)
	}
}
