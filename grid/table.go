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

// Package grid holds the tidy result table of a parameter sweep and
// reshapes the records of one panel into aligned matrices.
//
// All matrices of a panel have one row per Y value (ascending) and one
// column per X value (ascending).
package grid

import (
	"fmt"
	"math"
	"slices"
)

// Record is one row of the result table.
// Missing Cost and Margin values are NaN.
type Record struct {
	Sector   string
	Scenario string
	Category string // empty if no technology is viable at this point

	X float64 // CO2 price
	Y float64 // hydrogen price

	Cost   float64 // abatement cost
	Margin float64 // cost gap to the runner-up, non-negative
}

// PanelSpec selects the records of one panel.
type PanelSpec struct {
	Scenario string
	Sector   string
}

func (s PanelSpec) String() string {
	return s.Scenario + "/" + s.Sector
}

// Table is an immutable collection of records.
type Table struct {
	records []Record
}

// NewTable returns a table holding a copy of records.
func NewTable(records []Record) *Table {
	return &Table{records: slices.Clone(records)}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of all records.
func (t *Table) Records() []Record {
	return slices.Clone(t.records)
}

// Validate checks every record for values which cannot be rendered.
func (t *Table) Validate() error {
	for i, r := range t.records {
		var msg string
		switch {
		case r.Sector == "":
			msg = "empty sector"
		case r.Scenario == "":
			msg = "empty scenario"
		case math.IsNaN(r.X) || math.IsInf(r.X, 0):
			msg = fmt.Sprintf("invalid x value %g", r.X)
		case math.IsNaN(r.Y) || math.IsInf(r.Y, 0):
			msg = fmt.Sprintf("invalid y value %g", r.Y)
		case r.Margin < 0:
			msg = fmt.Sprintf("negative margin %g", r.Margin)
		}
		if msg != "" {
			return &SchemaError{Record: i + 1, Msg: msg}
		}
	}
	return nil
}

// Panel returns the records belonging to one panel, in table order.
func (t *Table) Panel(spec PanelSpec) []Record {
	var res []Record
	for _, r := range t.records {
		if r.Scenario == spec.Scenario && r.Sector == spec.Sector {
			res = append(res, r)
		}
	}
	return res
}

// Sectors returns the distinct sectors in order of first appearance.
func (t *Table) Sectors() []string {
	return t.distinct(func(r Record) string { return r.Sector })
}

// Scenarios returns the distinct scenarios in order of first appearance.
func (t *Table) Scenarios() []string {
	return t.distinct(func(r Record) string { return r.Scenario })
}

func (t *Table) distinct(key func(Record) string) []string {
	seen := make(map[string]bool)
	var res []string
	for _, r := range t.records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			res = append(res, k)
		}
	}
	return res
}
