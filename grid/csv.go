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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Columns gives the CSV header names of the record fields.
// Empty fields fall back to [DefaultColumns].
type Columns struct {
	Sector   string `yaml:"sector,omitempty" toml:"sector,omitempty"`
	Scenario string `yaml:"scenario,omitempty" toml:"scenario,omitempty"`
	Category string `yaml:"category,omitempty" toml:"category,omitempty"`
	X        string `yaml:"x,omitempty" toml:"x,omitempty"`
	Y        string `yaml:"y,omitempty" toml:"y,omitempty"`
	Cost     string `yaml:"cost,omitempty" toml:"cost,omitempty"`
	Margin   string `yaml:"margin,omitempty" toml:"margin,omitempty"`
}

// DefaultColumns returns the column names of the sweep output files.
func DefaultColumns() Columns {
	return Columns{
		Sector:   "sector",
		Scenario: "scenario",
		Category: "type",
		X:        "co2_LCO",
		Y:        "h2_LCO",
		Cost:     "fscp",
		Margin:   "delta_fscp",
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	for _, f := range []struct{ v, def *string }{
		{&c.Sector, &d.Sector},
		{&c.Scenario, &d.Scenario},
		{&c.Category, &d.Category},
		{&c.X, &d.X},
		{&c.Y, &d.Y},
		{&c.Cost, &d.Cost},
		{&c.Margin, &d.Margin},
	} {
		if *f.v == "" {
			*f.v = *f.def
		}
	}
	return c
}

func (c Columns) names() []string {
	return []string{c.Sector, c.Scenario, c.Category, c.X, c.Y, c.Cost, c.Margin}
}

// ReadCSV reads a table from CSV data with a header line.
// Additional columns are ignored. Empty cells and "nan" in the cost and
// margin columns are missing values.
func ReadCSV(r io.Reader, cols Columns) (*Table, error) {
	cols = cols.withDefaults()
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Msg: "no header line"}
	} else if err != nil {
		return nil, csvError(err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	names := cols.names()
	idx := make([]int, len(names))
	for k, name := range names {
		i, ok := pos[name]
		if !ok {
			return nil, &SchemaError{Line: 1, Column: name, Msg: "missing column"}
		}
		idx[k] = i
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, csvError(err)
		}
		line, _ := cr.FieldPos(0)

		rec := Record{
			Sector:   strings.TrimSpace(row[idx[0]]),
			Scenario: strings.TrimSpace(row[idx[1]]),
			Category: strings.TrimSpace(row[idx[2]]),
		}
		nums := []struct {
			dst      *float64
			col      int
			nullable bool
		}{
			{&rec.X, 3, false},
			{&rec.Y, 4, false},
			{&rec.Cost, 5, true},
			{&rec.Margin, 6, true},
		}
		for _, n := range nums {
			v, err := parseNumber(row[idx[n.col]], n.nullable)
			if err != nil {
				return nil, &SchemaError{Line: line, Column: names[n.col], Msg: "invalid number", Err: err}
			}
			*n.dst = v
		}
		records = append(records, rec)
	}

	t := NewTable(records)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func parseNumber(s string, nullable bool) (float64, error) {
	s = strings.TrimSpace(s)
	if nullable && (s == "" || strings.EqualFold(s, "nan")) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func csvError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &SchemaError{Line: perr.Line, Msg: "malformed CSV", Err: perr.Err}
	}
	return err
}

// WriteCSV writes the table in the format read by [ReadCSV].
// Missing values are written as empty cells.
func WriteCSV(w io.Writer, t *Table, cols Columns) error {
	cols = cols.withDefaults()
	cw := csv.NewWriter(w)
	if err := cw.Write(cols.names()); err != nil {
		return err
	}
	row := make([]string, 7)
	for _, r := range t.records {
		row[0] = r.Sector
		row[1] = r.Scenario
		row[2] = r.Category
		row[3] = formatNumber(r.X)
		row[4] = formatNumber(r.Y)
		row[5] = formatNumber(r.Cost)
		row[6] = formatNumber(r.Margin)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("grid: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
