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
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyPanel is returned when a panel has no records.
var ErrEmptyPanel = errors.New("grid: panel has no records")

// SchemaError reports input which does not match the table schema.
type SchemaError struct {
	Line   int    // input line, 0 if unknown
	Record int    // 1-based record number, 0 if unknown
	Column string // column name, if known
	Msg    string
	Err    error
}

func (err *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("grid: ")
	if err.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", err.Line)
	} else if err.Record > 0 {
		fmt.Fprintf(&b, "record %d: ", err.Record)
	}
	if err.Column != "" {
		fmt.Fprintf(&b, "column %q: ", err.Column)
	}
	b.WriteString(err.Msg)
	if err.Err != nil {
		b.WriteString(": ")
		b.WriteString(err.Err.Error())
	}
	return b.String()
}

func (err *SchemaError) Unwrap() error {
	return err.Err
}

// Point is a grid coordinate pair.
type Point struct {
	X, Y float64
}

// IncompleteGridError is returned when the (x, y) pairs of a panel do not
// form a complete rectangle.
type IncompleteGridError struct {
	Spec      PanelSpec
	Missing   []Point
	Duplicate []Point
}

func (err *IncompleteGridError) Error() string {
	var parts []string
	if n := len(err.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing (first at x=%g, y=%g)",
			n, err.Missing[0].X, err.Missing[0].Y))
	}
	if n := len(err.Duplicate); n > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate (first at x=%g, y=%g)",
			n, err.Duplicate[0].X, err.Duplicate[0].Y))
	}
	where := "grid"
	if err.Spec != (PanelSpec{}) {
		where = "panel " + err.Spec.String()
	}
	return "grid: incomplete " + where + ": " + strings.Join(parts, ", ")
}
