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
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/landscape/palette"
)

// Layout gives the axes of a complete rectangular grid.
type Layout struct {
	X []float64 // ascending, one entry per column
	Y []float64 // ascending, one entry per row

	col map[float64]int
	row map[float64]int
}

// NewLayout derives the axes from the records of one panel. It returns an
// [*IncompleteGridError] unless every X value is paired with every Y value
// exactly once.
func NewLayout(records []Record) (*Layout, error) {
	if len(records) == 0 {
		return nil, ErrEmptyPanel
	}
	for i, r := range records {
		if math.IsNaN(r.X) || math.IsInf(r.X, 0) || math.IsNaN(r.Y) || math.IsInf(r.Y, 0) {
			return nil, &SchemaError{Record: i + 1, Msg: fmt.Sprintf("invalid grid point (%g, %g)", r.X, r.Y)}
		}
	}

	l := &Layout{
		col: make(map[float64]int),
		row: make(map[float64]int),
	}
	for _, r := range records {
		if _, ok := l.col[r.X]; !ok {
			l.col[r.X] = 0
			l.X = append(l.X, r.X)
		}
		if _, ok := l.row[r.Y]; !ok {
			l.row[r.Y] = 0
			l.Y = append(l.Y, r.Y)
		}
	}
	slices.Sort(l.X)
	slices.Sort(l.Y)
	for j, x := range l.X {
		l.col[x] = j
	}
	for i, y := range l.Y {
		l.row[y] = i
	}

	nx := len(l.X)
	count := make([]int, nx*len(l.Y))
	for _, r := range records {
		count[l.row[r.Y]*nx+l.col[r.X]]++
	}
	var missing, dup []Point
	for k, n := range count {
		p := Point{X: l.X[k%nx], Y: l.Y[k/nx]}
		switch {
		case n == 0:
			missing = append(missing, p)
		case n > 1:
			dup = append(dup, p)
		}
	}
	if missing != nil || dup != nil {
		return nil, &IncompleteGridError{Missing: missing, Duplicate: dup}
	}
	return l, nil
}

// Rows returns the number of Y values.
func (l *Layout) Rows() int {
	return len(l.Y)
}

// Cols returns the number of X values.
func (l *Layout) Cols() int {
	return len(l.X)
}

// Index returns the (row, column) position of a grid point.
func (l *Layout) Index(x, y float64) (row, col int, ok bool) {
	col, okX := l.col[x]
	row, okY := l.row[y]
	return row, col, okX && okY
}

// Reshape places value(r) for every record at the record's grid position.
// The records must be the ones the layout was built from.
func (l *Layout) Reshape(records []Record, value func(Record) (float64, error)) (*mat.Dense, error) {
	m := mat.NewDense(l.Rows(), l.Cols(), nil)
	for _, r := range records {
		i, j, ok := l.Index(r.X, r.Y)
		if !ok {
			return nil, &IncompleteGridError{Missing: []Point{{X: r.X, Y: r.Y}}}
		}
		v, err := value(r)
		if err != nil {
			return nil, err
		}
		m.Set(i, j, v)
	}
	return m, nil
}

// Field selects the value which [Reshape] extracts from a record.
type Field int

// These are the supported fields.
const (
	FieldCode Field = iota
	FieldCost
	FieldMargin
)

// Value returns the field value of r. Category codes are looked up in pal;
// points without a category or without a cost give NaN.
func (f Field) Value(r Record, pal *palette.Palette) (float64, error) {
	switch f {
	case FieldCode:
		if r.Category == "" {
			return math.NaN(), nil
		}
		code, err := pal.Code(r.Category)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(r.Cost) {
			return math.NaN(), nil
		}
		return code, nil
	case FieldCost:
		return r.Cost, nil
	case FieldMargin:
		return r.Margin, nil
	default:
		return 0, fmt.Errorf("grid: invalid field %d", int(f))
	}
}

// Reshape arranges one field of the records of a single panel as a matrix
// with rows ascending by Y and columns ascending by X.
func Reshape(records []Record, field Field, pal *palette.Palette) (*mat.Dense, *Layout, error) {
	l, err := NewLayout(records)
	if err != nil {
		return nil, nil, err
	}
	m, err := l.Reshape(records, func(r Record) (float64, error) {
		return field.Value(r, pal)
	})
	if err != nil {
		return nil, nil, err
	}
	return m, l, nil
}

// Panel holds the aligned matrices of one panel.
type Panel struct {
	Spec PanelSpec
	X, Y []float64

	Codes   *mat.Dense // palette codes, NaN for points without data
	Costs   *mat.Dense
	Margins *mat.Dense
}

// NewPanel reshapes the records of one panel. All three matrices are
// built from the same layout.
func NewPanel(spec PanelSpec, records []Record, pal *palette.Palette) (*Panel, error) {
	l, err := NewLayout(records)
	if err != nil {
		var incomplete *IncompleteGridError
		if errors.As(err, &incomplete) {
			incomplete.Spec = spec
		}
		return nil, err
	}

	p := &Panel{Spec: spec, X: l.X, Y: l.Y}
	fields := []struct {
		f   Field
		dst **mat.Dense
	}{
		{FieldCode, &p.Codes},
		{FieldCost, &p.Costs},
		{FieldMargin, &p.Margins},
	}
	for _, fd := range fields {
		m, err := l.Reshape(records, func(r Record) (float64, error) {
			return fd.f.Value(r, pal)
		})
		if err != nil {
			return nil, err
		}
		*fd.dst = m
	}
	return p, nil
}

// Masked returns a copy of the cost matrix where points without data are
// NaN, for use as contour input.
func (p *Panel) Masked() *mat.Dense {
	r, c := p.Costs.Dims()
	m := mat.NewDense(r, c, nil)
	for i := range r {
		for j := range c {
			v := p.Costs.At(i, j)
			if math.IsNaN(p.Codes.At(i, j)) {
				v = math.NaN()
			}
			m.Set(i, j, v)
		}
	}
	return m
}
