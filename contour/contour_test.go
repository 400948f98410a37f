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

package contour

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/geom/vec"
)

func near(p, q vec.Vec2) bool {
	return p.Sub(q).Length() < 1e-9
}

// TestCellCentres checks that contour points are placed relative to cell
// centres: a crossing half way between rows 0 and 1 lies at y = 1.0,
// not at y = 0.5.
func TestCellCentres(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		80, 90, // y index 0
		70, 60, // y index 1
	})
	lines := Extract(m, []float64{75})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	if l.Closed || l.Level != 75 {
		t.Errorf("unexpected line %+v", l)
	}
	want := []vec.Vec2{{X: 0.5, Y: 1}, {X: 1.5, Y: 1}}
	if len(l.Points) != 2 {
		t.Fatalf("expected 2 points, got %v", l.Points)
	}
	if !(near(l.Points[0], want[0]) && near(l.Points[1], want[1])) &&
		!(near(l.Points[0], want[1]) && near(l.Points[1], want[0])) {
		t.Errorf("expected %v, got %v", want, l.Points)
	}
}

func TestClosedLine(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0, 10, 0,
		0, 0, 0,
	})
	lines := Extract(m, []float64{5})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	if !l.Closed || len(l.Points) != 4 {
		t.Fatalf("expected a closed line with 4 points, got %+v", l)
	}
	for _, p := range l.Points {
		if d := math.Abs(p.X-1.5) + math.Abs(p.Y-1.5); math.Abs(d-0.5) > 1e-9 {
			t.Errorf("point %v not on the diamond around the centre cell", p)
		}
	}
	if got, want := l.Length(), 4*math.Sqrt(0.5); math.Abs(got-want) > 1e-9 {
		t.Errorf("length %g, expected %g", got, want)
	}

	anchor, _ := l.LabelAnchor()
	if d := math.Abs(anchor.X-1.5) + math.Abs(anchor.Y-1.5); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("label anchor %v is not on the line", anchor)
	}
}

func TestMaskedCorner(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0, 10, 0,
		0, 0, math.NaN(),
	})
	lines := Extract(m, []float64{5})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	if l.Closed {
		t.Error("line through a masked square must not be closed")
	}
	if len(l.Points) != 4 {
		t.Errorf("expected 4 points, got %v", l.Points)
	}
	for _, p := range l.Points {
		if p.X > 2 && p.Y > 2 {
			t.Errorf("point %v inside the masked square", p)
		}
	}
}

func TestAllMasked(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 10, math.NaN(), 10})
	if lines := Extract(m, []float64{5}); len(lines) != 0 {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestSaddle(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{
		10, 0,
		0, 10,
	})

	// centre value 5 is above level 4: the two high corners are connected
	// and the lines cut off the low corners (1.5, 0.5) and (0.5, 1.5).
	lines := Extract(m, []float64{4})
	if len(lines) != 2 {
		t.Fatalf("level 4: expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		s := math.Copysign(1, l.Points[0].X-l.Points[0].Y)
		for _, p := range l.Points {
			if (p.X-p.Y)*s <= 0 {
				t.Errorf("level 4: line %v crosses the diagonal", l.Points)
			}
		}
	}

	// centre value 5 is below level 6: the lines cut off the high corners.
	lines = Extract(m, []float64{6})
	if len(lines) != 2 {
		t.Fatalf("level 6: expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		s := math.Copysign(1, l.Points[0].X+l.Points[0].Y-2)
		for _, p := range l.Points {
			if (p.X+p.Y-2)*s <= 0 {
				t.Errorf("level 6: line %v crosses the anti-diagonal", l.Points)
			}
		}
	}
}

func TestJoinLongLine(t *testing.T) {
	// a ramp in x gives one straight vertical line through all rows
	const n = 6
	m := mat.NewDense(n, n, nil)
	for i := range n {
		for j := range n {
			m.Set(i, j, float64(j))
		}
	}
	lines := Extract(m, []float64{2.5, 100})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	l := lines[0]
	if len(l.Points) != n {
		t.Fatalf("expected %d points, got %d", n, len(l.Points))
	}
	for _, p := range l.Points {
		if math.Abs(p.X-3) > 1e-9 {
			t.Errorf("point %v not at x=3", p)
		}
	}
	anchor, angle := l.LabelAnchor()
	if !near(anchor, vec.Vec2{X: 3, Y: 3}) {
		t.Errorf("label anchor %v, expected (3, 3)", anchor)
	}
	if math.Abs(math.Abs(angle)-math.Pi/2) > 1e-9 {
		t.Errorf("angle %g, expected vertical", angle)
	}
}

func TestLevelsFor(t *testing.T) {
	l := DefaultLevels()
	if got := l.For("steel"); !slices.Equal(got, []float64{0, 50, 100, 150, 200, 250}) {
		t.Errorf("steel: got %v", got)
	}
	if got := l.For("plane"); !slices.Equal(got, []float64{0, 400, 800, 1200, 1600}) {
		t.Errorf("plane: got %v", got)
	}

	custom := Levels{Default: []float64{3, 1, 2}}
	if got := custom.For("x"); !slices.Equal(got, []float64{1, 2, 3}) {
		t.Errorf("levels not sorted: %v", got)
	}
	if !slices.Equal(custom.Default, []float64{3, 1, 2}) {
		t.Error("For modified the receiver")
	}
}
