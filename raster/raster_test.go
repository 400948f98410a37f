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

package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// coverageGrid collects emitted coverage into a w*h buffer.
func coverageGrid(w, h int) ([]float32, EmitFunc) {
	buf := make([]float32, w*h)
	emit := func(y, xMin int, cov []float32) {
		for i, c := range cov {
			buf[y*w+xMin+i] = c
		}
	}
	return buf, emit
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 1},
	}, true)

	r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
	cov, emit := coverageGrid(10, 1)
	r.Fill(p, emit)

	for x := range 10 {
		want := float32(2*x+1) / 20
		if math.Abs(float64(cov[x]-want)) > 1e-6 {
			t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, want, cov[x])
		}
	}
}

func TestFillScaledRectangle(t *testing.T) {
	// a unit square scaled by the CTM to cover pixels [2,6)x[1,4)
	p := Polyline([]vec.Vec2{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}, true)

	r := NewRasterizer(rect.Rect{URx: 8, URy: 6})
	r.CTM = matrix.Matrix{4, 0, 0, 3, 2, 1}
	cov, emit := coverageGrid(8, 6)
	r.Fill(p, emit)

	for y := range 6 {
		for x := range 8 {
			want := float32(0)
			if x >= 2 && x < 6 && y >= 1 && y < 4 {
				want = 1
			}
			if got := cov[y*8+x]; math.Abs(float64(got-want)) > 1e-6 {
				t.Errorf("pixel (%d,%d): expected %.2f, got %.4f", x, y, want, got)
			}
		}
	}
}

func TestFillClip(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: -5, Y: -5},
		{X: 20, Y: -5},
		{X: 20, Y: 20},
		{X: -5, Y: 20},
	}, true)

	r := NewRasterizer(rect.Rect{URx: 4, URy: 4})
	rows := 0
	r.Fill(p, func(y, xMin int, cov []float32) {
		rows++
		if y < 0 || y >= 4 || xMin < 0 || xMin+len(cov) > 4 {
			t.Errorf("row %d [%d,%d) outside clip", y, xMin, xMin+len(cov))
		}
		for i, c := range cov {
			if c != 1 {
				t.Errorf("pixel (%d,%d): expected full coverage, got %.4f", xMin+i, y, c)
			}
		}
	})
	if rows != 4 {
		t.Errorf("expected 4 rows, got %d", rows)
	}
}

func TestStrokeHorizontal(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: 2, Y: 5},
		{X: 12, Y: 5},
	}, false)

	r := NewRasterizer(rect.Rect{URx: 16, URy: 10})
	r.Width = 2
	cov, emit := coverageGrid(16, 10)
	r.Stroke(p, emit)

	for y := range 10 {
		for x := range 16 {
			want := float32(0)
			if (y == 4 || y == 5) && x >= 2 && x < 12 {
				want = 1
			}
			if got := cov[y*16+x]; math.Abs(float64(got-want)) > 1e-5 {
				t.Errorf("pixel (%d,%d): expected %.2f, got %.4f", x, y, want, got)
			}
		}
	}
}

func TestStrokeCaps(t *testing.T) {
	cases := []struct {
		name    string
		cap     graphics.LineCapStyle
		outside float32 // coverage of pixel 12 (just past the end point)
	}{
		{"butt", graphics.LineCapButt, 0},
		{"square", graphics.LineCapSquare, 1},
		{"round", graphics.LineCapRound, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Polyline([]vec.Vec2{
				{X: 2, Y: 5},
				{X: 12, Y: 5},
			}, false)
			r := NewRasterizer(rect.Rect{URx: 16, URy: 10})
			r.Width = 2
			r.Cap = tc.cap
			cov, emit := coverageGrid(16, 10)
			r.Stroke(p, emit)

			got := cov[5*16+12]
			switch tc.cap {
			case graphics.LineCapRound:
				// a quarter of the unit disc covers about 0.78 of the pixel
				if got < 0.3 || got > 0.95 {
					t.Errorf("round cap: coverage %.3f not partial", got)
				}
			default:
				if math.Abs(float64(got-tc.outside)) > 1e-5 {
					t.Errorf("expected %.2f, got %.4f", tc.outside, got)
				}
			}
		})
	}
}

func TestStrokeDash(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: 0, Y: 5},
		{X: 20, Y: 5},
	}, false)

	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Width = 2
	r.Dash = []float64{4, 4}
	cov, emit := coverageGrid(20, 10)
	r.Stroke(p, emit)

	for x := range 20 {
		want := float32(0)
		if (x/4)%2 == 0 {
			want = 1
		}
		if got := cov[5*20+x]; math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("pixel %d: expected %.0f, got %.4f", x, want, got)
		}
	}
}

func TestStrokeDashPhase(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: 0, Y: 5},
		{X: 20, Y: 5},
	}, false)

	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Width = 2
	r.Dash = []float64{4, 4}
	r.DashPhase = 4 // starts with a gap
	cov, emit := coverageGrid(20, 10)
	r.Stroke(p, emit)

	for x := range 20 {
		want := float32(0)
		if (x/4)%2 == 1 {
			want = 1
		}
		if got := cov[5*20+x]; math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("pixel %d: expected %.0f, got %.4f", x, want, got)
		}
	}
}

func TestStrokeClosedSquare(t *testing.T) {
	p := Polyline([]vec.Vec2{
		{X: 2, Y: 2},
		{X: 10, Y: 2},
		{X: 10, Y: 10},
		{X: 2, Y: 10},
	}, true)

	r := NewRasterizer(rect.Rect{URx: 12, URy: 12})
	r.Width = 2
	cov, emit := coverageGrid(12, 12)
	r.Stroke(p, emit)

	at := func(x, y int) float32 { return cov[y*12+x] }
	// miter corners fill the outer corner pixels
	for _, pt := range [][2]int{{1, 1}, {10, 1}, {1, 10}, {10, 10}} {
		if got := at(pt[0], pt[1]); math.Abs(float64(got-1)) > 1e-5 {
			t.Errorf("corner (%d,%d): expected 1, got %.4f", pt[0], pt[1], got)
		}
	}
	// the inside stays empty
	if got := at(6, 6); got != 0 {
		t.Errorf("centre: expected 0, got %.4f", got)
	}
}

// totalCoverage sums the coverage emitted for p.
func totalCoverage(r *Rasterizer, p path.Path) float64 {
	var sum float64
	r.Fill(p, func(y, xMin int, cov []float32) {
		for _, c := range cov {
			sum += float64(c)
		}
	})
	return sum
}

// TestFillQuadratic checks the area below a parabolic arc. The arc from
// (0,0) over the control point (5,10) to (10,0) peaks at height 5, so the
// area is 2/3 * 10 * 5.
func TestFillQuadratic(t *testing.T) {
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{{X: 0, Y: 0}}) &&
			yield(path.CmdQuadTo, []vec.Vec2{{X: 5, Y: 10}, {X: 10, Y: 0}}) &&
			yield(path.CmdClose, nil)
	}

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Flatness = 0.01
	want := 100.0 / 3
	if got := totalCoverage(r, p); math.Abs(got-want) > 0.1 {
		t.Errorf("expected area %.3f, got %.3f", want, got)
	}

	// a coarse tolerance cuts the arc short, but only a little
	r.Reset(rect.Rect{URx: 10, URy: 10})
	if got := totalCoverage(r, p); got > want || got < want-1.5 {
		t.Errorf("default flatness: area %.3f too far from %.3f", got, want)
	}
}

func TestFillRoundedRectangle(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Flatness = 0.01
	p := RoundedRectangle(vec.Vec2{}, vec.Vec2{X: 20, Y: 10}, 3)
	want := 200 - (4-math.Pi)*9
	if got := totalCoverage(r, p); math.Abs(got-want) > 0.1 {
		t.Errorf("expected area %.3f, got %.3f", want, got)
	}

	cov, emit := coverageGrid(20, 10)
	r.Fill(p, emit)
	if c := cov[0]; c > 0.1 {
		t.Errorf("corner pixel: coverage %.3f, expected almost none", c)
	}
	if c := cov[5*20+10]; c != 1 {
		t.Errorf("centre pixel: coverage %.3f, expected 1", c)
	}

	// radii above half the shorter side are reduced
	r.Reset(rect.Rect{URx: 20, URy: 10})
	r.Flatness = 0.01
	want = 200 - (4-math.Pi)*25
	if got := totalCoverage(r, RoundedRectangle(vec.Vec2{}, vec.Vec2{X: 20, Y: 10}, 50)); math.Abs(got-want) > 0.1 {
		t.Errorf("large radius: expected area %.3f, got %.3f", want, got)
	}
}

func TestStrokeCubicEnds(t *testing.T) {
	// an S-shaped cubic from (2,5) to (18,5) must end where it was told to
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		_ = yield(path.CmdMoveTo, []vec.Vec2{{X: 2, Y: 5}}) &&
			yield(path.CmdCubeTo, []vec.Vec2{{X: 8, Y: 9}, {X: 12, Y: 1}, {X: 18, Y: 5}})
	}
	r := NewRasterizer(rect.Rect{URx: 20, URy: 10})
	r.Width = 2
	cov, emit := coverageGrid(20, 10)
	r.Stroke(p, emit)

	if c := cov[4*20+17]; c < 0.5 {
		t.Errorf("pixel (17,4) next to the end point: coverage %.3f", c)
	}
	if c := cov[4*20+19]; c > 1e-5 {
		t.Errorf("pixel (19,4) past the butt cap: coverage %.3f", c)
	}
}

func TestPainter(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 2, 1))
	for i := range dst.Pix {
		dst.Pix[i] = 255
	}
	emit := Painter(dst, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	emit(0, 0, []float32{1, 0.5})

	if got := dst.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("full coverage: got %v", got)
	}
	got := dst.RGBAAt(1, 0)
	if got.R < 127 || got.R > 128 || got.A != 255 {
		t.Errorf("half coverage: got %v", got)
	}

	// out of bounds rows and columns are ignored
	emit(3, 0, []float32{1})
	emit(0, -1, []float32{1, 1})
}
