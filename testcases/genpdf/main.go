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

// Command genpdf writes vector reference drawings of the test cases.
// For the first panel of each valid test case, it draws the category
// codes as grey levels, the contour lines and the default region boxes
// into a PDF file, in panel index coordinates. The files are used to
// inspect the raster output by eye.
package main

import (
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/landscape"
	"seehuhn.de/go/landscape/config"
	"seehuhn.de/go/landscape/contour"
	"seehuhn.de/go/landscape/grid"
	"seehuhn.de/go/landscape/testcases"
)

const (
	refDir   = "testdata/vector"
	cellSize = 16 // PDF points per grid cell
)

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			if !tc.Valid {
				continue
			}
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(refDir, name+".pdf")
			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	pal, err := tc.Palette()
	if err != nil {
		return err
	}
	tab := tc.Table()
	spec := grid.PanelSpec{Scenario: tab.Scenarios()[0], Sector: tab.Sectors()[0]}
	p, err := grid.NewPanel(spec, tab.Panel(spec), pal)
	if err != nil {
		return err
	}
	rows, cols := p.Codes.Dims()

	paper := &pdf.Rectangle{
		URx: float64(cols * cellSize),
		URy: float64(rows * cellSize),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// PDF user space and panel index space both have y pointing up.
	page.Transform(matrix.Matrix{cellSize, 0, 0, cellSize, 0, 0})

	for i := range rows {
		for j := range cols {
			code := p.Codes.At(i, j)
			if math.IsNaN(code) { // no data
				continue
			}
			page.SetFillColor(color.DeviceGray(1 - 0.8*code))
			page.Rectangle(float64(j), float64(i), 1, 1)
			page.Fill()
		}
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1.0 / cellSize)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, line := range contour.Extract(p.Masked(), contour.DefaultLevels().For(spec.Sector)) {
		for k, pt := range line.Points {
			if k == 0 {
				page.MoveTo(pt.X, pt.Y)
			} else {
				page.LineTo(pt.X, pt.Y)
			}
		}
		if line.Closed {
			page.ClosePath()
		}
		page.Stroke()
	}

	page.SetLineWidth(2.0 / cellSize)
	page.SetLineDash([]float64{4.0 / cellSize, 2.0 / cellSize}, 0)
	opts, err := config.Default().Options()
	if err != nil {
		return err
	}
	for _, r := range opts.Regions {
		box, _ := landscape.ResolveBox(p.X, p.Y, r)
		ll, ur := box.Corners()
		page.Rectangle(ll.X, ll.Y, ur.X-ll.X, ur.Y-ll.Y)
		page.Stroke()
	}

	return page.Close()
}
