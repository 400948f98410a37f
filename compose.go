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

package landscape

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/landscape/palette"
)

// ErrDimensionMismatch is returned when the matrices of a panel do not
// have the same shape.
var ErrDimensionMismatch = errors.New("matrix dimensions do not match")

// Overlay describes the confidence layer of a panel.
type Overlay struct {
	// Threshold is the margin at which the overlay alpha saturates.
	// Must be positive.
	Threshold float64

	// Color is the neutral hue of the overlay. Its alpha is ignored.
	Color color.NRGBA

	// Inverted uses 1 - alpha, so that small margins are opaque.
	Inverted bool
}

// Raster is the composed cell image of one panel.
type Raster struct {
	// Image has one pixel per grid cell. The top row holds the highest Y
	// value, so that the image can be drawn without flipping.
	Image *image.RGBA

	// Mask is opaque for cells without data, which are left transparent
	// in Image. Mask is nil if every cell has data.
	Mask *image.Alpha
}

// OverlayAlpha returns clamp(margin/threshold, 0, 1). A NaN margin gives 0.
func OverlayAlpha(margin, threshold float64) float64 {
	if math.IsNaN(margin) {
		return 0
	}
	return min(max(margin/threshold, 0), 1)
}

// Compose paints the category codes with the palette colours and blends
// the confidence overlay on top.
func Compose(codes, margins *mat.Dense, pal *palette.Palette, ov Overlay) (*Raster, error) {
	rows, cols := codes.Dims()
	if r, c := margins.Dims(); r != rows || c != cols {
		return nil, fmt.Errorf("%w: codes %dx%d, margins %dx%d",
			ErrDimensionMismatch, rows, cols, r, c)
	}
	if !(ov.Threshold > 0) {
		return nil, fmt.Errorf("invalid overlay threshold %g", ov.Threshold)
	}

	res := &Raster{Image: image.NewRGBA(image.Rect(0, 0, cols, rows))}
	for i := range rows {
		y := rows - 1 - i
		for j := range cols {
			base, ok := pal.Color(codes.At(i, j))
			if !ok {
				if res.Mask == nil {
					res.Mask = image.NewAlpha(res.Image.Rect)
				}
				res.Mask.SetAlpha(j, y, color.Alpha{A: 0xff})
				continue
			}

			a := OverlayAlpha(margins.At(i, j), ov.Threshold)
			if ov.Inverted && !math.IsNaN(margins.At(i, j)) {
				a = 1 - a
			}
			res.Image.SetRGBA(j, y, color.RGBA{
				R: mix(ov.Color.R, base.R, a),
				G: mix(ov.Color.G, base.G, a),
				B: mix(ov.Color.B, base.B, a),
				A: 0xff,
			})
		}
	}
	return res, nil
}

// mix composites an overlay channel with opacity a over an opaque base.
func mix(over, base uint8, a float64) uint8 {
	return uint8(float64(over)*a + float64(base)*(1-a) + 0.5)
}

// hatch is an unbounded pattern of diagonal lines.
type hatch struct {
	fg, bg  color.NRGBA
	spacing int
}

func (h hatch) ColorModel() color.Model {
	return color.NRGBAModel
}

func (h hatch) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (h hatch) At(x, y int) color.Color {
	k := (x + y) % h.spacing
	if k < 0 {
		k += h.spacing
	}
	if k == 0 {
		return h.fg
	}
	return h.bg
}
