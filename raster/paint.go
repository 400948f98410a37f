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
)

// Painter returns an EmitFunc which composites c over dst, using the
// coverage values as an extra alpha factor (Porter-Duff "source over").
// Coverage outside the bounds of dst is ignored.
func Painter(dst *image.RGBA, c color.Color) EmitFunc {
	cr, cg, cb, ca := c.RGBA()
	sr := float32(cr) / 0xffff
	sg := float32(cg) / 0xffff
	sb := float32(cb) / 0xffff
	sa := float32(ca) / 0xffff
	bounds := dst.Bounds()

	return func(y, xMin int, coverage []float32) {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < bounds.Min.X || x >= bounds.Max.X || cov <= 0 {
				continue
			}
			off := dst.PixOffset(x, y)
			px := dst.Pix[off : off+4 : off+4]
			keep := 1 - sa*cov
			px[0] = blend(sr*cov, px[0], keep)
			px[1] = blend(sg*cov, px[1], keep)
			px[2] = blend(sb*cov, px[2], keep)
			px[3] = blend(sa*cov, px[3], keep)
		}
	}
}

// blend computes src + dst*keep for premultiplied 8-bit channels, where
// src is in [0, 1].
func blend(src float32, dst uint8, keep float32) uint8 {
	v := src*255 + float32(dst)*keep + 0.5
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
