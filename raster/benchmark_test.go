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
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// wave returns n points of a sine wave spanning a size x size canvas,
// similar in shape to a long contour line.
func wave(size, n int) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range n {
		x := float64(i) / float64(n-1) * float64(size)
		pts[i] = vec.Vec2{X: x, Y: float64(size) / 2 * (1 + 0.8*math.Sin(x/float64(size)*6*math.Pi))}
	}
	return pts
}

// BenchmarkStrokeContour strokes a contour-like polyline.
func BenchmarkStrokeContour(b *testing.B) {
	for _, size := range []int{200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			emit := Painter(dst, color.Black)

			p := Polyline(wave(size, 400), false)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = 1.5
				r.Stroke(p, emit)
			}
		})
	}
}

// BenchmarkFillPolygon fills the region below the wave with our rasteriser.
func BenchmarkFillPolygon(b *testing.B) {
	for _, size := range []int{200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			pts := []vec.Vec2{{X: 0, Y: float64(size)}}
			pts = append(pts, wave(size, 400)...)
			pts = append(pts, vec.Vec2{X: float64(size), Y: float64(size)})
			p := Polyline(pts, true)

			b.ReportAllocs()
			for b.Loop() {
				r.Fill(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorPolygon fills the same region with x/image/vector.
func BenchmarkVectorPolygon(b *testing.B) {
	for _, size := range []int{200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})
			pts := wave(size, 400)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				r.MoveTo(0, float32(size))
				for _, pt := range pts {
					r.LineTo(float32(pt.X), float32(pt.Y))
				}
				r.LineTo(float32(size), float32(size))
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}
