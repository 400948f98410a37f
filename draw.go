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
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/landscape/contour"
	"seehuhn.de/go/landscape/palette"
	"seehuhn.de/go/landscape/raster"
)

const tickLength = 4

// canvas draws the elements of a figure onto one image.
// All panels share the rasteriser and the font face.
type canvas struct {
	img   *image.RGBA
	ts    *typesetter
	rz    *raster.Rasterizer
	style *RenderStyle
}

// panelCTM maps the index space of a panel with nx columns and ny rows
// onto the device rectangle area. Index y grows upwards, device y downwards.
func panelCTM(area image.Rectangle, nx, ny int) matrix.Matrix {
	sx := float64(area.Dx()) / float64(nx)
	sy := float64(area.Dy()) / float64(ny)
	return matrix.Matrix{sx, 0, 0, -sy, float64(area.Min.X), float64(area.Max.Y)}
}

// toDevice applies the CTM m to the point p.
func toDevice(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

func clipRect(r image.Rectangle) rect.Rect {
	return rect.Rect{
		LLx: float64(r.Min.X), LLy: float64(r.Min.Y),
		URx: float64(r.Max.X), URy: float64(r.Max.Y),
	}
}

// cells draws the composed cell raster into area, scaled with nearest
// neighbour sampling, and hatches the cells without data.
func (c *canvas) cells(area image.Rectangle, r *Raster) {
	draw.NearestNeighbor.Scale(c.img, area, r.Image, r.Image.Bounds(), draw.Src, nil)
	if r.Mask == nil {
		return
	}
	mask := image.NewAlpha(area)
	draw.NearestNeighbor.Scale(mask, area, r.Mask, r.Mask.Bounds(), draw.Src, nil)
	pattern := hatch{
		fg:      c.style.HatchColor,
		bg:      c.style.HatchBackground,
		spacing: c.style.HatchSpacing,
	}
	draw.DrawMask(c.img, area, pattern, area.Min, mask, area.Min, draw.Over)
}

// contours strokes the lines, given in panel index space, and labels
// them. Lines below zero are dashed.
func (c *canvas) contours(area image.Rectangle, ctm matrix.Matrix, lines []contour.Line) {
	s := c.style
	emit := raster.Painter(c.img, s.ContourColor)
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		pts := make([]vec.Vec2, len(l.Points))
		for i, pt := range l.Points {
			pts[i] = toDevice(ctm, pt)
		}
		p := raster.Polyline(pts, l.Closed)

		c.rz.Reset(clipRect(area))
		c.rz.Width = s.ContourWidth
		c.rz.Join = graphics.LineJoinRound
		c.rz.Cap = graphics.LineCapRound
		if l.Level < 0 {
			c.rz.Dash = []float64{4 * s.ContourWidth, 3 * s.ContourWidth}
		}
		c.rz.Stroke(p, emit)
	}

	if !s.ContourLabels {
		return
	}
	sub := c.img.SubImage(area).(*image.RGBA)
	for _, l := range lines {
		if len(l.Points) < 2 {
			continue
		}
		pos, _ := l.LabelAnchor()
		d := toDevice(ctm, pos)
		label := strconv.FormatFloat(l.Level, 'g', -1, 64)
		w, h := c.ts.measure(label)
		half := vec.Vec2{X: float64(w)/2 + 2, Y: float64(h) / 2}
		c.rz.Reset(clipRect(area))
		c.rz.Fill(raster.RoundedRectangle(d.Sub(half), d.Add(half), 3), raster.Painter(c.img, s.Background))
		c.ts.draw(sub, label, int(d.X+0.5), int(d.Y+0.5), centre, s.ContourColor)
	}
}

// region fills and outlines an annotation box and puts its label centred
// above the top edge.
func (c *canvas) region(area image.Rectangle, ctm matrix.Matrix, box IndexBox, label string) {
	s := c.style
	ll, ur := box.Corners()

	c.rz.Reset(clipRect(area))
	c.rz.CTM = ctm
	c.rz.Fill(raster.Rectangle(ll, ur), raster.Painter(c.img, s.RegionFill))

	dll, dur := toDevice(ctm, ll), toDevice(ctm, ur)
	c.rz.Reset(clipRect(area))
	c.rz.Width = s.RegionWidth
	c.rz.Stroke(raster.Rectangle(dll, dur), raster.Painter(c.img, s.RegionEdge))

	top := toDevice(ctm, vec.Vec2{X: (ll.X + ur.X) / 2, Y: ur.Y})
	c.ts.draw(c.img, label, int(top.X+0.5), int(top.Y)-2, bottomCentre, s.TextColor)
}

// frame outlines a rectangle just outside r.
func (c *canvas) frame(r image.Rectangle, col color.NRGBA) {
	ll := vec.Vec2{X: float64(r.Min.X) - 0.5, Y: float64(r.Min.Y) - 0.5}
	ur := vec.Vec2{X: float64(r.Max.X) + 0.5, Y: float64(r.Max.Y) + 0.5}
	c.rz.Reset(clipRect(c.img.Rect))
	c.rz.Stroke(raster.Rectangle(ll, ur), raster.Painter(c.img, col))
}

// tick draws a short tick mark from (x, y) in direction (dx, dy).
func (c *canvas) tick(x, y, dx, dy float64) {
	c.rz.Reset(clipRect(c.img.Rect))
	p := raster.Polyline([]vec.Vec2{
		{X: x, Y: y},
		{X: x + dx*tickLength, Y: y + dy*tickLength},
	}, false)
	c.rz.Stroke(p, raster.Painter(c.img, c.style.FrameColor))
}

// legend draws a vertical colour bar with one band per category into the
// column starting at x, spanning device rows y0 to y1.
func (c *canvas) legend(x, y0, y1 int, pal *palette.Palette, names []string) image.Rectangle {
	const barWidth = 18
	s := c.style
	bar := image.Rect(x, y0, x+barWidth, y1)
	h := float64(bar.Dy())
	n := pal.Len()

	c.rz.Reset(clipRect(c.img.Rect))
	for i, col := range pal.Colors() {
		top := float64(y1) - float64(i+1)*h/float64(n)
		bot := float64(y1) - float64(i)*h/float64(n)
		p := raster.Rectangle(vec.Vec2{X: float64(bar.Min.X), Y: top}, vec.Vec2{X: float64(bar.Max.X), Y: bot})
		c.rz.Fill(p, raster.Painter(c.img, col))
	}
	c.frame(bar, s.FrameColor)

	for i, t := range pal.Ticks() {
		y := float64(y1) - t*h
		c.tick(float64(bar.Max.X)+0.5, y, 1, 0)
		c.ts.draw(c.img, names[i], bar.Max.X+tickLength+4, int(y+0.5), middleLeft, s.TextColor)
	}
	return image.Rect(x, y0, x+s.LegendWidth, y1)
}
