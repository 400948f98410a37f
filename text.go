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
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// anchor gives the reference point of a text box as fractions of its
// width and height, measured from the top left corner.
type anchor struct {
	x, y float64
}

var (
	topLeft      = anchor{0, 0}
	topCentre    = anchor{0.5, 0}
	bottomCentre = anchor{0.5, 1}
	centre       = anchor{0.5, 0.5}
	middleLeft   = anchor{0, 0.5}
	middleRight  = anchor{1, 0.5}
)

// typesetter draws multi-line labels with the Go Regular font.
type typesetter struct {
	face   font.Face
	ascent int
	lineH  int
}

func newTypesetter(size float64) (*typesetter, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	return &typesetter{
		face:   face,
		ascent: m.Ascent.Ceil(),
		lineH:  m.Height.Ceil(),
	}, nil
}

// measure returns the size of the text box of s.
func (ts *typesetter) measure(s string) (w, h int) {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		w = max(w, font.MeasureString(ts.face, line).Ceil())
	}
	return w, len(lines) * ts.lineH
}

// draw places s so that the anchor point of its box is at (x, y).
// Lines are centred within the box.
func (ts *typesetter) draw(dst draw.Image, s string, x, y int, a anchor, c color.Color) {
	if s == "" {
		return
	}
	w, h := ts.measure(s)
	left := x - int(a.x*float64(w)+0.5)
	top := y - int(a.y*float64(h)+0.5)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: ts.face,
	}
	for i, line := range strings.Split(s, "\n") {
		lw := font.MeasureString(ts.face, line).Ceil()
		d.Dot = fixed.Point26_6{
			X: fixed.I(left + (w-lw)/2),
			Y: fixed.I(top + i*ts.lineH + ts.ascent),
		}
		d.DrawString(line)
	}
}

// drawVertical draws s rotated by 90 degrees counter-clockwise, so that it
// reads from bottom to top. The anchor refers to the rotated box.
func (ts *typesetter) drawVertical(dst draw.Image, s string, x, y int, a anchor, c color.Color) {
	if s == "" {
		return
	}
	w, h := ts.measure(s)
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	ts.draw(tmp, s, 0, 0, topLeft, c)

	rot := image.NewRGBA(image.Rect(0, 0, h, w))
	for py := range h {
		for px := range w {
			rot.SetRGBA(py, w-1-px, tmp.RGBAAt(px, py))
		}
	}

	left := x - int(a.x*float64(h)+0.5)
	top := y - int(a.y*float64(w)+0.5)
	r := image.Rect(left, top, left+h, top+w)
	draw.Draw(dst, r, rot, image.Point{}, draw.Over)
}
