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

// Package palette maps technology category labels to equally spaced codes
// in [0, 1) and to opaque colours.
//
// The i-th of N declared categories has code i/N. The order of the
// declaration fixes both the colour assignment and the legend order.
// A Palette is read-only after construction and may be shared.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Category is one entry of a palette.
type Category struct {
	Label string      // value in the category column of the data
	Name  string      // legend text, may contain line breaks
	Color color.NRGBA // must be opaque
}

// Palette is an ordered list of categories.
type Palette struct {
	cats  []Category
	index map[string]int
}

// New builds a palette from the categories in the given order.
// Labels must be unique and non-empty and all colours must be opaque.
func New(cats []Category) (*Palette, error) {
	if len(cats) == 0 {
		return nil, fmt.Errorf("palette: no categories")
	}
	p := &Palette{
		cats:  slices.Clone(cats),
		index: make(map[string]int, len(cats)),
	}
	for i := range p.cats {
		c := &p.cats[i]
		if c.Label == "" {
			return nil, fmt.Errorf("palette: category %d has an empty label", i)
		}
		if _, dup := p.index[c.Label]; dup {
			return nil, fmt.Errorf("palette: duplicate category %q", c.Label)
		}
		if c.Color.A != 0xff {
			return nil, fmt.Errorf("palette: colour of %q is not opaque", c.Label)
		}
		if c.Name == "" {
			c.Name = c.Label
		}
		p.index[c.Label] = i
	}
	return p, nil
}

// Len returns the number of categories.
func (p *Palette) Len() int {
	return len(p.cats)
}

// Categories returns a copy of the categories in declared order.
func (p *Palette) Categories() []Category {
	return slices.Clone(p.cats)
}

// Labels returns the category labels in declared order.
func (p *Palette) Labels() []string {
	res := make([]string, len(p.cats))
	for i, c := range p.cats {
		res[i] = c.Label
	}
	return res
}

// Names returns the legend texts in declared order.
func (p *Palette) Names() []string {
	res := make([]string, len(p.cats))
	for i, c := range p.cats {
		res[i] = c.Name
	}
	return res
}

// CodeMap returns the mapping from label to code.
func (p *Palette) CodeMap() map[string]float64 {
	res := make(map[string]float64, len(p.cats))
	for i, c := range p.cats {
		res[c.Label] = p.step(i)
	}
	return res
}

// Colors returns the colours, index aligned with the codes.
func (p *Palette) Colors() []color.NRGBA {
	res := make([]color.NRGBA, len(p.cats))
	for i, c := range p.cats {
		res[i] = c.Color
	}
	return res
}

// Code returns the code of a label. Labels which were not declared give an
// [*UnknownCategoryError].
func (p *Palette) Code(label string) (float64, error) {
	i, ok := p.index[label]
	if !ok {
		return 0, &UnknownCategoryError{Label: label, Known: p.Labels()}
	}
	return p.step(i), nil
}

// Bin returns the index of the palette step nearest to code,
// or -1 if code is NaN.
func (p *Palette) Bin(code float64) int {
	if math.IsNaN(code) {
		return -1
	}
	n := len(p.cats)
	i := int(math.Round(code * float64(n)))
	return min(max(i, 0), n-1)
}

// Color returns the colour of the step nearest to code.
// The second return value is false if code is NaN.
func (p *Palette) Color(code float64) (color.NRGBA, bool) {
	i := p.Bin(code)
	if i < 0 {
		return color.NRGBA{}, false
	}
	return p.cats[i].Color, true
}

// Ticks returns the legend tick positions code_i + 1/(2N).
// These are the centres of the colour bands of a [0, 1] colour bar.
func (p *Palette) Ticks() []float64 {
	n := float64(len(p.cats))
	res := make([]float64, len(p.cats))
	for i := range p.cats {
		res[i] = p.step(i) + 1/(2*n)
	}
	return res
}

// Subset returns a reduced palette with the given labels, in the order of
// the original palette. Codes of the subset are spaced i/M for its M
// categories.
func (p *Palette) Subset(labels ...string) (*Palette, error) {
	keep := make(map[string]bool, len(labels))
	for _, l := range labels {
		if _, ok := p.index[l]; !ok {
			return nil, &UnknownCategoryError{Label: l, Known: p.Labels()}
		}
		keep[l] = true
	}
	var cats []Category
	for _, c := range p.cats {
		if keep[c.Label] {
			cats = append(cats, c)
		}
	}
	return New(cats)
}

func (p *Palette) step(i int) float64 {
	return float64(i) / float64(len(p.cats))
}

// UnknownCategoryError is returned when data contain a category label which
// is not part of the declared palette.
type UnknownCategoryError struct {
	Label string
	Known []string
}

func (err *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q (declared: %s)",
		err.Label, strings.Join(err.Known, ", "))
}

// ParseHex parses a colour of the form "#RRGGBB" or "#RRGGBBAA".
func ParseHex(s string) (color.NRGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Hex formats c as "#RRGGBB", or "#RRGGBBAA" if c is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Default returns the categories of the study: hydrogen route, e-fuel,
// DAC compensation, carbon utilisation and carbon storage.
func Default() *Palette {
	p, err := New(DefaultCategories())
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultCategories returns the categories used by [Default].
func DefaultCategories() []Category {
	return []Category{
		{Label: "h2", Name: "H2/NH3", Color: mustHex("#FCE762")},
		{Label: "efuel", Name: "E-fuel", Color: mustHex("#FEB380")},
		{Label: "comp", Name: "DAC\ncompen-\nsation", Color: mustHex("#23CE6B")},
		{Label: "ccu", Name: "CCU", Color: mustHex("#8E9AAF")},
		{Label: "ccs", Name: "CCS", Color: mustHex("#3083DC")},
	}
}

// Fossil is the colour of the fossil reference technology.
var Fossil = mustHex("#31393C")

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
