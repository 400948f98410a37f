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
	"fmt"
	"image/color"

	"seehuhn.de/go/landscape/palette"
)

// RenderStyle holds the visual parameters of a figure.
// It is passed by value and never modified by the renderer.
type RenderStyle struct {
	// PanelWidth and PanelHeight give the size of the plot area of one
	// panel in pixels.
	PanelWidth, PanelHeight int

	// Gap is the space between neighbouring panels.
	Gap int

	// Margins around the panel grid, which hold titles and tick labels.
	MarginLeft, MarginTop, MarginRight, MarginBottom int

	// LegendWidth is the width reserved for a colour legend, including
	// its labels.
	LegendWidth int

	FontSize   float64 // in pixels
	Background color.NRGBA
	TextColor  color.NRGBA
	FrameColor color.NRGBA

	// OverlayColor is the hue of the confidence overlay. The alpha
	// component is ignored.
	OverlayColor color.NRGBA

	// OverlayInverted makes cells with a small margin opaque instead of
	// transparent, which washes out ambiguous regions.
	OverlayInverted bool

	HatchColor      color.NRGBA
	HatchBackground color.NRGBA
	HatchSpacing    int

	ContourColor  color.NRGBA
	ContourWidth  float64
	ContourLabels bool

	RegionEdge  color.NRGBA
	RegionFill  color.NRGBA
	RegionWidth float64

	// PanelLetters adds "a", "b", ... to the top left corner of each panel.
	PanelLetters bool
}

// DefaultStyle returns the style of the study figures.
func DefaultStyle() RenderStyle {
	grey := func(v uint8) color.NRGBA { return color.NRGBA{v, v, v, 0xff} }
	return RenderStyle{
		PanelWidth:   240,
		PanelHeight:  200,
		Gap:          16,
		MarginLeft:   110,
		MarginTop:    40,
		MarginRight:  20,
		MarginBottom: 56,
		LegendWidth:  130,
		FontSize:     13,

		Background: grey(0xff),
		TextColor:  palette.Fossil,
		FrameColor: palette.Fossil,

		OverlayColor: grey(0xff),

		HatchColor:      grey(0xa0),
		HatchBackground: grey(0xff),
		HatchSpacing:    6,

		ContourColor:  grey(0x69), // dimgrey
		ContourWidth:  1.2,
		ContourLabels: true,

		RegionEdge:  grey(0xa9), // darkgrey
		RegionFill:  color.NRGBA{0xb3, 0xb3, 0xb3, 0x26},
		RegionWidth: 1.5,
	}
}

// check reports parameters which cannot produce a figure.
func (s *RenderStyle) check() error {
	switch {
	case s.PanelWidth <= 0 || s.PanelHeight <= 0:
		return fmt.Errorf("invalid panel size %dx%d", s.PanelWidth, s.PanelHeight)
	case s.Gap < 0 || s.MarginLeft < 0 || s.MarginTop < 0 || s.MarginRight < 0 || s.MarginBottom < 0:
		return fmt.Errorf("negative margin")
	case s.LegendWidth < 0:
		return fmt.Errorf("negative legend width")
	case s.FontSize <= 0:
		return fmt.Errorf("invalid font size %g", s.FontSize)
	case s.HatchSpacing <= 0:
		return fmt.Errorf("invalid hatch spacing %d", s.HatchSpacing)
	case s.ContourWidth < 0 || s.RegionWidth < 0:
		return fmt.Errorf("negative line width")
	}
	return nil
}
