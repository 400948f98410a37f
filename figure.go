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

// Package landscape renders decision landscapes: multi-panel figures which
// show, for each point of a two-parameter price sweep, which technology
// route is cheapest, how clear that choice is, the cost of abatement as
// contour lines, and marked parameter regions.
//
// The panels form a grid with one row per scenario and one column per
// sector. See [Render] for the entry point.
package landscape

import (
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/landscape/contour"
	"seehuhn.de/go/landscape/grid"
	"seehuhn.de/go/landscape/palette"
	"seehuhn.de/go/landscape/raster"
)

// DefaultThreshold is the confidence margin, in EUR/t CO2, at which the
// overlay saturates.
const DefaultThreshold = 100

// Row is one row of panels.
type Row struct {
	Scenario string
	Title    string

	// Palette replaces the figure palette for this row, for scenarios
	// which exclude some routes. A row with its own palette gets its own
	// legend.
	Palette *palette.Palette

	// LegendNames replaces the category names in the legend of this row.
	// Rows with differing legend names get one legend each.
	LegendNames []string
}

// Column is one column of panels.
type Column struct {
	Sector string
	Title  string

	// Case is prepended to the row scenarios to give the scenarios of the
	// panels in this column. It is used when the columns show variants of
	// one sector, for example new and retrofitted plants, with scenario
	// labels like "brownfield_comp".
	Case string
}

// scenario returns the panel scenario for a row in this column.
func (c Column) scenario(row Row) string {
	return c.Case + row.Scenario
}

// Options control how a figure is rendered.
type Options struct {
	// Palette gives the category order and colours. Required.
	Palette *palette.Palette

	// Rows and Columns select and order the panels. If empty, all
	// scenarios or sectors of the table are used in order of appearance.
	Rows    []Row
	Columns []Column

	// Levels gives the contour levels per sector. The zero value selects
	// [contour.DefaultLevels]. Sectors without their own levels use
	// Levels.Default, or the default levels of [contour.DefaultLevels] if
	// that is nil.
	Levels contour.Levels

	// Threshold is the saturation margin of the confidence overlay.
	// Zero selects [DefaultThreshold].
	Threshold float64

	// Secondary adds a converted y axis to the right of the last column.
	Secondary *SecondaryAxis

	Regions []Region

	// Style is the visual style. The zero value selects [DefaultStyle].
	Style RenderStyle

	XLabel, YLabel string
	XTicks, YTicks int // number of ticks, zero selects 5 and 7

	Logger *zap.Logger
}

// Stage is the progress of a figure.
type Stage int

// These are the stages a figure passes through.
const (
	Idle Stage = iota
	PanelsEnumerated
	PanelsRendered
	LegendsAttached
	Saved
)

func (s Stage) String() string {
	switch s {
	case Idle:
		return "idle"
	case PanelsEnumerated:
		return "panels enumerated"
	case PanelsRendered:
		return "panels rendered"
	case LegendsAttached:
		return "legends attached"
	case Saved:
		return "saved"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// PanelInfo describes one rendered panel.
type PanelInfo struct {
	Spec     grid.PanelSpec
	Row, Col int
	Letter   string
	Area     image.Rectangle // plot area in figure pixels
	Contours []contour.Line  // in panel index space
	Boxes    []IndexBox

	// OwnsLegend is set on the panel after which a legend is placed.
	OwnsLegend bool
}

// Figure is a rendered figure.
type Figure struct {
	Image    *image.RGBA
	Panels   []PanelInfo
	Legends  []image.Rectangle
	Warnings []*OutOfRangeWarning

	stage Stage
	log   *zap.Logger
}

// Stage returns how far the figure has progressed.
func (f *Figure) Stage() Stage {
	return f.stage
}

// withDefaults returns a copy of opts with all defaults filled in.
func (opts Options) withDefaults(t *grid.Table) (Options, error) {
	o := opts
	if o.Palette == nil {
		return o, errors.New("no palette")
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if len(o.Rows) == 0 {
		for _, s := range t.Scenarios() {
			o.Rows = append(o.Rows, Row{Scenario: s, Title: s})
		}
	}
	if len(o.Columns) == 0 {
		for _, s := range t.Sectors() {
			o.Columns = append(o.Columns, Column{Sector: s, Title: s})
		}
	}
	if len(o.Rows) == 0 || len(o.Columns) == 0 {
		return o, errors.New("no panels")
	}
	for i := range o.Rows {
		row := &o.Rows[i]
		pal := row.Palette
		if pal == nil {
			pal = o.Palette
		}
		if row.LegendNames != nil && len(row.LegendNames) != pal.Len() {
			return o, fmt.Errorf("row %q: %d legend names for %d categories",
				row.Scenario, len(row.LegendNames), pal.Len())
		}
	}

	if o.Levels.Default == nil && o.Levels.BySector == nil {
		o.Levels = contour.DefaultLevels()
	} else if o.Levels.Default == nil {
		o.Levels.Default = contour.DefaultLevels().Default
	}
	switch {
	case o.Threshold == 0:
		o.Threshold = DefaultThreshold
	case !(o.Threshold > 0) || math.IsInf(o.Threshold, 0):
		return o, fmt.Errorf("invalid threshold %g", o.Threshold)
	}
	for _, r := range o.Regions {
		for _, v := range []float64{r.XLo, r.XHi, r.YLo, r.YHi} {
			if math.IsNaN(v) {
				return o, fmt.Errorf("region %q: invalid bound", r.Label)
			}
		}
	}
	if o.Secondary != nil && (o.Secondary.Factor == 0 || math.IsNaN(o.Secondary.Factor)) {
		return o, errors.New("invalid secondary axis factor")
	}

	if o.Style == (RenderStyle{}) {
		o.Style = DefaultStyle()
	}
	if err := o.Style.check(); err != nil {
		return o, err
	}
	if o.XTicks == 0 {
		o.XTicks = 5
	}
	if o.YTicks == 0 {
		o.YTicks = 7
	}
	return o, nil
}

// geometry gives the pixel positions of the figure elements.
type geometry struct {
	width, height int
	secondary     int // width of the secondary axis labels
	legendX       int
}

func newGeometry(o *Options) geometry {
	s := &o.Style
	var g geometry
	if o.Secondary != nil {
		g.secondary = 64
	}
	nc, nr := len(o.Columns), len(o.Rows)
	gridW := nc*s.PanelWidth + (nc-1)*s.Gap
	gridH := nr*s.PanelHeight + (nr-1)*s.Gap
	g.legendX = s.MarginLeft + gridW + g.secondary + s.Gap
	g.width = g.legendX + s.LegendWidth + s.MarginRight
	g.height = s.MarginTop + gridH + s.MarginBottom
	return g
}

func (g geometry) panelArea(s *RenderStyle, row, col int) image.Rectangle {
	x := s.MarginLeft + col*(s.PanelWidth+s.Gap)
	y := s.MarginTop + row*(s.PanelHeight+s.Gap)
	return image.Rect(x, y, x+s.PanelWidth, y+s.PanelHeight)
}

// Render draws all panels of the table. Any error in one panel aborts the
// whole figure. Region bounds outside the axis ranges are reported in
// [Figure.Warnings].
func Render(t *grid.Table, opts Options) (*Figure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	o, err := opts.withDefaults(t)
	if err != nil {
		return nil, fmt.Errorf("landscape: %w", err)
	}
	log := o.Logger
	fig := &Figure{log: log}

	shared := legendNames(o.Rows[0], o.Palette)
	ownLegends := false
	for _, row := range o.Rows {
		if row.Palette != nil && row.Palette != o.Palette ||
			!slices.Equal(legendNames(row, o.Palette), shared) {
			ownLegends = true
		}
	}
	for r, row := range o.Rows {
		for c, col := range o.Columns {
			fig.Panels = append(fig.Panels, PanelInfo{
				Spec:   grid.PanelSpec{Scenario: col.scenario(row), Sector: col.Sector},
				Row:    r,
				Col:    c,
				Letter: panelLetter(r*len(o.Columns) + c),
			})
		}
	}
	fig.stage = PanelsEnumerated
	log.Debug("panels enumerated",
		zap.Int("rows", len(o.Rows)),
		zap.Int("columns", len(o.Columns)),
		zap.Bool("rowLegends", ownLegends))

	geom := newGeometry(&o)
	img := image.NewRGBA(image.Rect(0, 0, geom.width, geom.height))
	draw.Draw(img, img.Rect, image.NewUniform(o.Style.Background), image.Point{}, draw.Src)
	ts, err := newTypesetter(o.Style.FontSize)
	if err != nil {
		return nil, fmt.Errorf("landscape: %w", err)
	}
	cv := &canvas{
		img:   img,
		ts:    ts,
		rz:    raster.NewRasterizer(rect.Rect{}),
		style: &o.Style,
	}

	for k := range fig.Panels {
		info := &fig.Panels[k]
		row := o.Rows[info.Row]
		pal := row.Palette
		if pal == nil {
			pal = o.Palette
		}
		info.Area = geom.panelArea(&o.Style, info.Row, info.Col)
		warnings, err := cv.panel(&o, info, t.Panel(info.Spec), pal)
		if err != nil {
			return nil, fmt.Errorf("landscape: panel %s: %w", info.Spec, err)
		}
		for _, w := range warnings {
			log.Warn("region bound clamped",
				zap.Stringer("panel", info.Spec),
				zap.String("region", w.Region),
				zap.String("bound", w.Bound),
				zap.Float64("value", w.Value))
		}
		fig.Warnings = append(fig.Warnings, warnings...)
		log.Debug("panel rendered",
			zap.Stringer("panel", info.Spec),
			zap.Int("contours", len(info.Contours)),
			zap.Int("regions", len(info.Boxes)))
	}
	fig.stage = PanelsRendered

	cv.titles(&o, geom)

	nc := len(o.Columns)
	if ownLegends {
		for r, row := range o.Rows {
			pal := row.Palette
			if pal == nil {
				pal = o.Palette
			}
			last := &fig.Panels[r*nc+nc-1]
			last.OwnsLegend = true
			fig.Legends = append(fig.Legends,
				cv.legend(geom.legendX, last.Area.Min.Y, last.Area.Max.Y, pal, legendNames(row, pal)))
		}
	} else {
		last := &fig.Panels[len(fig.Panels)-1]
		last.OwnsLegend = true
		first := fig.Panels[0]
		fig.Legends = append(fig.Legends,
			cv.legend(geom.legendX, first.Area.Min.Y, last.Area.Max.Y, o.Palette, shared))
	}
	fig.stage = LegendsAttached
	log.Debug("legends attached", zap.Int("legends", len(fig.Legends)))

	fig.Image = img
	return fig, nil
}

func legendNames(row Row, pal *palette.Palette) []string {
	if row.LegendNames != nil {
		return row.LegendNames
	}
	return pal.Names()
}

// panel draws one panel: cells, overlay, contours, regions, axes.
func (c *canvas) panel(o *Options, info *PanelInfo, records []grid.Record, pal *palette.Palette) ([]*OutOfRangeWarning, error) {
	p, err := grid.NewPanel(info.Spec, records, pal)
	if err != nil {
		return nil, err
	}
	ras, err := Compose(p.Codes, p.Margins, pal, Overlay{
		Threshold: o.Threshold,
		Color:     o.Style.OverlayColor,
		Inverted:  o.Style.OverlayInverted,
	})
	if err != nil {
		return nil, err
	}

	area := info.Area
	ctm := panelCTM(area, len(p.X), len(p.Y))
	c.cells(area, ras)

	info.Contours = contour.Extract(p.Masked(), o.Levels.For(info.Spec.Sector))
	c.contours(area, ctm, info.Contours)

	var warnings []*OutOfRangeWarning
	for _, reg := range o.Regions {
		box, ws := ResolveBox(p.X, p.Y, reg)
		for _, w := range ws {
			w.Panel = info.Spec
		}
		warnings = append(warnings, ws...)
		info.Boxes = append(info.Boxes, box)
		c.region(area, ctm, box, reg.Label)
	}

	c.frame(area, o.Style.FrameColor)
	c.axes(o, info, p, ctm)
	return warnings, nil
}

// axes draws the ticks and tick labels on the outer sides of the panel
// grid, and the panel letter.
func (c *canvas) axes(o *Options, info *PanelInfo, p *grid.Panel, ctm matrix.Matrix) {
	s := &o.Style
	area := info.Area
	col := s.TextColor

	if info.Row == len(o.Rows)-1 {
		for _, t := range AxisTicks(p.X, o.XTicks) {
			x := ctm[0]*t.Pos + ctm[4]
			c.tick(x, float64(area.Max.Y)+0.5, 0, 1)
			c.ts.draw(c.img, t.Label, int(x+0.5), area.Max.Y+tickLength+2, topCentre, col)
		}
	}
	yTicks := AxisTicks(p.Y, o.YTicks)
	if info.Col == 0 {
		for _, t := range yTicks {
			y := ctm[3]*t.Pos + ctm[5]
			c.tick(float64(area.Min.X)-0.5, y, -1, 0)
			c.ts.draw(c.img, t.Label, area.Min.X-tickLength-3, int(y+0.5), middleRight, col)
		}
	}
	if o.Secondary != nil && info.Col == len(o.Columns)-1 {
		for _, t := range SecondaryTicks(yTicks, *o.Secondary) {
			y := ctm[3]*t.Pos + ctm[5]
			c.tick(float64(area.Max.X)+0.5, y, 1, 0)
			c.ts.draw(c.img, t.Label, area.Max.X+tickLength+3, int(y+0.5), middleLeft, col)
		}
	}
	if s.PanelLetters {
		c.ts.draw(c.img, info.Letter, area.Min.X+4, area.Min.Y+2, topLeft, col)
	}
}

// titles draws the sector titles, row titles and axis labels.
func (c *canvas) titles(o *Options, g geometry) {
	s := &o.Style
	col := s.TextColor
	for j, column := range o.Columns {
		a := g.panelArea(s, 0, j)
		c.ts.draw(c.img, column.Title, (a.Min.X+a.Max.X)/2, a.Min.Y-6, bottomCentre, col)
	}
	titleW := 0
	for _, row := range o.Rows {
		if row.Title != "" {
			_, h := c.ts.measure(row.Title)
			titleW = max(titleW, h)
		}
	}
	for i, row := range o.Rows {
		a := g.panelArea(s, i, 0)
		midY := (a.Min.Y + a.Max.Y) / 2
		c.ts.drawVertical(c.img, row.Title, 2, midY, middleLeft, col)
		c.ts.drawVertical(c.img, o.YLabel, titleW+6, midY, middleLeft, col)
	}

	first := g.panelArea(s, len(o.Rows)-1, 0)
	last := g.panelArea(s, len(o.Rows)-1, len(o.Columns)-1)
	c.ts.draw(c.img, o.XLabel, (first.Min.X+last.Max.X)/2, last.Max.Y+tickLength+4+c.ts.lineH, topCentre, col)

	if o.Secondary != nil {
		for i := range o.Rows {
			a := g.panelArea(s, i, len(o.Columns)-1)
			x := a.Max.X + g.secondary - c.ts.lineH/2
			c.ts.drawVertical(c.img, o.Secondary.Label, x, (a.Min.Y+a.Max.Y)/2, centre, col)
		}
	}
}

// panelLetter returns "a", "b", ..., "z", "aa", "ab", ...
func panelLetter(k int) string {
	s := ""
	for {
		s = string(rune('a'+k%26)) + s
		k = k/26 - 1
		if k < 0 {
			return s
		}
	}
}
