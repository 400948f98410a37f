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

// Package config reads figure descriptions from YAML or TOML files and
// converts them to rendering options.
//
// Sections which are left out fall back to the defaults of the renderer:
// the default palette, all scenarios and sectors of the input table in
// order of appearance, the default contour levels and threshold.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/landscape"
	"seehuhn.de/go/landscape/contour"
	"seehuhn.de/go/landscape/grid"
	"seehuhn.de/go/landscape/palette"
)

// Config describes one figure.
type Config struct {
	Categories []Category   `yaml:"categories,omitempty" toml:"categories,omitempty"`
	Rows       []Row        `yaml:"rows,omitempty" toml:"rows,omitempty"`
	Sectors    []Sector     `yaml:"sectors,omitempty" toml:"sectors,omitempty"`
	Levels     *Levels      `yaml:"levels,omitempty" toml:"levels,omitempty"`
	Threshold  float64      `yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	Secondary  *Secondary   `yaml:"secondary,omitempty" toml:"secondary,omitempty"`
	Regions    []Region     `yaml:"regions,omitempty" toml:"regions,omitempty"`
	Axes       Axes         `yaml:"axes,omitempty" toml:"axes"`
	Style      Style        `yaml:"style,omitempty" toml:"style"`
	Input      grid.Columns `yaml:"input,omitempty" toml:"input"`
	Output     Output       `yaml:"output,omitempty" toml:"output"`
}

// Category is one entry of the palette. Color is "#RRGGBB".
type Category struct {
	Label string `yaml:"label" toml:"label"`
	Name  string `yaml:"name,omitempty" toml:"name,omitempty"`
	Color string `yaml:"color" toml:"color"`
}

// Row selects a scenario. If Categories is set, the row uses the
// corresponding reduced palette and gets its own legend. The scenario may
// be empty if every sector sets a case.
type Row struct {
	Scenario    string   `yaml:"scenario" toml:"scenario"`
	Title       string   `yaml:"title,omitempty" toml:"title,omitempty"`
	Categories  []string `yaml:"categories,omitempty" toml:"categories,omitempty"`
	LegendNames []string `yaml:"legend_names,omitempty" toml:"legend_names,omitempty"`
}

// Sector selects a column of panels. If Case is set, it is prepended to
// the row scenarios, so that one sector can appear in several columns.
type Sector struct {
	Label string `yaml:"label" toml:"label"`
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`
	Case  string `yaml:"case,omitempty" toml:"case,omitempty"`
}

// Levels gives the contour levels.
type Levels struct {
	Default []float64            `yaml:"default,omitempty" toml:"default,omitempty"`
	Sectors map[string][]float64 `yaml:"sectors,omitempty" toml:"sectors,omitempty"`
}

// Secondary describes a converted y axis.
type Secondary struct {
	Factor   float64 `yaml:"factor" toml:"factor"`
	Decimals int     `yaml:"decimals,omitempty" toml:"decimals,omitempty"`
	Label    string  `yaml:"label,omitempty" toml:"label,omitempty"`
}

// Region is an annotation box in data coordinates.
type Region struct {
	Label     string  `yaml:"label" toml:"label"`
	XLo       float64 `yaml:"x_lo" toml:"x_lo"`
	XHi       float64 `yaml:"x_hi" toml:"x_hi"`
	YLo       float64 `yaml:"y_lo" toml:"y_lo"`
	YHi       float64 `yaml:"y_hi" toml:"y_hi"`
	Inclusive bool    `yaml:"inclusive,omitempty" toml:"inclusive,omitempty"`
}

// Axes holds the axis labels and tick counts.
type Axes struct {
	XLabel string `yaml:"x_label,omitempty" toml:"x_label,omitempty"`
	YLabel string `yaml:"y_label,omitempty" toml:"y_label,omitempty"`
	XTicks int    `yaml:"x_ticks,omitempty" toml:"x_ticks,omitempty"`
	YTicks int    `yaml:"y_ticks,omitempty" toml:"y_ticks,omitempty"`
}

// Style overrides parts of [landscape.DefaultStyle].
// Zero values keep the default.
type Style struct {
	PanelWidth      int     `yaml:"panel_width,omitempty" toml:"panel_width,omitempty"`
	PanelHeight     int     `yaml:"panel_height,omitempty" toml:"panel_height,omitempty"`
	FontSize        float64 `yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	OverlayColor    string  `yaml:"overlay_color,omitempty" toml:"overlay_color,omitempty"`
	OverlayInverted bool    `yaml:"overlay_inverted,omitempty" toml:"overlay_inverted,omitempty"`
	ContourColor    string  `yaml:"contour_color,omitempty" toml:"contour_color,omitempty"`
	ContourLabels   *bool   `yaml:"contour_labels,omitempty" toml:"contour_labels,omitempty"`
	PanelLetters    bool    `yaml:"panel_letters,omitempty" toml:"panel_letters,omitempty"`
}

// Output gives the destination of the figure. An empty Format is derived
// from the extension of Path.
type Output struct {
	Path   string `yaml:"path,omitempty" toml:"path,omitempty"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Load reads a configuration file. The format is chosen by the file name
// extension: ".yaml" or ".yml" for YAML, ".toml" for TOML.
func Load(path string) (*Config, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".toml":
		format = "toml"
	default:
		return nil, fmt.Errorf("%s: unknown configuration format", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates configuration data in the given format,
// "yaml" or "toml". Unknown keys are an error.
func Parse(data []byte, format string) (*Config, error) {
	cfg := &Config{}
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case "toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("unknown key %q", keys[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	pal, err := c.palette()
	if err != nil {
		return err
	}

	cases := len(c.Sectors) > 0
	for _, s := range c.Sectors {
		if s.Case == "" {
			cases = false
		}
	}

	scenarios := make(map[string]bool)
	for i, row := range c.Rows {
		if row.Scenario == "" && !cases {
			return fmt.Errorf("row %d: missing scenario", i+1)
		}
		if scenarios[row.Scenario] {
			return fmt.Errorf("row %d: duplicate scenario %q", i+1, row.Scenario)
		}
		scenarios[row.Scenario] = true

		n := pal.Len()
		if len(row.Categories) > 0 {
			sub, err := pal.Subset(row.Categories...)
			if err != nil {
				return fmt.Errorf("row %q: %w", row.Scenario, err)
			}
			n = sub.Len()
		}
		if row.LegendNames != nil && len(row.LegendNames) != n {
			return fmt.Errorf("row %q: %d legend names for %d categories",
				row.Scenario, len(row.LegendNames), n)
		}
	}

	sectors := make(map[Sector]bool)
	for i, s := range c.Sectors {
		if s.Label == "" {
			return fmt.Errorf("sector %d: missing label", i+1)
		}
		key := Sector{Label: s.Label, Case: s.Case}
		if sectors[key] {
			if s.Case != "" {
				return fmt.Errorf("sector %d: duplicate label %q for case %q", i+1, s.Label, s.Case)
			}
			return fmt.Errorf("sector %d: duplicate label %q", i+1, s.Label)
		}
		sectors[key] = true
	}

	if c.Levels != nil {
		for _, v := range c.Levels.Default {
			if !isFinite(v) {
				return fmt.Errorf("invalid contour level %g", v)
			}
		}
		for sector, levels := range c.Levels.Sectors {
			for _, v := range levels {
				if !isFinite(v) {
					return fmt.Errorf("sector %q: invalid contour level %g", sector, v)
				}
			}
		}
	}

	if c.Threshold < 0 || !isFinite(c.Threshold) {
		return fmt.Errorf("invalid threshold %g", c.Threshold)
	}
	if c.Secondary != nil && (c.Secondary.Factor == 0 || !isFinite(c.Secondary.Factor)) {
		return fmt.Errorf("invalid secondary axis factor %g", c.Secondary.Factor)
	}

	for i, r := range c.Regions {
		for _, v := range []float64{r.XLo, r.XHi, r.YLo, r.YHi} {
			if !isFinite(v) {
				return fmt.Errorf("region %d (%q): invalid bound %g", i+1, r.Label, v)
			}
		}
	}

	if c.Axes.XTicks < 0 || c.Axes.YTicks < 0 {
		return errors.New("negative tick count")
	}
	if _, err := c.style(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	return nil
}

// Options converts the configuration into rendering options.
// The Logger field of the result is left unset.
func (c *Config) Options() (landscape.Options, error) {
	pal, err := c.palette()
	if err != nil {
		return landscape.Options{}, err
	}
	style, err := c.style()
	if err != nil {
		return landscape.Options{}, err
	}

	opts := landscape.Options{
		Palette:   pal,
		Threshold: c.Threshold,
		Style:     style,
		XLabel:    c.Axes.XLabel,
		YLabel:    c.Axes.YLabel,
		XTicks:    c.Axes.XTicks,
		YTicks:    c.Axes.YTicks,
	}

	for _, row := range c.Rows {
		r := landscape.Row{
			Scenario:    row.Scenario,
			Title:       row.Title,
			LegendNames: slices.Clone(row.LegendNames),
		}
		if r.Title == "" {
			r.Title = row.Scenario
		}
		if len(row.Categories) > 0 {
			r.Palette, err = pal.Subset(row.Categories...)
			if err != nil {
				return landscape.Options{}, fmt.Errorf("row %q: %w", row.Scenario, err)
			}
		}
		opts.Rows = append(opts.Rows, r)
	}
	for _, s := range c.Sectors {
		title := s.Title
		if title == "" {
			title = s.Label
		}
		opts.Columns = append(opts.Columns, landscape.Column{Sector: s.Label, Title: title, Case: s.Case})
	}

	if c.Levels != nil {
		opts.Levels = contour.Levels{
			Default:  c.Levels.Default,
			BySector: c.Levels.Sectors,
		}.Clone()
		if opts.Levels.Default == nil {
			opts.Levels.Default = contour.DefaultLevels().Default
		}
	}

	if c.Secondary != nil {
		opts.Secondary = &landscape.SecondaryAxis{
			Factor:   c.Secondary.Factor,
			Decimals: c.Secondary.Decimals,
			Label:    c.Secondary.Label,
		}
	}

	for _, r := range c.Regions {
		opts.Regions = append(opts.Regions, landscape.Region{
			Label:     r.Label,
			XLo:       r.XLo,
			XHi:       r.XHi,
			YLo:       r.YLo,
			YHi:       r.YHi,
			Inclusive: r.Inclusive,
		})
	}
	return opts, nil
}

// OutputFormat returns the image format of the output file.
func (c *Config) OutputFormat() (landscape.Format, error) {
	if c.Output.Format != "" {
		return landscape.ParseFormat(c.Output.Format)
	}
	return landscape.FormatFor(c.Output.Path)
}

// YAML returns the configuration in YAML format.
func (c *Config) YAML() ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TOML returns the configuration in TOML format.
func (c *Config) TOML() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := toml.NewEncoder(buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) palette() (*palette.Palette, error) {
	if len(c.Categories) == 0 {
		return palette.Default(), nil
	}
	cats := make([]palette.Category, len(c.Categories))
	for i, cat := range c.Categories {
		col, err := palette.ParseHex(cat.Color)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Label, err)
		}
		cats[i] = palette.Category{Label: cat.Label, Name: cat.Name, Color: col}
	}
	return palette.New(cats)
}

func (c *Config) style() (landscape.RenderStyle, error) {
	s := landscape.DefaultStyle()
	cs := c.Style
	if cs.PanelWidth < 0 || cs.PanelHeight < 0 || cs.FontSize < 0 {
		return s, errors.New("invalid style: negative size")
	}
	if cs.PanelWidth > 0 {
		s.PanelWidth = cs.PanelWidth
	}
	if cs.PanelHeight > 0 {
		s.PanelHeight = cs.PanelHeight
	}
	if cs.FontSize > 0 {
		s.FontSize = cs.FontSize
	}
	if cs.OverlayColor != "" {
		col, err := palette.ParseHex(cs.OverlayColor)
		if err != nil {
			return s, fmt.Errorf("overlay color: %w", err)
		}
		s.OverlayColor = col
	}
	if cs.ContourColor != "" {
		col, err := palette.ParseHex(cs.ContourColor)
		if err != nil {
			return s, fmt.Errorf("contour color: %w", err)
		}
		s.ContourColor = col
	}
	s.OverlayInverted = cs.OverlayInverted
	if cs.ContourLabels != nil {
		s.ContourLabels = *cs.ContourLabels
	}
	s.PanelLetters = cs.PanelLetters
	return s, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
