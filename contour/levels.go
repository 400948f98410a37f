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

package contour

import (
	"maps"
	"slices"
)

// Levels holds per-sector contour levels.
type Levels struct {
	Default  []float64
	BySector map[string][]float64
}

// DefaultLevels returns the levels of the study figures. Steel and cement
// have much lower abatement costs than the transport and feedstock sectors.
func DefaultLevels() Levels {
	low := []float64{0, 50, 100, 150, 200, 250}
	return Levels{
		Default: []float64{0, 400, 800, 1200, 1600},
		BySector: map[string][]float64{
			"steel":  low,
			"cement": slices.Clone(low),
		},
	}
}

// For returns the levels of a sector, or the default levels if the sector
// has no entry. The result is sorted.
func (l Levels) For(sector string) []float64 {
	v, ok := l.BySector[sector]
	if !ok {
		v = l.Default
	}
	v = slices.Clone(v)
	slices.Sort(v)
	return v
}

// Clone returns a deep copy of l.
func (l Levels) Clone() Levels {
	res := Levels{Default: slices.Clone(l.Default)}
	if l.BySector != nil {
		res.BySector = make(map[string][]float64, len(l.BySector))
		for k, v := range maps.All(l.BySector) {
			res.BySector[k] = slices.Clone(v)
		}
	}
	return res
}
