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
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Tick is an axis tick in panel index space.
type Tick struct {
	Pos   float64 // index space coordinate, cell centres are at i+0.5
	Value float64
	Label string
}

// AxisTicks returns n ticks at evenly spaced index positions between the
// first and the last cell centre. The tick values are interpolated from
// the actual axis values, which need not be evenly spaced.
func AxisTicks(axis []float64, n int) []Tick {
	if len(axis) == 0 || n <= 0 {
		return nil
	}
	if len(axis) == 1 || n == 1 {
		return []Tick{{Pos: 0.5, Value: axis[0], Label: formatTick(axis[0], 0)}}
	}

	decimals := tickDecimals(floats.Max(axis) - floats.Min(axis))
	last := float64(len(axis) - 1)
	ticks := make([]Tick, n)
	for k := range ticks {
		p := last * float64(k) / float64(n-1)
		i := min(int(p), len(axis)-2)
		t := p - float64(i)
		v := axis[i] + t*(axis[i+1]-axis[i])
		ticks[k] = Tick{Pos: p + 0.5, Value: v, Label: formatTick(v, decimals)}
	}
	return ticks
}

// SecondaryAxis converts the labels of a primary axis into another unit.
type SecondaryAxis struct {
	Factor   float64 // secondary value = primary value * Factor
	Decimals int     // digits after the decimal point
	Label    string
}

// DefaultSecondary converts hydrogen prices from EUR/MWh to EUR/kg,
// using 30 MWh per t of hydrogen.
func DefaultSecondary() SecondaryAxis {
	return SecondaryAxis{
		Factor:   1.0 / 30,
		Decimals: 1,
		Label:    "H2 price (EUR/kg)",
	}
}

// SecondaryTicks returns ticks at the same positions as primary, with
// converted values.
func SecondaryTicks(primary []Tick, conv SecondaryAxis) []Tick {
	res := make([]Tick, len(primary))
	for i, t := range primary {
		v := t.Value * conv.Factor
		res[i] = Tick{Pos: t.Pos, Value: v, Label: formatTick(v, conv.Decimals)}
	}
	return res
}

// tickDecimals chooses the number of decimals for labels on an axis
// spanning the given range.
func tickDecimals(span float64) int {
	if span <= 0 || math.IsNaN(span) {
		return 0
	}
	return max(0, 2-int(math.Floor(math.Log10(span))))
}

func formatTick(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s, "-0.") == "" {
		s = s[1:]
	}
	return s
}
