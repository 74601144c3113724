// seehuhn.de/go/darkroom - preview colour filtration changes on photographs
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

package darkroom

import (
	"math"
	"strconv"
)

// Delta is the signed difference between two filtration settings.
type Delta struct {
	C, M, Y float64
}

// Diff returns the change in filtration needed to go from base to target.
// No clamping is applied; negative values are valid.
func Diff(base, target Setting) Delta {
	return Delta{
		C: target.C - base.C,
		M: target.M - base.M,
		Y: target.Y - base.Y,
	}
}

// IsZero reports whether d leaves the image unchanged.
func (d Delta) IsZero() bool {
	return d.C == 0 && d.M == 0 && d.Y == 0
}

// Scale returns d with every channel multiplied by f.
func (d Delta) Scale(f float64) Delta {
	return Delta{C: d.C * f, M: d.M * f, Y: d.Y * f}
}

func (d Delta) String() string {
	return "C" + signed(d.C) + " M" + signed(d.M) + " Y" + signed(d.Y)
}

func signed(v float64) string {
	s := FormatString(v)
	if s[0] != '-' {
		s = "+" + s
	}
	return s
}

// Format rounds v to the nearest multiple of 0.1, with halfway cases
// rounded away from zero.  The result is meant for display only.
func Format(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		// turn -0 into 0
		r = 0
	}
	return r
}

// FormatString returns v rounded by [Format], printed with one decimal.
func FormatString(v float64) string {
	return strconv.FormatFloat(Format(v), 'f', 1, 64)
}
