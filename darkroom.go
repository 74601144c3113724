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

// Package darkroom previews the effect of colour filtration changes on a
// photograph.
//
// In colour printing, the enlarger light is filtered with cyan, magenta and
// yellow filters. Changing the filtration shifts the colour balance of the
// print. This package models such a change as a [Delta] between a base
// [Setting] (the filtration a test print was made with) and a target
// [Setting], and applies it to an RGBA pixel buffer:
//
//	d := darkroom.Diff(base, target)
//	out := darkroom.DefaultModel.Transform(original, d)
//
// The original buffer is never modified, so it can be shown at any time to
// compare against the rendered result.  A [Session] keeps track of both
// settings, the original image and the comparison state; a [Renderer]
// coalesces rapid changes so that only the most recent one is displayed.
package darkroom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits for the filtration values of a [Setting].
const (
	MinFilter = 0
	MaxFilter = 200
)

// Channel identifies one of the three filtration channels.
type Channel int

// The filtration channels.
const (
	Cyan Channel = iota
	Magenta
	Yellow
)

func (c Channel) String() string {
	switch c {
	case Cyan:
		return "C"
	case Magenta:
		return "M"
	case Yellow:
		return "Y"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Setting is a filtration setting, given in filtration units.
//
// The methods which modify a Setting keep every channel in the range
// [MinFilter, MaxFilter].
type Setting struct {
	C, M, Y float64
}

// Get returns the value of channel ch.
func (s Setting) Get(ch Channel) float64 {
	switch ch {
	case Cyan:
		return s.C
	case Magenta:
		return s.M
	case Yellow:
		return s.Y
	default:
		panic("darkroom: invalid channel " + ch.String())
	}
}

// Set changes channel ch to v, clamped to the valid range.
func (s *Setting) Set(ch Channel, v float64) {
	v = clampFilter(v)
	switch ch {
	case Cyan:
		s.C = v
	case Magenta:
		s.M = v
	case Yellow:
		s.Y = v
	default:
		panic("darkroom: invalid channel " + ch.String())
	}
}

// Add changes channel ch by dv.  The result is clamped to the valid range.
func (s *Setting) Add(ch Channel, dv float64) {
	s.Set(ch, s.Get(ch)+dv)
}

// Clamped returns a copy of s with all channels in the valid range.
func (s Setting) Clamped() Setting {
	return Setting{
		C: clampFilter(s.C),
		M: clampFilter(s.M),
		Y: clampFilter(s.Y),
	}
}

func (s Setting) String() string {
	return FormatString(s.C) + "," + FormatString(s.M) + "," + FormatString(s.Y)
}

// ParseSetting parses a setting of the form "C,M,Y", for example "40,25,0".
// Values outside the valid range are clamped.
func ParseSetting(text string) (Setting, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return Setting{}, fmt.Errorf("%w: %q: need three values", ErrInvalidSetting, text)
	}
	var vals [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Setting{}, fmt.Errorf("%w: %q: %v", ErrInvalidSetting, text, err)
		}
		vals[i] = v
	}
	s := Setting{C: vals[0], M: vals[1], Y: vals[2]}
	return s.Clamped(), nil
}

func clampFilter(v float64) float64 {
	if !(v >= MinFilter) { // also catches NaN
		return MinFilter
	}
	if v > MaxFilter {
		return MaxFilter
	}
	return v
}

var (
	// ErrInvalidSetting is returned by [ParseSetting] for malformed input.
	ErrInvalidSetting = errors.New("darkroom: invalid filter setting")

	// ErrInvalidModel indicates a [Model] with unusable coefficients.
	ErrInvalidModel = errors.New("darkroom: invalid model")

	// ErrLengthMismatch is the panic value used when source and
	// destination buffers passed to [Model.Apply] differ in size.
	ErrLengthMismatch = errors.New("darkroom: buffer length mismatch")
)
