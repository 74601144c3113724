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
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Model converts filtration changes into changes of the red, green and
// blue samples of an image.
//
// A change in yellow filtration acts on blue light, magenta on green and
// cyan on red.  Each of these gains also suppresses the two other light
// channels by the fraction Crosstalk, which mimics the imperfect absorption
// of real filter dyes.
//
// The zero Model leaves images unchanged.  Most callers use [DefaultModel].
type Model struct {
	// Strength is the change of an 8-bit sample per filtration unit.
	Strength float64 `toml:"strength" yaml:"strength"`

	// Crosstalk is the fraction of each channel's gain which is subtracted
	// from the other two channels.
	Crosstalk float64 `toml:"crosstalk" yaml:"crosstalk"`
}

// DefaultModel holds the calibration used unless a different one is
// loaded, see [LoadModel].
var DefaultModel = Model{
	Strength:  1.8,
	Crosstalk: 0.15,
}

// Validate checks that the coefficients of m are finite and non-negative.
func (m Model) Validate() error {
	if !isFinite(m.Strength) || m.Strength < 0 {
		return fmt.Errorf("%w: strength %g", ErrInvalidModel, m.Strength)
	}
	if !isFinite(m.Crosstalk) || m.Crosstalk < 0 {
		return fmt.Errorf("%w: crosstalk %g", ErrInvalidModel, m.Crosstalk)
	}
	return nil
}

// Gains returns the red, green and blue gains caused by d, before crosstalk
// is taken into account.
func (m Model) Gains(d Delta) (red, green, blue float64) {
	red = d.C * m.Strength
	green = d.M * m.Strength
	blue = d.Y * m.Strength
	return red, green, blue
}

// Offsets returns the amount added to the red, green and blue samples of
// every pixel when d is applied.  Clamping is not included.
func (m Model) Offsets(d Delta) [3]float64 {
	gR, gG, gB := m.Gains(d)
	x := m.Crosstalk
	return [3]float64{
		gR - x*gG - x*gB,
		gG - x*gR - x*gB,
		gB - x*gR - x*gG,
	}
}

// Transform applies d to src and returns the result in a new buffer.
// The source buffer is not modified.
func (m Model) Transform(src *Buffer, d Delta) *Buffer {
	dst := &Buffer{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]uint8, len(src.Pix)),
	}
	m.Apply(dst.Pix, src.Pix, d)
	return dst
}

// Apply applies d to the RGBA samples in src and writes the result to dst.
// Alpha samples are copied unchanged.
//
// The two slices must have the same length, which must be a multiple of
// four.  Apply panics otherwise.  dst and src may be the same slice, but
// then the original pixels are lost.
func (m Model) Apply(dst, src []uint8, d Delta) {
	checkLengths(dst, src)
	if d.IsZero() {
		copy(dst, src)
		return
	}
	m.terms(d).apply(dst, src)
}

// ApplyParallel is like [Model.Apply], but spreads the work over all CPUs.
// The result is identical to the one of Apply.  rowLen is the number of
// samples per image row; rows are never split between goroutines.
func (m Model) ApplyParallel(dst, src []uint8, rowLen int, d Delta) {
	checkLengths(dst, src)
	if rowLen <= 0 || rowLen%4 != 0 || len(src)%rowLen != 0 {
		panic(fmt.Errorf("%w: row length %d for %d samples",
			ErrLengthMismatch, rowLen, len(src)))
	}
	if d.IsZero() {
		copy(dst, src)
		return
	}
	t := m.terms(d)
	rows := len(src) / rowLen
	parallel.Line(rows, func(start, end int) {
		lo, hi := start*rowLen, end*rowLen
		t.apply(dst[lo:hi], src[lo:hi])
	})
}

// TransformParallel is like [Model.Transform], but uses [Model.ApplyParallel].
func (m Model) TransformParallel(src *Buffer, d Delta) *Buffer {
	dst := &Buffer{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]uint8, len(src.Pix)),
	}
	if len(src.Pix) == 0 {
		return dst
	}
	m.ApplyParallel(dst.Pix, src.Pix, src.Stride(), d)
	return dst
}

// terms holds the gains of a delta together with their crosstalk
// fractions.  The per-pixel sums are evaluated term by term, in a fixed
// order, so that results do not depend on how the work is split.
type terms struct {
	r, g, b    float64
	xr, xg, xb float64
}

func (m Model) terms(d Delta) terms {
	gR, gG, gB := m.Gains(d)
	x := m.Crosstalk
	return terms{
		r: gR, g: gG, b: gB,
		xr: x * gR, xg: x * gG, xb: x * gB,
	}
}

func (t terms) apply(dst, src []uint8) {
	for i := 0; i+3 < len(src); i += 4 {
		r := float64(src[i])
		g := float64(src[i+1])
		b := float64(src[i+2])
		dst[i] = toSample(r + t.r - t.xg - t.xb)
		dst[i+1] = toSample(g + t.g - t.xr - t.xb)
		dst[i+2] = toSample(b + t.b - t.xr - t.xg)
		dst[i+3] = src[i+3]
	}
}

func checkLengths(dst, src []uint8) {
	if len(dst) != len(src) || len(src)%4 != 0 {
		panic(fmt.Errorf("%w: %d source samples, %d destination samples",
			ErrLengthMismatch, len(src), len(dst)))
	}
}

// toSample clamps x to [0, 255] and rounds to the nearest integer, with
// ties going to the even neighbour.
func toSample(x float64) uint8 {
	if !(x > 0) { // also catches NaN
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(x))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
