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
	"image"

	"golang.org/x/image/draw"
)

// Buffer holds the pixels of an image as non-premultiplied RGBA samples,
// 8 bits per sample, stored row by row.  Pix has length 4*Width*Height.
type Buffer struct {
	Width, Height int
	Pix           []uint8
}

// NewBuffer allocates a zero (transparent black) buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// Stride returns the distance in bytes between vertically adjacent pixels.
func (b *Buffer) Stride() int {
	return 4 * b.Width
}

// At returns the RGBA samples of the pixel at (x, y).
func (b *Buffer) At(x, y int) [4]uint8 {
	i := y*b.Stride() + 4*x
	return [4]uint8{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(c.Pix, b.Pix)
	return c
}

// NRGBA returns an image which shares its pixel data with b.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// BufferFromImage copies img into a new Buffer.
func BufferFromImage(img image.Image) *Buffer {
	r := img.Bounds()
	buf := NewBuffer(r.Dx(), r.Dy())
	if src, ok := img.(*image.NRGBA); ok && src.Stride == buf.Stride() {
		i0 := src.PixOffset(r.Min.X, r.Min.Y)
		copy(buf.Pix, src.Pix[i0:])
		return buf
	}
	draw.Draw(buf.NRGBA(), buf.NRGBA().Bounds(), img, r.Min, draw.Src)
	return buf
}
