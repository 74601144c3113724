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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"slices"

	"github.com/h2non/filetype"
	"golang.org/x/exp/maps"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrNotImage is returned by [Load] if the data is not an image.
	ErrNotImage = errors.New("darkroom: not an image")

	// ErrUnsupportedFormat is returned by [Load] for images in a format
	// which cannot be decoded.
	ErrUnsupportedFormat = errors.New("darkroom: unsupported image format")

	// ErrImageTooLarge is returned by [Load] for files or images exceeding
	// [MaxFileSize] or [MaxPixels].
	ErrImageTooLarge = errors.New("darkroom: image too large")
)

// Limits enforced by [Load].  The image size is checked from the image
// header, before any pixel data is decoded.
const (
	MaxFileSize = 256 << 20
	MaxPixels   = 1 << 26
)

type decoder struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// decoders maps file type extensions, as reported by the filetype package,
// to image decoders.
var decoders = map[string]decoder{
	"bmp":  {bmp.Decode, bmp.DecodeConfig},
	"gif":  {gif.Decode, gif.DecodeConfig},
	"jpg":  {jpeg.Decode, jpeg.DecodeConfig},
	"png":  {png.Decode, png.DecodeConfig},
	"tif":  {tiff.Decode, tiff.DecodeConfig},
	"webp": {webp.Decode, webp.DecodeConfig},
}

// SupportedFormats returns the file types accepted by [Load], in
// alphabetical order.
func SupportedFormats() []string {
	names := maps.Keys(decoders)
	slices.Sort(names)
	return names
}

// Load reads an image and converts it into a [Buffer].
//
// If canvas is non-zero, the image is scaled so that it fits into a
// rectangle of this size while keeping its aspect ratio.  Otherwise the
// image keeps its original size.
func Load(r io.Reader, canvas image.Point) (*Buffer, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrImageTooLarge, MaxFileSize)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	dec, ok := decoders[kind.Extension]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}

	cfg, err := dec.decodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s header: %w", kind.Extension, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels",
			ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, err := dec.decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}

	size := img.Bounds().Size()
	if canvas.X <= 0 || canvas.Y <= 0 {
		return BufferFromImage(img), nil
	}
	fit := FitSize(size, canvas)
	if fit == size {
		return BufferFromImage(img), nil
	}

	buf := NewBuffer(fit.X, fit.Y)
	dst := buf.NRGBA()
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return buf, nil
}

// FitSize returns the largest size with the aspect ratio of size which fits
// into canvas.  Both dimensions of the result are at least 1.
func FitSize(size, canvas image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 {
		return image.Point{}
	}
	scale := math.Min(
		float64(canvas.X)/float64(size.X),
		float64(canvas.Y)/float64(size.Y))
	fit := image.Point{
		X: int(math.Round(float64(size.X) * scale)),
		Y: int(math.Round(float64(size.Y) * scale)),
	}
	fit.X = min(max(fit.X, 1), canvas.X)
	fit.Y = min(max(fit.Y, 1), canvas.Y)
	return fit
}
