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
	"encoding/base64"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(5 * x),
				G: uint8(7 * y),
				B: 100,
				A: 255,
			})
		}
	}
	return img
}

func TestLoadNativeSize(t *testing.T) {
	img := testImage(40, 20)
	encoded := &bytes.Buffer{}
	if err := png.Encode(encoded, img); err != nil {
		t.Fatal(err)
	}

	buf, err := Load(encoded, image.Point{})
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width != 40 || buf.Height != 20 {
		t.Fatalf("size %dx%d, want 40x20", buf.Width, buf.Height)
	}
	if d := cmp.Diff(img.Pix, buf.Pix); d != "" {
		t.Errorf("pixels differ (-want +got):\n%s", d)
	}
}

func TestLoadFitsCanvas(t *testing.T) {
	encoded := &bytes.Buffer{}
	if err := bmp.Encode(encoded, testImage(40, 20)); err != nil {
		t.Fatal(err)
	}

	buf, err := Load(encoded, image.Pt(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if buf.Width != 10 || buf.Height != 5 {
		t.Errorf("size %dx%d, want 10x5", buf.Width, buf.Height)
	}
	if len(buf.Pix) != 4*10*5 {
		t.Errorf("len(Pix) = %d", len(buf.Pix))
	}
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 255 {
			t.Fatalf("alpha at %d = %d, want 255", i, buf.Pix[i])
		}
	}
}

// webp1x1 is a 1x1 lossless WebP image.
const webp1x1 = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func TestLoadFormats(t *testing.T) {
	img := testImage(12, 8)
	encodeWith := func(enc func(io.Writer, image.Image) error) func() ([]byte, error) {
		return func() ([]byte, error) {
			buf := &bytes.Buffer{}
			err := enc(buf, img)
			return buf.Bytes(), err
		}
	}

	tests := []struct {
		format   string
		encode   func() ([]byte, error)
		size     image.Point
		lossless bool
	}{
		{"bmp", encodeWith(bmp.Encode), image.Pt(12, 8), true},
		{"gif", encodeWith(func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		}), image.Pt(12, 8), false},
		{"jpg", encodeWith(func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}), image.Pt(12, 8), false},
		{"png", encodeWith(png.Encode), image.Pt(12, 8), true},
		{"tif", encodeWith(func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, nil)
		}), image.Pt(12, 8), true},
		{"webp", func() ([]byte, error) {
			return base64.StdEncoding.DecodeString(webp1x1)
		}, image.Pt(1, 1), false},
	}

	var formats []string
	for _, tt := range tests {
		formats = append(formats, tt.format)
		t.Run(tt.format, func(t *testing.T) {
			data, err := tt.encode()
			if err != nil {
				t.Fatal(err)
			}
			buf, err := Load(bytes.NewReader(data), image.Point{})
			if err != nil {
				t.Fatal(err)
			}
			if buf.Width != tt.size.X || buf.Height != tt.size.Y {
				t.Fatalf("size %dx%d, want %dx%d",
					buf.Width, buf.Height, tt.size.X, tt.size.Y)
			}
			if len(buf.Pix) != 4*tt.size.X*tt.size.Y {
				t.Errorf("len(Pix) = %d", len(buf.Pix))
			}
			if tt.lossless {
				if d := cmp.Diff(img.Pix, buf.Pix); d != "" {
					t.Errorf("pixels differ (-want +got):\n%s", d)
				}
			}
		})
	}

	if d := cmp.Diff(SupportedFormats(), formats); d != "" {
		t.Errorf("untested formats (-want +got):\n%s", d)
	}
}

func TestLoadTooLarge(t *testing.T) {
	encoded := &bytes.Buffer{}
	if err := bmp.Encode(encoded, testImage(1, 1)); err != nil {
		t.Fatal(err)
	}
	data := encoded.Bytes()

	// claim 100000x100000 pixels in the BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(data[18:], 100000)
	binary.LittleEndian.PutUint32(data[22:], 100000)

	_, err := Load(bytes.NewReader(data), image.Pt(100, 100))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("got %v, want ErrImageTooLarge", err)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(strings.NewReader("hello, world"), image.Point{})
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("text: got %v, want ErrNotImage", err)
	}

	psd := append([]byte("8BPS"), make([]byte, 32)...)
	_, err = Load(bytes.NewReader(psd), image.Point{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("psd: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		size, canvas, want image.Point
	}{
		{image.Pt(40, 20), image.Pt(10, 10), image.Pt(10, 5)},
		{image.Pt(20, 40), image.Pt(100, 100), image.Pt(50, 100)},
		{image.Pt(1000, 1), image.Pt(10, 10), image.Pt(10, 1)},
		{image.Pt(640, 480), image.Pt(640, 480), image.Pt(640, 480)},
		{image.Pt(0, 10), image.Pt(10, 10), image.Pt(0, 0)},
	}
	for _, tt := range tests {
		got := FitSize(tt.size, tt.canvas)
		if got != tt.want {
			t.Errorf("FitSize(%v, %v) = %v, want %v", tt.size, tt.canvas, got, tt.want)
		}
	}
}

func TestSupportedFormats(t *testing.T) {
	want := []string{"bmp", "gif", "jpg", "png", "tif", "webp"}
	if d := cmp.Diff(want, SupportedFormats()); d != "" {
		t.Errorf("(-want +got):\n%s", d)
	}
}

func TestBufferFromImage(t *testing.T) {
	img := testImage(6, 4)
	sub := img.SubImage(image.Rect(2, 1, 5, 3)).(*image.NRGBA)
	buf := BufferFromImage(sub)
	if buf.Width != 3 || buf.Height != 2 {
		t.Fatalf("size %dx%d, want 3x2", buf.Width, buf.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := img.NRGBAAt(x+2, y+1)
			want := [4]uint8{c.R, c.G, c.B, c.A}
			if got := buf.At(x, y); got != want {
				t.Errorf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	out := buf.NRGBA()
	if out.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("bounds = %v", out.Bounds())
	}
}
