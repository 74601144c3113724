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

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestDeltaCommand(t *testing.T) {
	out := execute(t, "delta", "--base", "40,25,0", "--target", "40,35,0")
	require.Contains(t, out, "delta:  C+0.0 M+10.0 Y+0.0")
	require.Contains(t, out, "rgb:    -2.7 18.0 -2.7")
}

func TestFormatsCommand(t *testing.T) {
	out := execute(t, "formats")
	require.Equal(t, []string{"bmp", "gif", "jpg", "png", "tif", "webp"},
		strings.Fields(out))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")

	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{128, 128, 128, 255})
		}
	}
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(model, []byte("strength: 1.8\ncrosstalk: 0.15\n"), 0o644))

	execute(t, "render", "-i", in, "-o", out,
		"--target", "0,10,0", "--model", model, "--parallel")

	f, err = os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	res, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 3), res.Bounds())

	got := color.NRGBAModel.Convert(res.At(1, 1)).(color.NRGBA)
	require.Equal(t, color.NRGBA{125, 146, 125, 255}, got)
}

func TestDeltaCommandBadSetting(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"delta", "--base", "1,2"})
	require.Error(t, cmd.Execute())
}

func TestFlagsDoNotCarryOver(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.toml")
	require.NoError(t, os.WriteFile(model, []byte("strength = 1.0\ncrosstalk = 0.0\n"), 0o644))

	out := execute(t, "delta", "--target", "0,10,0", "--model", model)
	require.Contains(t, out, "rgb:    0.0 10.0 0.0")

	// a second run without flags uses the defaults again
	out = execute(t, "delta")
	require.Contains(t, out, "delta:  C+0.0 M+0.0 Y+0.0")
	out = execute(t, "delta", "--target", "0,10,0")
	require.Contains(t, out, "rgb:    -2.7 18.0 -2.7")
}
