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
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seehuhn.de/go/darkroom"
)

func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Apply a filtration change to an image and write a PNG file",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringP("input", "i", "", "input image")
	renderCmd.Flags().StringP("output", "o", "", "output PNG file")
	renderCmd.Flags().Int("width", 0, "canvas width (0 keeps the image size)")
	renderCmd.Flags().Int("height", 0, "canvas height (0 keeps the image size)")
	renderCmd.Flags().String("model", "", "calibration file (.toml or .yaml)")
	renderCmd.Flags().Bool("parallel", false, "use all CPUs")
	addSettingFlags(renderCmd)
	renderCmd.MarkFlagRequired("input")
	renderCmd.MarkFlagRequired("output")
	return renderCmd
}

func runRender(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	parallel, _ := cmd.Flags().GetBool("parallel")

	base, target, err := readSettings(cmd)
	if err != nil {
		return err
	}
	m, err := readModel(cmd)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	src, err := darkroom.Load(in, image.Pt(width, height))
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	slog.Debug("image loaded", "file", inputPath, "width", src.Width, "height", src.Height)

	d := darkroom.Diff(base, target)
	start := time.Now()
	var dst *darkroom.Buffer
	if parallel {
		dst = m.TransformParallel(src, d)
	} else {
		dst = m.Transform(src, d)
	}
	slog.Debug("image rendered", "delta", d.String(), "elapsed", time.Since(start))

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	err = png.Encode(out, dst.NRGBA())
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	slog.Info("wrote image", "file", outputPath, "delta", d.String())
	return nil
}
