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

	"github.com/spf13/cobra"

	"seehuhn.de/go/darkroom"
)

func newDeltaCmd() *cobra.Command {
	deltaCmd := &cobra.Command{
		Use:   "delta",
		Short: "Show the filtration change between two settings",
		Args:  cobra.NoArgs,
		RunE:  runDelta,
	}
	addSettingFlags(deltaCmd)
	deltaCmd.Flags().String("model", "", "calibration file (.toml or .yaml)")
	return deltaCmd
}

func addSettingFlags(cmd *cobra.Command) {
	cmd.Flags().String("base", "0,0,0", "filtration of the reference print, as C,M,Y")
	cmd.Flags().String("target", "0,0,0", "filtration to simulate, as C,M,Y")
}

func readSettings(cmd *cobra.Command) (base, target darkroom.Setting, err error) {
	baseStr, _ := cmd.Flags().GetString("base")
	targetStr, _ := cmd.Flags().GetString("target")

	base, err = darkroom.ParseSetting(baseStr)
	if err != nil {
		return base, target, err
	}
	target, err = darkroom.ParseSetting(targetStr)
	if err != nil {
		return base, target, err
	}
	return base, target, nil
}

func readModel(cmd *cobra.Command) (darkroom.Model, error) {
	fname, _ := cmd.Flags().GetString("model")
	if fname == "" {
		return darkroom.DefaultModel, nil
	}
	return darkroom.LoadModel(fname)
}

func runDelta(cmd *cobra.Command, args []string) error {
	base, target, err := readSettings(cmd)
	if err != nil {
		return err
	}
	m, err := readModel(cmd)
	if err != nil {
		return err
	}

	d := darkroom.Diff(base, target)
	off := m.Offsets(d)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "base:   %s\n", base)
	fmt.Fprintf(out, "target: %s\n", target)
	fmt.Fprintf(out, "delta:  %s\n", d)
	fmt.Fprintf(out, "rgb:    %s %s %s\n",
		darkroom.FormatString(off[0]),
		darkroom.FormatString(off[1]),
		darkroom.FormatString(off[2]))
	return nil
}
