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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrConfigFormat is returned for calibration files of unknown type.
var ErrConfigFormat = errors.New("darkroom: unknown calibration file format")

// LoadModel reads a calibration file.  The format is chosen by the file
// name extension: ".toml" for TOML, ".yaml" or ".yml" for YAML.  Fields
// which are not present keep the values from [DefaultModel].
//
// A TOML calibration file looks like this:
//
//	strength = 1.8
//	crosstalk = 0.15
func LoadModel(fname string) (Model, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return Model{}, err
	}
	m, err := DecodeModel(data, filepath.Ext(fname))
	if err != nil {
		return Model{}, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

// DecodeModel decodes a calibration in the given format, which is one of
// "toml", "yaml" or "yml", optionally with a leading dot.
func DecodeModel(data []byte, format string) (Model, error) {
	m := DefaultModel
	r := bytes.NewReader(data)

	var err error
	switch normalizeFormat(format) {
	case "toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case "yaml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&m)
		if err == io.EOF {
			// empty document
			err = nil
		}
	default:
		return Model{}, fmt.Errorf("%w: %q", ErrConfigFormat, format)
	}
	if err != nil {
		return Model{}, err
	}

	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// EncodeModel writes m in the given format, see [DecodeModel].
func EncodeModel(w io.Writer, m Model, format string) error {
	switch normalizeFormat(format) {
	case "toml":
		return toml.NewEncoder(w).Encode(m)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrConfigFormat, format)
	}
}

func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "yml" {
		format = "yaml"
	}
	return format
}
