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

import "fmt"

// EditMode selects which of the two settings of a [Session] is changed by
// [Session.SetChannel] and [Session.AdjustChannel].
type EditMode int

// Possible values of EditMode.
const (
	// EditingBase changes the filtration of the reference print.
	EditingBase EditMode = iota

	// EditingTarget changes the filtration to be simulated.
	EditingTarget
)

func (m EditMode) String() string {
	switch m {
	case EditingBase:
		return "base"
	case EditingTarget:
		return "target"
	default:
		return fmt.Sprintf("EditMode(%d)", int(m))
	}
}

// Session holds the state of one preview: the original image, the base and
// target filtration, and whether the original is being shown for comparison.
//
// The original buffer is set once per image and is only read afterwards.
// A Session is not safe for concurrent use.
type Session struct {
	Model Model

	base, target Setting
	mode         EditMode
	compare      bool
	original     *Buffer
}

// NewSession creates a session using the given model.  Base and target
// start out equal.
func NewSession(m Model, base Setting) *Session {
	base = base.Clamped()
	return &Session{
		Model:  m,
		base:   base,
		target: base,
	}
}

// SetOriginal replaces the original image.  The session takes ownership of
// buf; the caller must not modify it afterwards.
func (s *Session) SetOriginal(buf *Buffer) {
	s.original = buf
}

// Original returns the original image, or nil if none has been set.
func (s *Session) Original() *Buffer {
	return s.original
}

// Base returns the filtration of the reference print.
func (s *Session) Base() Setting { return s.base }

// Target returns the filtration being simulated.
func (s *Session) Target() Setting { return s.target }

// SetBase replaces the base setting.
func (s *Session) SetBase(v Setting) { s.base = v.Clamped() }

// SetTarget replaces the target setting.
func (s *Session) SetTarget(v Setting) { s.target = v.Clamped() }

// Mode returns the current edit mode.
func (s *Session) Mode() EditMode { return s.mode }

// SetMode changes which setting is edited.  The values of the settings
// are not affected.
func (s *Session) SetMode(m EditMode) {
	s.mode = m
}

// Reset makes the target equal to the base, so that the image is shown
// unchanged.
func (s *Session) Reset() {
	s.target = s.base
}

// SetChannel sets one channel of the setting selected by the edit mode.
func (s *Session) SetChannel(ch Channel, v float64) {
	s.edited().Set(ch, v)
}

// AdjustChannel changes one channel of the setting selected by the edit
// mode by dv.
func (s *Session) AdjustChannel(ch Channel, dv float64) {
	s.edited().Add(ch, dv)
}

func (s *Session) edited() *Setting {
	if s.mode == EditingTarget {
		return &s.target
	}
	return &s.base
}

// Delta returns the filtration change from base to target.
func (s *Session) Delta() Delta {
	return Diff(s.base, s.target)
}

// SetCompare selects whether [Session.View] shows the original image.
func (s *Session) SetCompare(on bool) {
	s.compare = on
}

// Comparing reports whether the original image is being shown.
func (s *Session) Comparing() bool {
	return s.compare
}

// View returns the buffer to display.  While comparing, this is the
// original image itself and no computation is done.  Otherwise a new
// buffer with the current delta applied is returned.  The result is nil
// if no image has been set.
func (s *Session) View() *Buffer {
	if s.original == nil {
		return nil
	}
	if s.compare {
		return s.original
	}
	return s.Model.Transform(s.original, s.Delta())
}
