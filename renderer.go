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
	"context"
	"sync"
	"time"
)

// Frame is a rendered image, as published by a [Renderer].
type Frame struct {
	// Seq is the sequence number returned by the [Renderer.Request] call
	// which produced this frame.
	Seq uint64

	Delta  Delta
	Buffer *Buffer
}

// Renderer re-renders an image in the background whenever the filtration
// changes.
//
// Requests are coalesced: there is a single pending slot, and a new request
// replaces any request which has not been started yet.  If a request is
// superseded while it is being rendered, the result is dropped.  Thus only
// the most recent state is ever published, and a burst of requests (for
// example while a slider is dragged) does not queue up work.
//
// If requests arrive faster than a frame can be rendered, every result is
// superseded and nothing is shown until the requests stop.  Use
// [Renderer.SetMaxDelay] to publish outdated frames in this case.
type Renderer struct {
	model    Model
	parallel bool
	publish  func(Frame)

	mu       sync.Mutex
	seq      uint64
	pending  *renderRequest
	maxDelay time.Duration

	wake chan struct{}

	// lastPublish is only accessed by the goroutine running Run.
	lastPublish time.Time

	// rendered, if set, is called after a frame has been rendered and
	// before it is published or dropped.
	rendered func(seq uint64)
}

type renderRequest struct {
	seq   uint64
	src   *Buffer
	delta Delta
}

// NewRenderer creates a renderer which calls publish for every completed
// frame.  publish is called from the goroutine running [Renderer.Run].
// If parallel is true, frames are rendered using [Model.TransformParallel].
func NewRenderer(m Model, parallel bool, publish func(Frame)) *Renderer {
	return &Renderer{
		model:    m,
		parallel: parallel,
		publish:  publish,
		wake:     make(chan struct{}, 1),
	}
}

// SetMaxDelay makes the renderer publish a superseded frame if no frame
// has been published for at least d.  A zero d, the default, means that
// superseded frames are always dropped.
func (r *Renderer) SetMaxDelay(d time.Duration) {
	r.mu.Lock()
	r.maxDelay = d
	r.mu.Unlock()
}

// Request asks for src to be rendered with delta d.  The call never blocks.
// The returned sequence number identifies the resulting [Frame].
//
// src is only read, and must not be modified until it is no longer used.
func (r *Renderer) Request(src *Buffer, d Delta) uint64 {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.pending = &renderRequest{seq: seq, src: src, delta: d}
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return seq
}

// Run processes requests until ctx is cancelled.  It returns the context's
// error.
func (r *Renderer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wake:
		}

		req := r.take()
		if req == nil {
			continue
		}

		var buf *Buffer
		if r.parallel {
			buf = r.model.TransformParallel(req.src, req.delta)
		} else {
			buf = r.model.Transform(req.src, req.delta)
		}

		if r.rendered != nil {
			r.rendered(req.seq)
		}

		if ctx.Err() != nil || !r.shouldPublish(req.seq) {
			continue
		}
		r.lastPublish = time.Now()
		r.publish(Frame{Seq: req.seq, Delta: req.delta, Buffer: buf})
	}
}

func (r *Renderer) take() *renderRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := r.pending
	r.pending = nil
	return req
}

// shouldPublish reports whether the frame for request seq is still wanted.
func (r *Renderer) shouldPublish(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == seq {
		return true
	}
	return r.maxDelay > 0 && time.Since(r.lastPublish) >= r.maxDelay
}
