// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

// WakePanel is one shed vortex ring convecting downstream
type WakePanel struct {
	X   [4][]float64 // corner coordinates [4][3]
	Age int          // number of time steps since shedding
	Gam float64      // circulation strength, frozen at shedding
}

// Wake is a fixed-capacity ring buffer of wake panels: once full, pushing a
// new panel drops the oldest. Indices never escape this package.
type Wake struct {
	buf   []*WakePanel
	start int // index of the oldest entry
	n     int // number of valid entries
}

// NewWake returns a wake with the given capacity
func NewWake(capacity int) *Wake {
	if capacity < 1 {
		capacity = 1
	}
	return &Wake{buf: make([]*WakePanel, capacity)}
}

// Len returns the number of wake panels currently alive
func (o *Wake) Len() int { return o.n }

// Cap returns the capacity
func (o *Wake) Cap() int { return len(o.buf) }

// Push appends a new wake panel, dropping the oldest when at capacity
func (o *Wake) Push(w *WakePanel) {
	if o.n < len(o.buf) {
		o.buf[(o.start+o.n)%len(o.buf)] = w
		o.n++
		return
	}
	o.buf[o.start] = w
	o.start = (o.start + 1) % len(o.buf)
}

// Each calls f for every wake panel, oldest first
func (o *Wake) Each(f func(w *WakePanel)) {
	for k := 0; k < o.n; k++ {
		f(o.buf[(o.start+k)%len(o.buf)])
	}
}

// Convect moves all wake panels downstream by dx and ages them
func (o *Wake) Convect(dx float64) {
	o.Each(func(w *WakePanel) {
		for k := 0; k < 4; k++ {
			w.X[k][0] += dx
		}
		w.Age++
	})
}

// InducedVel adds to v the velocity induced at point p by the whole wake
func (o *Wake) InducedVel(v, p []float64) {
	o.Each(func(w *WakePanel) {
		ringVel(v, p, w.X, w.Gam)
	})
}
