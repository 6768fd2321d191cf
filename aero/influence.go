// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// selfInfluence is the analytical normal velocity a vortex ring induces at
// its own control point (unit strength)
const selfInfluence = 0.5

// segmentVel adds to v the velocity induced at point p by a straight vortex
// filament of unit strength running from a to b (Biot-Savart law). Points on
// or very near the filament axis receive no contribution.
func segmentVel(v, a, b, p []float64) {
	r1 := []float64{p[0] - a[0], p[1] - a[1], p[2] - a[2]}
	r2 := []float64{p[0] - b[0], p[1] - b[1], p[2] - b[2]}
	cr := make([]float64, 3)
	utl.Cross3d(cr, r1, r2)
	cr2 := utl.Dot3d(cr, cr)
	if cr2 < 1e-12 {
		return
	}
	n1 := math.Sqrt(utl.Dot3d(r1, r1))
	n2 := math.Sqrt(utl.Dot3d(r2, r2))
	if n1 < 1e-12 || n2 < 1e-12 {
		return
	}
	r0 := []float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	fac := (utl.Dot3d(r0, r1)/n1 - utl.Dot3d(r0, r2)/n2) / (4.0 * math.Pi * cr2)
	v[0] += fac * cr[0]
	v[1] += fac * cr[1]
	v[2] += fac * cr[2]
}

// ringVel adds to v the velocity induced at point p by the four edges of the
// quadrilateral with corners x, carrying circulation gam (vortex ring
// approximation).
func ringVel(v, p []float64, x [4][]float64, gam float64) {
	if math.Abs(gam) < 1e-300 {
		return
	}
	w := make([]float64, 3)
	for e := 0; e < 4; e++ {
		segmentVel(w, x[e], x[(e+1)%4], p)
	}
	v[0] += gam * w[0]
	v[1] += gam * w[1]
	v[2] += gam * w[2]
}

// InducedVel adds to v the velocity the panel induces at point p with its
// current circulation
func (o *Panel) InducedVel(v, p []float64) {
	ringVel(v, p, o.X, o.Gam)
}

// Influence fills the dense influence matrix: A[i][j] is the normal component
// at control point i of the velocity induced by panel j with unit strength.
// The matrix is rebuilt in full whenever the panel geometry changes.
func Influence(A [][]float64, panels []*Panel) {
	v := make([]float64, 3)
	for i, pi := range panels {
		for j, pj := range panels {
			if i == j {
				A[i][j] = selfInfluence
				continue
			}
			la.VecFill(v, 0)
			ringVel(v, pi.C, pj.X, 1.0)
			A[i][j] = utl.Dot3d(v, pi.N)
		}
	}
}
