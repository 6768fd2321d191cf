// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solid implements the structural model: a space frame of beam
// elements laid along the wing spars and ribs.
package solid

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Beam is a 3D two-node Euler-Bernoulli beam element with 6 DOFs per node:
// three translations followed by three rotations.
type Beam struct {

	// connectivity and section
	Na, Nb int       // ids of the two end nodes
	Xa, Xb []float64 // end node coordinates
	E      float64   // Young's modulus
	G      float64   // shear modulus
	A      float64   // cross-section area
	I      float64   // section moment of inertia (both bending planes)
	J      float64   // torsion constant
	Rho    float64   // density

	// computed
	L  float64     // element length
	T  [][]float64 // global-to-local transformation
	Kl [][]float64 // local stiffness
	K  [][]float64 // global stiffness
	Ml [][]float64 // local (lumped) mass
	M  [][]float64 // global mass

	// scratch
	ua, ub []float64 // end displacements in local axes
}

// NewBeam returns a new beam element connecting nodes na and nb
func NewBeam(na, nb int, xa, xb []float64, e, g, a, i, j, rho float64) *Beam {
	o := &Beam{Na: na, Nb: nb, Xa: xa, Xb: xb, E: e, G: g, A: a, I: i, J: j, Rho: rho}
	o.T = la.MatAlloc(12, 12)
	o.Kl = la.MatAlloc(12, 12)
	o.K = la.MatAlloc(12, 12)
	o.Ml = la.MatAlloc(12, 12)
	o.M = la.MatAlloc(12, 12)
	o.ua = make([]float64, 3)
	o.ub = make([]float64, 3)
	o.Recompute(true)
	return o
}

// Recompute re-computes the element matrices after the geometry or the
// section properties are externally changed.
func (o *Beam) Recompute(withM bool) {

	// local axes: vt along the element, vs and vr normal to it
	vt := []float64{o.Xb[0] - o.Xa[0], o.Xb[1] - o.Xa[1], o.Xb[2] - o.Xa[2]}
	l := math.Sqrt(utl.Dot3d(vt, vt))
	o.L = l
	for i := 0; i < 3; i++ {
		vt[i] /= l
	}
	up := []float64{0, 0, 1}
	if math.Abs(vt[2]) > 0.95 {
		up = []float64{1, 0, 0}
	}
	vr := make([]float64, 3)
	utl.Cross3d(vr, up, vt) // vr := up cross vt
	lr := math.Sqrt(utl.Dot3d(vr, vr))
	for i := 0; i < 3; i++ {
		vr[i] /= lr
	}
	vs := make([]float64, 3)
	utl.Cross3d(vs, vt, vr) // vs := vt cross vr

	// global to local transformation matrix
	for k := 0; k < 4; k++ {
		o.T[3*k+0][3*k+0], o.T[3*k+0][3*k+1], o.T[3*k+0][3*k+2] = vt[0], vt[1], vt[2]
		o.T[3*k+1][3*k+0], o.T[3*k+1][3*k+1], o.T[3*k+1][3*k+2] = vs[0], vs[1], vs[2]
		o.T[3*k+2][3*k+0], o.T[3*k+2][3*k+1], o.T[3*k+2][3*k+2] = vr[0], vr[1], vr[2]
	}

	// constants
	EI, GJ, EA := o.E*o.I, o.G*o.J, o.E*o.A
	ll := l * l
	lll := l * ll

	// stiffness matrix in local system
	o.Kl[0][0] = EA / l
	o.Kl[0][6] = -EA / l

	o.Kl[1][1] = 12.0 * EI / lll
	o.Kl[1][5] = 6.0 * EI / ll
	o.Kl[1][7] = -12.0 * EI / lll
	o.Kl[1][11] = 6.0 * EI / ll

	o.Kl[2][2] = 12.0 * EI / lll
	o.Kl[2][4] = -6.0 * EI / ll
	o.Kl[2][8] = -12.0 * EI / lll
	o.Kl[2][10] = -6.0 * EI / ll

	o.Kl[3][3] = GJ / l
	o.Kl[3][9] = -GJ / l

	o.Kl[4][2] = -6.0 * EI / ll
	o.Kl[4][4] = 4.0 * EI / l
	o.Kl[4][8] = 6.0 * EI / ll
	o.Kl[4][10] = 2.0 * EI / l

	o.Kl[5][1] = 6.0 * EI / ll
	o.Kl[5][5] = 4.0 * EI / l
	o.Kl[5][7] = -6.0 * EI / ll
	o.Kl[5][11] = 2.0 * EI / l

	o.Kl[6][0] = -EA / l
	o.Kl[6][6] = EA / l

	o.Kl[7][1] = -12.0 * EI / lll
	o.Kl[7][5] = -6.0 * EI / ll
	o.Kl[7][7] = 12.0 * EI / lll
	o.Kl[7][11] = -6.0 * EI / ll

	o.Kl[8][2] = -12.0 * EI / lll
	o.Kl[8][4] = 6.0 * EI / ll
	o.Kl[8][8] = 12.0 * EI / lll
	o.Kl[8][10] = 6.0 * EI / ll

	o.Kl[9][3] = -GJ / l
	o.Kl[9][9] = GJ / l

	o.Kl[10][2] = -6.0 * EI / ll
	o.Kl[10][4] = 2.0 * EI / l
	o.Kl[10][8] = 6.0 * EI / ll
	o.Kl[10][10] = 4.0 * EI / l

	o.Kl[11][1] = 6.0 * EI / ll
	o.Kl[11][5] = 2.0 * EI / l
	o.Kl[11][7] = -6.0 * EI / ll
	o.Kl[11][11] = 4.0 * EI / l

	// stiffness matrix in global system
	la.MatTrMul3(o.K, 1, o.T, o.Kl, o.T) // K := 1 * trans(T) * Kl * T

	// lumped mass matrix: half the element mass at each end; small rotary
	// inertia to keep the matrix invertible in dynamic runs
	if withM {
		hm := o.Rho * o.A * l / 2.0
		ri := hm * ll / 12.0
		for i := 0; i < 3; i++ {
			o.Ml[i][i] = hm
			o.Ml[i+3][i+3] = ri
			o.Ml[i+6][i+6] = hm
			o.Ml[i+9][i+9] = ri
		}
		la.MatTrMul3(o.M, 1, o.T, o.Ml, o.T)
	}
}

// AxialStress returns the axial stress in the element given the global
// displacement vectors of its two end nodes (translations only).
func (o *Beam) AxialStress(ua, ub []float64) float64 {
	for i := 0; i < 3; i++ {
		o.ua[i] = o.T[0][i] * ua[i]
		o.ub[i] = o.T[0][i] * ub[i]
	}
	ea := (o.ub[0] + o.ub[1] + o.ub[2]) - (o.ua[0] + o.ua[1] + o.ua[2])
	return o.E * ea / o.L
}
