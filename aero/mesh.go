// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package aero implements the panel-method aerodynamic solver
package aero

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Panel is one quadrilateral vortex-ring panel on the lifting surface
type Panel struct {
	X   [4][]float64 // corner coordinates [4][3]
	C   []float64    // control point (centroid)
	N   []float64    // outward unit normal
	A   float64      // area
	Gam float64      // circulation strength (the panel-method unknown)
}

// Geometry derives control point, normal and area from the corners
func (o *Panel) Geometry() (err error) {
	if o.C == nil {
		o.C = make([]float64, 3)
		o.N = make([]float64, 3)
	}
	for k := 0; k < 3; k++ {
		o.C[k] = (o.X[0][k] + o.X[1][k] + o.X[2][k] + o.X[3][k]) / 4.0
	}
	d1 := []float64{o.X[2][0] - o.X[0][0], o.X[2][1] - o.X[0][1], o.X[2][2] - o.X[0][2]}
	d2 := []float64{o.X[3][0] - o.X[1][0], o.X[3][1] - o.X[1][1], o.X[3][2] - o.X[1][2]}
	utl.Cross3d(o.N, d1, d2)
	nrm := math.Sqrt(utl.Dot3d(o.N, o.N))
	o.A = nrm / 2.0
	if o.A < 1e-14 {
		return chk.Err("degenerate panel: area = %g", o.A)
	}
	for k := 0; k < 3; k++ {
		o.N[k] /= nrm
	}
	return
}

// Mesh is the paneled lifting surface. Corner coordinates of the undeformed
// wing are kept so the surface can be rigidly transformed every time step
// under flapping kinematics and structural motion.
type Mesh struct {
	W      *inp.WingData // geometry input
	Panels []*Panel      // all panels, chordwise-major: panel(i,j) = Panels[j*Nx+i]
	Nx, Ny int           // chordwise and spanwise panel counts

	// undeformed corner coordinates, same indexing as Panels
	base [][4][]float64
}

// NewMesh builds a rectangular grid of quadrilateral panels over the tapered
// planform, with camber from the NACA 4-digit mean line.
func NewMesh(w *inp.WingData) (o *Mesh, err error) {
	o = &Mesh{W: w, Nx: w.Nx, Ny: w.Ny}
	np := w.Nx * w.Ny
	o.Panels = make([]*Panel, np)
	o.base = make([][4][]float64, np)

	// grid of corner points: (Nx+1) x (Ny+1)
	xn := utl.LinSpace(0, 1, w.Nx+1)
	yy := utl.LinSpace(-w.Span/2.0, w.Span/2.0, w.Ny+1)
	pts := make([][][]float64, w.Nx+1)
	for i := range pts {
		pts[i] = make([][]float64, w.Ny+1)
		for j := range pts[i] {
			c := o.Chord(yy[j])
			pts[i][j] = []float64{
				xn[i] * c,
				yy[j],
				camberLine(w.Camber, w.CamberPos, xn[i]) * c,
			}
		}
	}

	// panels
	for j := 0; j < w.Ny; j++ {
		for i := 0; i < w.Nx; i++ {
			p := j*w.Nx + i
			o.base[p] = [4][]float64{pts[i][j], pts[i+1][j], pts[i+1][j+1], pts[i][j+1]}
			o.Panels[p] = new(Panel)
		}
	}

	// start from the undeformed configuration
	err = o.Deform(0, nil)
	return
}

// Chord returns the local chord of the tapered planform at spanwise station y
func (o *Mesh) Chord(y float64) float64 {
	eta := math.Abs(2.0 * y / o.W.Span)
	if eta > 1 {
		eta = 1
	}
	return o.W.RootChord + (o.W.TipChord-o.W.RootChord)*eta
}

// MeanChord returns the mean geometric chord
func (o *Mesh) MeanChord() float64 {
	return (o.W.RootChord + o.W.TipChord) / 2.0
}

// PlanformArea returns the reference (planform) area
func (o *Mesh) PlanformArea() float64 {
	return o.MeanChord() * o.W.Span
}

// Deform rebuilds all panel corners from the undeformed configuration: a
// rigid flap rotation by angle phi about the root chord axis (each half-wing
// rotates towards +z) followed by an optional displacement per panel.
//  disp -- displacement of each panel (applied to all four corners); may be nil
func (o *Mesh) Deform(phi float64, disp [][]float64) (err error) {
	s, c := math.Sin(phi), math.Cos(phi)
	for p, bx := range o.base {
		pan := o.Panels[p]
		for k := 0; k < 4; k++ {
			if pan.X[k] == nil {
				pan.X[k] = make([]float64, 3)
			}
			x, y, z := bx[k][0], bx[k][1], bx[k][2]
			sgn := 1.0
			if y < 0 {
				sgn = -1.0
			}
			// rotation about the x-axis, mirrored across the root
			pan.X[k][0] = x
			pan.X[k][1] = y*c - sgn*z*s
			pan.X[k][2] = sgn*y*s + z*c
			if disp != nil {
				pan.X[k][0] += disp[p][0]
				pan.X[k][1] += disp[p][1]
				pan.X[k][2] += disp[p][2]
			}
		}
		if err = pan.Geometry(); err != nil {
			return
		}
	}
	return
}

// KinematicVel computes the velocity v = ω×r at point x due to the flap
// rotation rate phidot about the root chord axis (mirrored halves).
func (o *Mesh) KinematicVel(v, x []float64, phidot float64) {
	sgn := 1.0
	if x[1] < 0 {
		sgn = -1.0
	}
	// ω = sgn*phidot*ex; r measured from the root axis
	v[0] = 0
	v[1] = -sgn * phidot * x[2]
	v[2] = sgn * phidot * x[1]
}

// TrailingEdge returns the indices of the trailing edge panels (one per
// spanwise strip)
func (o *Mesh) TrailingEdge() []int {
	te := make([]int, o.Ny)
	for j := 0; j < o.Ny; j++ {
		te[j] = j*o.Nx + (o.Nx - 1)
	}
	return te
}

// camberLine returns the NACA 4-digit mean line height (fraction of chord) at
// the normalized chordwise position xn; m is the max camber and p its
// position, both fractions of chord.
func camberLine(m, p, xn float64) float64 {
	if m < 1e-14 {
		return 0
	}
	if xn < p {
		return m / (p * p) * (2.0*p*xn - xn*xn)
	}
	return m / ((1.0 - p) * (1.0 - p)) * ((1.0 - 2.0*p) + 2.0*p*xn - xn*xn)
}

// halfThickness returns the NACA 4-digit half-thickness distribution
// (fraction of chord) at the normalized chordwise position xn for max
// thickness tmax (fraction of chord).
func halfThickness(tmax, xn float64) float64 {
	return 5.0 * tmax * (0.2969*math.Sqrt(xn) - 0.1260*xn - 0.3516*xn*xn +
		0.2843*xn*xn*xn - 0.1015*xn*xn*xn*xn)
}
