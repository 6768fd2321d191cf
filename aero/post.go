// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Coeffs holds integrated aerodynamic results
type Coeffs struct {
	L, D    float64   // lift and drag forces
	Cl, Cd  float64   // lift and drag coefficients
	LoverD  float64   // glide ratio
	Re      float64   // Reynolds number based on mean chord
	Cp      float64   // flapping power coefficient
	F       []float64 // total pressure force [3]
	M       []float64 // moment about the reference point [3]
	MaxPres float64   // largest pressure magnitude
}

// computePost evaluates the Bernoulli pressure at every control point from
// the local total velocity magnitude against the freestream, and the
// resulting panel forces.
func (o *Aerodynamics) computePost() {
	phidot := 0.0
	if o.Sim.TwistFunc != nil {
		phidot = o.Sim.TwistFunc.G(o.time, nil)
	}
	v := make([]float64, 3)
	vk := make([]float64, 3)
	for i, p := range o.Msh.Panels {
		p.Gam = o.gam[i]
	}
	for i, p := range o.Msh.Panels {

		// local total velocity
		o.Msh.KinematicVel(vk, p.C, phidot)
		for k := 0; k < 3; k++ {
			v[k] = o.vinf[k] + vk[k]
		}
		for j, pj := range o.Msh.Panels {
			if j != i {
				pj.InducedVel(v, p.C)
			}
		}
		o.Wake.InducedVel(v, p.C)

		// incompressible Bernoulli against the freestream
		vloc2 := utl.Dot3d(v, v)
		o.pressure[i] = 0.5 * o.rho * (o.vmag*o.vmag - vloc2)

		// pressure force acts along the outward normal for suction
		for k := 0; k < 3; k++ {
			o.force[i][k] = -o.pressure[i] * p.A * p.N[k]
		}
	}
}

// Results integrates pressure into force, moment and derived coefficients
func (o *Aerodynamics) Results() (c Coeffs) {
	o.computePost()
	c.F = make([]float64, 3)
	c.M = make([]float64, 3)
	ref := o.Sim.Wing.RefPoint
	arm := make([]float64, 3)
	mm := make([]float64, 3)
	phidot := 0.0
	if o.Sim.TwistFunc != nil {
		phidot = o.Sim.TwistFunc.G(o.time, nil)
	}
	vk := make([]float64, 3)
	power := 0.0
	for i, p := range o.Msh.Panels {
		for k := 0; k < 3; k++ {
			c.F[k] += o.force[i][k]
			arm[k] = p.C[k] - ref[k]
		}
		utl.Cross3d(mm, arm, o.force[i])
		for k := 0; k < 3; k++ {
			c.M[k] += mm[k]
		}
		if math.Abs(o.pressure[i]) > c.MaxPres {
			c.MaxPres = math.Abs(o.pressure[i])
		}

		// aerodynamic power against the flapping motion
		o.Msh.KinematicVel(vk, p.C, phidot)
		power -= utl.Dot3d(o.force[i], vk)
	}

	// wind axes: drag along the onset flow, lift perpendicular in the x-z plane
	if o.vmag < 1e-14 {
		return
	}
	vhat := []float64{o.vinf[0] / o.vmag, o.vinf[1] / o.vmag, o.vinf[2] / o.vmag}
	lhat := []float64{-vhat[2], 0, vhat[0]}
	nrm := la.VecNorm(lhat)
	if nrm > 1e-14 {
		lhat[0] /= nrm
		lhat[2] /= nrm
	}
	c.L = utl.Dot3d(c.F, lhat)
	c.D = utl.Dot3d(c.F, vhat)

	q := 0.5 * o.rho * o.vmag * o.vmag
	S := o.Msh.PlanformArea()
	c.Cl = c.L / (q * S)
	c.Cd = c.D / (q * S)
	if math.Abs(c.Cd) > 1e-14 {
		c.LoverD = c.Cl / c.Cd
	}
	c.Re = o.rho * o.vmag * o.Msh.MeanChord() / o.mu
	c.Cp = power / (0.5 * o.rho * o.vmag * o.vmag * o.vmag * S)
	return
}
