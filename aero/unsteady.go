// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
)

// HumanPowerLimit is the sustained mechanical power a fit human can deliver
// to the flapping mechanism [W]
const HumanPowerLimit = 300.0

// sectionDamping is the assumed structural damping ratio of a wing section
const sectionDamping = 0.02

// Theodorsen evaluates the circulation (lift deficiency) function
//  C(k) = H1⁽²⁾(k) / (H1⁽²⁾(k) + i·H0⁽²⁾(k))
// with Hankel functions of the second kind; C(0) = 1 (quasi-steady limit).
func Theodorsen(k float64) complex128 {
	if k < 1e-12 {
		return 1
	}
	h1 := complex(math.J1(k), -math.Y1(k))
	h0 := complex(math.J0(k), -math.Y0(k))
	return h1 / (h1 + 1i*h0)
}

// Wagner evaluates the indicial lift response to a step change in angle of
// attack at the dimensionless time s = 2·V∞·t/c (Jones' approximation).
func Wagner(s float64) float64 {
	if s < 0 {
		return 0
	}
	return 1.0 - 0.165*math.Exp(-0.0455*s) - 0.335*math.Exp(-0.3*s)
}

// SectionLift holds the unsteady lift decomposition of one spanwise section
type SectionLift struct {
	Y             float64 // spanwise station
	Circulatory   float64 // quasi-steady lift attenuated by Re C(k) and the Wagner build-up
	NonCirc       float64 // added-mass force from the angular velocity
	AddedMass     float64 // added-mass force from the angular acceleration
	Total         float64
	Amplification float64 // dynamic amplification of the section response
	NearFlutter   bool    // flapping frequency close to the section's natural frequency
}

// PowerEstimate holds the mechanical power budget of the flapping motion
type PowerEstimate struct {
	Inertial float64 // accelerating the wing mass
	Induced  float64 // induced drag times flight speed
	Profile  float64 // viscous profile losses
	Total    float64
	Feasible bool // Total within the human power ceiling
}

// Unsteady extends the panel solver with the Theodorsen/Wagner unsteady lift
// decomposition and a lumped-parameter section response model.
type Unsteady struct {
	Aerodynamics

	// section material for the lumped response model
	matE   float64 // Young's modulus
	matRho float64 // density
}

func init() {
	phys.Register("unsteady", func() phys.Module { return new(Unsteady) })
}

// Name returns the module name
func (o *Unsteady) Name() string { return "unsteady-aerodynamics" }

// Init builds the panel solver and resolves the section material
func (o *Unsteady) Init(sim *inp.Simulation) (err error) {
	if err = o.Aerodynamics.Init(sim); err != nil {
		return
	}
	if sim.Bcs.Flapping == nil {
		return chk.Err("unsteady aerodynamics requires the \"flapping\" boundary condition section")
	}

	// spruce-like defaults when no material is configured
	o.matE, o.matRho = 10e9, 500
	if sim.Data.Mat != "" && sim.MatModels != nil {
		if m := sim.MatModels.Get(sim.Data.Mat); m != nil {
			o.matE, o.matRho = m.E, m.Rho
		}
	}
	return
}

// ReducedFrequency returns k = ω·c/(2·V∞) for the mean chord
func (o *Unsteady) ReducedFrequency() float64 {
	if o.vmag < 1e-14 {
		return 0
	}
	omega := 2.0 * math.Pi * o.Sim.Bcs.Flapping.Frequency
	return omega * o.Msh.MeanChord() / (2.0 * o.vmag)
}

// SectionLifts decomposes the lift of every spanwise strip at the given time
// into circulatory, non-circulatory and added-mass parts.
func (o *Unsteady) SectionLifts(time float64) (secs []SectionLift, total float64) {
	thetaDot := o.Sim.TwistFunc.G(time, nil)
	thetaDdot := o.Sim.TwistFunc.H(time, nil)
	alpha := o.Sim.Bcs.Freestream.Alpha * math.Pi / 180.0
	freq := o.Sim.Bcs.Flapping.Frequency
	omega := 2.0 * math.Pi * freq
	dy := o.Msh.W.Span / float64(o.Msh.Ny)

	secs = make([]SectionLift, o.Msh.Ny)
	for j := 0; j < o.Msh.Ny; j++ {
		y := -o.Msh.W.Span/2.0 + (float64(j)+0.5)*dy
		c := o.Msh.Chord(y)
		b := c / 2.0

		// reduced frequency and lift deficiency for this section
		k := 0.0
		if o.vmag > 1e-14 {
			k = omega * b / o.vmag
		}
		ck := real(Theodorsen(k))

		// indicial build-up since the impulsive start at t = 0
		wag := Wagner(2.0 * o.vmag * time / c)

		// effective incidence includes the plunge rate of the station
		alphaEff := alpha
		if o.vmag > 1e-14 {
			alphaEff += thetaDot * math.Abs(y) / o.vmag
		}

		// added mass of the section per unit span
		ma := o.rho * math.Pi * b * b

		qs := 0.5 * o.rho * o.vmag * o.vmag * c * 2.0 * math.Pi * alphaEff
		s := SectionLift{
			Y:           y,
			Circulatory: qs * ck * wag * dy,
			NonCirc:     ma * o.vmag * thetaDot * dy,
			AddedMass:   ma * thetaDdot * math.Abs(y) * dy,
		}
		s.Total = s.Circulatory + s.NonCirc + s.AddedMass

		// lumped single-DOF spring-mass-damper response of the section:
		// cantilever bending stiffness against the section share of mass
		span := math.Abs(y) + 0.5*dy
		if st := o.Sim.Struct; st != nil && span > 1e-14 {
			ks := 3.0 * o.matE * st.Inertia / (span * span * span)
			ms := o.matRho * st.Area * span
			wn := math.Sqrt(ks / ms)
			r := omega / wn
			den := math.Sqrt(math.Pow(1.0-r*r, 2) + math.Pow(2.0*sectionDamping*r, 2))
			if den > 1e-14 {
				s.Amplification = 1.0 / den
			}
			s.NearFlutter = r > 0.8 && r < 1.2
		}

		secs[j] = s
		total += s.Total
	}
	return
}

// Power estimates the mechanical power required to sustain the flapping
// motion and checks it against the human power ceiling.
func (o *Unsteady) Power(time float64) (p PowerEstimate) {
	st := o.Sim.Struct
	thetaDot := o.Sim.TwistFunc.G(time, nil)
	thetaDdot := o.Sim.TwistFunc.H(time, nil)

	// inertial: wing mass concentrated at mid-span
	halfSpan := o.Msh.W.Span / 2.0
	wingMass := 2.0 * o.matRho * 1e-2 * o.Msh.MeanChord() * halfSpan // thin shell estimate
	if st != nil {
		wingMass = 2.0 * o.matRho * st.Area * halfSpan * float64(len(st.Spars))
	}
	rm := halfSpan / 2.0
	p.Inertial = math.Abs(wingMass * thetaDdot * rm * thetaDot * rm)

	// induced: drag times flight speed
	c := o.Results()
	p.Induced = math.Abs(c.D * o.vmag)

	// profile: friction estimate scaled by the thickness law
	cd0 := 0.006 * (1.0 + 2.0*halfThickness(o.Msh.W.Thickness, 0.3))
	p.Profile = 0.5 * o.rho * o.vmag * o.vmag * o.vmag * o.Msh.PlanformArea() * cd0

	p.Total = p.Inertial + p.Induced + p.Profile
	p.Feasible = p.Total <= HumanPowerLimit
	return
}
