// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// wakeConvectFactor is the fraction of the freestream speed at which wake
// panels convect downstream
const wakeConvectFactor = 0.3

// Aerodynamics is the panel-method (boundary element) solver over the
// paneled wing surface. Its degrees of freedom are the panel circulation
// strengths; the residual enforces flow tangency at the control points.
type Aerodynamics struct {

	// input
	Sim *inp.Simulation // simulation data

	// discretization
	Msh  *Mesh // paneled surface
	Wake *Wake // shed wake, bounded
	np   int   // number of panels

	// freestream
	vinf []float64 // freestream velocity rotated by the angle of attack
	vmag float64   // freestream speed
	rho  float64   // air density
	mu   float64   // dynamic viscosity

	// influence system, valid for one (geometry, time) pair
	A       [][]float64 // dense influence matrix
	rhs     []float64   // boundary condition right-hand side
	wakeInf []float64   // wake-induced normal velocity at control points
	time    float64     // time at which the geometry was built

	// coupling
	motion *phys.WallMotion // last received wall motion at panel control points

	// cache of the last computed solution (for post-processing and export)
	gam      []float64   // circulation strengths
	pressure []float64   // Bernoulli pressure at control points
	force    [][]float64 // pressure force on each panel
}

func init() {
	phys.Register("panel", func() phys.Module { return new(Aerodynamics) })
}

// Name returns the module name
func (o *Aerodynamics) Name() string { return "aerodynamics" }

// Init builds the paneled surface and the influence system
func (o *Aerodynamics) Init(sim *inp.Simulation) (err error) {
	if sim.Wing == nil {
		return chk.Err("aerodynamics: missing \"wing\" geometry section")
	}
	if err = sim.Wing.Validate(); err != nil {
		return
	}
	o.Sim = sim
	o.Msh, err = NewMesh(sim.Wing)
	if err != nil {
		return
	}
	o.np = len(o.Msh.Panels)
	o.Wake = NewWake(sim.Wing.MaxWake)

	// freestream rotated by the angle of attack (about the y-axis)
	fs := sim.Bcs.Freestream
	alpha := fs.Alpha * math.Pi / 180.0
	ca, sa := math.Cos(alpha), math.Sin(alpha)
	v := fs.Velocity
	o.vinf = []float64{
		ca*v[0] + sa*v[2],
		v[1],
		-sa*v[0] + ca*v[2],
	}
	o.vmag = math.Sqrt(o.vinf[0]*o.vinf[0] + o.vinf[1]*o.vinf[1] + o.vinf[2]*o.vinf[2])
	o.rho = fs.Rho
	o.mu = fs.Mu

	// workspaces
	o.A = la.MatAlloc(o.np, o.np)
	o.rhs = make([]float64, o.np)
	o.wakeInf = make([]float64, o.np)
	o.gam = make([]float64, o.np)
	o.pressure = make([]float64, o.np)
	o.force = la.MatAlloc(o.np, 3)

	// influence system for the undeformed geometry at t=0
	return o.rebuild(0)
}

// NumDofs returns the number of degrees of freedom (panel strengths)
func (o *Aerodynamics) NumDofs() int { return o.np }

// Residual computes r = A·γ − rhs − wake influence. It is a pure function of
// (state, time, current coupling variables); the strengths are cached for
// post-processing.
func (o *Aerodynamics) Residual(r, state []float64, time float64) (err error) {
	o.computeRhs(time)
	la.MatVecMul(r, 1, o.A, state) // r := A*γ
	for i := 0; i < o.np; i++ {
		r[i] -= o.rhs[i] + o.wakeInf[i]
	}
	copy(o.gam, state)
	return
}

// Jacobian adds the influence matrix to Kb
func (o *Aerodynamics) Jacobian(Kb *la.Triplet, state []float64, time float64) (err error) {
	if Kb.Max() == 0 {
		Kb.Init(o.np, o.np, o.np*o.np)
	}
	Kb.Start()
	for i := 0; i < o.np; i++ {
		for j := 0; j < o.np; j++ {
			Kb.Put(i, j, o.A[i][j])
		}
	}
	return
}

// SetData absorbs wall motion produced by the structural side: panel corners
// are displaced and the influence system is rebuilt. Other record kinds are
// ignored.
func (o *Aerodynamics) SetData(d phys.Data) (err error) {
	m, ok := d.(*phys.WallMotion)
	if !ok {
		return
	}
	if len(m.Disp) != o.np {
		return chk.Err("aerodynamics: wall motion carries %d points but there are %d panels", len(m.Disp), o.np)
	}
	o.motion = m
	return o.rebuild(o.time)
}

// GetData exports the pressure field and panel forces
func (o *Aerodynamics) GetData() []phys.Data {
	o.computePost()
	loads := &phys.AeroLoads{
		Pressure: make([]float64, o.np),
		Points:   la.MatAlloc(o.np, 3),
		Force:    la.MatAlloc(o.np, 3),
	}
	copy(loads.Pressure, o.pressure)
	for i, p := range o.Msh.Panels {
		copy(loads.Points[i], p.C)
		copy(loads.Force[i], o.force[i])
	}
	return []phys.Data{loads}
}

// BeginStep advances the wake and rebuilds the geometry for the new time.
// Called once per time step, not per coupling iteration.
func (o *Aerodynamics) BeginStep(time, dt float64) (err error) {
	o.advanceWake(dt)
	return o.rebuild(time)
}

// advanceWake convects existing wake panels downstream, sheds a new panel
// from the trailing edge with the mean circulation of the trailing edge
// strips and lets the ring buffer drop the oldest entry once at capacity.
func (o *Aerodynamics) advanceWake(dt float64) {
	o.Wake.Convect(wakeConvectFactor * o.vmag * dt)

	// mean trailing edge circulation
	te := o.Msh.TrailingEdge()
	gte := 0.0
	for _, p := range te {
		gte += o.gam[p]
	}
	gte /= float64(len(te))

	// shed one ring spanning the trailing edge
	first := o.Msh.Panels[te[0]]
	last := o.Msh.Panels[te[len(te)-1]]
	dx := wakeConvectFactor * o.vmag * dt
	if dx < 1e-14 {
		dx = 0.05 * o.Msh.MeanChord()
	}
	w := &WakePanel{Gam: gte}
	src := [4][]float64{first.X[1], last.X[2], last.X[2], first.X[1]}
	for k := 0; k < 4; k++ {
		w.X[k] = []float64{src[k][0], src[k][1], src[k][2]}
	}
	w.X[2][0] += dx
	w.X[3][0] += dx
	o.Wake.Push(w)
}

// rebuild recomputes panel corners for the given time (flap rotation plus
// any received wall motion), then the dense influence matrix and the
// wake-induced normal velocities.
func (o *Aerodynamics) rebuild(time float64) (err error) {
	phi := 0.0
	if o.Sim.TwistFunc != nil {
		phi = o.Sim.TwistFunc.F(time, nil)
	}
	var disp [][]float64
	if o.motion != nil {
		disp = o.motion.Disp
	}
	if err = o.Msh.Deform(phi, disp); err != nil {
		return
	}
	o.time = time
	Influence(o.A, o.Msh.Panels)

	v := make([]float64, 3)
	for i, p := range o.Msh.Panels {
		la.VecFill(v, 0)
		o.Wake.InducedVel(v, p.C)
		// enters the residual as A·γ − rhs − wakeInf
		o.wakeInf[i] = -(v[0]*p.N[0] + v[1]*p.N[1] + v[2]*p.N[2])
	}
	return
}

// computeRhs evaluates the boundary condition right-hand side: the negative
// normal component of the total onset velocity (freestream plus flapping
// kinematics) at each control point.
func (o *Aerodynamics) computeRhs(time float64) {
	phidot := 0.0
	if o.Sim.TwistFunc != nil {
		phidot = o.Sim.TwistFunc.G(time, nil)
	}
	vk := make([]float64, 3)
	for i, p := range o.Msh.Panels {
		o.Msh.KinematicVel(vk, p.C, phidot)
		vn := 0.0
		for k := 0; k < 3; k++ {
			vn += (o.vinf[k] + vk[k]) * p.N[k]
		}
		o.rhs[i] = -vn
	}
}
