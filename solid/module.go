// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solid

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Structure is the structural solver: spanwise spar beams connected by rib
// cross beams, assembled into one linear system K·u = f. Its degrees of
// freedom are the 6 generalized displacements of every node.
type Structure struct {

	// input
	Sim *inp.Simulation // simulation data
	mat *inp.Material   // spar material

	// discretization
	Nodes  [][]float64 // node coordinates [nn][3]; node(j,k) = Nodes[j*nspars+k]
	Beams  []*Beam     // all beam elements
	nribs  int         // number of rib stations
	nspars int         // number of spars
	ndof   int         // 6 per node

	// supports and loads
	fixed []bool    // prescribed (zero) equations
	fext  []float64 // external force vector, zeroed at fixed equations

	// assembled system; entry lists kept for re-assembly into a Jacobian
	ri, ci []int
	v      []float64
	Km     *la.CCMatrix

	// cache of the last state seen (for export and stress recovery)
	u []float64
}

func init() {
	phys.Register("structure", func() phys.Module { return new(Structure) })
}

// Name returns the module name
func (o *Structure) Name() string { return "structure" }

// Init builds nodes, elements, supports and the assembled stiffness
func (o *Structure) Init(sim *inp.Simulation) (err error) {

	// check input
	o.Sim = sim
	st := sim.Struct
	if st == nil {
		return chk.Err("the structural model requires the \"struct\" geometry section")
	}
	if err = st.Validate(); err != nil {
		return
	}
	if sim.MatModels == nil {
		return chk.Err("the structural model requires a materials database")
	}
	o.mat = sim.MatModels.Get(sim.Data.Mat)
	if o.mat == nil {
		return chk.Err("cannot find material named %q in materials database", sim.Data.Mat)
	}
	gmod := o.mat.E / (2.0 * (1.0 + o.mat.Nu))

	// nodes at the crossing of each rib station with each spar
	o.nribs, o.nspars = st.Nribs, len(st.Spars)
	nn := o.nribs * o.nspars
	o.ndof = 6 * nn
	span, chord := 1.0, func(y float64) float64 { return 1.0 }
	if w := sim.Wing; w != nil {
		span = w.Span
		chord = func(y float64) float64 {
			eta := math.Abs(2.0 * y / w.Span)
			if eta > 1 {
				eta = 1
			}
			return w.RootChord + (w.TipChord-w.RootChord)*eta
		}
	}
	o.Nodes = make([][]float64, nn)
	for j := 0; j < o.nribs; j++ {
		y := -span/2.0 + span*float64(j)/float64(o.nribs-1)
		for k := 0; k < o.nspars; k++ {
			o.Nodes[j*o.nspars+k] = []float64{st.Spars[k] * chord(y), y, 0}
		}
	}

	// elements: spar segments between consecutive ribs, then rib cross beams
	jt := 2.0 * st.Inertia
	for k := 0; k < o.nspars; k++ {
		for j := 0; j < o.nribs-1; j++ {
			na, nb := j*o.nspars+k, (j+1)*o.nspars+k
			o.Beams = append(o.Beams, NewBeam(na, nb, o.Nodes[na], o.Nodes[nb], o.mat.E, gmod, st.Area, st.Inertia, jt, o.mat.Rho))
		}
	}
	for j := 0; j < o.nribs; j++ {
		for k := 0; k < o.nspars-1; k++ {
			na, nb := j*o.nspars+k, j*o.nspars+k+1
			o.Beams = append(o.Beams, NewBeam(na, nb, o.Nodes[na], o.Nodes[nb], o.mat.E, gmod, st.Area, st.Inertia, jt, o.mat.Rho))
		}
	}

	// supports: explicitly fixed nodes, or the rib closest to mid-span
	o.fixed = make([]bool, o.ndof)
	fnodes := sim.Bcs.Structural.FixedNodes
	if len(fnodes) == 0 {
		jroot := (o.nribs - 1) / 2
		for k := 0; k < o.nspars; k++ {
			fnodes = append(fnodes, jroot*o.nspars+k)
		}
	}
	for _, n := range fnodes {
		if n < 0 || n >= nn {
			return chk.Err("fixed node id %d is out of range [0,%d)", n, nn)
		}
		for c := 0; c < 6; c++ {
			o.fixed[6*n+c] = true
		}
	}

	// external loads
	o.fext = make([]float64, o.ndof)
	for _, pl := range sim.Bcs.Structural.Loads {
		if pl.Node < 0 || pl.Node >= nn {
			return chk.Err("point load node id %d is out of range [0,%d)", pl.Node, nn)
		}
		if len(pl.F) != 3 {
			return chk.Err("point load at node %d must be a 3-component vector", pl.Node)
		}
		for c := 0; c < 3; c++ {
			o.addLoad(6*pl.Node+c, pl.F[c])
		}
	}

	// assemble the entry lists and the stiffness matrix
	o.assemble()
	var kk la.Triplet
	kk.Init(o.ndof, o.ndof, len(o.v))
	for i, r := range o.ri {
		kk.Put(r, o.ci[i], o.v[i])
	}
	o.Km = kk.ToMatrix(nil)
	o.u = make([]float64, o.ndof)
	return
}

// NumDofs returns the number of degrees of freedom
func (o *Structure) NumDofs() int { return o.ndof }

// Residual computes r = K·u − f. The residual is zero at equilibrium; fixed
// equations read u directly since their stiffness rows are unit diagonals.
func (o *Structure) Residual(r, state []float64, time float64) (err error) {
	if len(state) != o.ndof {
		return chk.Err("structure: state size %d differs from %d dofs", len(state), o.ndof)
	}
	la.SpMatVecMul(r, 1, o.Km, state) // r := K*u
	for i := 0; i < o.ndof; i++ {
		r[i] -= o.fext[i]
	}
	copy(o.u, state)
	return
}

// Jacobian fills Kb with the assembled stiffness entries
func (o *Structure) Jacobian(Kb *la.Triplet, state []float64, time float64) (err error) {
	if Kb.Max() == 0 {
		Kb.Init(o.ndof, o.ndof, len(o.v))
	}
	Kb.Start()
	for i, r := range o.ri {
		Kb.Put(r, o.ci[i], o.v[i])
	}
	return
}

// SetData absorbs nodal forces from the coupling interface
func (o *Structure) SetData(d phys.Data) (err error) {
	nf, ok := d.(*phys.NodalForces)
	if !ok {
		return chk.Err("structure cannot absorb %q records", d.Kind())
	}
	nn := o.nribs * o.nspars
	if len(nf.F) != nn {
		return chk.Err("nodal forces carry %d nodes but the structure has %d", len(nf.F), nn)
	}

	// rebuild the external force vector: point loads plus aero forces
	la.VecFill(o.fext, 0)
	for _, pl := range o.Sim.Bcs.Structural.Loads {
		for c := 0; c < 3; c++ {
			o.addLoad(6*pl.Node+c, pl.F[c])
		}
	}
	for n := 0; n < nn; n++ {
		for c := 0; c < 3; c++ {
			o.addLoad(6*n+c, nf.F[n][c])
		}
	}
	return
}

// GetData exports the wall motion: node coordinates and translations
func (o *Structure) GetData() []phys.Data {
	nn := o.nribs * o.nspars
	wm := &phys.WallMotion{
		Coords: make([][]float64, nn),
		Disp:   make([][]float64, nn),
	}
	for n := 0; n < nn; n++ {
		wm.Coords[n] = []float64{o.Nodes[n][0], o.Nodes[n][1], o.Nodes[n][2]}
		wm.Disp[n] = []float64{o.u[6*n], o.u[6*n+1], o.u[6*n+2]}
	}
	return []phys.Data{wm}
}

// AxialStresses recovers the axial stress of every beam from the last state
// seen, in element order
func (o *Structure) AxialStresses() []float64 {
	sig := make([]float64, len(o.Beams))
	ua, ub := make([]float64, 3), make([]float64, 3)
	for i, b := range o.Beams {
		for c := 0; c < 3; c++ {
			ua[c] = o.u[6*b.Na+c]
			ub[c] = o.u[6*b.Nb+c]
		}
		sig[i] = b.AxialStress(ua, ub)
	}
	return sig
}

// MaxAxialStress returns the largest axial stress magnitude over all beams
func (o *Structure) MaxAxialStress() (smax float64) {
	for _, s := range o.AxialStresses() {
		if math.Abs(s) > smax {
			smax = math.Abs(s)
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// addLoad accumulates a force component, discarding loads on fixed equations
func (o *Structure) addLoad(eq int, f float64) {
	if !o.fixed[eq] {
		o.fext[eq] += f
	}
}

// assemble scatters all element stiffness matrices into the entry lists,
// skipping fixed equations and placing unit values on their diagonals
func (o *Structure) assemble() {
	for _, b := range o.Beams {
		eqs := make([]int, 12)
		for c := 0; c < 6; c++ {
			eqs[c] = 6*b.Na + c
			eqs[6+c] = 6*b.Nb + c
		}
		for i := 0; i < 12; i++ {
			if o.fixed[eqs[i]] {
				continue
			}
			for j := 0; j < 12; j++ {
				if o.fixed[eqs[j]] || b.K[i][j] == 0 {
					continue
				}
				o.ri = append(o.ri, eqs[i])
				o.ci = append(o.ci, eqs[j])
				o.v = append(o.v, b.K[i][j])
			}
		}
	}
	for eq := 0; eq < o.ndof; eq++ {
		if o.fixed[eq] {
			o.ri = append(o.ri, eq)
			o.ci = append(o.ci, eq)
			o.v = append(o.v, 1)
		}
	}
}
