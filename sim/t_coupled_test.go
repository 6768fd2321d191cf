// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"
	"testing"

	"github.com/Shannon-Labs/davinci-codex-sub000/aero"
	"github.com/Shannon-Labs/davinci-codex-sub000/cpl"
	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"
	"github.com/Shannon-Labs/davinci-codex-sub000/solid"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_cpld01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cpld01. coupled aero/structure run from a deck")

	s, err := inp.ReadSim("data/coupled.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}

	// modules as the deck names them
	aeroM, err := phys.New(s.Data.Aero, s)
	if err != nil {
		tst.Errorf("cannot allocate aero module:\n%v", err)
		return
	}
	strM, err := phys.New("structure", s)
	if err != nil {
		tst.Errorf("cannot allocate structural module:\n%v", err)
		return
	}
	sv := New(s)
	ha := sv.AddModule(aeroM)
	hs := sv.AddModule(strM)

	// interface between panel control points and spar/rib nodes
	var pts, nds [][]float64
	for _, d := range aeroM.GetData() {
		if al, ok := d.(*phys.AeroLoads); ok {
			pts = al.Points
		}
	}
	for _, d := range strM.GetData() {
		if wm, ok := d.(*phys.WallMotion); ok {
			nds = wm.Coords
		}
	}
	itf, err := cpl.New(pts, nds)
	if err != nil {
		tst.Errorf("cannot build coupling interface:\n%v", err)
		return
	}
	if err = sv.Couple(ha, hs, itf); err != nil {
		tst.Errorf("Couple failed:\n%v", err)
		return
	}
	if err = sv.Couple(hs, ha, itf); err != nil {
		tst.Errorf("Couple failed:\n%v", err)
		return
	}
	if err = sv.Init(); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// run: 3 time steps with wake shedding and load/motion exchange
	res, err := sv.Run()
	if err != nil {
		tst.Errorf("Run failed:\n%v", err)
		return
	}
	chk.IntAssert(len(res.Steps), 3)
	for i, st := range res.Steps {
		if st.Degraded {
			tst.Errorf("step %d is degraded: %s", i, st.Reason)
			return
		}
		if !st.Converged {
			tst.Errorf("step %d did not converge: %s", i, st.Reason)
			return
		}
		if st.LinFailures != 0 {
			tst.Errorf("step %d had %d linear solve failures", i, st.LinFailures)
		}
		io.Pf("step %d: t=%.2f iterations=%d residual=%g\n", i, st.Time, st.Iterations, st.Residual)
	}

	// the wake stays within its cap after more sheds than it can hold
	a := aeroM.(*aero.Aerodynamics)
	chk.IntAssert(a.Wake.Len(), a.Wake.Cap())

	// positive incidence produces lift
	c := a.Results()
	io.Pf("Cl = %g  Cd = %g\n", c.Cl, c.Cd)
	if c.Cl <= 0 {
		tst.Errorf("lift coefficient must be positive at 4 deg incidence (Cl=%g)", c.Cl)
	}

	// the fixed rib stays put while the free rib deflects under the aero loads
	u := sv.State(hs)
	chk.Vector(tst, "fixed rib", 1e-15, u[:12], make([]float64, 12))
	var umax float64
	for _, v := range u[12:] {
		if math.Abs(v) > umax {
			umax = math.Abs(v)
		}
	}
	io.Pf("max free deflection = %g\n", umax)
	if umax < 1e-9 || umax > 0.05 {
		tst.Errorf("free rib deflection %g out of the small-deformation range", umax)
	}

	// the structural side received properly shaped nodal forces
	str := strM.(*solid.Structure)
	chk.IntAssert(len(str.Nodes), 4)
	if str.MaxAxialStress() <= 0 {
		tst.Errorf("loaded spars must carry axial stress")
	}
}
