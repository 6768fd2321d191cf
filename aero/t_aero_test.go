// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aero

import (
	"math"
	"testing"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/lin"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// plateSim returns a rectangular flat plate deck at the given angle of attack
func plateSim(tst *testing.T, alpha float64) *inp.Simulation {
	s := &inp.Simulation{
		Data: inp.Data{Aero: "panel"},
		Wing: &inp.WingData{Span: 8, RootChord: 1, TipChord: 1, Nx: 4, Ny: 8},
		Bcs: inp.BcsData{
			Freestream: inp.FreestreamData{Velocity: []float64{10, 0, 0}, Alpha: alpha},
		},
	}
	if err := s.Derive(); err != nil {
		tst.Fatalf("Derive failed:\n%v", err)
	}
	return s
}

func Test_infl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("infl01. unit self influence on every panel")

	o := new(Aerodynamics)
	err := o.Init(plateSim(tst, 0))
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	chk.IntAssert(o.NumDofs(), 32)
	for i := 0; i < o.np; i++ {
		chk.Scalar(tst, io.Sf("A[%d][%d]", i, i), 1e-15, o.A[i][i], 0.5)
	}
}

func Test_plate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("plate01. flat plate at zero incidence carries no load")

	o := new(Aerodynamics)
	err := o.Init(plateSim(tst, 0))
	if err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}

	// zero strengths already satisfy flow tangency
	r := make([]float64, o.np)
	err = o.Residual(r, make([]float64, o.np), 0)
	if err != nil {
		tst.Errorf("Residual failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "‖r‖", 1e-12, la.VecNorm(r), 0)

	c := o.Results()
	io.Pf("Cl = %v\n", c.Cl)
	if math.Abs(c.Cl) > 1e-6 {
		tst.Errorf("flat plate at alpha=0 must not produce lift (Cl=%g)", c.Cl)
	}
}

func Test_alpha01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("alpha01. lift grows with the angle of attack")

	// one spanwise row of 10 chordwise panels
	solveCl := func(alpha float64) float64 {
		s := &inp.Simulation{
			Data: inp.Data{Aero: "panel"},
			Wing: &inp.WingData{Span: 6, RootChord: 1, TipChord: 1, Nx: 10, Ny: 1},
			Bcs: inp.BcsData{
				Freestream: inp.FreestreamData{Velocity: []float64{10, 0, 0}, Alpha: alpha},
			},
		}
		if err := s.Derive(); err != nil {
			tst.Fatalf("Derive failed:\n%v", err)
		}
		o := new(Aerodynamics)
		err := o.Init(s)
		if err != nil {
			tst.Fatalf("Init failed:\n%v", err)
		}
		gam := make([]float64, o.np)
		r := make([]float64, o.np)
		if err = o.Residual(r, gam, 0); err != nil {
			tst.Fatalf("Residual failed:\n%v", err)
		}
		var Kb la.Triplet
		if err = o.Jacobian(&Kb, gam, 0); err != nil {
			tst.Fatalf("Jacobian failed:\n%v", err)
		}
		sol, err := lin.Get("gmres")
		if err != nil {
			tst.Fatalf("cannot get solver:\n%v", err)
		}
		defer sol.Free()
		if err = sol.Init(&Kb); err != nil {
			tst.Fatalf("solver Init failed:\n%v", err)
		}
		for i := range r {
			r[i] = -r[i]
		}
		if err = sol.Solve(gam, r); err != nil {
			tst.Fatalf("Solve failed:\n%v", err)
		}
		if err = o.Residual(r, gam, 0); err != nil {
			tst.Fatalf("Residual failed:\n%v", err)
		}
		chk.Scalar(tst, io.Sf("‖r(%g)‖", alpha), 1e-8, la.VecNorm(r), 0)
		return o.Results().Cl
	}

	cl0 := solveCl(0)
	cl5 := solveCl(5)
	cl10 := solveCl(10)
	io.Pf("Cl(0,5,10 deg) = %v %v %v\n", cl0, cl5, cl10)
	if math.Abs(cl0) > 1e-6 {
		tst.Errorf("Cl at alpha=0 must vanish (got %g)", cl0)
	}
	if cl5 <= cl0 || cl10 <= cl5 {
		tst.Errorf("Cl must grow with alpha: %g %g %g", cl0, cl5, cl10)
	}
}

func Test_wake01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wake01. bounded wake drops the oldest panel")

	w := NewWake(100)
	chk.IntAssert(w.Cap(), 100)

	w.Push(&WakePanel{Gam: 0})
	chk.IntAssert(w.Len(), 1)

	for i := 1; i < 100; i++ {
		w.Push(&WakePanel{Gam: float64(i)})
	}
	chk.IntAssert(w.Len(), 100)

	for i := 100; i < 1000; i++ {
		w.Push(&WakePanel{Gam: float64(i)})
	}
	chk.IntAssert(w.Len(), 100)

	// survivors are the newest 100, oldest first
	first, last := -1.0, -1.0
	w.Each(func(p *WakePanel) {
		if first < 0 {
			first = p.Gam
		}
		last = p.Gam
	})
	chk.Scalar(tst, "oldest", 1e-15, first, 900)
	chk.Scalar(tst, "newest", 1e-15, last, 999)
}
