// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. read full coupled deck")

	s, err := ReadSim("data/flapper.sim")
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}
	chk.String(tst, s.Key, "flapper")
	chk.String(tst, s.Data.Aero, "panel")
	if !s.Data.Structural || !s.Data.Coupled {
		tst.Errorf("deck must activate the structural model and the coupling")
	}

	// wing
	chk.Scalar(tst, "span", 1e-15, s.Wing.Span, 8)
	chk.Scalar(tst, "tip chord", 1e-15, s.Wing.TipChord, 0.6)
	chk.IntAssert(s.Wing.MaxWake, 100)
	chk.Vector(tst, "refpoint", 1e-15, s.Wing.RefPoint, []float64{0.3, 0, 0})

	// structure and materials
	chk.IntAssert(s.Struct.Nribs, 5)
	mat := s.MatModels.Get("spruce")
	if mat == nil {
		tst.Errorf("cannot find spruce in materials database")
		return
	}
	chk.Scalar(tst, "E", 1e-15, mat.E, 10e9)
	chk.Vector(tst, "E bounds", 1e-15, mat.Bounds["E"], []float64{9e9, 12e9})
	if s.MatModels.Get("oak") != nil {
		tst.Errorf("unknown material name must return nil")
	}

	// freestream and flapping
	chk.Scalar(tst, "|vinf|", 1e-15, s.VinfNorm(), 12)
	if s.TwistFunc == nil {
		tst.Errorf("deck with flapping must derive a twist function")
		return
	}
	if math.Abs(s.TwistFunc.F(0, nil)) > 1e-5 {
		tst.Errorf("twist must start near zero (got %g)", s.TwistFunc.F(0, nil))
	}
	chk.Scalar(tst, "thetadot(0)", 1e-12, s.TwistFunc.G(0, nil), 0.15*9.4248)
	chk.Scalar(tst, "theta(T/4)", 1e-4, s.TwistFunc.F(0.25/1.5, nil), 0.15)

	// solver settings
	chk.String(tst, s.LinSol.Name, "gmres")
	chk.IntAssert(s.Solver.NcplMax, 50)
	chk.Scalar(tst, "dt", 1e-15, s.Control.Dt, 0.1)
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. defaults and validation of programmatic decks")

	// sinusoidal twist is derived when no named function is given
	s := &Simulation{
		Data: Data{Aero: "panel"},
		Wing: &WingData{Span: 6, RootChord: 1, Nx: 2, Ny: 4},
		Bcs: BcsData{
			Freestream: FreestreamData{Velocity: []float64{10, 0, 0}},
			Flapping:   &FlappingData{Amplitude: 0.2, Frequency: 2},
		},
	}
	if err := s.Derive(); err != nil {
		tst.Errorf("Derive failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "tip chord default", 1e-15, s.Wing.TipChord, 1)
	chk.Scalar(tst, "rho default", 1e-15, s.Bcs.Freestream.Rho, 1.225)
	chk.String(tst, s.LinSol.Name, "direct")

	// theta(t) = a*sin(2*pi*f*t): quarter period hits the amplitude
	chk.Scalar(tst, "theta(0)", 1e-12, s.TwistFunc.F(0, nil), 0)
	chk.Scalar(tst, "theta(T/4)", 1e-12, s.TwistFunc.F(1.0/8.0, nil), 0.2)
	chk.Scalar(tst, "thetadot(0)", 1e-12, s.TwistFunc.G(0, nil), 0.2*4*math.Pi)

	// a nonzero phase lag shifts the whole stroke, not its mean
	s.Bcs.Flapping.PhaseLag = math.Pi / 2
	if err := s.Derive(); err != nil {
		tst.Errorf("Derive with phase lag failed:\n%v", err)
		return
	}
	chk.Scalar(tst, "theta(0) lagged", 1e-12, s.TwistFunc.F(0, nil), 0.2)
	chk.Scalar(tst, "thetadot(0) lagged", 1e-12, s.TwistFunc.G(0, nil), 0)
	chk.Scalar(tst, "thetaddot(0) lagged", 1e-9, s.TwistFunc.H(0, nil), -0.2*16*math.Pi*math.Pi)

	// bad decks are rejected
	bad := &Simulation{Data: Data{Aero: "euler"}}
	if err := bad.Derive(); err == nil {
		tst.Errorf("unknown aero model must be rejected")
	}
	bad = &Simulation{Data: Data{Coupled: true}}
	if err := bad.Derive(); err == nil {
		tst.Errorf("coupling without both modules must be rejected")
	}
	if _, err := ReadSim("data/nosuchfile.sim"); err == nil {
		tst.Errorf("missing deck must be reported")
	}
}
