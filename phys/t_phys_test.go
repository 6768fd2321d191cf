// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

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

func Test_data01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("data01. record cloning and coupling deltas")

	a := &AeroLoads{
		Pressure: []float64{1, 2},
		Points:   [][]float64{{0, 0, 0}, {1, 0, 0}},
		Force:    [][]float64{{0, 0, 1}, {0, 0, 2}},
	}
	chk.String(tst, a.Kind(), "aero_loads")

	// clones are detached
	b := a.Clone().(*AeroLoads)
	b.Pressure[0] = 9
	chk.Scalar(tst, "orig pressure", 1e-15, a.Pressure[0], 1)
	chk.Scalar(tst, "delta", 1e-15, a.Delta2(b), 64)

	// kind and shape mismatches are infinite distance
	if !math.IsInf(a.Delta2(&NodalForces{}), 1) {
		tst.Errorf("kind mismatch must give +Inf")
	}
	if !math.IsInf(a.Delta2(&AeroLoads{Pressure: []float64{1}}), 1) {
		tst.Errorf("shape mismatch must give +Inf")
	}

	// wall motion deltas accumulate over points
	w1 := &WallMotion{Coords: [][]float64{{0, 0, 0}}, Disp: [][]float64{{0, 0, 0}}}
	w2 := w1.Clone().(*WallMotion)
	w2.Disp[0][2] = 3
	chk.Scalar(tst, "wm delta", 1e-15, w2.Delta2(w1), 9)
}

func Test_reg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("reg01. module registry")

	if _, err := New("antigravity", nil); err == nil {
		tst.Errorf("unknown module kind must be rejected")
	}
}

func Test_status01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("status01. solve status names")

	chk.String(tst, Converged.String(), "converged")
	chk.String(tst, MaxIterations.String(), "max-iterations")
	chk.String(tst, LinearSolveFailed.String(), "linear-solve-failed")
	chk.String(tst, Status(99).String(), "unknown")
}
