// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_cg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cg01. small symmetric positive-definite system")

	// A = [[4,1],[1,3]], b = [1,2] => x = [1/11, 7/11]
	var Kb la.Triplet
	Kb.Init(2, 2, 4)
	Kb.Put(0, 0, 4)
	Kb.Put(0, 1, 1)
	Kb.Put(1, 0, 1)
	Kb.Put(1, 1, 3)

	sol, err := Get("cg")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	defer sol.Free()
	if err = sol.Init(&Kb); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	x := make([]float64, 2)
	if err = sol.Solve(x, []float64{1, 2}); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Vector(tst, "x", 1e-10, x, []float64{1.0 / 11.0, 7.0 / 11.0})

	// zero right-hand side
	if err = sol.Solve(x, []float64{0, 0}); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Vector(tst, "x(b=0)", 1e-15, x, []float64{0, 0})
}

func Test_cg02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cg02. indefinite matrix is reported, not solved")

	var Kb la.Triplet
	Kb.Init(2, 2, 2)
	Kb.Put(0, 0, 1)
	Kb.Put(1, 1, -1)

	sol, err := Get("cg")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	defer sol.Free()
	if err = sol.Init(&Kb); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	x := make([]float64, 2)
	if err = sol.Solve(x, []float64{1, 1}); err == nil {
		tst.Errorf("cg on an indefinite matrix must fail")
	}
}

func Test_gmres01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gmres01. small nonsymmetric system")

	// A·x = b with x = [1,2,3]
	var Kb la.Triplet
	Kb.Init(3, 3, 7)
	Kb.Put(0, 0, 2)
	Kb.Put(0, 1, 1)
	Kb.Put(1, 1, 3)
	Kb.Put(1, 2, 1)
	Kb.Put(2, 0, 1)
	Kb.Put(2, 2, 4)

	sol, err := Get("gmres")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	defer sol.Free()
	if err = sol.Init(&Kb); err != nil {
		tst.Errorf("Init failed:\n%v", err)
		return
	}
	x := make([]float64, 3)
	if err = sol.Solve(x, []float64{4, 9, 13}); err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	chk.Vector(tst, "x", 1e-9, x, []float64{1, 2, 3})
}

func Test_get01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("get01. unknown solver names are rejected")

	if _, err := Get("cholesky"); err == nil {
		tst.Errorf("unknown solver name must be rejected")
	}
	for _, name := range []string{"direct", "cg", "gmres"} {
		if _, err := Get(name); err != nil {
			tst.Errorf("solver %q must be available:\n%v", name, err)
		}
	}
}
