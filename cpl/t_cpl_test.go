// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpl

import (
	"testing"

	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func Test_cpl01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cpl01. force lumping conserves the total force")

	// four panel points around two nodes
	points := [][]float64{
		{0.2, -1, 0}, {0.8, -1, 0},
		{0.2, 1, 0}, {0.8, 1, 0},
	}
	nodes := [][]float64{{0.5, -1, 0}, {0.5, 1, 0}}
	itf, err := New(points, nodes)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	loads := &phys.AeroLoads{
		Pressure: []float64{1, 2, 3, 4},
		Points:   points,
		Force: [][]float64{
			{0, 0, 1}, {0, 0, 2},
			{0, 0, 3}, {1, 0, 4},
		},
	}
	out, err := itf.Apply(loads)
	if err != nil {
		tst.Errorf("Apply failed:\n%v", err)
		return
	}
	nf := out.(*phys.NodalForces)
	chk.IntAssert(len(nf.F), 2)

	// totals per component
	var tot [3]float64
	for _, f := range nf.F {
		for c := 0; c < 3; c++ {
			tot[c] += f[c]
		}
	}
	chk.Scalar(tst, "sum fx", 1e-15, tot[0], 1)
	chk.Scalar(tst, "sum fy", 1e-15, tot[1], 0)
	chk.Scalar(tst, "sum fz", 1e-15, tot[2], 10)

	// each point lumps onto its nearest node
	chk.Vector(tst, "F(node0)", 1e-15, nf.F[0], []float64{0, 0, 3})
	chk.Vector(tst, "F(node1)", 1e-15, nf.F[1], []float64{1, 0, 7})
}

func Test_cpl02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cpl02. rigid motion interpolates exactly")

	points := [][]float64{{0, -2, 0}, {0, 0, 0}, {0, 2, 0}}
	nodes := [][]float64{{0, -3, 0}, {0, -1, 0}, {0, 1, 0}, {0, 3, 0}}
	itf, err := New(points, nodes)
	if err != nil {
		tst.Errorf("New failed:\n%v", err)
		return
	}

	// uniform displacement of all nodes must arrive unchanged
	wm := &phys.WallMotion{
		Coords: nodes,
		Disp: [][]float64{
			{0.1, 0, 0.3}, {0.1, 0, 0.3}, {0.1, 0, 0.3}, {0.1, 0, 0.3},
		},
	}
	out, err := itf.Apply(wm)
	if err != nil {
		tst.Errorf("Apply failed:\n%v", err)
		return
	}
	pm := out.(*phys.WallMotion)
	chk.IntAssert(len(pm.Disp), 3)
	for i, d := range pm.Disp {
		chk.Vector(tst, io.Sf("disp(%d)", i), 1e-14, d, []float64{0.1, 0, 0.3})
	}

	// a record the interface cannot transfer is rejected
	_, err = itf.Apply(&phys.NodalForces{F: [][]float64{{0, 0, 0}}})
	if err == nil {
		tst.Errorf("transferring nodal forces must fail")
	}
}
