// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"github.com/cpmech/gosl/la"
)

// Direct wraps the sparse direct solver (UMFPACK)
type Direct struct {
	lis   la.LinSol // linear solver
	ready bool      // factorised
}

func init() {
	allocators["direct"] = func() Solver { return new(Direct) }
}

// Init factorises the matrix
func (o *Direct) Init(Kb *la.Triplet) (err error) {
	o.Free()
	o.lis = la.GetSolver("umfpack")
	err = o.lis.InitR(Kb, false, false, false)
	if err != nil {
		return
	}
	err = o.lis.Fact()
	if err != nil {
		return
	}
	o.ready = true
	return
}

// Solve solves A·x = b using the factorisation
func (o *Direct) Solve(x, b []float64) (err error) {
	return o.lis.SolveR(x, b, false)
}

// Free releases solver resources
func (o *Direct) Free() {
	if o.ready {
		o.lis.Free()
		o.ready = false
	}
}
