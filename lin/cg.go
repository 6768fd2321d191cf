// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// CG implements the conjugate gradient method for symmetric positive-definite
// systems, such as the assembled structural stiffness.
type CG struct {
	A   *la.CCMatrix // compressed-column matrix
	tol float64      // relative residual tolerance

	// scratchpad, sized on first Solve
	r, p, ap []float64
}

func init() {
	allocators["cg"] = func() Solver { return &CG{tol: 1e-12} }
}

// Init converts the triplet to compressed-column form
func (o *CG) Init(Kb *la.Triplet) (err error) {
	if Kb.Len() == 0 {
		return chk.Err("cg: empty matrix")
	}
	o.A = Kb.ToMatrix(nil)
	return
}

// Solve solves A·x = b
func (o *CG) Solve(x, b []float64) (err error) {
	n := len(b)
	if len(o.r) != n {
		o.r = make([]float64, n)
		o.p = make([]float64, n)
		o.ap = make([]float64, n)
	}
	la.VecFill(x, 0)
	copy(o.r, b)
	copy(o.p, b)
	bnorm := la.VecNorm(b)
	if bnorm < 1e-300 {
		return // b == 0 => x == 0
	}
	nit := 10 * n
	rr := la.VecDot(o.r, o.r)
	for it := 0; it < nit; it++ {
		la.SpMatVecMul(o.ap, 1, o.A, o.p) // ap := A*p
		pap := la.VecDot(o.p, o.ap)
		if pap <= 0 || math.IsNaN(pap) {
			return chk.Err("cg: matrix is not positive definite (p·A·p = %g)", pap)
		}
		alpha := rr / pap
		for i := 0; i < n; i++ {
			x[i] += alpha * o.p[i]
			o.r[i] -= alpha * o.ap[i]
		}
		rrNew := la.VecDot(o.r, o.r)
		if math.Sqrt(rrNew) < o.tol*bnorm {
			return
		}
		beta := rrNew / rr
		for i := 0; i < n; i++ {
			o.p[i] = o.r[i] + beta*o.p[i]
		}
		rr = rrNew
	}
	return chk.Err("cg: did not converge within %d iterations (‖r‖/‖b‖ = %g)", nit, math.Sqrt(rr)/bnorm)
}

// Free releases solver resources
func (o *CG) Free() {}
