// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lin

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Gmres implements restarted GMRES(m) with Givens rotations for general
// nonsymmetric systems, such as the panel influence system.
type Gmres struct {
	A    *la.CCMatrix // compressed-column matrix
	m    int          // Krylov subspace dimension per restart
	tol  float64      // relative residual tolerance
	nres int          // max number of restarts
}

func init() {
	allocators["gmres"] = func() Solver { return &Gmres{m: 30, tol: 1e-12, nres: 100} }
}

// Init converts the triplet to compressed-column form
func (o *Gmres) Init(Kb *la.Triplet) (err error) {
	if Kb.Len() == 0 {
		return chk.Err("gmres: empty matrix")
	}
	o.A = Kb.ToMatrix(nil)
	return
}

// Solve solves A·x = b
func (o *Gmres) Solve(x, b []float64) (err error) {
	n := len(b)
	m := o.m
	if m > n {
		m = n
	}
	bnorm := la.VecNorm(b)
	if bnorm < 1e-300 {
		la.VecFill(x, 0)
		return
	}

	// workspaces
	V := la.MatAlloc(m+1, n)   // Krylov basis (rows)
	H := la.MatAlloc(m+1, m)   // Hessenberg matrix
	cs := make([]float64, m)   // Givens cosines
	sn := make([]float64, m)   // Givens sines
	g := make([]float64, m+1)  // rotated residual
	y := make([]float64, m)    // least-squares solution
	r := make([]float64, n)    // residual
	w := make([]float64, n)    // A*v

	la.VecFill(x, 0)
	for restart := 0; restart < o.nres; restart++ {

		// r := b - A*x
		la.SpMatVecMul(r, 1, o.A, x)
		for i := 0; i < n; i++ {
			r[i] = b[i] - r[i]
		}
		beta := la.VecNorm(r)
		if beta < o.tol*bnorm {
			return
		}
		for i := 0; i < n; i++ {
			V[0][i] = r[i] / beta
		}
		for i := range g {
			g[i] = 0
		}
		g[0] = beta

		// Arnoldi with on-the-fly Givens rotations
		k := 0
		for ; k < m; k++ {
			la.SpMatVecMul(w, 1, o.A, V[k])
			for j := 0; j <= k; j++ {
				H[j][k] = la.VecDot(w, V[j])
				for i := 0; i < n; i++ {
					w[i] -= H[j][k] * V[j][i]
				}
			}
			H[k+1][k] = la.VecNorm(w)
			if H[k+1][k] > 1e-300 {
				for i := 0; i < n; i++ {
					V[k+1][i] = w[i] / H[k+1][k]
				}
			}

			// apply previous rotations to the new column
			for j := 0; j < k; j++ {
				t := cs[j]*H[j][k] + sn[j]*H[j+1][k]
				H[j+1][k] = -sn[j]*H[j][k] + cs[j]*H[j+1][k]
				H[j][k] = t
			}

			// new rotation annihilating H[k+1][k]
			d := math.Hypot(H[k][k], H[k+1][k])
			if d < 1e-300 {
				return chk.Err("gmres: breakdown (singular Hessenberg column %d)", k)
			}
			cs[k] = H[k][k] / d
			sn[k] = H[k+1][k] / d
			H[k][k] = d
			H[k+1][k] = 0
			g[k+1] = -sn[k] * g[k]
			g[k] = cs[k] * g[k]

			if math.Abs(g[k+1]) < o.tol*bnorm {
				k++
				break
			}
		}

		// back substitution: H[0:k,0:k]·y = g[0:k]
		for i := k - 1; i >= 0; i-- {
			y[i] = g[i]
			for j := i + 1; j < k; j++ {
				y[i] -= H[i][j] * y[j]
			}
			y[i] /= H[i][i]
		}

		// update solution
		for j := 0; j < k; j++ {
			for i := 0; i < n; i++ {
				x[i] += y[j] * V[j][i]
			}
		}
	}

	// final residual check
	la.SpMatVecMul(r, 1, o.A, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - r[i]
	}
	if la.VecNorm(r) < o.tol*bnorm*10 {
		return
	}
	return chk.Err("gmres: did not converge within %d restarts (‖r‖/‖b‖ = %g)", o.nres, la.VecNorm(r)/bnorm)
}

// Free releases solver resources
func (o *Gmres) Free() {}
