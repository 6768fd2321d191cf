// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lin provides the linear solvers used inside Newton iterations
package lin

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Solver solves A·x = b with A given in triplet form. Implementations are
// re-initialised whenever the matrix changes; failures are returned as
// errors and never panic.
type Solver interface {
	Init(Kb *la.Triplet) (err error)  // factorise / prepare for the given matrix
	Solve(x, b []float64) (err error) // solve for one right-hand side
	Free()                            // release resources
}

// allocators holds all available solvers
var allocators = make(map[string]func() Solver)

// Get allocates a solver by name
func Get(name string) (Solver, error) {
	alloc, found := allocators[name]
	if !found {
		return nil, chk.Err("cannot find linear solver named %q; options are \"direct\", \"cg\" and \"gmres\"", name)
	}
	return alloc(), nil
}
