// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

// Status is the outcome of one module's Newton-Raphson solve. Linear-solve
// failures are values, not panics: the inner loop keeps its best iterate and
// the coupling loop decides how to degrade.
type Status int

const (
	Converged           Status = iota // residual norm dropped below tolerance
	MaxIterations                     // iteration cap hit without convergence
	LinearSolveFailed                 // a linear solve failed; best iterate kept
)

// String returns a human readable status
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case MaxIterations:
		return "max-iterations"
	case LinearSolveFailed:
		return "linear-solve-failed"
	}
	return "unknown"
}

// NewtonReport summarises one module solve
type NewtonReport struct {
	Status       Status  // outcome
	Iterations   int     // number of Newton iterations performed
	ResidualNorm float64 // final residual norm
	Reason       string  // failure detail when Status == LinearSolveFailed
}
