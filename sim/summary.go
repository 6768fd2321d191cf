// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/io"
	"github.com/guptarohit/asciigraph"
)

// PrintSummary prints the run history: convergence statistics, degraded
// steps, and a plot of the coupling residual over time.
func (o *Result) PrintSummary(key string) {
	p := o.Performance()
	io.Pf("\nsummary of %q\n", key)
	io.Pf("  steps           = %d\n", p.TotalSteps)
	io.Pf("  converged       = %d (%.1f%%)\n", p.ConvergedSteps, 100.0*p.ConvergenceRate)
	io.Pf("  mean iterations = %.2f\n", p.MeanCplIterations)
	if ids := o.DegradedSteps(); len(ids) > 0 {
		io.Pforan("  degraded steps  = %v\n", ids)
		for _, i := range ids {
			io.Pforan("    step %d (t=%g): %s\n", i, o.Steps[i].Time, o.Steps[i].Reason)
		}
	}
	if hist := o.ResidualHistory(); len(hist) > 1 {
		io.Pf("\ncoupling residual history:\n")
		io.Pf("%s\n", asciigraph.Plot(hist, asciigraph.Height(8), asciigraph.Width(60)))
	}
}
