// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements the coupled simulator: it owns the global state
// vector, advances time, and runs the staggered coupling loop over the
// registered physics modules.
package sim

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/lin"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Handle identifies one registered module within a Simulator
type Handle int

// cplPair is one directed coupling: records flow from src to dst, optionally
// mapped by a transfer operator (nil means identity)
type cplPair struct {
	src, dst Handle
	tr       phys.Transfer
}

// Simulator orchestrates the coupled run
type Simulator struct {

	// configuration
	Cfg *inp.Simulation

	// registered modules
	modules  []phys.Module
	steppers []phys.Stepper // nil entries for modules without per-step work
	pairs    []cplPair

	// global state: each module owns state[offsets[h] : offsets[h]+NumDofs]
	offsets []int
	ndof    int
	state   []float64

	// per-module solve workspaces
	kbs     []*la.Triplet
	solvers []lin.Solver

	ready bool
}

// StepResult records the outcome of one time step
type StepResult struct {
	Time        float64
	State       []float64 // global state after the step
	Converged   bool      // coupling loop converged
	Iterations  int       // coupling iterations taken
	Residual    float64   // final coupling residual
	Degraded    bool      // a module failed; state rolled back to the last good one
	Reason      string    // diagnostic for non-converged or degraded steps
	LinFailures int       // linear solves that failed within the step
}

// Result is the full run history
type Result struct {
	Steps []*StepResult
}

// Performance summarises a run
type Performance struct {
	TotalSteps        int
	ConvergedSteps    int
	ConvergenceRate   float64
	MeanCplIterations float64 // mean coupling iterations over the non-degraded steps
}

// New returns a new simulator for the given configuration
func New(cfg *inp.Simulation) *Simulator {
	return &Simulator{Cfg: cfg}
}

// AddModule registers an initialised module and returns its handle
func (o *Simulator) AddModule(m phys.Module) Handle {
	h := Handle(len(o.modules))
	o.modules = append(o.modules, m)
	if s, ok := m.(phys.Stepper); ok {
		o.steppers = append(o.steppers, s)
	} else {
		o.steppers = append(o.steppers, nil)
	}
	o.ready = false
	return h
}

// Module returns the module behind a handle
func (o *Simulator) Module(h Handle) phys.Module { return o.modules[h] }

// Couple declares that records produced by src are absorbed by dst, mapped
// by tr (nil for identity). Pairs are exchanged in declaration order.
func (o *Simulator) Couple(src, dst Handle, tr phys.Transfer) error {
	n := Handle(len(o.modules))
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return chk.Err("coupling handles (%d,%d) out of range [0,%d)", src, dst, n)
	}
	if src == dst {
		return chk.Err("a module cannot be coupled to itself")
	}
	o.pairs = append(o.pairs, cplPair{src, dst, tr})
	return nil
}

// Init builds the global state vector and the per-module solve workspaces
func (o *Simulator) Init() (err error) {
	if len(o.modules) == 0 {
		return chk.Err("no modules registered")
	}
	o.offsets = make([]int, len(o.modules))
	o.ndof = 0
	for h, m := range o.modules {
		nd := m.NumDofs()
		if nd < 1 {
			return chk.Err("module %q has no degrees of freedom", m.Name())
		}
		o.offsets[h] = o.ndof
		o.ndof += nd
	}
	o.state = make([]float64, o.ndof)
	o.kbs = make([]*la.Triplet, len(o.modules))
	o.solvers = make([]lin.Solver, len(o.modules))
	for h := range o.modules {
		o.kbs[h] = new(la.Triplet)
		o.solvers[h], err = lin.Get(o.Cfg.LinSol.Name)
		if err != nil {
			return
		}
	}
	o.ready = true
	return
}

// State returns the slice of the global state owned by a module
func (o *Simulator) State(h Handle) []float64 {
	n := o.modules[h].NumDofs()
	return o.state[o.offsets[h] : o.offsets[h]+n]
}

// Run advances the simulation from ti to tf and returns the full history.
// Module failures degrade the affected step instead of aborting the run.
func (o *Simulator) Run() (res *Result, err error) {
	if !o.ready {
		if err = o.Init(); err != nil {
			return
		}
	}
	ctl := o.Cfg.Control
	nsteps := int(math.Round((ctl.Tf - ctl.Ti) / ctl.Dt))
	if nsteps < 1 {
		nsteps = 1
	}
	res = &Result{Steps: make([]*StepResult, 0, nsteps)}
	for k := 0; k < nsteps; k++ {
		t := ctl.Ti + float64(k+1)*ctl.Dt
		if t > ctl.Tf {
			t = ctl.Tf
		}
		var failed *StepResult
		for h, s := range o.steppers {
			if s == nil {
				continue
			}
			if e := s.BeginStep(t, ctl.Dt); e != nil {
				failed = o.degraded(t, chk.Err("module %q failed to begin step: %v", o.modules[h].Name(), e))
				break
			}
		}
		if failed != nil {
			res.Steps = append(res.Steps, failed)
			continue
		}
		res.Steps = append(res.Steps, o.SolveStep(t))
	}
	return
}

// SolveStep runs the staggered coupling loop for one time step. The loop
// solves every module, exchanges boundary data, and repeats until the
// coupling residual drops below tolerance or the iteration cap is hit.
func (o *Simulator) SolveStep(time float64) (sr *StepResult) {
	sv := o.Cfg.Solver
	sr = &StepResult{Time: time}

	// work on a copy so a failed step can roll back
	work := make([]float64, o.ndof)
	copy(work, o.state)

	// baseline outputs for the coupling residual
	prev := o.snapshot()

	for it := 1; it <= sv.NcplMax; it++ {
		sr.Iterations = it

		// solve each module on its own slice of the state
		for h, m := range o.modules {
			u := work[o.offsets[h] : o.offsets[h]+m.NumDofs()]
			rep := o.solveModule(Handle(h), u, time)
			switch rep.Status {
			case phys.Converged:
			case phys.LinearSolveFailed:
				sr.LinFailures++
			default:
				if rep.Reason != "" {
					return o.degraded(time, chk.Err("module %q: %s", m.Name(), rep.Reason))
				}
			}
		}

		// exchange boundary data along the declared couplings
		for _, p := range o.pairs {
			for _, d := range o.modules[p.src].GetData() {
				if p.tr != nil {
					var e error
					if d, e = p.tr.Apply(d); e != nil {
						return o.degraded(time, chk.Err("transfer %d->%d failed: %v", p.src, p.dst, e))
					}
				}
				if e := o.modules[p.dst].SetData(d); e != nil {
					return o.degraded(time, chk.Err("module %q rejected record: %v", o.modules[p.dst].Name(), e))
				}
			}
		}

		// coupling residual: change of the exported outputs
		cur := o.snapshot()
		sr.Residual = cplResidual(cur, prev)
		prev = cur
		if sr.Residual < sv.CplTol {
			sr.Converged = true
			break
		}
	}
	if !sr.Converged {
		sr.Reason = chk.Err("coupling loop hit the iteration cap (%d) with residual %g", sv.NcplMax, sr.Residual).Error()
	}

	// commit
	copy(o.state, work)
	sr.State = make([]float64, o.ndof)
	copy(sr.State, o.state)
	return
}

// solveModule runs Newton-Raphson on one module's equations
func (o *Simulator) solveModule(h Handle, u []float64, time float64) (rep phys.NewtonReport) {
	m := o.modules[h]
	nd := len(u)
	r := make([]float64, nd)
	du := make([]float64, nd)
	best := make([]float64, nd)
	bestNorm := math.Inf(1)
	copy(best, u)

	for it := 0; it < o.Cfg.Solver.NmaxIt; it++ {
		rep.Iterations = it + 1
		if err := m.Residual(r, u, time); err != nil {
			rep.Status = phys.MaxIterations
			rep.Reason = err.Error()
			return
		}
		rep.ResidualNorm = la.VecNorm(r)
		if rep.ResidualNorm < bestNorm {
			bestNorm = rep.ResidualNorm
			copy(best, u)
		}
		if rep.ResidualNorm < o.Cfg.Solver.FbTol {
			rep.Status = phys.Converged
			return
		}
		if err := m.Jacobian(o.kbs[h], u, time); err != nil {
			rep.Status = phys.MaxIterations
			rep.Reason = err.Error()
			return
		}
		if err := o.solvers[h].Init(o.kbs[h]); err != nil {
			rep.Status = phys.LinearSolveFailed
			rep.Reason = err.Error()
			copy(u, best)
			return
		}
		for i := 0; i < nd; i++ {
			r[i] = -r[i]
		}
		if err := o.solvers[h].Solve(du, r); err != nil {
			rep.Status = phys.LinearSolveFailed
			rep.Reason = err.Error()
			copy(u, best)
			return
		}
		for i := 0; i < nd; i++ {
			u[i] += du[i]
		}
	}
	rep.Status = phys.MaxIterations
	copy(u, best)
	return
}

// Performance summarises the run history. Degraded steps never enter a
// coupling iteration, so they are left out of the mean.
func (o *Result) Performance() (p Performance) {
	p.TotalSteps = len(o.Steps)
	var itsum, nsolved int
	for _, s := range o.Steps {
		if s.Converged {
			p.ConvergedSteps++
		}
		if s.Degraded {
			continue
		}
		itsum += s.Iterations
		nsolved++
	}
	if p.TotalSteps > 0 {
		p.ConvergenceRate = float64(p.ConvergedSteps) / float64(p.TotalSteps)
	}
	if nsolved > 0 {
		p.MeanCplIterations = float64(itsum) / float64(nsolved)
	}
	return
}

// DegradedSteps returns the indices of the steps that were degraded
func (o *Result) DegradedSteps() (ids []int) {
	for i, s := range o.Steps {
		if s.Degraded {
			ids = append(ids, i)
		}
	}
	return
}

// ResidualHistory returns the final coupling residual of every step
func (o *Result) ResidualHistory() []float64 {
	h := make([]float64, len(o.Steps))
	for i, s := range o.Steps {
		h[i] = s.Residual
	}
	return h
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// snapshot clones the exported outputs of every module
func (o *Simulator) snapshot() [][]phys.Data {
	s := make([][]phys.Data, len(o.modules))
	for h, m := range o.modules {
		for _, d := range m.GetData() {
			s[h] = append(s[h], d.Clone())
		}
	}
	return s
}

// cplResidual is the root of the summed squared output changes
func cplResidual(cur, prev [][]phys.Data) float64 {
	var sum float64
	for h := range cur {
		if len(cur[h]) != len(prev[h]) {
			return math.Inf(1)
		}
		for i := range cur[h] {
			sum += cur[h][i].Delta2(prev[h][i])
		}
	}
	return math.Sqrt(sum)
}

// degraded records a failed step: the committed state stays at the last good
// one and the step is flagged for inspection
func (o *Simulator) degraded(time float64, cause error) *StepResult {
	sr := &StepResult{Time: time, Degraded: true, Reason: cause.Error()}
	sr.State = make([]float64, o.ndof)
	copy(sr.State, o.state)
	return sr
}
