// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package phys defines the contract implemented by every physics domain solver
package phys

import (
	"github.com/Shannon-Labs/davinci-codex-sub000/inp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Module defines what all domain solvers must implement. Each module
// exclusively owns its own discretization and its own slice of the global
// state vector; cross-module communication happens only through the
// GetData/SetData pair.
type Module interface {

	// information and initialisation
	Name() string                         // short name for messages
	Init(sim *inp.Simulation) (err error) // builds the discretization from geometry, materials and bcs
	NumDofs() int                         // number of degrees of freedom (fixed after Init)

	// called for each Newton iteration
	Residual(r, state []float64, time float64) (err error)              // equation residual; zero at equilibrium
	Jacobian(Kb *la.Triplet, state []float64, time float64) (err error) // derivative of the residual w.r.t. state

	// boundary data exchange
	SetData(d Data) (err error) // absorbs a record produced by another module
	GetData() []Data            // exports this module's outputs
}

// Stepper defines modules with once-per-time-step work, performed before the
// coupling iterations of that step (e.g. wake convection/shedding and
// geometry rebuild under flapping kinematics).
type Stepper interface {
	BeginStep(time, dt float64) (err error)
}

// Transfer maps a record from one module's discretization onto another's.
// A nil Transfer in a coupling declaration means identity.
type Transfer interface {
	Apply(d Data) (Data, error)
}

// allocators holds all available module types
var allocators = make(map[string]func() Module)

// Register records a module allocator; to be called from init()
func Register(kind string, alloc func() Module) {
	if _, found := allocators[kind]; found {
		chk.Panic("module kind %q registered twice", kind)
	}
	allocators[kind] = alloc
}

// New allocates and initialises a module by kind
func New(kind string, sim *inp.Simulation) (m Module, err error) {
	alloc, found := allocators[kind]
	if !found {
		return nil, chk.Err("cannot find module kind named %q", kind)
	}
	m = alloc()
	err = m.Init(sim)
	if err != nil {
		return nil, err
	}
	return
}
