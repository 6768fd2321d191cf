// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: zero, twist, rampload
	Type string     `json:"type"` // type of function. ex: cte, rmp, cos
	Prms dbf.Params `json:"prms"` // parameters
}

// FuncsData holds functions
type FuncsData []*FuncData

// Get returns function by name
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "zero" || name == "none" {
		fcn, err = dbf.New("cte", dbf.Params{&dbf.P{N: "c", V: 0}})
		return
	}
	for _, f := range o {
		if f.Name == name {
			if f.Type == "harmonic" {
				fcn = new(Harmonic)
				err = fcn.Init(f.Prms)
			} else {
				fcn, err = dbf.New(f.Type, f.Prms)
			}
			if err != nil {
				err = chk.Err("cannot allocate function named %q:\n%v", name, err)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// Harmonic implements y(t) = a * sin(b*t + c); i.e. a sinusoid with a phase
// shift, which the dbf "sin"/"cos" kernels (additive constant c) cannot express
type Harmonic struct {
	A float64
	B float64
	C float64
}

// Init initialises the function
func (o *Harmonic) Init(prms dbf.Params) (err error) {
	e := prms.Connect(&o.A, "a", "harmonic function")
	e += prms.Connect(&o.B, "b", "harmonic function")
	e += prms.Connect(&o.C, "c", "harmonic function")
	if e != "" {
		err = chk.Err("%v\n", e)
	}
	return
}

// F returns y = F(t, x)
func (o *Harmonic) F(t float64, x []float64) float64 {
	return o.A * math.Sin(o.B*t+o.C)
}

// G returns ∂y/∂t_cteX = G(t, x)
func (o *Harmonic) G(t float64, x []float64) float64 {
	return o.A * o.B * math.Cos(o.B*t+o.C)
}

// H returns ∂²y/∂t²_cteX = H(t, x)
func (o *Harmonic) H(t float64, x []float64) float64 {
	return -o.A * o.B * o.B * math.Sin(o.B*t+o.C)
}

// Grad returns ∇F = ∂y/∂x = Grad(t, x)
func (o *Harmonic) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}
