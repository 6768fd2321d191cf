// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phys

import (
	"math"
)

// Data is one structured boundary-data record exchanged between modules.
// Records are validated for shape when a coupling pair is set up; Delta2
// measures the change between two successive coupling iterations and feeds
// the coupling residual.
type Data interface {
	Kind() string             // record kind; e.g. "aero_loads"
	Clone() Data              // deep copy (snapshots for the coupling residual)
	Delta2(prev Data) float64 // sum of squared differences w.r.t. prev (+Inf on kind/shape mismatch)
}

// AeroLoads carries the pressure field over the paneled surface, produced by
// an aerodynamic module.
type AeroLoads struct {
	Pressure []float64   // pressure at each panel control point
	Points   [][]float64 // control point coordinates [np][3]
	Force    [][]float64 // pressure force on each panel [np][3]
}

// Kind returns the record kind
func (o *AeroLoads) Kind() string { return "aero_loads" }

// Clone returns a deep copy
func (o *AeroLoads) Clone() Data {
	c := &AeroLoads{
		Pressure: make([]float64, len(o.Pressure)),
		Points:   cloneVecs(o.Points),
		Force:    cloneVecs(o.Force),
	}
	copy(c.Pressure, o.Pressure)
	return c
}

// Delta2 returns the sum of squared differences of the pressure field
func (o *AeroLoads) Delta2(prev Data) float64 {
	p, ok := prev.(*AeroLoads)
	if !ok || len(p.Pressure) != len(o.Pressure) {
		return math.Inf(1)
	}
	return sumSqDiff(o.Pressure, p.Pressure)
}

// NodalForces carries forces lumped onto structural nodes, produced by a
// coupling interface from AeroLoads.
type NodalForces struct {
	F [][]float64 // force at each node [nn][3]
}

// Kind returns the record kind
func (o *NodalForces) Kind() string { return "nodal_forces" }

// Clone returns a deep copy
func (o *NodalForces) Clone() Data { return &NodalForces{F: cloneVecs(o.F)} }

// Delta2 returns the sum of squared differences of the nodal forces
func (o *NodalForces) Delta2(prev Data) float64 {
	p, ok := prev.(*NodalForces)
	if !ok || len(p.F) != len(o.F) {
		return math.Inf(1)
	}
	var sum float64
	for i := range o.F {
		sum += sumSqDiff(o.F[i], p.F[i])
	}
	return sum
}

// WallMotion carries the displacement of the wetted surface, produced by the
// structural module (at its nodes) or by a coupling interface (interpolated
// to panel control points).
type WallMotion struct {
	Coords [][]float64 // undeformed coordinates of the carried points [n][3]
	Disp   [][]float64 // displacement at each point [n][3]
}

// Kind returns the record kind
func (o *WallMotion) Kind() string { return "wall_motion" }

// Clone returns a deep copy
func (o *WallMotion) Clone() Data {
	return &WallMotion{Coords: cloneVecs(o.Coords), Disp: cloneVecs(o.Disp)}
}

// Delta2 returns the sum of squared differences of the displacement field
func (o *WallMotion) Delta2(prev Data) float64 {
	p, ok := prev.(*WallMotion)
	if !ok || len(p.Disp) != len(o.Disp) {
		return math.Inf(1)
	}
	var sum float64
	for i := range o.Disp {
		sum += sumSqDiff(o.Disp[i], p.Disp[i])
	}
	return sum
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func cloneVecs(a [][]float64) [][]float64 {
	b := make([][]float64, len(a))
	for i := range a {
		b[i] = make([]float64, len(a[i]))
		copy(b[i], a[i])
	}
	return b
}

func sumSqDiff(a, b []float64) (sum float64) {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return
}
