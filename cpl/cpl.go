// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cpl implements the transfer of boundary data between the
// aerodynamic surface (panel control points) and the structural mesh (spar
// nodes). Both directions are linear maps, built once from the two point
// clouds and applied as matrix-vector products.
package cpl

import (
	"math"

	"github.com/Shannon-Labs/davinci-codex-sub000/phys"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Interface maps records between one aerodynamic and one structural
// discretization. Forces are lumped onto the nearest structural node, which
// conserves the total force exactly; displacements travel the other way by
// inverse-distance interpolation from the nearest nodes.
type Interface struct {
	points [][]float64 // aero control points [np][3]
	nodes  [][]float64 // structural nodes [nn][3]
	W      *mat.Dense  // force lumping, (3·nn)×(3·np)
	M      *mat.Dense  // motion interpolation, (3·np)×(3·nn)
}

// nearNodes is how many structural nodes interpolate the motion of one point
const nearNodes = 4

// New builds the two transfer operators from the point clouds
func New(points, nodes [][]float64) (*Interface, error) {
	np, nn := len(points), len(nodes)
	if np < 1 || nn < 1 {
		return nil, chk.Err("coupling interface needs nonempty point clouds (np=%d, nn=%d)", np, nn)
	}
	for _, x := range points {
		if len(x) != 3 {
			return nil, chk.Err("aero control points must have 3 coordinates")
		}
	}
	for _, x := range nodes {
		if len(x) != 3 {
			return nil, chk.Err("structural nodes must have 3 coordinates")
		}
	}
	o := &Interface{points: points, nodes: nodes}

	// force lumping: each point sends its full force to its nearest node
	o.W = mat.NewDense(3*nn, 3*np, nil)
	for p, x := range points {
		n := nearest(nodes, x)
		for c := 0; c < 3; c++ {
			o.W.Set(3*n+c, 3*p+c, 1)
		}
	}

	// motion interpolation: inverse-distance weights over the closest nodes
	o.M = mat.NewDense(3*np, 3*nn, nil)
	k := nearNodes
	if k > nn {
		k = nn
	}
	for p, x := range points {
		ids, ws := idw(nodes, x, k)
		for i, n := range ids {
			for c := 0; c < 3; c++ {
				o.M.Set(3*p+c, 3*n+c, ws[i])
			}
		}
	}
	return o, nil
}

// Apply maps a record across the interface. Aero loads become nodal forces;
// wall motion at the structural nodes becomes wall motion at the panel
// control points. Other record kinds are rejected.
func (o *Interface) Apply(d phys.Data) (phys.Data, error) {
	np, nn := len(o.points), len(o.nodes)
	switch r := d.(type) {

	case *phys.AeroLoads:
		if len(r.Force) != np {
			return nil, chk.Err("aero loads carry %d panels but the interface was built for %d", len(r.Force), np)
		}
		f := flatten(r.Force)
		g := mat.NewVecDense(3*nn, nil)
		g.MulVec(o.W, f)
		out := &phys.NodalForces{F: make([][]float64, nn)}
		for n := 0; n < nn; n++ {
			out.F[n] = []float64{g.AtVec(3 * n), g.AtVec(3*n + 1), g.AtVec(3*n + 2)}
		}
		return out, nil

	case *phys.WallMotion:
		if len(r.Disp) != nn {
			return nil, chk.Err("wall motion carries %d nodes but the interface was built for %d", len(r.Disp), nn)
		}
		u := flatten(r.Disp)
		w := mat.NewVecDense(3*np, nil)
		w.MulVec(o.M, u)
		out := &phys.WallMotion{
			Coords: make([][]float64, np),
			Disp:   make([][]float64, np),
		}
		for p := 0; p < np; p++ {
			out.Coords[p] = []float64{o.points[p][0], o.points[p][1], o.points[p][2]}
			out.Disp[p] = []float64{w.AtVec(3 * p), w.AtVec(3*p + 1), w.AtVec(3*p + 2)}
		}
		return out, nil
	}
	return nil, chk.Err("coupling interface cannot transfer %q records", d.Kind())
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func nearest(nodes [][]float64, x []float64) (best int) {
	dmin := math.Inf(1)
	for n, y := range nodes {
		if d := dist2(x, y); d < dmin {
			dmin, best = d, n
		}
	}
	return
}

// idw returns the ids and normalized inverse-distance weights of the k nodes
// closest to x; a coincident node takes the full weight
func idw(nodes [][]float64, x []float64, k int) (ids []int, ws []float64) {
	type cand struct {
		n int
		d float64
	}
	cands := make([]cand, 0, len(nodes))
	for n, y := range nodes {
		cands = append(cands, cand{n, dist2(x, y)})
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < len(cands); j++ {
			if cands[j].d < cands[i].d {
				cands[i], cands[j] = cands[j], cands[i]
			}
		}
	}
	var sum float64
	for i := 0; i < k; i++ {
		if cands[i].d < 1e-20 {
			return []int{cands[i].n}, []float64{1}
		}
		w := 1.0 / math.Sqrt(cands[i].d)
		ids = append(ids, cands[i].n)
		ws = append(ws, w)
		sum += w
	}
	for i := range ws {
		ws[i] /= sum
	}
	return
}

func dist2(a, b []float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

func flatten(a [][]float64) *mat.VecDense {
	v := mat.NewVecDense(3*len(a), nil)
	for i, x := range a {
		v.SetVec(3*i, x[0])
		v.SetVec(3*i+1, x[1])
		v.SetVec(3*i+2, x[2])
	}
	return v
}
