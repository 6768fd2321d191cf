// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Material holds mechanical, thermal and hygroscopic properties of one
// material, together with named uncertainty bounds as produced by the
// materials selection front-end. Read-only during a simulation.
type Material struct {
	Name    string               `json:"name"`    // name of material
	Rho     float64              `json:"rho"`     // density
	E       float64              `json:"E"`       // Young's modulus
	Nu      float64              `json:"nu"`      // Poisson's ratio
	Sy      float64              `json:"sy"`      // yield strength
	Su      float64              `json:"su"`      // ultimate strength
	Sfat    float64              `json:"sfat"`    // fatigue limit
	AlphaT  float64              `json:"alphaT"`  // thermal expansion coefficient
	BetaM   float64              `json:"betaM"`   // moisture expansion coefficient
	Bounds  map[string][]float64 `json:"bounds"`  // named uncertainty bounds: property => {min,max}
	Comment string               `json:"comment"` // free text; e.g. data source
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {

	// input
	Materials MatsData `json:"materials"` // all materials

	// derived
	byName map[string]*Material
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// new database
	mdb = new(MatDb)

	// read file
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}

	// decode
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return
	}

	// check and index
	err = mdb.Derive()
	return
}

// Derive validates the materials and builds the name index. It must be called
// when a MatDb is built programmatically instead of read from a file.
func (o *MatDb) Derive() (err error) {
	o.byName = make(map[string]*Material)
	for _, m := range o.Materials {
		if m.Name == "" {
			return chk.Err("material without a name in database")
		}
		if _, found := o.byName[m.Name]; found {
			return chk.Err("duplicate material named %q in database", m.Name)
		}
		if m.Rho < 1e-14 || m.E < 1e-14 {
			return chk.Err("material %q must have positive density and Young's modulus", m.Name)
		}
		for prop, rng := range m.Bounds {
			if len(rng) != 2 || rng[0] > rng[1] {
				return chk.Err("material %q: uncertainty bounds of %q must be {min,max}", m.Name, prop)
			}
		}
		o.byName[m.Name] = m
	}
	return
}

// Get returns a material by name
//  Note: returns nil if not found
func (o *MatDb) Get(name string) *Material {
	return o.byName[name]
}
