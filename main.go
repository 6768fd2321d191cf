// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/Shannon-Labs/davinci-codex-sub000/cpl"
	"github.com/Shannon-Labs/davinci-codex-sub000/inp"
	"github.com/Shannon-Labs/davinci-codex-sub000/phys"
	"github.com/Shannon-Labs/davinci-codex-sub000/sim"

	_ "github.com/Shannon-Labs/davinci-codex-sub000/aero"  // registers "panel" and "unsteady"
	_ "github.com/Shannon-Labs/davinci-codex-sub000/solid" // registers "structure"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if verbose {
		io.PfWhite("\nDaVinci Codex -- Coupled Flapping-Wing Analysis\n")
		io.Pf("Copyright 2026 The DaVinci Codex Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation data
	s, err := inp.ReadSim(fnamepath)
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}

	// build simulator and modules from the deck
	sv, err := Build(s)
	if err != nil {
		chk.Panic("cannot build simulation:\n%v", err)
	}

	// run
	res, err := sv.Run()
	if err != nil {
		chk.Panic("run failed:\n%v", err)
	}
	if verbose {
		res.PrintSummary(s.Key)
	}
}

// Build allocates the modules named by the deck, registers them with a
// simulator, and wires the coupling interfaces for coupled runs.
func Build(s *inp.Simulation) (sv *sim.Simulator, err error) {
	sv = sim.New(s)

	var aeroH, strH sim.Handle
	var aeroM, strM phys.Module
	hasAero := s.Data.Aero != ""
	if hasAero {
		if aeroM, err = phys.New(s.Data.Aero, s); err != nil {
			return nil, err
		}
		aeroH = sv.AddModule(aeroM)
	}
	if s.Data.Structural {
		if strM, err = phys.New("structure", s); err != nil {
			return nil, err
		}
		strH = sv.AddModule(strM)
	}
	if !hasAero && !s.Data.Structural {
		return nil, chk.Err("the deck activates no module (data.aero and data.structural are both off)")
	}

	// coupled runs exchange loads and motion through one interface
	if s.Data.Coupled {
		ctrl := controlPoints(aeroM)
		nodes := structNodes(strM)
		itf, err := cpl.New(ctrl, nodes)
		if err != nil {
			return nil, err
		}
		if err = sv.Couple(aeroH, strH, itf); err != nil {
			return nil, err
		}
		if err = sv.Couple(strH, aeroH, itf); err != nil {
			return nil, err
		}
	}
	err = sv.Init()
	return
}

// controlPoints extracts the panel control points from the aero module's
// exported loads record
func controlPoints(m phys.Module) [][]float64 {
	for _, d := range m.GetData() {
		if al, ok := d.(*phys.AeroLoads); ok {
			return al.Points
		}
	}
	return nil
}

// structNodes extracts the node coordinates from the structural module's
// exported motion record
func structNodes(m phys.Module) [][]float64 {
	for _, d := range m.GetData() {
		if wm, ok := d.(*phys.WallMotion); ok {
			return wm.Coords
		}
	}
	return nil
}
