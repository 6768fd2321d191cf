// Copyright 2026 The DaVinci Codex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {
	Desc       string `json:"desc"`       // description of simulation
	Matfile    string `json:"matfile"`    // materials file path
	Mat        string `json:"mat"`        // name of material for the structure
	Aero       string `json:"aero"`       // aerodynamic model: "panel", "unsteady" or "" (none)
	Structural bool   `json:"structural"` // activate the structural model
	Coupled    bool   `json:"coupled"`    // exchange data between aero and structure
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "direct", "cg" or "gmres"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
}

// SolverData holds nonlinear and coupling solver data
type SolverData struct {

	// Newton-Raphson (per module)
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	FbTol  float64 `json:"fbtol"`  // tolerance for convergence on residual norm

	// staggered coupling loop
	CplTol  float64 `json:"cpltol"`  // tolerance for convergence of coupling residual
	NcplMax int     `json:"ncplmax"` // max number of coupling iterations per time step
}

// TimeControl holds data for defining the simulation time stepping
type TimeControl struct {
	Ti float64 `json:"ti"` // initial time
	Tf float64 `json:"tf"` // final time
	Dt float64 `json:"dt"` // time step size
}

// WingData holds the planform and profile of the lifting surface
type WingData struct {
	Span      float64   `json:"span"`      // wingspan (tip to tip)
	RootChord float64   `json:"rootchord"` // chord at the root
	TipChord  float64   `json:"tipchord"`  // chord at the tip
	Nx        int       `json:"nx"`        // number of chordwise panels
	Ny        int       `json:"ny"`        // number of spanwise panels
	Camber    float64   `json:"camber"`    // max camber as a fraction of chord (NACA m)
	CamberPos float64   `json:"camberpos"` // chordwise position of max camber (NACA p)
	Thickness float64   `json:"thickness"` // max thickness as a fraction of chord
	RefPoint  []float64 `json:"refpoint"`  // moment reference point [3]
	MaxWake   int       `json:"maxwake"`   // cap on the number of wake panels
}

// StructData holds the spar/rib layout and section properties
type StructData struct {
	Nribs   int       `json:"nribs"`   // number of rib stations along the span
	Spars   []float64 `json:"spars"`   // chordwise spar positions as fractions of local chord
	Area    float64   `json:"area"`    // spar cross-section area
	Inertia float64   `json:"inertia"` // spar section moment of inertia
}

// FreestreamData holds the onset flow
type FreestreamData struct {
	Velocity []float64 `json:"velocity"` // freestream velocity vector [3]
	Alpha    float64   `json:"alpha"`    // angle of attack [deg]
	Rho      float64   `json:"rho"`      // air density
	Mu       float64   `json:"mu"`       // dynamic viscosity
}

// FlappingData holds prescribed flapping kinematics
type FlappingData struct {
	Amplitude float64 `json:"amplitude"` // flap amplitude [rad]
	Frequency float64 `json:"frequency"` // flap frequency [Hz]
	PhaseLag  float64 `json:"phaselag"`  // spanwise phase lag [rad]
	TwistFcn  string  `json:"twistfcn"`  // name of twist function; empty => sinusoid from the above
}

// PointLoad holds one nodal point load
type PointLoad struct {
	Node int       `json:"node"` // node id
	F    []float64 `json:"f"`    // force vector [3]
}

// StructBcsData holds structural boundary conditions
type StructBcsData struct {
	FixedNodes []int        `json:"fixednodes"` // ids of nodes with all 6 DOFs fixed
	Loads      []*PointLoad `json:"loads"`      // directly specified point loads
}

// BcsData groups all boundary conditions
type BcsData struct {
	Freestream FreestreamData `json:"freestream"` // onset flow
	Flapping   *FlappingData  `json:"flapping"`   // optional flapping kinematics
	Structural StructBcsData  `json:"structural"` // supports and point loads
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // global data
	Functions FuncsData   `json:"functions"` // time functions database
	Wing      *WingData   `json:"wing"`      // lifting surface geometry
	Struct    *StructData `json:"struct"`    // spar/rib layout
	Bcs       BcsData     `json:"bcs"`       // boundary conditions
	LinSol    LinSolData  `json:"linsol"`    // linear solver data
	Solver    SolverData  `json:"solver"`    // nonlinear/coupling solver data
	Control   TimeControl `json:"control"`   // time stepping

	// derived
	Key       string // simulation key; e.g. mysim01.sim => mysim01
	MatModels *MatDb // materials database
	TwistFunc dbf.T  // twist function; non-nil whenever Bcs.Flapping is set
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string) (*Simulation, error) {

	// new sim
	var o Simulation

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q", simfilepath)
	}

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))

	// materials database
	if o.Data.Matfile != "" {
		o.MatModels, err = ReadMat(dir, o.Data.Matfile)
		if err != nil {
			return nil, chk.Err("ReadSim: loading materials database failed:\n%v", err)
		}
	}

	// derived data and validation
	err = o.Derive()
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Derive validates the deck and computes derived data. It must be called when a
// Simulation is built programmatically instead of read from a file.
func (o *Simulation) Derive() (err error) {

	// solver defaults for programmatic construction
	if o.Solver.NmaxIt < 1 {
		o.Solver.SetDefault()
	}
	if o.LinSol.Name == "" {
		o.LinSol.SetDefault()
	}

	// time control
	if o.Control.Dt < 1e-14 {
		o.Control.Dt = 1
	}
	if o.Control.Tf < o.Control.Ti {
		return chk.Err("final time (tf=%g) must not be smaller than initial time (ti=%g)", o.Control.Tf, o.Control.Ti)
	}

	// aerodynamic data
	switch o.Data.Aero {
	case "":
	case "panel", "unsteady":
		if o.Wing == nil {
			return chk.Err("aero model %q requires the \"wing\" geometry section", o.Data.Aero)
		}
		if err = o.Wing.Validate(); err != nil {
			return
		}
	default:
		return chk.Err("unknown aero model %q; options are \"panel\" and \"unsteady\"", o.Data.Aero)
	}

	// structural data
	if o.Data.Structural {
		if o.Struct == nil {
			return chk.Err("the structural model requires the \"struct\" geometry section")
		}
		if err = o.Struct.Validate(); err != nil {
			return
		}
		if o.Data.Mat == "" {
			return chk.Err("the structural model requires a material name (data.mat)")
		}
		if o.MatModels == nil || o.MatModels.Get(o.Data.Mat) == nil {
			return chk.Err("cannot find material named %q in materials database", o.Data.Mat)
		}
	}

	// coupling needs both sides
	if o.Data.Coupled && (o.Data.Aero == "" || !o.Data.Structural) {
		return chk.Err("coupled runs require both an aero model and the structural model")
	}

	// freestream
	if len(o.Bcs.Freestream.Velocity) == 0 {
		o.Bcs.Freestream.Velocity = []float64{0, 0, 0}
	}
	if len(o.Bcs.Freestream.Velocity) != 3 {
		return chk.Err("freestream velocity must be a 3-component vector")
	}
	if o.Bcs.Freestream.Rho < 1e-14 {
		o.Bcs.Freestream.Rho = 1.225
	}
	if o.Bcs.Freestream.Mu < 1e-20 {
		o.Bcs.Freestream.Mu = 1.8e-5
	}

	// twist function
	if o.Bcs.Flapping != nil {
		f := o.Bcs.Flapping
		if f.TwistFcn != "" {
			o.TwistFunc, err = o.Functions.Get(f.TwistFcn)
			if err != nil {
				return
			}
		} else if math.Abs(f.PhaseLag) < 1e-14 {
			// a*sin(b*t)
			o.TwistFunc, err = dbf.New("sin", []*dbf.P{
				{N: "a", V: f.Amplitude},
				{N: "b", V: 2 * math.Pi * f.Frequency},
				{N: "c", V: 0},
			})
			if err != nil {
				return chk.Err("cannot build sinusoidal twist function:\n%v", err)
			}
		} else {
			// a*sin(b*t + c); the dbf kernels treat c as an offset, not a phase
			h := new(Harmonic)
			err = h.Init(dbf.Params{
				&dbf.P{N: "a", V: f.Amplitude},
				&dbf.P{N: "b", V: 2 * math.Pi * f.Frequency},
				&dbf.P{N: "c", V: f.PhaseLag},
			})
			if err != nil {
				return chk.Err("cannot build phase-lagged twist function:\n%v", err)
			}
			o.TwistFunc = h
		}
	}
	return
}

// VinfNorm returns the freestream speed
func (o *Simulation) VinfNorm() float64 {
	v := o.Bcs.Freestream.Velocity
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Validate checks the wing geometry
func (o *WingData) Validate() error {
	if o.Span < 1e-14 || o.RootChord < 1e-14 {
		return chk.Err("wingspan and root chord must be positive")
	}
	if o.TipChord < 1e-14 {
		o.TipChord = o.RootChord
	}
	if o.Nx < 1 || o.Ny < 1 {
		return chk.Err("panel counts nx=%d and ny=%d must be positive", o.Nx, o.Ny)
	}
	if len(o.RefPoint) == 0 {
		o.RefPoint = []float64{0.25 * o.RootChord, 0, 0}
	}
	if len(o.RefPoint) != 3 {
		return chk.Err("moment reference point must be a 3-component vector")
	}
	if o.MaxWake < 1 {
		o.MaxWake = 100
	}
	if o.CamberPos < 1e-14 {
		o.CamberPos = 0.4
	}
	return nil
}

// Validate checks the spar/rib layout
func (o *StructData) Validate() error {
	if o.Nribs < 2 {
		return chk.Err("at least 2 rib stations are required (nribs=%d)", o.Nribs)
	}
	if len(o.Spars) < 1 {
		return chk.Err("at least one spar position is required")
	}
	for _, s := range o.Spars {
		if s < 0 || s > 1 {
			return chk.Err("spar positions must be fractions of chord in [0,1] (%g is not)", s)
		}
	}
	if o.Area < 1e-14 || o.Inertia < 1e-20 {
		return chk.Err("spar section area and inertia must be positive")
	}
	return nil
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "direct"
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.NmaxIt = 20
	o.FbTol = 1e-10
	o.CplTol = 1e-6
	o.NcplMax = 50
}
