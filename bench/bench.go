// Package bench provides constrained benchmark problems for testing the
// society engine.  Each problem translates its native constraint
// convention (">=0 satisfied" or "<=0 satisfied") into non-negative
// violation magnitudes before the engine ever sees them.
package bench

import (
	"fmt"
	"math"

	"github.com/optimlab/civ"
)

var (
	sqrt = math.Sqrt
	pow  = math.Pow
)

var AllFuncs = []Func{
	TwoVarDesign{},
	WeldedBeam{},
}

// Func couples a constrained problem with its search bounds and best-known
// optimum.
type Func interface {
	civ.Problem
	Bounds() (low, up []float64)
	Optima() []civ.Individual
	Name() string
}

// ByName returns the benchmark problem registered under name.
func ByName(name string) (Func, error) {
	for _, fn := range AllFuncs {
		if fn.Name() == name {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("bench: unknown problem %q", name)
}

// TwoVarDesign is the two-variable cubic design problem:
//
//	minimize f(x) = (x1-10)^3 + (x2-20)^3
//
// subject to two quadratic constraints with ">=0 satisfied" margins.  The
// feasible region is the thin crescent between two circles, which makes
// feasibility hard to hold while descending.
type TwoVarDesign struct{}

func (fn TwoVarDesign) Name() string { return "4_1" }

func (fn TwoVarDesign) Dim() int { return 2 }

func (fn TwoVarDesign) Objective(x []float64) float64 {
	return pow(x[0]-10, 3) + pow(x[1]-20, 3)
}

// RawMargins returns g1 and g2 in the native ">=0 satisfied" convention.
func (fn TwoVarDesign) RawMargins(x []float64) []float64 {
	g1 := pow(x[0]-5, 2) + pow(x[1]-5, 2) - 100
	g2 := -pow(x[0]-6, 2) - pow(x[1]-5, 2) + 82.81
	return []float64{g1, g2}
}

func (fn TwoVarDesign) Violations(x []float64) []float64 {
	raw := fn.RawMargins(x)
	viol := make([]float64, len(raw))
	for i, g := range raw {
		if g < 0 {
			viol[i] = -g
		}
	}
	return viol
}

func (fn TwoVarDesign) Bounds() (low, up []float64) {
	return []float64{13, 0}, []float64{100, 100}
}

func (fn TwoVarDesign) Optima() []civ.Individual {
	return []civ.Individual{
		{Pos: []float64{14.095, 0.84296}, Obj: -6961.81388},
	}
}

// WeldedBeam is the four-variable welded beam design problem: minimize
// fabrication cost over weld thickness h, weld length l, bar height t, and
// bar width b, subject to stress, deflection, buckling, and geometry
// constraints.  Native margins use the "<=0 satisfied" convention.
type WeldedBeam struct{}

const (
	beamP        = 6000.0
	beamL        = 14.0
	beamE        = 30.0e6
	beamG        = 12.0e6
	beamTauMax   = 13600.0
	beamSigmaMax = 30000.0
	beamDeltaMax = 0.25
)

func (fn WeldedBeam) Name() string { return "4_2" }

func (fn WeldedBeam) Dim() int { return 4 }

func (fn WeldedBeam) Objective(x []float64) float64 {
	h, l, t, b := x[0], x[1], x[2], x[3]
	return 1.10471*h*h*l + 0.04811*t*b*(14.0+l)
}

// RawMargins returns g1..g7 in the native "<=0 satisfied" convention.
func (fn WeldedBeam) RawMargins(x []float64) []float64 {
	h, l, t, b := x[0], x[1], x[2], x[3]

	tauPrime := beamP / (sqrt(2) * h * l)
	moment := beamP * (beamL + l/2)
	radius := sqrt(l*l/4 + pow((h+t)/2, 2))
	polar := 2 * (h * l / sqrt(2)) * (l*l/12 + pow((h+t)/2, 2))
	tauDPrime := moment * radius / polar
	tau := sqrt(tauPrime*tauPrime + 2*tauPrime*tauDPrime*l/(2*radius) + tauDPrime*tauDPrime)
	sigma := 6 * beamP * beamL / (b * t * t)
	delta := 4 * beamP * pow(beamL, 3) / (beamE * b * pow(t, 3))
	pc := 4.013 * sqrt(beamE*beamG*t*t*pow(b, 6)/36) / (beamL * beamL) *
		(1 - t/(2*beamL)*sqrt(beamE/(4*beamG)))

	return []float64{
		tau - beamTauMax,
		sigma - beamSigmaMax,
		h - b,
		0.10471*h*h + 0.04811*t*b*(14.0+l) - 5.0,
		0.125 - h,
		delta - beamDeltaMax,
		beamP - pc,
	}
}

func (fn WeldedBeam) Violations(x []float64) []float64 {
	raw := fn.RawMargins(x)
	viol := make([]float64, len(raw))
	for i, g := range raw {
		if g > 0 {
			viol[i] = g
		}
	}
	return viol
}

func (fn WeldedBeam) Bounds() (low, up []float64) {
	return []float64{0.1, 0.1, 0.1, 0.1}, []float64{2, 10, 10, 2}
}

func (fn WeldedBeam) Optima() []civ.Individual {
	return []civ.Individual{
		{Pos: []float64{0.2444, 6.2380, 8.2886, 0.2446}, Obj: 2.38544},
	}
}

// Counted wraps a Problem and counts objective evaluations, satisfying the
// civ.EvalCounter capability for run harnesses.
type Counted struct {
	civ.Problem
	n int
}

func NewCounted(p civ.Problem) *Counted { return &Counted{Problem: p} }

func (c *Counted) Objective(x []float64) float64 {
	c.n++
	return c.Problem.Objective(x)
}

func (c *Counted) Evals() int { return c.n }

func (c *Counted) ResetEvals() { c.n = 0 }

// RawMargins forwards to the wrapped problem when it reports raw margins.
func (c *Counted) RawMargins(x []float64) []float64 {
	if rm, ok := c.Problem.(civ.RawMarginer); ok {
		return rm.RawMargins(x)
	}
	return nil
}

// Dim forwards the wrapped problem's variable count, or -1 if unknown.
func (c *Counted) Dim() int {
	if d, ok := c.Problem.(civ.Dimer); ok {
		return d.Dim()
	}
	return -1
}
