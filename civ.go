// Package civ provides the shared data model for socio-behavioural
// constrained optimization: candidate solutions with cached evaluation
// results, the population arena they live in, and the capability contract
// a problem must satisfy to be optimized.
package civ

import (
	"fmt"
	"math"
)

// Problem supplies objective and constraint evaluations for candidate
// points.  The objective must be framed so that lower values are better.
// Violations returns one non-negative magnitude per constraint, where 0
// means satisfied; any native ">=0 satisfied" or "<=0 satisfied"
// convention must be translated to this form inside the implementation.
type Problem interface {
	Objective(x []float64) float64
	Violations(x []float64) []float64
}

// RawMarginer is an optional Problem capability that reports the signed
// constraint margins in the problem's native convention, for diagnostics.
type RawMarginer interface {
	RawMargins(x []float64) []float64
}

// EvalCounter is an optional Problem capability that counts objective
// evaluations.  The count is read by run harnesses and never consulted by
// the engine itself.
type EvalCounter interface {
	Evals() int
	ResetEvals()
}

// Dimer is an optional Problem capability that reports the number of
// design variables the problem expects, or a negative value when unknown.
// Engines use it to reject misconfigured populations before the first
// evaluation.
type Dimer interface {
	Dim() int
}

// Individual is one candidate solution: a point in the bounded variable
// space plus its cached evaluation results.  It carries no rank; Pareto
// ranks are values returned by a ranking call, scoped to that call.
type Individual struct {
	Pos  []float64
	Obj  float64
	Viol []float64
}

// NewIndividual returns an individual at pos (copied) with its objective
// initialized to +infinity and no violations recorded.
func NewIndividual(pos []float64) *Individual {
	cpos := make([]float64, len(pos))
	copy(cpos, pos)
	return &Individual{Pos: cpos, Obj: math.Inf(1)}
}

// Feasible reports whether every cached constraint violation is zero.
func (ind *Individual) Feasible() bool {
	for _, v := range ind.Viol {
		if v > 0 {
			return false
		}
	}
	return true
}

// SumViol returns the total cached violation magnitude.
func (ind *Individual) SumViol() float64 {
	tot := 0.0
	for _, v := range ind.Viol {
		tot += v
	}
	return tot
}

// Clone returns a deep copy of the individual.
func (ind *Individual) Clone() *Individual {
	c := &Individual{
		Pos: append([]float64{}, ind.Pos...),
		Obj: ind.Obj,
	}
	if ind.Viol != nil {
		c.Viol = append([]float64{}, ind.Viol...)
	}
	return c
}

// Population is a fixed-size, index-addressed collection of individuals.
// An individual's index is stable for the duration of one time step and is
// the sole handle other structures use to reference it.
type Population []*Individual

// Evaluate overwrites every individual's cached objective value and
// violation vector by invoking p on its current position.
func (pop Population) Evaluate(p Problem) {
	for _, ind := range pop {
		ind.Obj = p.Objective(ind.Pos)
		ind.Viol = p.Violations(ind.Pos)
	}
}

// Best returns the member with the lowest objective value.  Feasibility is
// not consulted: on constrained problems with no feasible member this can
// surface an infeasible candidate.
func (pop Population) Best() *Individual {
	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.Obj < best.Obj {
			best = ind
		}
	}
	return best
}

// Clone returns a deep copy of the population.
func (pop Population) Clone() Population {
	c := make(Population, len(pop))
	for i, ind := range pop {
		c[i] = ind.Clone()
	}
	return c
}

// CheckBounds validates the box bounds low and up: equal lengths, at least
// one dimension, and low[j] <= up[j] for every j.
func CheckBounds(low, up []float64) error {
	if len(low) != len(up) {
		return fmt.Errorf("civ: low and up bound vectors have different lengths (%v != %v)", len(low), len(up))
	} else if len(low) == 0 {
		return fmt.Errorf("civ: bound vectors are empty")
	}
	for j := range low {
		if low[j] > up[j] {
			return fmt.Errorf("civ: invalid bounds for variable %v: low %v > up %v", j, low[j], up[j])
		}
	}
	return nil
}

// CheckDim validates that every member of pop has ndims variables and that
// p, if it reports a dimension, expects ndims.
func CheckDim(pop Population, p Problem, ndims int) error {
	if d, ok := p.(Dimer); ok && d.Dim() >= 0 && d.Dim() != ndims {
		return fmt.Errorf("civ: problem expects %v variables, bounds define %v", d.Dim(), ndims)
	}
	for i, ind := range pop {
		if len(ind.Pos) != ndims {
			return fmt.Errorf("civ: individual %v has %v variables, expected %v", i, len(ind.Pos), ndims)
		}
	}
	return nil
}
