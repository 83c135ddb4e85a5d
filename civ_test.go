package civ

import (
	"math"
	"testing"
)

type stubProblem struct {
	nviol int
}

func (p stubProblem) Objective(x []float64) float64 {
	tot := 0.0
	for _, v := range x {
		tot += v
	}
	return tot
}

func (p stubProblem) Violations(x []float64) []float64 {
	viol := make([]float64, p.nviol)
	for i := range viol {
		if x[0] > 1 {
			viol[i] = x[0] - 1
		}
	}
	return viol
}

func (p stubProblem) Dim() int { return 2 }

func TestEvaluate(t *testing.T) {
	pop := Population{
		NewIndividual([]float64{0.5, 0.25}),
		NewIndividual([]float64{3, 1}),
	}

	if !math.IsInf(pop[0].Obj, 1) {
		t.Errorf("unevaluated individual should have +inf objective, got %v", pop[0].Obj)
	}

	pop.Evaluate(stubProblem{nviol: 2})

	if pop[0].Obj != 0.75 {
		t.Errorf("pop[0] objective: expected 0.75, got %v", pop[0].Obj)
	}
	if !pop[0].Feasible() {
		t.Errorf("pop[0] should be feasible, violations %v", pop[0].Viol)
	}
	if pop[1].Feasible() {
		t.Errorf("pop[1] should be infeasible, violations %v", pop[1].Viol)
	}
	if v := pop[1].SumViol(); v != 4 {
		t.Errorf("pop[1] total violation: expected 4, got %v", v)
	}
}

func TestBestIgnoresFeasibility(t *testing.T) {
	// Best compares objective values only, so an infeasible member with the
	// lowest objective wins.
	pop := Population{
		{Pos: []float64{1}, Obj: 5, Viol: []float64{0}},
		{Pos: []float64{2}, Obj: -3, Viol: []float64{7}},
		{Pos: []float64{3}, Obj: 1, Viol: []float64{0}},
	}
	if best := pop.Best(); best != pop[1] {
		t.Errorf("expected infeasible pop[1] (obj -3) as best, got obj %v", best.Obj)
	}
}

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		low, up []float64
		wanterr bool
	}{
		{[]float64{0, 0}, []float64{1, 1}, false},
		{[]float64{0, 0}, []float64{0, 0}, false},
		{[]float64{0}, []float64{1, 1}, true},
		{[]float64{}, []float64{}, true},
		{[]float64{2, 0}, []float64{1, 1}, true},
	}

	for i, test := range tests {
		err := CheckBounds(test.low, test.up)
		if (err != nil) != test.wanterr {
			t.Errorf("case %v (low=%v up=%v): got err %v, want err %v", i, test.low, test.up, err, test.wanterr)
		}
	}
}

func TestCheckDim(t *testing.T) {
	pop := Population{NewIndividual([]float64{1, 2})}
	if err := CheckDim(pop, stubProblem{}, 2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckDim(pop, stubProblem{}, 3); err == nil {
		t.Errorf("expected dimension mismatch error against problem expectation")
	}

	bad := Population{NewIndividual([]float64{1, 2, 3})}
	if err := CheckDim(bad, stubProblem{}, 2); err == nil {
		t.Errorf("expected dimension mismatch error for individual variable count")
	}
}
