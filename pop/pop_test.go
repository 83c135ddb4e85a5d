package pop

import (
	"math"
	"math/rand"
	"testing"
)

type halfline struct{}

// feasible iff x[0] <= 0.5
func (halfline) Objective(x []float64) float64 { return x[0] }

func (halfline) Violations(x []float64) []float64 {
	if x[0] > 0.5 {
		return []float64{x[0] - 0.5}
	}
	return []float64{0}
}

type hopeless struct{}

func (hopeless) Objective(x []float64) float64    { return 0 }
func (hopeless) Violations(x []float64) []float64 { return []float64{1 + x[0]} }

func TestNew(t *testing.T) {
	low := []float64{-2, 0, 10}
	up := []float64{2, 1, 11}
	rng := rand.New(rand.NewSource(8))

	pop := New(25, low, up, rng)
	if len(pop) != 25 {
		t.Fatalf("expected 25 individuals, got %v", len(pop))
	}
	for i, ind := range pop {
		if !math.IsInf(ind.Obj, 1) {
			t.Errorf("individual %v: objective not initialized to +inf: %v", i, ind.Obj)
		}
		for j, v := range ind.Pos {
			if v < low[j] || v > up[j] {
				t.Errorf("individual %v variable %v out of bounds: %v not in [%v, %v]", i, j, v, low[j], up[j])
			}
		}
	}
}

func TestNewConstrAllFeasible(t *testing.T) {
	low := []float64{0}
	up := []float64{1}
	rng := rand.New(rand.NewSource(8))

	pop, nbad, iter := NewConstr(10, 10000, low, up, halfline{}, rng)
	if len(pop) != 10 {
		t.Fatalf("expected 10 individuals, got %v", len(pop))
	}
	if nbad != 0 {
		t.Errorf("expected all feasible individuals, got %v infeasible", nbad)
	}
	if iter > 10000 {
		t.Errorf("iteration count %v exceeds maxiter", iter)
	}
	for i, ind := range pop {
		if ind.Pos[0] > 0.5 {
			t.Errorf("individual %v at %v is infeasible", i, ind.Pos[0])
		}
	}
}

func TestNewConstrKeepsLeastBad(t *testing.T) {
	low := []float64{0}
	up := []float64{1}
	rng := rand.New(rand.NewSource(8))

	pop, nbad, iter := NewConstr(5, 200, low, up, hopeless{}, rng)
	if len(pop) != 5 {
		t.Fatalf("expected 5 individuals, got %v", len(pop))
	}
	if nbad != 5 {
		t.Errorf("expected 5 infeasible individuals, got %v", nbad)
	}
	if iter != 200 {
		t.Errorf("expected the full 200 samples to be drawn, got %v", iter)
	}
}
