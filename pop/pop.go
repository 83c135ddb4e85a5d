// Package pop constructs initial populations inside box bounds.
package pop

import (
	"math/rand"

	"github.com/petar/GoLLRB/llrb"

	"github.com/optimlab/civ"
)

// New generates n uniformly random individuals in the boxed bounds defined
// by low and up.  The number of dimensions equals len(low).  Objective
// values are initialized to +infinity.
func New(n int, low, up []float64, rng *rand.Rand) civ.Population {
	if len(low) != len(up) {
		panic("pop: low and up vectors are not same length")
	}

	ndims := len(low)

	pop := make(civ.Population, n)
	for i := 0; i < n; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			pos[j] = low[j] + rng.Float64()*(up[j]-low[j])
		}
		pop[i] = civ.NewIndividual(pos)
	}
	return pop
}

type item struct {
	ind    *civ.Individual
	howbad float64
}

func (p1 item) Less(than llrb.Item) bool {
	p2 := than.(item)
	return p1.howbad < p2.howbad
}

// NewConstr tries to generate a population of n feasible individuals for
// prob inside the box bounds.  It samples random points and keeps all
// feasible ones, queueing up the least unfavorable infeasible points (by
// total violation magnitude) in case n feasible ones cannot be found
// within maxiter samples.  nbad reports how many returned individuals are
// infeasible and iter how many samples were drawn.
func NewConstr(n, maxiter int, low, up []float64, prob civ.Problem, rng *rand.Rand) (pop civ.Population, nbad, iter int) {
	if len(low) != len(up) {
		panic("pop: low and up vectors are not same length")
	}

	ndims := len(low)

	violaters := llrb.New()
	pop = make(civ.Population, 0, n)
	for i := 0; i < maxiter; i++ {
		pos := make([]float64, ndims)
		for j := range pos {
			pos[j] = low[j] + rng.Float64()*(up[j]-low[j])
		}
		ind := civ.NewIndividual(pos)

		howbad := 0.0
		for _, v := range prob.Violations(pos) {
			howbad += v
		}

		if howbad == 0 {
			pop = append(pop, ind)
			if len(pop) == n {
				return pop, 0, i + 1
			}
		} else {
			violaters.InsertNoReplace(item{ind, howbad})
			for violaters.Len() > n-len(pop) {
				violaters.DeleteMax()
			}
		}
	}

	nbad = n - len(pop)
	for len(pop) < n {
		p := violaters.DeleteMin().(item).ind
		pop = append(pop, p)
	}

	return pop, nbad, maxiter
}
