package society

import (
	"gonum.org/v1/gonum/stat"

	"github.com/optimlab/civ"
)

// dominates reports whether violation vector a Pareto-dominates b: no
// component of a is larger than b's and at least one is strictly smaller.
// Identical vectors dominate neither, so an all-zero (feasible) vector is
// never dominated by another all-zero vector.
func dominates(a, b []float64) bool {
	better := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// Rank Pareto-ranks the members of group over their cached violation
// vectors by iterative non-dominated extraction: rank 1 is the set of
// members dominated by nobody, rank 2 is the set dominated only by rank 1,
// and so on.  Objective values play no part.  The returned ranks are
// parallel to group and scoped to this single call.
func Rank(pop civ.Population, group []int) []int {
	ranks := make([]int, len(group))
	assigned := 0
	for r := 1; assigned < len(group); r++ {
		var front []int
		for i := range group {
			if ranks[i] != 0 {
				continue
			}
			dominated := false
			for j := range group {
				if j == i || ranks[j] != 0 {
					continue
				}
				if dominates(pop[group[j]].Viol, pop[group[i]].Viol) {
					dominated = true
					break
				}
			}
			if !dominated {
				front = append(front, i)
			}
		}
		for _, i := range front {
			ranks[i] = r
		}
		assigned += len(front)
	}
	return ranks
}

// selectLeaders applies the leader rule shared by societies and the global
// society: take the whole first front when it is no more than half the
// group, otherwise keep only the first-front members whose objective is at
// or below the group mean, falling back to the front's first member so
// that every non-empty group yields at least one leader.
func selectLeaders(pop civ.Population, group []int, ranks []int) []int {
	if len(group) == 0 {
		return nil
	}

	var r1 []int
	for i, gi := range group {
		if ranks[i] == 1 {
			r1 = append(r1, gi)
		}
	}
	if 2*len(r1) <= len(group) {
		return r1
	}

	objs := make([]float64, len(group))
	for i, gi := range group {
		objs[i] = pop[gi].Obj
	}
	mean := stat.Mean(objs, nil)

	var sel []int
	for _, gi := range r1 {
		if pop[gi].Obj <= mean {
			sel = append(sel, gi)
		}
	}
	if len(sel) == 0 {
		sel = r1[:1]
	}
	return sel
}
