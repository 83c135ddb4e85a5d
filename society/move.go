package society

import (
	"math"

	"github.com/optimlab/civ"
)

// moveToward repositions follower variable-by-variable relative to leader.
// For each variable a fresh draw picks one of three regions: with
// probability 1/4 the interval from the lower bound up to the smaller of
// the two values, with probability 1/2 the interval between the two
// values, and with probability 1/4 the interval from the larger value up
// to the upper bound.  The new value is then drawn uniformly within the
// chosen region.  A region that collapses degenerates to the bound itself,
// so followers never leave the box.
func (c *Civilization) moveToward(follower, leader *civ.Individual) {
	for j := range follower.Pos {
		r := c.rng.Float64()
		lo := math.Min(follower.Pos[j], leader.Pos[j])
		hi := math.Max(follower.Pos[j], leader.Pos[j])

		var a, b float64
		switch {
		case r < 0.25:
			a, b = c.low[j], math.Max(lo, c.low[j])
		case r < 0.75:
			a, b = lo, hi
		default:
			a, b = math.Min(hi, c.up[j]), c.up[j]
		}
		follower.Pos[j] = a + c.rng.Float64()*(b-a)
	}
}

// nearest returns the member of candidates closest to from.  Ties go to
// the earliest candidate.
func (c *Civilization) nearest(from int, candidates []int) int {
	best, bestd := -1, math.Inf(1)
	for _, ci := range candidates {
		if d := distSq(c.Pop[from], c.Pop[ci]); d < bestd {
			best, bestd = ci, d
		}
	}
	return best
}

// moveMembers moves every non-leader toward the nearest leader of its own
// society.  Leaders hold still during this phase.
func (c *Civilization) moveMembers() {
	for s, members := range c.socs {
		lead := c.leaders[s]
		if len(lead) == 0 {
			continue
		}
		for _, i := range members {
			if isin(lead, i) {
				continue
			}
			c.moveToward(c.Pop[i], c.Pop[c.nearest(i, lead)])
		}
	}
}

// moveLeaders moves every society leader that is not a super leader toward
// its nearest super leader.
func (c *Civilization) moveLeaders() {
	if len(c.supers) == 0 {
		return
	}
	for _, i := range c.global {
		if isin(c.supers, i) {
			continue
		}
		c.moveToward(c.Pop[i], c.Pop[c.nearest(i, c.supers)])
	}
}
