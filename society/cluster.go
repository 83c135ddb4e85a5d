package society

import "github.com/optimlab/civ"

// distSq returns the squared Euclidean distance between a and b.  All
// clustering and nearest-leader comparisons operate in squared space,
// which preserves the Euclidean ordering; the hub-promotion threshold is
// defined directly on squared distances.
func distSq(a, b *civ.Individual) float64 {
	tot := 0.0
	for i := range a.Pos {
		d := a.Pos[i] - b.Pos[i]
		tot += d * d
	}
	return tot
}

func (c *Civilization) cluster() {
	first := c.rng.Intn(len(c.Pop))
	c.hubs, c.assign = clusterHubs(c.Pop, first)

	c.socs = make([][]int, len(c.hubs))
	for i, s := range c.assign {
		c.socs[s] = append(c.socs[s], i)
	}
}

// clusterHubs partitions pop into societies by incremental hub placement,
// starting from the given first hub.  The second hub is the individual
// farthest from the first.  Everyone is assigned to the nearer of the two
// (ties to the first), then hubs are added one at a time: the individual
// farthest from its own hub is promoted whenever that distance exceeds
// half the average pairwise hub distance, and promotion steals only the
// individuals strictly closer to the new hub.  Hub count is bounded by
// len(pop), so the loop always terminates.
func clusterHubs(pop civ.Population, first int) (hubs, assign []int) {
	hubs = []int{first}

	second, maxd := 0, -1.0
	for i, ind := range pop {
		if d := distSq(ind, pop[first]); d > maxd {
			second, maxd = i, d
		}
	}
	hubs = append(hubs, second)

	assign = make([]int, len(pop))
	for i, ind := range pop {
		d0 := distSq(ind, pop[hubs[0]])
		d1 := distSq(ind, pop[hubs[1]])
		if d0 <= d1 {
			assign[i] = 0
		} else {
			assign[i] = 1
		}
	}

	for {
		thresh := avgHubDist(pop, hubs) / 2

		far, fard := 0, -1.0
		for i, ind := range pop {
			if d := distSq(ind, pop[hubs[assign[i]]]); d > fard {
				far, fard = i, d
			}
		}
		if fard <= thresh {
			return hubs, assign
		}

		hubs = append(hubs, far)
		snew := len(hubs) - 1
		for i, ind := range pop {
			if distSq(ind, pop[far]) < distSq(ind, pop[hubs[assign[i]]]) {
				assign[i] = snew
			}
		}
	}
}

func avgHubDist(pop civ.Population, hubs []int) float64 {
	tot, npair := 0.0, 0
	for i := 0; i < len(hubs); i++ {
		for j := i + 1; j < len(hubs); j++ {
			tot += distSq(pop[hubs[i]], pop[hubs[j]])
			npair++
		}
	}
	if npair == 0 {
		return 0
	}
	return tot / float64(npair)
}
