// Package society implements a socio-behavioural engine for constrained
// continuous optimization.  A population of individuals is partitioned
// into societies by hub-based clustering, each society elects leaders by
// Pareto-ranking constraint violations, and the leaders of all societies
// form a global society that elects super leaders the same way.
// Non-leaders then move toward their nearest leader and leaders toward
// their nearest super leader, once per discrete time step.
//
// The approach follows:
//
//	Ray, T. and Liew, K.M., "Society and civilization: An optimization
//	algorithm based on the simulation of social behavior," IEEE Trans.
//	Evolutionary Computation, vol. 7, no. 4, pp. 386-396, 2003.
package society

import (
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/optimlab/civ"
)

// Record describes one agent's state at the end of one time step.
// Objective values are the ones cached by the step's evaluation pass;
// positions are current (post-movement).
type Record struct {
	Run     int
	Step    int
	Agent   int
	Pos     []float64
	Obj     float64
	Society int
	Leader  bool
	Super   bool
}

type Option func(*Civilization)

// DB sets a database for tracing per-step agent state.
func DB(db *sql.DB) Option {
	return func(c *Civilization) {
		c.db = db
	}
}

// RunID tags records and trace rows with a run identifier.  Useful when an
// external harness drives several independent runs into one trace.
func RunID(id int) Option {
	return func(c *Civilization) {
		c.runid = id
	}
}

// Observe registers fn to receive one Record per agent per time step.
func Observe(fn func(Record)) Option {
	return func(c *Civilization) {
		c.obs = fn
	}
}

// Rng replaces the seeded stream with rng, letting a harness that already
// used rng for population initialization keep the whole run on one stream.
func Rng(rng *rand.Rand) Option {
	return func(c *Civilization) {
		c.rng = rng
	}
}

// Civilization holds the full state of one run.  Hubs, assignments, and
// leader sets are raw indices into Pop; they are recomputed from scratch
// every time step and are only meaningful within that step.
type Civilization struct {
	Pop  civ.Population
	prob civ.Problem
	low  []float64
	up   []float64
	rng  *rand.Rand

	hubs    []int   // population indices chosen as society centers
	assign  []int   // population index -> society id
	socs    [][]int // society id -> member population indices
	leaders [][]int // society id -> leader population indices
	global  []int   // all current leaders, in society order
	supers  []int   // super leaders, a subset of global

	runid int
	step  int
	db    *sql.DB
	obs   func(Record)
}

// New creates a civilization over pop bounded by low and up, drawing all
// randomness from a single stream seeded with seed.  Identical seed,
// population, and problem produce a bit-identical trajectory.
func New(prob civ.Problem, pop civ.Population, low, up []float64, seed int64, opts ...Option) (*Civilization, error) {
	if len(pop) < 2 {
		return nil, fmt.Errorf("society: population size %v is below the minimum of 2", len(pop))
	}
	if err := civ.CheckBounds(low, up); err != nil {
		return nil, err
	}
	if err := civ.CheckDim(pop, prob, len(low)); err != nil {
		return nil, err
	}

	c := &Civilization{
		Pop:  pop,
		prob: prob,
		low:  low,
		up:   up,
		rng:  rand.New(rand.NewSource(seed)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.initdb(); err != nil {
		return nil, err
	}
	return c, nil
}

// Step advances the civilization by one time step: cluster the population
// into societies, evaluate, elect society leaders, move non-leaders toward
// their nearest leader, collate the global society, elect super leaders,
// and move the remaining leaders toward their nearest super leader.
func (c *Civilization) Step() {
	c.cluster()
	c.Pop.Evaluate(c.prob)
	c.identifyLeaders()
	c.moveMembers()
	c.formGlobal()
	c.identifySupers()
	c.moveLeaders()
	c.logState()
	c.step++
}

// Solve runs tmax time steps, re-evaluates the final positions, and
// returns the member with the lowest objective value.  Feasibility does
// not enter the final comparison.
func (c *Civilization) Solve(tmax int) *civ.Individual {
	for t := 0; t < tmax; t++ {
		c.Step()
	}
	c.Pop.Evaluate(c.prob)
	return c.Pop.Best()
}

// Best returns the population member with the lowest cached objective.
func (c *Civilization) Best() *civ.Individual { return c.Pop.Best() }

// Societies returns the current society membership lists.  Indices are
// only valid until the next call to Step.
func (c *Civilization) Societies() [][]int { return c.socs }

func (c *Civilization) identifyLeaders() {
	c.leaders = make([][]int, len(c.socs))
	for s, members := range c.socs {
		if len(members) == 0 {
			continue
		}
		ranks := Rank(c.Pop, members)
		c.leaders[s] = selectLeaders(c.Pop, members, ranks)
	}
}

func (c *Civilization) formGlobal() {
	c.global = c.global[:0]
	for _, lead := range c.leaders {
		c.global = append(c.global, lead...)
	}
}

func (c *Civilization) identifySupers() {
	ranks := Rank(c.Pop, c.global)
	c.supers = selectLeaders(c.Pop, c.global, ranks)
}

func (c *Civilization) logState() {
	if c.obs == nil && c.db == nil {
		return
	}

	leader := make(map[int]bool)
	for _, lead := range c.leaders {
		for _, i := range lead {
			leader[i] = true
		}
	}
	super := make(map[int]bool)
	for _, i := range c.supers {
		super[i] = true
	}

	if c.obs != nil {
		for i, ind := range c.Pop {
			c.obs(Record{
				Run:     c.runid,
				Step:    c.step,
				Agent:   i,
				Pos:     append([]float64{}, ind.Pos...),
				Obj:     ind.Obj,
				Society: c.assign[i],
				Leader:  leader[i],
				Super:   super[i],
			})
		}
	}
	c.updateDb(leader, super)
}

func isin(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
