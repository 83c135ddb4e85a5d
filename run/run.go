// Package run drives batches of independent society-engine runs and
// aggregates their results.  Each run owns its own population and random
// stream, so runs may execute concurrently; nothing is shared between them
// beyond the trace sinks.
package run

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/stat"

	"github.com/optimlab/civ"
	"github.com/optimlab/civ/bench"
	"github.com/optimlab/civ/pop"
	"github.com/optimlab/civ/society"
)

// Result is the outcome of one independent run.
type Result struct {
	Run   int
	Seed  int64
	Best  civ.Individual
	Evals int
}

// Summary aggregates a batch of runs.  Avg is the run best closest to the
// mean objective, not a synthetic average point.
type Summary struct {
	Batch   uuid.UUID
	Results []Result
	Best    Result
	Avg     Result
	Worst   Result
	MeanObj float64
}

// Do executes cfg.Runs independent runs of fn and aggregates best, worst,
// and closest-to-mean results.  Run i is seeded with cfg.BaseSeed+i unless
// cfg.RandomSeed is set.
func Do(cfg Config, fn bench.Func, lg *slog.Logger) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lg == nil {
		lg = slog.Default()
	}

	batch := uuid.New()
	lg = lg.With("batch", batch.String(), "problem", fn.Name())

	low, up := fn.Bounds()

	var db *sql.DB
	if cfg.DB != "" {
		var err error
		db, err = sql.Open("sqlite3", cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("run: opening trace db: %w", err)
		}
		defer db.Close()
	}

	var mu sync.Mutex
	var cw *csv.Writer
	if cfg.CSV != "" {
		f, err := os.Create(cfg.CSV)
		if err != nil {
			return nil, fmt.Errorf("run: creating trace csv: %w", err)
		}
		defer f.Close()
		cw = csv.NewWriter(f)
		defer cw.Flush()
		if err := cw.Write(csvHeader(len(low))); err != nil {
			return nil, fmt.Errorf("run: writing csv header: %w", err)
		}
	}

	results := make([]Result, cfg.Runs)
	runOne := func(i int) error {
		seed := cfg.BaseSeed + int64(i) + 1
		if cfg.RandomSeed {
			seed = time.Now().UnixNano() + int64(i)
		}

		rng := rand.New(rand.NewSource(seed))
		prob := bench.NewCounted(fn)
		people := pop.New(cfg.PopSize, low, up, rng)

		opts := []society.Option{society.RunID(i + 1), society.Rng(rng)}
		if db != nil {
			opts = append(opts, society.DB(db))
		}
		if cw != nil {
			opts = append(opts, society.Observe(func(r society.Record) {
				mu.Lock()
				defer mu.Unlock()
				cw.Write(csvRow(r))
			}))
		}

		c, err := society.New(prob, people, low, up, seed, opts...)
		if err != nil {
			return err
		}

		best := c.Solve(cfg.Steps)
		results[i] = Result{
			Run:   i + 1,
			Seed:  seed,
			Best:  *best.Clone(),
			Evals: prob.Evals(),
		}
		lg.Info("run complete",
			"run", i+1,
			"seed", seed,
			"obj", best.Obj,
			"sumviol", best.SumViol(),
			"evals", prob.Evals(),
		)
		return nil
	}

	if cfg.Parallel > 1 {
		p := pool.New().WithMaxGoroutines(cfg.Parallel).WithErrors()
		for i := 0; i < cfg.Runs; i++ {
			p.Go(func() error { return runOne(i) })
		}
		if err := p.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < cfg.Runs; i++ {
			if err := runOne(i); err != nil {
				return nil, err
			}
		}
	}

	return summarize(batch, results), nil
}

func summarize(batch uuid.UUID, results []Result) *Summary {
	sorted := append([]Result{}, results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Best.Obj < sorted[j].Best.Obj })

	objs := make([]float64, len(sorted))
	for i, r := range sorted {
		objs[i] = r.Best.Obj
	}
	mean := stat.Mean(objs, nil)

	avg := sorted[0]
	for _, r := range sorted[1:] {
		if abs(r.Best.Obj-mean) < abs(avg.Best.Obj-mean) {
			avg = r
		}
	}

	return &Summary{
		Batch:   batch,
		Results: results,
		Best:    sorted[0],
		Avg:     avg,
		Worst:   sorted[len(sorted)-1],
		MeanObj: mean,
	}
}

// Fprint writes a statistical report for the batch: the mean objective and
// detail snippets for the best, closest-to-mean, and worst runs, including
// raw constraint margins when prob reports them.
func (s *Summary) Fprint(w io.Writer, prob civ.Problem) {
	fmt.Fprintf(w, "mean objective over %v runs: %.10f\n", len(s.Results), s.MeanObj)
	snippet(w, "BEST", s.Best, prob)
	snippet(w, "AVERAGE (closest to mean)", s.Avg, prob)
	snippet(w, "WORST", s.Worst, prob)
}

func snippet(w io.Writer, label string, r Result, prob civ.Problem) {
	fmt.Fprintf(w, "\n=== %v (run %v, seed %v) ===\n", label, r.Run, r.Seed)
	fmt.Fprintf(w, "variables: %v\n", r.Best.Pos)
	fmt.Fprintf(w, "objective: %.10f\n", r.Best.Obj)
	fmt.Fprintf(w, "violations: %v (sum=%.10f)\n", r.Best.Viol, r.Best.SumViol())
	if rm, ok := prob.(civ.RawMarginer); ok {
		if raw := rm.RawMargins(r.Best.Pos); raw != nil {
			fmt.Fprintf(w, "raw margins: %v\n", raw)
		}
	}
	status := "FEASIBLE"
	if !r.Best.Feasible() {
		status = "INFEASIBLE"
	}
	fmt.Fprintf(w, "status: %v\n", status)
	if r.Evals > 0 {
		fmt.Fprintf(w, "evaluations: %v\n", r.Evals)
	}
}

func csvHeader(ndims int) []string {
	row := []string{"Run", "Time", "AgentID"}
	for j := 0; j < ndims; j++ {
		row = append(row, fmt.Sprintf("x%v", j+1))
	}
	return append(row, "Objective", "ClusterID", "IsLocalLeader", "IsSuperLeader")
}

func csvRow(r society.Record) []string {
	row := []string{strconv.Itoa(r.Run), strconv.Itoa(r.Step), strconv.Itoa(r.Agent)}
	for _, v := range r.Pos {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return append(row,
		strconv.FormatFloat(r.Obj, 'g', -1, 64),
		strconv.Itoa(r.Society),
		boolint(r.Leader),
		boolint(r.Super),
	)
}

func boolint(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
