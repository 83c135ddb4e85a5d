// Command civrun executes batches of society-engine runs against the
// built-in constrained benchmark problems and prints a statistical report.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/optimlab/civ/bench"
	"github.com/optimlab/civ/run"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgpath string
		verbose bool
	)
	cfg := run.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "civrun [4_1|4_2|all]",
		Short: "run the society-civilization optimizer on benchmark problems",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl := slog.LevelWarn
			if verbose {
				lvl = slog.LevelInfo
			}
			lg := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      lvl,
				TimeFormat: time.Kitchen,
			}))

			if cfgpath != "" {
				loaded, err := run.LoadConfig(cfgpath)
				if err != nil {
					return err
				}
				overrideFlags(cmd, &loaded, cfg)
				cfg = loaded
			}
			if len(args) == 1 {
				cfg.Problem = args[0]
			}

			fns := bench.AllFuncs
			if cfg.Problem != "all" {
				fn, err := bench.ByName(cfg.Problem)
				if err != nil {
					return err
				}
				fns = []bench.Func{fn}
			}

			for _, fn := range fns {
				lg.Info("starting batch", "problem", fn.Name(), "runs", cfg.Runs, "steps", cfg.Steps, "pop", cfg.PopSize)
				s, err := run.Do(cfg, fn, lg)
				if err != nil {
					return err
				}
				fmt.Printf("------ %v ------\n", fn.Name())
				s.Fprint(os.Stdout, fn)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgpath, "config", "", "YAML config file (flags override it)")
	cmd.Flags().IntVar(&cfg.Runs, "runs", cfg.Runs, "number of independent runs")
	cmd.Flags().IntVar(&cfg.Steps, "steps", cfg.Steps, "time steps per run")
	cmd.Flags().IntVar(&cfg.PopSize, "pop", cfg.PopSize, "civilization size")
	cmd.Flags().Int64Var(&cfg.BaseSeed, "seed", cfg.BaseSeed, "base seed (run i uses seed+i)")
	cmd.Flags().BoolVar(&cfg.RandomSeed, "random-seed", cfg.RandomSeed, "use entropy-based per-run seeds")
	cmd.Flags().IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "max concurrent runs (<2 = serial)")
	cmd.Flags().StringVar(&cfg.CSV, "csv", cfg.CSV, "per-step agent trace csv path")
	cmd.Flags().StringVar(&cfg.DB, "db", cfg.DB, "sqlite trace database path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-run progress")
	return cmd
}

// overrideFlags re-applies any explicitly set flag values on top of a
// loaded config file.
func overrideFlags(cmd *cobra.Command, dst *run.Config, flagged run.Config) {
	if cmd.Flags().Changed("runs") {
		dst.Runs = flagged.Runs
	}
	if cmd.Flags().Changed("steps") {
		dst.Steps = flagged.Steps
	}
	if cmd.Flags().Changed("pop") {
		dst.PopSize = flagged.PopSize
	}
	if cmd.Flags().Changed("seed") {
		dst.BaseSeed = flagged.BaseSeed
	}
	if cmd.Flags().Changed("random-seed") {
		dst.RandomSeed = flagged.RandomSeed
	}
	if cmd.Flags().Changed("parallel") {
		dst.Parallel = flagged.Parallel
	}
	if cmd.Flags().Changed("csv") {
		dst.CSV = flagged.CSV
	}
	if cmd.Flags().Changed("db") {
		dst.DB = flagged.DB
	}
}
