// Command lanebench times the lane kernels in their scalar and lane-parallel
// forms and reports the speedups.
//
// Usage:
//
//	lanebench list
//	lanebench run --engine parallel --runs 5 --out bench-data.json
//	lanebench run --suite suite.yaml
//	lanebench report bench-data.json
//	lanebench verify --bench nbody,fwt
//	lanebench info
//
// Without --engine or a suite, the engine comes from LANEBENCH_ENGINE and
// LANEBENCH_WORKERS.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/lanebench/bench"
	"github.com/ajroetker/lanebench/lane"
)

// options holds the values of the persistent flags.
type options struct {
	benches   []string
	variants  []string
	runs      int
	engine    string
	workers   int
	suite     string
	out       string
	logLevel  string
	logFormat string
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&o.benches, "bench", "b", nil, "benchmarks to select (default: all)")
	fs.StringSliceVarP(&o.variants, "variant", "v", nil, "variants to select (default: all)")
	fs.IntVarP(&o.runs, "runs", "n", bench.DefaultRuns, "timed runs per entry")
	fs.StringVarP(&o.engine, "engine", "e", "", "lane engine, one of "+fmt.Sprint(lane.Engines()))
	fs.IntVarP(&o.workers, "workers", "w", 0, "parallel engine workers (default: GOMAXPROCS)")
	fs.StringVar(&o.suite, "suite", "", "YAML suite file; flags given explicitly take precedence")
	fs.StringVarP(&o.out, "out", "o", bench.DefaultResultsFile, "results file, - for stdout")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&o.logFormat, "log-format", bench.LogFormatText, "log format (text, json)")
}

// setup is the resolved configuration of one command.
type setup struct {
	entries []bench.Entry
	engine  lane.Engine
	runner  []bench.Option
}

// resolve merges the suite file, the flags and the environment. Flags set on
// the command line win over the suite; the environment is used only when
// neither names an engine.
func (o *options) resolve(cmd *cobra.Command) (*setup, error) {
	flags := cmd.Flags()
	s := &bench.Suite{}
	if o.suite != "" {
		loaded, err := bench.LoadSuite(o.suite)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	if flags.Changed("runs") || s.Runs == 0 {
		s.Runs = o.runs
	}
	if flags.Changed("workers") {
		s.Workers = o.workers
	}
	if flags.Changed("engine") {
		s.Engine = o.engine
	}
	if flags.Changed("bench") || flags.Changed("variant") {
		s.Benchmarks = nil
	}

	var entries []bench.Entry
	var err error
	if len(s.Benchmarks) > 0 {
		entries, err = s.Entries()
	} else {
		entries, err = bench.Select(o.benches, o.variants)
	}
	if err != nil {
		return nil, err
	}

	var engine lane.Engine
	if s.Engine == "" && !flags.Changed("workers") {
		engine, err = lane.EngineFromEnv()
	} else {
		engine, err = s.NewEngine()
	}
	if err != nil {
		return nil, err
	}

	return &setup{
		entries: entries,
		engine:  engine,
		runner:  append(s.Options(), bench.WithEngine(engine), bench.WithLogger(bench.Logger())),
	}, nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "lanebench",
		Short:         "Compare scalar and lane-parallel kernels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := bench.NewLogger(stderr, o.logFormat, o.logLevel)
			if err != nil {
				return err
			}
			bench.SetLogger(logger)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	o.register(root.PersistentFlags())

	root.AddCommand(
		newListCmd(),
		newRunCmd(o),
		newReportCmd(o),
		newVerifyCmd(o),
		newInfoCmd(o),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// hasVariant reports whether any entry has the given variant.
func hasVariant(entries []bench.Entry, variant string) bool {
	return slices.ContainsFunc(entries, func(e bench.Entry) bool { return e.Variant == variant })
}
