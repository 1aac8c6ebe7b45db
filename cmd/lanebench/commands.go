package main

import (
	"fmt"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/lanebench/bench"
	"github.com/ajroetker/lanebench/lane"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List benchmarks and their variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BENCH\tVARIANTS")
			for _, b := range bench.Benchmarks() {
				fmt.Fprintf(tw, "%s\t%s\n", b, strings.Join(bench.Variants(b), ","))
			}
			return tw.Flush()
		},
	}
}

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Time the selected entries and write the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			defer s.engine.Close()

			if !hasVariant(s.entries, bench.VariantScalar) {
				bench.Logger().Warn("no scalar entries selected, speedups will be empty")
			}

			results, err := bench.NewRunner(s.runner...).Run(cmd.Context(), s.entries)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if o.out == "-" {
				if err := bench.WriteResults(out, results); err != nil {
					return err
				}
			} else {
				if err := bench.SaveResults(o.out, results); err != nil {
					return err
				}
				bench.Logger().Info("results written", "path", o.out, "entries", len(results))
			}
			return bench.WriteReport(out, bench.Report(results))
		},
	}
}

func newReportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report [results.json]",
		Short: "Print the speedups of a results file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.out
			if len(args) == 1 {
				path = args[0]
			}
			results, err := bench.LoadResults(path)
			if err != nil {
				return err
			}
			return bench.WriteReport(cmd.OutOrStdout(), bench.Report(results))
		},
	}
}

func newVerifyCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every lane variant matches its scalar variant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			defer s.engine.Close()

			checks, verr := bench.Verify(cmd.Context(), s.engine, s.entries)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "BENCH\tVARIANT\tENGINE\tSTATUS")
			for _, c := range checks {
				if c.Bench == "" {
					continue
				}
				status := "ok"
				if c.Err != nil {
					status = "MISMATCH"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Bench, c.Variant, s.engine.Name(), status)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return verr
		},
	}
}

func newInfoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the host SIMD level and the selected engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			defer s.engine.Close()

			workers := 1
			if p, ok := s.engine.(*lane.Parallel); ok {
				workers = p.Workers()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "simd\t%s\n", lane.CurrentName())
			fmt.Fprintf(tw, "register bytes\t%d\n", lane.CurrentWidth())
			fmt.Fprintf(tw, "native lanes\t%d\n", lane.NativeLanes())
			fmt.Fprintf(tw, "lane width\t%d\n", lane.Width)
			fmt.Fprintf(tw, "engine\t%s\n", s.engine.Name())
			fmt.Fprintf(tw, "workers\t%d\n", workers)
			fmt.Fprintf(tw, "gomaxprocs\t%d\n", runtime.GOMAXPROCS(0))
			return tw.Flush()
		},
	}
}
