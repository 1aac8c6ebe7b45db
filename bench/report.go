package bench

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
)

// Speedup summarizes one benchmark on one engine. A zero duration means the
// variant was not measured; the ratios that need it are then 0.
type Speedup struct {
	Bench  string
	Engine string
	Scalar time.Duration
	SPMD   time.Duration
	Intrin time.Duration

	// Ratios are "a over b": how many times faster a ran than b.
	SPMDOverScalar   float64
	IntrinOverScalar float64
	SPMDOverIntrin   float64
}

// ratio returns how many times faster fast is than slow.
func ratio(slow, fast time.Duration) float64 {
	if slow == 0 || fast == 0 {
		return 0
	}
	return float64(slow) / float64(fast)
}

func median(xs []int64) int64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Report groups results by benchmark and engine and computes the speedup of
// the lane variants over the scalar one from the median run times. Rows are
// ordered by first appearance in results.
func Report(results []Result) []Speedup {
	type key struct{ bench, engine string }

	groups := lo.GroupBy(results, func(r Result) key { return key{r.Bench, r.Engine} })
	order := lo.Uniq(lo.Map(results, func(r Result, _ int) key { return key{r.Bench, r.Engine} }))

	return lo.Map(order, func(k key, _ int) Speedup {
		byVariant := lo.SliceToMap(groups[k], func(r Result) (string, time.Duration) {
			return r.Variant, r.Median()
		})
		s := Speedup{
			Bench:  k.bench,
			Engine: k.engine,
			Scalar: byVariant[VariantScalar],
			SPMD:   byVariant[VariantSPMD],
			Intrin: byVariant[VariantIntrin],
		}
		s.SPMDOverScalar = ratio(s.Scalar, s.SPMD)
		s.IntrinOverScalar = ratio(s.Scalar, s.Intrin)
		s.SPMDOverIntrin = ratio(s.Intrin, s.SPMD)
		return s
	})
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.String()
}

func formatRatio(x float64) string {
	if x == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", x)
}

// WriteReport renders rows as an aligned table.
func WriteReport(w io.Writer, rows []Speedup) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BENCH\tENGINE\tSCALAR\tSPMD\tINTRIN\tSPMD/SCALAR\tINTRIN/SCALAR\tSPMD/INTRIN")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Bench, s.Engine,
			formatDuration(s.Scalar), formatDuration(s.SPMD), formatDuration(s.Intrin),
			formatRatio(s.SPMDOverScalar), formatRatio(s.IntrinOverScalar), formatRatio(s.SPMDOverIntrin),
		)
	}
	return tw.Flush()
}
