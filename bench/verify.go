package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/lanebench/lane"
)

// Check is the outcome of comparing one lane variant with its scalar
// reference.
type Check struct {
	Bench   string
	Variant string
	Err     error
}

// Verify runs every non-scalar entry and its benchmark's scalar entry once
// from the seed data and compares their final state exactly. Benchmarks are
// checked concurrently on independent contexts; e is shared by all of them.
//
// It returns one Check per non-scalar entry, in input order, and an error
// joining every *MismatchError found. A benchmark without a scalar entry in
// entries is resolved from the registry.
func Verify(ctx context.Context, e lane.Engine, entries []Entry) ([]Check, error) {
	candidates := lo.Filter(entries, func(entry Entry, _ int) bool {
		return entry.Variant != VariantScalar
	})
	checks := make([]Check, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, entry := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref, err := Lookup(entry.Bench, VariantScalar)
			if err != nil {
				return err
			}

			want := finalState(ref, e)
			got := finalState(entry, e)
			checks[i] = Check{Bench: entry.Bench, Variant: entry.Variant}
			if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
				checks[i].Err = &MismatchError{
					Bench:   entry.Bench,
					Variant: entry.Variant,
					Engine:  e.Name(),
					Diff:    diff,
				}
				Logger().Warn("verify mismatch", "bench", entry.Bench, "variant", entry.Variant, "engine", e.Name())
				return nil
			}
			Logger().Info("verified", "bench", entry.Bench, "variant", entry.Variant, "engine", e.Name())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return checks, fmt.Errorf("bench: verify: %w", err)
	}

	var errs []error
	for _, c := range checks {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return checks, errors.Join(errs...)
}

// finalState runs entry once from its seed data and returns its state.
func finalState(entry Entry, e lane.Engine) any {
	inst := entry.New(e)
	inst.Reset()
	inst.Run()
	return inst.State()
}
