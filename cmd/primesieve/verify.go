package main

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/primesieve/internal/reference"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newVerifyCmd(g *globalFlags) *cobra.Command {
	var (
		maxBound uint64
		step     uint64
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Cross-check the sieve against a segmented reference sieve",
		Long: `verify counts primes for the bounds 0, step, 2*step, ... <= max with both the
incremental sieve and a classic two-pass segmented sieve and fails on the
first disagreement.

Example:
  primesieve verify --max 1000000 --step 9973 --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step == 0 {
				return fmt.Errorf("--step must be positive")
			}
			s, err := g.sieve(cmd)
			if err != nil {
				return err
			}

			eg, ctx := errgroup.WithContext(cmd.Context())
			eg.SetLimit(max(workers, 1))

			var checked int
			for n := uint64(0); n <= maxBound; n += step {
				checked++
				eg.Go(func() error {
					got, err := s.Count(ctx, n)
					if err != nil {
						return fmt.Errorf("bound %d: %w", n, err)
					}
					if want := reference.SegmentedCount(n); got != want {
						return fmt.Errorf("bound %d: sieve counted %d primes, reference %d", n, got, want)
					}
					return nil
				})
				if n > maxBound-step {
					break
				}
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "verified %d bounds up to %d\n", checked, maxBound)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&maxBound, "max", 100000, "Largest bound to check")
	cmd.Flags().Uint64Var(&step, "step", 1000, "Distance between checked bounds")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "Bounds checked in parallel")
	return cmd
}
