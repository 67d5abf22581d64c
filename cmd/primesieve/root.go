package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/hupe1980/primesieve"
	"github.com/spf13/cobra"
)

// defaultBound is used when no N is given.
const defaultBound = 100000000

type globalFlags struct {
	windowBytes  int
	heapCapacity int
	logLevel     string
	jsonLogs     bool
	progress     time.Duration
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "primesieve [N]",
		Short: "Count primes up to N with a cache-resident incremental sieve",
		Long: `primesieve counts the primes <= N (default 100000000) and prints
"count of primes = <n>". N may use digit separators (1_000_000) or a power
of ten (1e9).

Example:
  primesieve
  primesieve 1e9 --window-bytes 32768 --progress 5s`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd, g, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.IntVar(&g.windowBytes, "window-bytes", primesieve.DefaultWindowBytes, "Ring size in bytes (power of two)")
	pf.IntVar(&g.heapCapacity, "heap-capacity", 0, "Wheel heap capacity, 0 derives it from N")
	pf.StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.BoolVar(&g.jsonLogs, "json-logs", false, "Emit logs as JSON")
	pf.DurationVar(&g.progress, "progress", 0, "Log progress at most once per interval, 0 disables")

	cmd.AddCommand(
		newListCmd(g),
		newVerifyCmd(g),
		newExportCmd(g),
		newInspectCmd(),
	)
	return cmd
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runCount(cmd *cobra.Command, g *globalFlags, args []string) error {
	n := uint64(defaultBound)
	if len(args) == 1 {
		var err error
		if n, err = primesieve.ParseBound(args[0]); err != nil {
			return err
		}
	}

	s, err := g.sieve(cmd)
	if err != nil {
		return err
	}
	count, err := s.Count(cmd.Context(), n)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "count of primes = %d\n", count)
	return nil
}

// sieve builds a Sieve from the global flags plus extra options.
func (g *globalFlags) sieve(cmd *cobra.Command, extra ...primesieve.Option) (*primesieve.Sieve, error) {
	logger, err := g.logger(cmd)
	if err != nil {
		return nil, err
	}
	opts := []primesieve.Option{
		primesieve.WithWindowBytes(g.windowBytes),
		primesieve.WithHeapCapacity(g.heapCapacity),
		primesieve.WithLogger(logger),
		primesieve.WithProgressInterval(g.progress),
	}
	return primesieve.New(append(opts, extra...)...)
}

func (g *globalFlags) logger(cmd *cobra.Command) (*primesieve.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	if g.progress > 0 && level > slog.LevelInfo {
		level = slog.LevelInfo
	}

	hopts := &slog.HandlerOptions{Level: level}
	if g.jsonLogs {
		return primesieve.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts)), nil
	}
	return primesieve.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), hopts)), nil
}

func parseBoundArg(args []string) (uint64, error) {
	return primesieve.ParseBound(args[0])
}
