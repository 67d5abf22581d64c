package main

import (
	"bufio"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <N>",
		Short: "Print the primes <= N, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseBoundArg(args)
			if err != nil {
				return err
			}
			s, err := g.sieve(cmd)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			buf := make([]byte, 0, 24)
			for p, err := range s.Enumerate(cmd.Context(), n) {
				if err != nil {
					return err
				}
				buf = strconv.AppendUint(buf[:0], p, 10)
				buf = append(buf, '\n')
				if _, err := w.Write(buf); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}
