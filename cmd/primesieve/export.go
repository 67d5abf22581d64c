package main

import (
	"fmt"

	"github.com/hupe1980/primesieve"
	"github.com/hupe1980/primesieve/codec"
	"github.com/spf13/cobra"
)

func newExportCmd(g *globalFlags) *cobra.Command {
	var (
		stores    storeFlags
		codecName string
		name      string
		rate      int64
	)

	cmd := &cobra.Command{
		Use:   "export <N>",
		Short: "Sieve up to N and store the primes as a compressed prime set",
		Long: `export sieves up to N, encodes the primes as a roaring bitmap, compresses it
and writes it to a local directory, an S3 bucket or a MinIO bucket.

Example:
  primesieve export 1e8 --dir ./sets
  primesieve export 1e9 --s3-bucket primes --s3-prefix sets/ --codec lz4
  primesieve export 1e7 --minio-endpoint localhost:9000 --minio-bucket primes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseBoundArg(args)
			if err != nil {
				return err
			}
			c, ok := codec.ByName(codecName)
			if !ok {
				return fmt.Errorf("unknown codec %q (want zstd, lz4 or none)", codecName)
			}
			if name == "" {
				name = fmt.Sprintf("pi-%d.pset", n)
			}

			extra := []primesieve.Option{primesieve.WithCodec(c)}
			if rate > 0 {
				extra = append(extra, primesieve.WithResourceLimits(primesieve.ResourceLimits{ExportBytesPerSec: rate}))
			}
			s, err := g.sieve(cmd, extra...)
			if err != nil {
				return err
			}

			store, err := stores.open(cmd.Context())
			if err != nil {
				return err
			}
			info, err := s.Export(cmd.Context(), store, name, n)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d primes <= %d to %s (%s, %d of %d bytes)\n",
				info.Count, info.Bound, info.Name, info.Codec, info.StoredBytes, info.RawBytes)
			return nil
		},
	}

	stores.register(cmd)
	cmd.Flags().StringVar(&codecName, "codec", codec.Default.Name(), "Compression: zstd, lz4 or none")
	cmd.Flags().StringVar(&name, "name", "", "Blob name (default pi-<N>.pset)")
	cmd.Flags().Int64Var(&rate, "rate", 0, "Export bandwidth limit in bytes per second, 0 is unlimited")
	return cmd
}
