// Package primesieve counts and enumerates primes with a cache-resident
// incremental sieve of Eratosthenes.
//
// The sieve keeps one wheel entry (next composite, stride) per prime below
// sqrt(N) in a fixed-capacity min-heap and marks composites in a small ring
// of flag bits that slides over the odd numbers. Memory stays bounded by the
// ring size plus 16 bytes per sieving prime, independent of N.
//
// # Quick Start
//
//	n, err := primesieve.Count(ctx, 100_000_000)
//	// n == 5761455
//
// A Sieve carries configuration and is safe for concurrent use:
//
//	s, _ := primesieve.New(
//	    primesieve.WithWindowBytes(1<<15),
//	    primesieve.WithLogLevel(slog.LevelInfo),
//	)
//	for p, err := range s.Enumerate(ctx, 100) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p)
//	}
//
// # Prime Sets
//
// Collect materializes the primes as a PrimeSet (a compressed 64-bit roaring
// bitmap) that answers pi(x) and nth-prime queries. Export writes a PrimeSet
// to any blobstore.BlobStore, and ReadPrimeSet loads it back:
//
//	store := blobstore.NewLocalStore("./primes")
//	info, _ := s.Export(ctx, store, "pi-1e8.pset", 100_000_000)
//	set, hdr, _ := primesieve.ReadPrimeSet(ctx, store, "pi-1e8.pset")
//
// # Errors
//
// Bounds above MaxBound fail with ErrInvalidBound. A heap capacity smaller
// than the number of sieving primes fails with *CapacityError, a ring size
// that is not a power of two with *WindowSizeError. Cancellation returns
// ErrCanceled together with the partial Result.
package primesieve
