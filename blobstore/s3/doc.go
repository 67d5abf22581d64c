// Package s3 stores exported prime sets in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("primes/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	err = primesieve.Export(ctx, store, "pi-1e9.pset", 1_000_000_000)
//
// # Features
//
//   - Range reads through Blob.ReadAt
//   - Multipart uploads via the transfer manager for large sets
//   - Automatic pagination for listing
package s3
