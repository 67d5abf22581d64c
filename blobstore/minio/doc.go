// Package minio stores exported prime sets in MinIO or any other
// S3-compatible service (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	store, err := minioblob.Dial(ctx, minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "primes",
//	})
//
// Dial creates the bucket when it does not exist yet. Use NewStore to wrap a
// client configured elsewhere.
package minio
