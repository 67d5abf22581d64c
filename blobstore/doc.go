// Package blobstore is the storage abstraction for exported prime sets.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and one-shot pipelines
//   - LocalStore: a directory on the local file system, read through mmap
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible services (package blobstore/minio)
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Implementations must be safe for concurrent use and must report missing
// blobs with an error satisfying errors.Is(err, ErrNotFound).
package blobstore
