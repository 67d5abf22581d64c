package main

import (
	"context"
	"errors"
	"os"

	"github.com/hupe1980/primesieve/blobstore"
	minioblob "github.com/hupe1980/primesieve/blobstore/minio"
	s3blob "github.com/hupe1980/primesieve/blobstore/s3"
	"github.com/spf13/cobra"
)

// storeFlags selects where prime sets are exported to and read from.
type storeFlags struct {
	dir string

	s3Bucket string
	s3Prefix string
	s3Region string

	minioEndpoint  string
	minioBucket    string
	minioPrefix    string
	minioAccessKey string
	minioSecretKey string
	minioSecure    bool
}

func (f *storeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dir, "dir", "", "Local directory")
	fs.StringVar(&f.s3Bucket, "s3-bucket", "", "S3 bucket (credentials from the default AWS chain)")
	fs.StringVar(&f.s3Prefix, "s3-prefix", "", "Key prefix inside the S3 bucket")
	fs.StringVar(&f.s3Region, "s3-region", "", "AWS region override")
	fs.StringVar(&f.minioEndpoint, "minio-endpoint", "", "MinIO endpoint (host:port)")
	fs.StringVar(&f.minioBucket, "minio-bucket", "", "MinIO bucket")
	fs.StringVar(&f.minioPrefix, "minio-prefix", "", "Key prefix inside the MinIO bucket")
	fs.StringVar(&f.minioAccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	fs.StringVar(&f.minioSecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	fs.BoolVar(&f.minioSecure, "minio-secure", false, "Use HTTPS for MinIO")

	cmd.MarkFlagsMutuallyExclusive("dir", "s3-bucket", "minio-endpoint")
	cmd.MarkFlagsOneRequired("dir", "s3-bucket", "minio-endpoint")
	cmd.MarkFlagsRequiredTogether("minio-endpoint", "minio-bucket")
}

func (f *storeFlags) open(ctx context.Context) (blobstore.BlobStore, error) {
	switch {
	case f.dir != "":
		return blobstore.NewLocalStore(f.dir), nil
	case f.s3Bucket != "":
		var opts []s3blob.Option
		if f.s3Prefix != "" {
			opts = append(opts, s3blob.WithPrefix(f.s3Prefix))
		}
		if f.s3Region != "" {
			opts = append(opts, s3blob.WithRegion(f.s3Region))
		}
		return s3blob.New(ctx, f.s3Bucket, opts...)
	case f.minioEndpoint != "":
		return minioblob.Dial(ctx, minioblob.Config{
			Endpoint:  f.minioEndpoint,
			AccessKey: f.minioAccessKey,
			SecretKey: f.minioSecretKey,
			Secure:    f.minioSecure,
			Bucket:    f.minioBucket,
			Prefix:    f.minioPrefix,
		})
	default:
		return nil, errors.New("no store selected: use --dir, --s3-bucket or --minio-endpoint")
	}
}
