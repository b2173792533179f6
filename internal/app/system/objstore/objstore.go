// internal/app/system/objstore/objstore.go

// Package objstore selects and constructs the object-store backend used for
// uploaded avatars: a local filesystem directory for development, or S3 for
// production.
package objstore

import (
	"context"
	"errors"
	"io"

	"github.com/dalemusser/waffle/pantry/storage"
)

// ErrObjectNotFound is returned by Delete when the object does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Store is the slice of object-store behavior the app needs. Any waffle
// storage.Store also satisfies it.
type Store interface {
	Put(ctx context.Context, path string, r io.Reader, opts *storage.PutOptions) error
	Delete(ctx context.Context, path string) error
}

// Config selects and parameterizes a backend.
type Config struct {
	Type string // "local" or "s3"

	// Local backend.
	LocalPath string

	// S3 backend.
	S3Region    string
	S3Bucket    string
	S3Endpoint  string // blank for AWS proper; set for S3-compatible services
	S3AccessKey string
	S3SecretKey string
}

// New builds the backend named by cfg.Type.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg.LocalPath)
	case "s3":
		return NewS3(ctx, cfg)
	default:
		return nil, errors.New("unknown storage type: " + cfg.Type)
	}
}
