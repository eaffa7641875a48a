package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage keeps certificate files addressed by opaque relative paths.
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete removes a file; a missing file is not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns a public URL for the file
	URL(path string) string
}

// Config holds storage configuration
type Config struct {
	Driver    string // local or s3
	BasePath  string // local root directory
	BaseURL   string // public URL prefix
	Provider  string // aws or wasabi
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // wasabi endpoint override
}

// NewStorage creates a storage backend from configuration.
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// NewObjectPath returns "<prefix>/<uuid><ext>". Client file names are never kept.
func NewObjectPath(prefix, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(strings.Trim(prefix, "/"), uuid.NewString()+ext)
}
