package core

import (
	"context"
	"io/fs"
	"os"
)

// File permission constants used across the codebase.
const (
	// PermFileDefault is the default permission for generated files (rw-r--r--).
	PermFileDefault = os.FileMode(0644)

	// PermSecretRW is the permission for files holding credentials (rw-------).
	PermSecretRW = os.FileMode(0600)

	// PermDir is the default permission for created directories (rwxr-xr-x).
	PermDir = os.FileMode(0755)
)

// FileSystem abstracts filesystem access so components can be tested
// without touching the real disk.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Rename(ctx context.Context, oldPath, newPath string) error
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	MkdirAll(ctx context.Context, path string, perm os.FileMode) error
	RemoveAll(ctx context.Context, path string) error
}

// Marshaler abstracts serialization for configuration saving.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}
