package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem implementation for tests.
// Paths are treated as opaque strings; directories exist implicitly for
// any stored file and explicitly after MkdirAll.
type MockFileSystem struct {
	files map[string][]byte
	perms map[string]os.FileMode
	dirs  map[string]bool

	// Error injection hooks. When set, the corresponding operation
	// returns the error for every path.
	ReadErr   error
	WriteErr  error
	RenameErr error
	StatErr   error
	MkdirErr  error
	RemoveErr error
}

// NewMockFileSystem creates an empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		perms: make(map[string]os.FileMode),
		dirs:  make(map[string]bool),
	}
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores a file with default permissions, creating implicit parents.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.files[path] = data
	m.perms[path] = PermFileDefault
	m.addParents(path)
}

// SetDir marks a directory as existing.
func (m *MockFileSystem) SetDir(path string) {
	m.dirs[path] = true
	m.addParents(path)
}

// GetFile returns the stored contents of a file, if present.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	data, ok := m.files[path]
	return data, ok
}

// Paths returns all stored file paths in sorted order.
func (m *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *MockFileSystem) addParents(path string) {
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" && dir != "" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.files[path] = cp
	m.perms[path] = perm
	m.addParents(path)
	return nil
}

func (m *MockFileSystem) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.RenameErr != nil {
		return m.RenameErr
	}
	data, ok := m.files[oldPath]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	m.files[newPath] = data
	m.perms[newPath] = m.perms[oldPath]
	delete(m.files, oldPath)
	delete(m.perms, oldPath)
	m.addParents(newPath)
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	if data, ok := m.files[path]; ok {
		return mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: m.perms[path]}, nil
	}
	if m.dirs[path] {
		return mockFileInfo{name: filepath.Base(path), mode: PermDir | os.ModeDir, dir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) MkdirAll(ctx context.Context, path string, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.MkdirErr != nil {
		return m.MkdirErr
	}
	m.dirs[path] = true
	m.addParents(path)
	return nil
}

func (m *MockFileSystem) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.files, path)
	delete(m.perms, path)
	delete(m.dirs, path)
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			delete(m.files, p)
			delete(m.perms, p)
		}
	}
	for d := range m.dirs {
		if strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
	return nil
}

// mockFileInfo is a minimal fs.FileInfo for MockFileSystem entries.
type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
	dir  bool
}

func (fi mockFileInfo) Name() string       { return fi.name }
func (fi mockFileInfo) Size() int64        { return fi.size }
func (fi mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi mockFileInfo) IsDir() bool        { return fi.dir }
func (fi mockFileInfo) Sys() any           { return nil }
