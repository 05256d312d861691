package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar"
)

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
}

// MockFile represents a file or directory in the mock filesystem
type MockFile struct {
	Content []byte
	IsDir   bool
	// ReadErr, when set, is returned by ReadFile instead of Content.
	ReadErr error
}

// NewMockFileSystem creates a new MockFileSystem rooted at "/" with
// "/workspace" as its working directory.
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
	}
	mfs.files[string(filepath.Separator)] = &MockFile{IsDir: true}
	return mfs
}

// SetWorkingDir changes the directory returned by Getwd.
func (mfs *MockFileSystem) SetWorkingDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{Content: content}
	mfs.AddDir(filepath.Dir(cleanPath))
}

// AddUnreadableFile adds a file whose reads fail with err.
func (mfs *MockFileSystem) AddUnreadableFile(path string, err error) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{ReadErr: err}
	mfs.AddDir(filepath.Dir(cleanPath))
}

// AddDir adds a directory and all of its parents.
func (mfs *MockFileSystem) AddDir(path string) {
	dir := filepath.Clean(path)
	for {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{IsDir: true}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	if file.ReadErr != nil {
		return nil, &fs.PathError{Op: "read", Path: path, Err: file.ReadErr}
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Canonicalize(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(mfs.currentDir, abs)
	}
	abs = filepath.Clean(abs)
	if !mfs.Exists(abs) {
		return "", &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return abs, nil
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) Glob(pattern string) ([]string, error) {
	var matches []string
	for path := range mfs.files {
		ok, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, path)
		}
	}
	sort.Strings(matches)
	return matches, nil
}
