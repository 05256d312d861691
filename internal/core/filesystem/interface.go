// Package filesystem abstracts the read-only filesystem queries the resolver
// needs so that resolution can be exercised against an in-memory tree.
package filesystem

// FileSystem provides the file operations used during project resolution.
type FileSystem interface {
	// ReadFile returns the contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// Exists reports whether anything exists at path.
	Exists(path string) bool

	// Canonicalize returns the absolute path with symbolic links resolved.
	Canonicalize(path string) (string, error)

	// Getwd returns the current working directory.
	Getwd() (string, error)

	// Glob returns the existing paths matching pattern. "**" matches any
	// number of directories.
	Glob(pattern string) ([]string, error)
}
