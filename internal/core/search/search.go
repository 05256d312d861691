// Package search locates files by walking up from a directory towards the
// filesystem root.
package search

import (
	"iter"
	"path/filepath"

	"github.com/nightconcept/cargo-project/internal/core/filesystem"
)

// Ancestors yields dir followed by each of its parents, closest first,
// ending with the filesystem root.
func Ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		dir := filepath.Clean(dir)
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// Up returns the closest ancestor of start (start included) in which one of
// names exists, together with the name that matched. Names are relative
// paths and are tried in order within each directory.
func Up(fs filesystem.FileSystem, start string, names ...string) (dir, name string, found bool) {
	for ancestor := range Ancestors(start) {
		for _, name := range names {
			if fs.Exists(filepath.Join(ancestor, name)) {
				return ancestor, name, true
			}
		}
	}
	return "", "", false
}
