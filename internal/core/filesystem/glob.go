package filesystem

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const globMeta = `*?[]{}\`

// EscapeGlob quotes the glob metacharacters in p so that it matches itself
// when used as the prefix of a Glob pattern.
func EscapeGlob(p string) string {
	if !strings.ContainsAny(p, globMeta) {
		return p
	}

	var b strings.Builder
	for _, r := range p {
		switch {
		case !strings.ContainsRune(globMeta, r):
			b.WriteRune(r)
		case os.PathSeparator == '\\':
			// Backslash is the separator, so quote with a character class.
			// Closing brackets and braces are literal on their own.
			if r == '\\' || r == ']' || r == '}' {
				b.WriteRune(r)
				continue
			}
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsBadPattern reports whether err comes from a malformed glob pattern.
func IsBadPattern(err error) bool {
	return errors.Is(err, path.ErrBadPattern) || errors.Is(err, filepath.ErrBadPattern)
}
