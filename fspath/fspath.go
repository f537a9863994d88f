// Package fspath implements separator-aware path string algorithms for the
// two path flavors the storage layer deals with: POSIX-style slash paths and
// Windows-style backslash paths (which also accept forward slashes).
// Everything here is pure string manipulation with no filesystem access.
package fspath

import "strings"

// CurrentDirectory is the parent of a path without separators.
const CurrentDirectory = "."

// Flavor describes the nature of one path dialect.
type Flavor struct {
	separator    byte
	acceptsSlash bool // treat '/' as a separator too (Windows)
}

var (
	// Posix is the slash-delimited flavor.
	Posix = Flavor{separator: '/'}

	// Windows is the backslash-delimited flavor; forward slashes are
	// accepted as separators on input but never produced.
	Windows = Flavor{separator: '\\', acceptsSlash: true}
)

// Separator returns the canonical separator of this flavor.
func (f Flavor) Separator() byte {
	return f.separator
}

// IsSeparator reports whether ch separates path components in this flavor.
func (f Flavor) IsSeparator(ch byte) bool {
	return ch == f.separator || (f.acceptsSlash && ch == '/')
}

func (f Flavor) lastSeparator(p string) int {
	for i := len(p) - 1; i >= 0; i-- {
		if f.IsSeparator(p[i]) {
			return i
		}
	}
	return -1
}

// IsAbsolute reports whether p is an absolute path. In the Windows flavor a
// drive letter followed by ':' and a separator also counts.
func (f Flavor) IsAbsolute(p string) bool {
	if f.acceptsSlash && isDrive(p) && len(p) >= 3 && f.IsSeparator(p[2]) {
		return true
	}
	return p != "" && f.IsSeparator(p[0])
}

func isDrive(p string) bool {
	return len(p) >= 2 && isAlphaASCII(p[0]) && p[1] == ':'
}

func isAlphaASCII(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// IsSpecialFilename reports whether name is "." or "..".
func IsSpecialFilename(name string) bool {
	return name == "." || name == ".."
}

// Base returns the file name portion of p, i.e. everything after the last
// separator. A path without separators is its own base.
func (f Flavor) Base(p string) string {
	if i := f.lastSeparator(p); i >= 0 {
		return p[i+1:]
	}
	return p
}

// Parent returns the parent directory of p. A path without separators has
// parent "."; the parent of a direct child of the root is the root itself.
func (f Flavor) Parent(p string) string {
	i := f.lastSeparator(p)
	if i < 0 {
		return CurrentDirectory
	}
	if i == 0 {
		return p[:1]
	}
	return p[:i]
}

// Relative returns the part of other relative to base, without a leading
// separator. ok is false when other does not lie under base; an empty result
// with ok true means the two paths are equal.
func (f Flavor) Relative(base, other string) (string, bool) {
	if !strings.HasPrefix(other, base) {
		return "", false
	}

	rest := other[len(base):]
	if rest != "" {
		if !f.IsSeparator(rest[0]) && base != "" {
			// Prefix match fell inside a path component.
			return "", false
		}
		for rest != "" && f.IsSeparator(rest[0]) {
			rest = rest[1:]
		}
	}
	return rest, true
}

// Build joins two path components, inserting a separator unless one is
// already present. An empty component leaves the other unchanged.
func (f Flavor) Build(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}

	var sb strings.Builder
	sb.Grow(len(a) + 1 + len(b))
	sb.WriteString(a)
	if !f.IsSeparator(a[len(a)-1]) {
		sb.WriteByte(f.separator)
	}
	sb.WriteString(b)
	return sb.String()
}

// FilenameSuffix returns the extension of name without the dot, or "" when
// there is none. A leading dot (hidden file) is not a suffix.
func FilenameSuffix(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 || dot == len(name)-1 {
		return ""
	}
	return name[dot+1:]
}

// PathSuffix returns the extension of the base name of p.
func (f Flavor) PathSuffix(p string) string {
	return FilenameSuffix(f.Base(p))
}
