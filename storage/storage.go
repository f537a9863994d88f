// Package storage abstracts hierarchical file listings over heterogeneous
// backends. Backends register themselves by URI scheme; callers open a
// storage from a URI and walk it with OpenDirectory and Stat.
package storage

import "time"

// Kind classifies a directory entry.
type Kind int

const (
	KindOther Kind = iota
	KindRegular
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// FileInfo describes one entry. A zero ModTime means the backend does not
// know the modification time.
type FileInfo struct {
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// DirectoryReader iterates over the entries of one directory. Read advances
// to the next entry; Info describes the entry Read last returned.
type DirectoryReader interface {
	Read() (name string, ok bool)
	Info(follow bool) (FileInfo, error)
}

// Storage is one mounted backend.
type Storage interface {
	// OpenDirectory opens the directory at the given storage-relative path.
	OpenDirectory(path string) (DirectoryReader, error)

	// Stat describes the entry at the given storage-relative path. When
	// follow is true, symlinks are resolved.
	Stat(path string, follow bool) (FileInfo, error)

	// URI returns the URI this storage was opened from.
	URI() string
}
