package storage

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/harmonode/qobuz/fspath"
)

func init() {
	Register("memory", func(uri string) (Storage, error) {
		return NewMemory(uri), nil
	})
}

// Memory is an in-memory Storage used by tests and fixtures. Put creates
// parent directories implicitly; the zero tree contains only the root.
type Memory struct {
	uri     string
	entries map[string]FileInfo // path -> info, "" is the root
}

var _ Storage = (*Memory)(nil)

// NewMemory initializes an empty in-memory storage.
func NewMemory(uri string) *Memory {
	return &Memory{
		uri:     uri,
		entries: map[string]FileInfo{"": {Kind: KindDirectory}},
	}
}

// Put stores an entry at the given slash-delimited path, creating any
// missing parent directories.
func (m *Memory) Put(path string, info FileInfo) *Memory {
	for parent := fspath.Posix.Parent(path); parent != fspath.CurrentDirectory; parent = fspath.Posix.Parent(parent) {
		if _, ok := m.entries[parent]; !ok {
			m.entries[parent] = FileInfo{Kind: KindDirectory}
		}
	}
	m.entries[path] = info
	return m
}

func (m *Memory) URI() string {
	return m.uri
}

func (m *Memory) Stat(path string, follow bool) (FileInfo, error) {
	path = normalize(path)
	info, ok := m.entries[path]
	if !ok {
		return FileInfo{}, errors.Wrap(NotFoundErr, path)
	}
	return info, nil
}

func (m *Memory) OpenDirectory(path string) (DirectoryReader, error) {
	path = normalize(path)
	info, ok := m.entries[path]
	if !ok {
		return nil, errors.Wrap(NotFoundErr, path)
	}
	if info.Kind != KindDirectory {
		return nil, errors.Wrap(NotADirectoryErr, path)
	}

	var children []string
	for p := range m.entries {
		if p == "" || p == path {
			continue
		}
		rel, ok := fspath.Posix.Relative(path, p)
		if !ok || rel == "" || strings.ContainsRune(rel, '/') {
			continue
		}
		children = append(children, rel)
	}
	sort.Strings(children)

	return &memoryDirectoryReader{storage: m, dir: path, names: children}, nil
}

func normalize(path string) string {
	if path == fspath.CurrentDirectory {
		return ""
	}
	return strings.Trim(path, "/")
}

type memoryDirectoryReader struct {
	storage *Memory
	dir     string
	names   []string
	current string
}

func (r *memoryDirectoryReader) Read() (string, bool) {
	if len(r.names) == 0 {
		r.current = ""
		return "", false
	}
	r.current = r.names[0]
	r.names = r.names[1:]
	return r.current, true
}

func (r *memoryDirectoryReader) Info(follow bool) (FileInfo, error) {
	if r.current == "" {
		return FileInfo{}, InfoBeforeReadErr
	}
	return r.storage.Stat(fspath.Posix.Build(r.dir, r.current), follow)
}
