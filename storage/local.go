package storage

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	xerrors "github.com/harmonode/qobuz/internal/errors"
	"github.com/pkg/errors"

	"github.com/harmonode/qobuz/fspath"
)

func init() {
	Register("file", func(uri string) (Storage, error) {
		return NewLocal(strings.TrimPrefix(uri, "file://"))
	})
}

// Local exposes a directory of the OS filesystem as a Storage. All paths
// handed to it are slash-delimited and relative to the root.
type Local struct {
	root string
}

var _ Storage = (*Local)(nil)

// NewLocal initializes a Local storage rooted at the given directory.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, errors.New("[NewLocal] root is required")
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, xerrors.Wrapf(err, "[NewLocal] stat %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Wrap(NotADirectoryErr, root)
	}

	return &Local{root: root}, nil
}

func (l *Local) URI() string {
	return "file://" + l.root
}

// mapPath resolves a storage-relative path to an OS path, rejecting anything
// that would escape the root.
func (l *Local) mapPath(path string) (string, error) {
	if path == "" || path == fspath.CurrentDirectory {
		return l.root, nil
	}
	if fspath.Posix.IsAbsolute(path) {
		return "", errors.Errorf("[Local.mapPath] absolute path %q not allowed", path)
	}
	for _, segment := range strings.Split(path, "/") {
		if fspath.IsSpecialFilename(segment) {
			return "", errors.Errorf("[Local.mapPath] path %q escapes the storage root", path)
		}
	}
	return filepath.Join(l.root, filepath.FromSlash(path)), nil
}

func (l *Local) Stat(path string, follow bool) (FileInfo, error) {
	osPath, err := l.mapPath(path)
	if err != nil {
		return FileInfo{}, err
	}

	var info fs.FileInfo
	if follow {
		info, err = os.Stat(osPath)
	} else {
		info, err = os.Lstat(osPath)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return FileInfo{}, errors.Wrap(NotFoundErr, path)
		}
		return FileInfo{}, xerrors.Wrapf(err, "[Local.Stat] %q", path)
	}
	return fromOSInfo(info), nil
}

func (l *Local) OpenDirectory(path string) (DirectoryReader, error) {
	osPath, err := l.mapPath(path)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(osPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(NotFoundErr, path)
		}
		return nil, xerrors.Wrapf(err, "[Local.OpenDirectory] %q", path)
	}
	return &localDirectoryReader{dir: osPath, entries: dirEntries}, nil
}

type localDirectoryReader struct {
	dir     string
	entries []fs.DirEntry
	current fs.DirEntry
}

func (r *localDirectoryReader) Read() (string, bool) {
	if len(r.entries) == 0 {
		r.current = nil
		return "", false
	}
	r.current = r.entries[0]
	r.entries = r.entries[1:]
	return r.current.Name(), true
}

func (r *localDirectoryReader) Info(follow bool) (FileInfo, error) {
	if r.current == nil {
		return FileInfo{}, InfoBeforeReadErr
	}

	if follow {
		info, err := os.Stat(filepath.Join(r.dir, r.current.Name()))
		if err != nil {
			return FileInfo{}, xerrors.Wrapf(err, "[localDirectoryReader.Info] %q", r.current.Name())
		}
		return fromOSInfo(info), nil
	}

	info, err := r.current.Info()
	if err != nil {
		return FileInfo{}, xerrors.Wrapf(err, "[localDirectoryReader.Info] %q", r.current.Name())
	}
	return fromOSInfo(info), nil
}

func fromOSInfo(info fs.FileInfo) FileInfo {
	kind := KindOther
	switch {
	case info.Mode().IsRegular():
		kind = KindRegular
	case info.IsDir():
		kind = KindDirectory
	}
	return FileInfo{
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}
