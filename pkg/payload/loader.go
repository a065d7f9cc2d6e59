package payload

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNotFound is wrapped when the named resource does not exist.
	ErrNotFound = errors.New("payload resource not found")

	// ErrReadFailed is wrapped when the resource exists but its bytes
	// could not be obtained.
	ErrReadFailed = errors.New("payload resource read failed")
)

// FSLoader loads resources from any fs.FS, so fixtures may live in a
// directory on disk or in an embed.FS bundle compiled into the test
// binary. The resource "users" with extension "json" maps to the file
// "users.json" at the root of the filesystem.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader over a directory path.
func NewDirLoader(dir string) *FSLoader {
	return &FSLoader{fsys: os.DirFS(dir)}
}

// Load reads name.ext from the filesystem.
func (l *FSLoader) Load(name, ext string) ([]byte, error) {
	filename := name + "." + ext

	data, err := fs.ReadFile(l.fsys, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, filename, err)
	}
	return data, nil
}

// MapLoader serves resources from an in-memory map keyed by
// "name.ext". Entries are fixed at construction, which keeps concurrent
// reads safe without locking. Intended for tests.
type MapLoader struct {
	resources map[string][]byte
}

// NewMapLoader creates a loader over the given resources.
func NewMapLoader(resources map[string][]byte) *MapLoader {
	copied := make(map[string][]byte, len(resources))
	for k, v := range resources {
		copied[k] = v
	}
	return &MapLoader{resources: copied}
}

// Load returns the bytes registered under "name.ext".
func (l *MapLoader) Load(name, ext string) ([]byte, error) {
	key := name + "." + ext
	data, ok := l.resources[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return data, nil
}

var (
	_ Loader = (*FSLoader)(nil)
	_ Loader = (*MapLoader)(nil)
)
