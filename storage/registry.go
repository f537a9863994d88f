package storage

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Factory builds a Storage from a full URI.
type Factory func(uri string) (Storage, error)

var (
	registryLock sync.RWMutex
	registry     = map[string]Factory{}
)

// Register makes a backend available under the given URI scheme.
// Registration typically happens from package init functions.
func Register(scheme string, factory Factory) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[scheme] = factory
}

// Open builds a Storage for the given URI. A URI without a scheme is treated
// as a local filesystem path; an unregistered scheme fails with
// UnknownSchemeErr.
func Open(uri string) (Storage, error) {
	scheme, ok := uriScheme(uri)
	if !ok {
		return NewLocal(uri)
	}

	registryLock.RLock()
	factory, ok := registry[scheme]
	registryLock.RUnlock()
	if !ok {
		return nil, errors.Wrap(UnknownSchemeErr, scheme)
	}
	return factory(uri)
}

// uriScheme extracts the scheme of uri, if any. Windows drive letters
// ("c:\music") are not schemes.
func uriScheme(uri string) (string, bool) {
	i := strings.Index(uri, "://")
	if i <= 1 {
		return "", false
	}
	return uri[:i], true
}
