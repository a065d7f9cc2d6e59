// Package payload resolves a rule's source descriptor to the raw bytes of
// the simulated response body.
//
// A descriptor is a resource name optionally dotted with an extension:
// "users" names users with the default json extension, "users.xml" names
// users with the xml extension, "a.b.xml" names a.b with the xml extension.
// Where the bytes come from is an injected Loader capability, typically
// backed by a fixture directory or an embedded filesystem.
package payload

import (
	"fmt"
	"strings"
)

// DefaultExtension is assumed when a descriptor carries no extension.
const DefaultExtension = "json"

// Loader obtains the bytes for a named resource. Implementations must be
// safe for concurrent use; the engine resolves payloads from many requests
// in flight at once.
//
// Load reports a missing resource by returning an error wrapping
// ErrNotFound, and a resource whose bytes cannot be read by returning an
// error wrapping ErrReadFailed.
type Loader interface {
	Load(name, ext string) ([]byte, error)
}

// ParseResource splits a descriptor into resource name and extension.
// The split is on the last dot; a descriptor without a dot gets the
// default extension.
func ParseResource(descriptor string) (name, ext string) {
	if i := strings.LastIndex(descriptor, "."); i >= 0 {
		return descriptor[:i], descriptor[i+1:]
	}
	return descriptor, DefaultExtension
}

// Source resolves descriptors through a Loader.
type Source struct {
	loader Loader
}

// NewSource creates a Source backed by the given loader.
func NewSource(loader Loader) *Source {
	return &Source{loader: loader}
}

// Resolve parses the descriptor and loads the named resource. The returned
// error wraps ErrNotFound or ErrReadFailed so callers can distinguish a
// missing fixture from a broken one. A nil configured loader resolves
// nothing.
func (s *Source) Resolve(descriptor string) ([]byte, error) {
	if s.loader == nil {
		return nil, fmt.Errorf("%w: no loader configured", ErrNotFound)
	}
	name, ext := ParseResource(descriptor)
	return s.loader.Load(name, ext)
}
