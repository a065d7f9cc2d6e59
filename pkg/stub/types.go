// Package stub defines the Rule type that describes one canned HTTP
// response and the request key it answers for.
package stub

import (
	"time"

	"github.com/getmockd/httpstub/internal/id"
)

// Method is an HTTP request method. Matching is exact on the method string,
// so the set of valid values is fixed.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodDelete  Method = "DELETE"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// methods holds every valid Method for membership checks.
var methods = map[Method]bool{
	MethodGet:     true,
	MethodPost:    true,
	MethodPut:     true,
	MethodPatch:   true,
	MethodOptions: true,
	MethodHead:    true,
	MethodDelete:  true,
	MethodTrace:   true,
	MethodConnect: true,
}

// Valid reports whether m is one of the fixed HTTP methods.
func (m Method) Valid() bool {
	return methods[m]
}

// Key identifies a rule inside a registry. At most one enabled rule exists
// per key at any time.
type Key struct {
	Method Method
	URL    string
}

// Rule describes one interception rule: which (method, URL) it answers for
// and how to build the simulated response.
//
// A Rule is an immutable value once registered. Updating a rule means
// constructing a new one and registering it under the same key, which
// replaces the prior entry.
type Rule struct {
	// ID is a generated identifier used for listing and inspection only.
	ID string

	// Method and URL form the rule's identity. The URL is matched exactly
	// as given here; no pattern or wildcard matching is performed.
	Method Method
	URL    string

	// Enabled controls whether the rule can be selected. Disabled rules
	// stay in the registry but are never used to answer requests.
	Enabled bool

	// Source names the payload resource whose bytes become the response
	// body, optionally dotted to carry an explicit extension
	// ("users" means users.json, "users.xml" means users.xml).
	Source string

	// Delay is an artificial latency applied before the simulated response
	// is released. Zero means respond immediately.
	Delay time.Duration

	// Parameters lists parameter names relevant to URL matching. The core
	// does not interpret them; they document an extension point for rule
	// authors and future matching strategies.
	Parameters []string

	// Headers are attached to the simulated response.
	Headers map[string]string

	// HTTPVersion labels the simulated response's protocol version,
	// e.g. "1.1" or "2.0".
	HTTPVersion string

	// StatusCode is the simulated response status.
	StatusCode int

	// DisplayName is a human-readable label with no effect on matching or
	// response construction.
	DisplayName string

	// CreatedAt records when the rule value was constructed. Used for
	// inspection only.
	CreatedAt time.Time
}

// Default field values applied by New.
const (
	DefaultHTTPVersion = "1.1"
	DefaultStatusCode  = 200
)

// New constructs an enabled Rule for the given key and payload source with
// the default response fields (status 200, HTTP/1.1, no headers, no delay).
// Callers adjust the optional fields before registering the rule.
func New(method Method, url, source string) Rule {
	return Rule{
		ID:          id.New(),
		Method:      method,
		URL:         url,
		Enabled:     true,
		Source:      source,
		HTTPVersion: DefaultHTTPVersion,
		StatusCode:  DefaultStatusCode,
		CreatedAt:   time.Now(),
	}
}

// Key returns the registry key for this rule.
func (r Rule) Key() Key {
	return Key{Method: r.Method, URL: r.URL}
}
