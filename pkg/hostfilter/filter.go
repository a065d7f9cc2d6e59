// Package hostfilter decides whether a request host is eligible for
// interception at all, independent of any registered rule.
package hostfilter

import (
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds the global host allow/deny lists.
//
// Entries are glob patterns ("api.test", "*.internal"); a pattern without
// wildcards is an exact match. Hosts compare case-insensitively. Both
// lists are mutable at any time and every change takes effect on the next
// IsAllowed call.
//
// Precedence: a host matching the exclude list is always denied. Otherwise
// a non-empty only list admits just the hosts it matches. An empty only
// list admits everything not excluded.
type Filter struct {
	mu      sync.RWMutex
	only    []string
	exclude []string
}

// New creates a Filter that allows every host.
func New() *Filter {
	return &Filter{}
}

// AllowOnly adds patterns to the only list.
func (f *Filter) AllowOnly(hosts ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.only = appendUnique(f.only, hosts)
}

// RemoveOnly removes a pattern from the only list.
func (f *Filter) RemoveOnly(host string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.only = removePattern(f.only, host)
}

// Exclude adds patterns to the exclude list.
func (f *Filter) Exclude(hosts ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exclude = appendUnique(f.exclude, hosts)
}

// RemoveExclude removes a pattern from the exclude list.
func (f *Filter) RemoveExclude(host string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exclude = removePattern(f.exclude, host)
}

// Reset empties both lists, allowing every host again.
func (f *Filter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.only = nil
	f.exclude = nil
}

// OnlyHosts returns a copy of the only list.
func (f *Filter) OnlyHosts() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.only...)
}

// ExcludeHosts returns a copy of the exclude list.
func (f *Filter) ExcludeHosts() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.exclude...)
}

// IsAllowed reports whether host may be intercepted.
func (f *Filter) IsAllowed(host string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	host = strings.ToLower(host)

	for _, pattern := range f.exclude {
		if matchHost(pattern, host) {
			return false
		}
	}

	if len(f.only) > 0 {
		for _, pattern := range f.only {
			if matchHost(pattern, host) {
				return true
			}
		}
		return false
	}

	return true
}

// matchHost matches a glob pattern against an already-lowercased host.
// Malformed patterns match nothing.
func matchHost(pattern, host string) bool {
	ok, err := doublestar.Match(strings.ToLower(pattern), host)
	return err == nil && ok
}

func appendUnique(list, hosts []string) []string {
	for _, h := range hosts {
		if h == "" {
			continue
		}
		exists := false
		for _, have := range list {
			if have == h {
				exists = true
				break
			}
		}
		if !exists {
			list = append(list, h)
		}
	}
	return list
}

func removePattern(list []string, pattern string) []string {
	out := list[:0]
	for _, have := range list {
		if have != pattern {
			out = append(out, have)
		}
	}
	return out
}
