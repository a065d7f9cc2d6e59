// Package registry holds the active stub rules for one interception
// context.
//
// A Registry is an explicit, constructible object rather than process
// state: tests can run several registries side by side, and the owner
// decides how long one lives.
package registry

import (
	"sort"
	"sync"

	"github.com/getmockd/httpstub/pkg/stub"
)

type entry struct {
	rule stub.Rule
	seq  uint64
}

// Registry is a thread-safe collection of stub rules keyed by
// (method, url). At most one rule exists per key; registering under an
// existing key replaces the prior rule. Insertion order is preserved for
// enumeration but has no effect on lookup.
type Registry struct {
	mu    sync.RWMutex
	rules map[stub.Key]entry
	seq   uint64
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		rules: make(map[stub.Key]entry),
	}
}

// Register inserts rule, replacing any existing rule with the same
// (method, url) key. The replacement is atomic: concurrent lookups see
// either the old rule or the new one, never a mix. A replaced rule's
// enumeration position moves to the end, as if it had been removed and
// re-added.
func (r *Registry) Register(rule stub.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.rules[rule.Key()] = entry{rule: rule, seq: r.seq}
}

// Update replaces the rule stored under rule's key while keeping its
// enumeration position. Returns false without inserting when no rule
// exists for the key; use Register to add new rules.
func (r *Registry) Update(rule stub.Rule) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rules[rule.Key()]
	if !ok {
		return false
	}
	r.rules[rule.Key()] = entry{rule: rule, seq: existing.seq}
	return true
}

// Unregister removes the rule for (method, url). Returns true if a rule
// was removed, false if none existed.
func (r *Registry) Unregister(url string, method stub.Method) bool {
	key := stub.Key{Method: method, URL: url}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rules[key]; !ok {
		return false
	}
	delete(r.rules, key)
	return true
}

// Clear removes every rule.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[stub.Key]entry)
}

// Find returns the rule for (method, url) if one exists. It does not
// filter on the rule's Enabled flag; callers must check it.
func (r *Registry) Find(url string, method stub.Method) (stub.Rule, bool) {
	key := stub.Key{Method: method, URL: url}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.rules[key]
	return e.rule, ok
}

// List returns all rules in registration order.
func (r *Registry) List() []stub.Rule {
	r.mu.RLock()
	entries := make([]entry, 0, len(r.rules))
	for _, e := range r.rules {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	rules := make([]stub.Rule, len(entries))
	for i, e := range entries {
		rules[i] = e.rule
	}
	return rules
}

// Count returns the number of stored rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
