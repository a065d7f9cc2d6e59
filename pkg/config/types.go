// Package config loads declarative stub collections from YAML or JSON
// files and applies them to a registry and host filter.
package config

import (
	"fmt"
	"time"

	"github.com/getmockd/httpstub/pkg/stub"
)

// File is the top-level document of a stub file.
type File struct {
	// Stubs are the rules to register.
	Stubs []Stub `json:"stubs" yaml:"stubs"`

	// Hosts configures the global host filter.
	Hosts Hosts `json:"hosts,omitempty" yaml:"hosts,omitempty"`
}

// Hosts mirrors the host filter's two lists. Entries are glob patterns.
type Hosts struct {
	Only    []string `json:"only,omitempty" yaml:"only,omitempty"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Stub is the file representation of one rule.
type Stub struct {
	Method string `json:"method" yaml:"method"`
	URL    string `json:"url" yaml:"url"`

	// Source names the payload fixture, optionally dotted with an
	// extension ("users" means users.json).
	Source string `json:"source" yaml:"source"`

	// Enabled defaults to true when omitted.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Delay is a Go duration string, e.g. "150ms" or "2s".
	Delay string `json:"delay,omitempty" yaml:"delay,omitempty"`

	StatusCode  int               `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	HTTPVersion string            `json:"httpVersion,omitempty" yaml:"httpVersion,omitempty"`
	Parameters  []string          `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	DisplayName string            `json:"displayName,omitempty" yaml:"displayName,omitempty"`
}

// ToRule converts the file entry to a validated stub.Rule. Omitted fields
// get the rule defaults.
func (s Stub) ToRule() (stub.Rule, error) {
	rule := stub.New(stub.Method(s.Method), s.URL, s.Source)

	if s.Enabled != nil {
		rule.Enabled = *s.Enabled
	}
	if s.StatusCode != 0 {
		rule.StatusCode = s.StatusCode
	}
	if s.HTTPVersion != "" {
		rule.HTTPVersion = s.HTTPVersion
	}
	if s.Delay != "" {
		d, err := time.ParseDuration(s.Delay)
		if err != nil {
			return stub.Rule{}, fmt.Errorf("invalid delay %q: %w", s.Delay, err)
		}
		rule.Delay = d
	}
	rule.Headers = s.Headers
	rule.Parameters = s.Parameters
	rule.DisplayName = s.DisplayName

	if err := rule.Validate(); err != nil {
		return stub.Rule{}, err
	}
	return rule, nil
}

// Validate checks every stub in the file. Errors carry the entry index so
// a broken file is easy to fix.
func (f *File) Validate() error {
	for i, s := range f.Stubs {
		if _, err := s.ToRule(); err != nil {
			return fmt.Errorf("stubs[%d]: %w", i, err)
		}
	}
	return nil
}
