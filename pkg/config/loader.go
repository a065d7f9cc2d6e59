package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/httpstub/pkg/hostfilter"
	"github.com/getmockd/httpstub/pkg/registry"
)

// LoadFromFile reads and validates a stub file. The format is chosen by
// extension: .json parses as JSON, everything else as YAML.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stub file: %w", err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Apply registers every stub in the file and installs the host lists.
// Later entries for the same (method, url) replace earlier ones, same as
// programmatic registration.
func (f *File) Apply(reg *registry.Registry, filter *hostfilter.Filter) error {
	for i, s := range f.Stubs {
		rule, err := s.ToRule()
		if err != nil {
			return fmt.Errorf("stubs[%d]: %w", i, err)
		}
		reg.Register(rule)
	}

	if filter != nil {
		filter.AllowOnly(f.Hosts.Only...)
		filter.Exclude(f.Hosts.Exclude...)
	}
	return nil
}
