package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	xe "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/errors"
)

// Registry maps layout names to validated schemata.
//
// A Registry is populated once, at process startup, via LoadDir or
// Register. After that it is read-only: concurrent unsynchronized
// reads are safe.
type Registry struct {
	mu       sync.Mutex
	loaded   bool
	schemata map[string]*Schema
}

func NewRegistry() *Registry {
	return &Registry{schemata: map[string]*Schema{}}
}

// Register validates s and adds it under s.Name.
// Registration fails when the name is already taken.
func (r *Registry) Register(s *Schema) error {
	s.normalize()
	if err := s.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.schemata[s.Name]; taken {
		return fmt.Errorf("%w: schema %q", ErrDuplicateName, s.Name)
	}
	r.schemata[s.Name] = s
	return nil
}

// LoadDir reads every *.yaml / *.yml file in dir and registers it.
//
// Any malformed file or validation failure makes LoadDir fail as a
// whole; the registry is left without any schema from dir (fail-fast,
// meant to abort startup). Calling LoadDir again after a successful
// load is a no-op.
func (r *Registry) LoadDir(dir string) error {
	r.mu.Lock()
	alreadyLoaded := r.loaded
	r.mu.Unlock()
	if alreadyLoaded {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return xe.Wrap(err)
	}

	loaded := []*Schema{}
	sources := map[string]string{} // schema name -> file declaring it
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return xe.Wrap(err)
		}
		s := &Schema{}
		if err := yaml.Unmarshal(content, s); err != nil {
			return xe.WrapWithNote(fmt.Sprintf("schema file %s", entry.Name()), err)
		}
		s.normalize()
		if err := s.Validate(); err != nil {
			return xe.WrapWithNote(fmt.Sprintf("schema file %s", entry.Name()), err)
		}
		if declaredIn, taken := sources[s.Name]; taken {
			return fmt.Errorf(
				"%w: schema %q (declared in both %s and %s)",
				ErrDuplicateName, s.Name, declaredIn, entry.Name(),
			)
		}
		sources[s.Name] = entry.Name()
		loaded = append(loaded, s)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range loaded {
		if _, taken := r.schemata[s.Name]; taken {
			return fmt.Errorf("%w: schema %q", ErrDuplicateName, s.Name)
		}
	}
	for _, s := range loaded {
		r.schemata[s.Name] = s
	}
	r.loaded = true
	return nil
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (*Schema, error) {
	if s, ok := r.schemata[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names lists the registered layout names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemata))
	for name := range r.schemata {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
