// Package schema holds farm layout schemata.
//
// A schema declares the hierarchy of container entities inside a farm,
// from the implicit root "Enclosure" down to the implicit leaf "Tray".
// Schemata are read from YAML files at startup, validated, and never
// mutated afterwards.
package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/slices"
)

// Names of the two entities every layout has.
const (
	EntityEnclosure = "Enclosure"
	EntityTray      = "Tray"
)

var (
	ErrMissingField  = errors.New("missing required field")
	ErrTrayParent    = errors.New(`"Tray" cannot be used as a parent`)
	ErrUnknownParent = errors.New("unknown parent entity")
	ErrDuplicateName = errors.New("duplicate name")
	ErrChildless     = errors.New("entity has no children")
	ErrCycle         = errors.New("entity hierarchy contains a cycle")
	ErrNotFound      = errors.New("no such schema")
)

// Entity is a named kind of physical container declared by a schema.
type Entity struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Parents     []string `yaml:"parents" json:"parents"`
}

// Schema declares the entity hierarchy of one layout.
//
// Entities holds only the dynamic entities; Enclosure and Tray are
// implicit members of every schema.
type Schema struct {
	Name             string   `yaml:"name" json:"name"`
	ShortDescription string   `yaml:"short_description" json:"short_description"`
	LongDescription  string   `yaml:"long_description" json:"long_description"`
	Entities         []Entity `yaml:"entities" json:"entities"`
	TrayParents      []string `yaml:"tray_parents" json:"tray_parents"`
}

// normalize applies defaults the YAML format leaves optional.
func (s *Schema) normalize() {
	if len(s.TrayParents) == 0 {
		s.TrayParents = []string{EntityEnclosure}
	}
}

// Validate checks the schema against the meta-rules:
//
//   - name, short_description and long_description are required;
//   - entity names are unique and do not shadow Enclosure or Tray;
//   - every parent reference names a declared entity or Enclosure;
//   - Tray never appears as a parent;
//   - every non-Tray entity is a parent of at least one other entity;
//   - the parent graph is acyclic.
//
// Each violation is reported wrapping one of the Err* sentinels of
// this package so that callers can tell the kinds apart.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf(`%w: "name"`, ErrMissingField)
	}
	if s.ShortDescription == "" {
		return fmt.Errorf(`%w: "short_description" (schema %q)`, ErrMissingField, s.Name)
	}
	if s.LongDescription == "" {
		return fmt.Errorf(`%w: "long_description" (schema %q)`, ErrMissingField, s.Name)
	}

	known := map[string]struct{}{EntityEnclosure: {}}
	for _, e := range s.Entities {
		if e.Name == "" {
			return fmt.Errorf(`%w: "name" of an entity (schema %q)`, ErrMissingField, s.Name)
		}
		if e.Name == EntityEnclosure || e.Name == EntityTray {
			return fmt.Errorf("%w: entity %q shadows an implicit entity (schema %q)", ErrDuplicateName, e.Name, s.Name)
		}
		if _, dup := known[e.Name]; dup {
			return fmt.Errorf("%w: entity %q (schema %q)", ErrDuplicateName, e.Name, s.Name)
		}
		known[e.Name] = struct{}{}
	}

	for _, e := range s.Entities {
		if len(e.Parents) == 0 {
			return fmt.Errorf(`%w: "parents" of entity %q (schema %q)`, ErrMissingField, e.Name, s.Name)
		}
		if err := s.checkParentRefs(e.Parents, e.Name, known); err != nil {
			return err
		}
	}
	if err := s.checkParentRefs(s.TrayParents, EntityTray, known); err != nil {
		return err
	}

	// every non-Tray entity must have a child; the parents of Tray count.
	hasChild := map[string]bool{}
	for _, e := range s.Entities {
		for _, p := range e.Parents {
			hasChild[p] = true
		}
	}
	for _, p := range s.TrayParents {
		hasChild[p] = true
	}
	if !hasChild[EntityEnclosure] {
		return fmt.Errorf("%w: %q (schema %q)", ErrChildless, EntityEnclosure, s.Name)
	}
	for _, e := range s.Entities {
		if !hasChild[e.Name] {
			return fmt.Errorf("%w: %q (schema %q)", ErrChildless, e.Name, s.Name)
		}
	}

	return s.checkAcyclic()
}

func (s *Schema) checkParentRefs(parents []string, child string, known map[string]struct{}) error {
	seen := map[string]struct{}{}
	for _, p := range parents {
		if p == EntityTray {
			return fmt.Errorf("%w: entity %q (schema %q)", ErrTrayParent, child, s.Name)
		}
		if _, ok := known[p]; !ok {
			return fmt.Errorf("%w: %q of entity %q (schema %q)", ErrUnknownParent, p, child, s.Name)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: parent %q of entity %q (schema %q)", ErrDuplicateName, p, child, s.Name)
		}
		seen[p] = struct{}{}
	}
	return nil
}

// checkAcyclic walks the parent graph of the dynamic entities.
// Enclosure has no parents, so any cycle lies among the dynamic entities.
func (s *Schema) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: via entity %q (schema %q)", ErrCycle, name, s.Name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, p := range s.ParentsOf(name) {
			if err := visit(p); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	for _, e := range s.Entities {
		if err := visit(e.Name); err != nil {
			return err
		}
	}
	return nil
}

// EntityNames lists every entity type of this layout:
// Enclosure first, then the dynamic entities in declaration order, then Tray.
func (s *Schema) EntityNames() []string {
	names := make([]string, 0, len(s.Entities)+2)
	names = append(names, EntityEnclosure)
	for _, e := range s.Entities {
		names = append(names, e.Name)
	}
	return append(names, EntityTray)
}

// HasEntity reports whether name is an entity type of this layout.
func (s *Schema) HasEntity(name string) bool {
	return slices.ContainsItem(s.EntityNames(), name)
}

// ParentsOf returns the entity types name may have as a parent.
// Enclosure has none.
func (s *Schema) ParentsOf(name string) []string {
	switch name {
	case EntityEnclosure:
		return nil
	case EntityTray:
		return s.TrayParents
	}
	if e, ok := slices.First(s.Entities, func(e Entity) bool { return e.Name == name }); ok {
		return e.Parents
	}
	return nil
}

// ChildrenOf returns the entity types that may have name as a parent.
func (s *Schema) ChildrenOf(name string) []string {
	children := []string{}
	for _, e := range s.Entities {
		if slices.ContainsItem(e.Parents, name) {
			children = append(children, e.Name)
		}
	}
	if slices.ContainsItem(s.TrayParents, name) {
		children = append(children, EntityTray)
	}
	sort.Strings(children)
	return children
}

// IsParentOf reports whether parent is a legal parent type for child.
func (s *Schema) IsParentOf(parent, child string) bool {
	return slices.ContainsItem(s.ParentsOf(child), parent)
}
