package schema_test

import (
	"errors"
	"testing"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/cmp"
)

func aisleBaySchema() *schema.Schema {
	return &schema.Schema{
		Name:             "aisle_bay",
		ShortDescription: "aisles of bays",
		LongDescription:  "an enclosure holding aisles, holding bays, holding trays",
		Entities: []schema.Entity{
			{Name: "Aisle", Description: "a row of bays", Parents: []string{"Enclosure"}},
			{Name: "Bay", Description: "a shelf section", Parents: []string{"Aisle"}},
		},
		TrayParents: []string{"Bay"},
	}
}

func TestSchema_Validate(t *testing.T) {

	type When struct {
		Mutate func(*schema.Schema)
	}
	type Then struct {
		Err error
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			s := aisleBaySchema()
			when.Mutate(s)

			err := s.Validate()
			if then.Err == nil {
				if err != nil {
					t.Fatalf("unexpected validation error: %s", err)
				}
				return
			}
			if !errors.Is(err, then.Err) {
				t.Fatalf("error kind unmatch: got %v, want %v", err, then.Err)
			}
		}
	}

	t.Run("a well-formed schema passes", theory(
		When{Mutate: func(*schema.Schema) {}},
		Then{Err: nil},
	))

	t.Run("missing name is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Name = "" }},
		Then{Err: schema.ErrMissingField},
	))

	t.Run("missing short_description is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.ShortDescription = "" }},
		Then{Err: schema.ErrMissingField},
	))

	t.Run("missing long_description is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.LongDescription = "" }},
		Then{Err: schema.ErrMissingField},
	))

	t.Run("entity without parents is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Entities[0].Parents = nil }},
		Then{Err: schema.ErrMissingField},
	))

	t.Run("Tray as a parent of an entity is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Entities[1].Parents = []string{"Tray"} }},
		Then{Err: schema.ErrTrayParent},
	))

	t.Run("Tray as its own parent is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.TrayParents = []string{"Tray"} }},
		Then{Err: schema.ErrTrayParent},
	))

	t.Run("unknown parent name is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Entities[1].Parents = []string{"Corridor"} }},
		Then{Err: schema.ErrUnknownParent},
	))

	t.Run("unknown tray parent is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.TrayParents = []string{"Corridor"} }},
		Then{Err: schema.ErrUnknownParent},
	))

	t.Run("duplicate entity name is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Entities[1].Name = "Aisle" }},
		Then{Err: schema.ErrDuplicateName},
	))

	t.Run("entity shadowing Enclosure is rejected", theory(
		When{Mutate: func(s *schema.Schema) { s.Entities[1].Name = "Enclosure" }},
		Then{Err: schema.ErrDuplicateName},
	))

	t.Run("entity with no children is rejected", theory(
		When{Mutate: func(s *schema.Schema) {
			// nothing points at Bay anymore
			s.TrayParents = []string{"Aisle"}
		}},
		Then{Err: schema.ErrChildless},
	))

	t.Run("cycle between entities is rejected", theory(
		When{Mutate: func(s *schema.Schema) {
			s.Entities[0].Parents = []string{"Enclosure", "Bay"}
			s.Entities[1].Parents = []string{"Aisle"}
		}},
		Then{Err: schema.ErrCycle},
	))
}

func TestSchema_DerivedViews(t *testing.T) {
	s := aisleBaySchema()
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}

	if got := s.EntityNames(); !cmp.SliceEq(got, []string{"Enclosure", "Aisle", "Bay", "Tray"}) {
		t.Errorf("EntityNames unmatch: %v", got)
	}

	for name, want := range map[string][]string{
		"Enclosure": nil,
		"Aisle":     {"Enclosure"},
		"Bay":       {"Aisle"},
		"Tray":      {"Bay"},
	} {
		if got := s.ParentsOf(name); !cmp.SliceContentEq(got, want) {
			t.Errorf("ParentsOf(%s) unmatch: got %v, want %v", name, got, want)
		}
	}

	for name, want := range map[string][]string{
		"Enclosure": {"Aisle"},
		"Aisle":     {"Bay"},
		"Bay":       {"Tray"},
		"Tray":      {},
	} {
		if got := s.ChildrenOf(name); !cmp.SliceContentEq(got, want) {
			t.Errorf("ChildrenOf(%s) unmatch: got %v, want %v", name, got, want)
		}
	}

	if !s.IsParentOf("Bay", "Tray") {
		t.Error("Bay should be a legal parent of Tray")
	}
	if s.IsParentOf("Aisle", "Tray") {
		t.Error("Aisle should not be a legal parent of Tray")
	}
	if !s.HasEntity("Aisle") || s.HasEntity("Corridor") {
		t.Error("HasEntity unmatch")
	}
}

func TestSchema_TrayParentsDefault(t *testing.T) {
	reg := schema.NewRegistry()
	s := &schema.Schema{
		Name:             "tray",
		ShortDescription: "trays only",
		LongDescription:  "trays directly inside the enclosure",
	}
	if err := reg.Register(s); err != nil {
		t.Fatal(err)
	}

	if got := s.TrayParents; !cmp.SliceEq(got, []string{"Enclosure"}) {
		t.Errorf(`tray_parents should default to ["Enclosure"]: %v`, got)
	}
}
