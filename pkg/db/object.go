package db

import (
	"context"
	"fmt"
)

// Point is a position inside the parent's extent, in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Extent is a size along the three axes, in meters.
type Extent struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ParentRef points at the layout object owning another one.
//
// The reference carries the layout under which it was written; reads
// must assert that the current layout matches (see LayoutObject.ParentUnder).
type ParentRef struct {
	EntityType string `json:"entity_type"`
	ID         string `json:"id"`
	Layout     string `json:"-"`
}

// LayoutObject is a runtime instance of some entity type of a layout.
//
// The set of valid EntityType values depends on the layout: Enclosure
// and Tray always, plus the dynamic entities the layout's schema
// declares. Parent is nil only for the Enclosure.
type LayoutObject struct {
	ID         string
	EntityType string
	Layout     string
	Name       string
	Position   Point
	Extent     Extent
	ModelID    *string
	Parent     *ParentRef
}

// ParentUnder resolves the parent reference against layout.
//
// A reference written under a different layout yields ErrLayoutMismatch;
// a single root process serves many layouts and must not follow a
// pointer across them.
func (o LayoutObject) ParentUnder(layout string) (ParentRef, error) {
	if o.Parent == nil {
		return ParentRef{}, fmt.Errorf("%w: object %s has no parent", ErrMissing, o.ID)
	}
	if o.Parent.Layout != layout {
		return ParentRef{}, fmt.Errorf(
			"%w: parent of %s was written under layout %q, read under %q",
			ErrLayoutMismatch, o.ID, o.Parent.Layout, layout,
		)
	}
	return *o.Parent, nil
}

type ObjectInterface interface {
	// Create inserts obj. The ID is assigned when empty.
	Create(ctx context.Context, obj LayoutObject) (LayoutObject, error)

	Get(ctx context.Context, id string) (LayoutObject, error)

	Update(ctx context.Context, obj LayoutObject) (LayoutObject, error)

	Delete(ctx context.Context, id string) error

	// List returns the objects of one entity type under layout.
	List(ctx context.Context, layout string, entityType string) ([]LayoutObject, error)

	// ListChildren returns the objects owned by parent, filtered to
	// entityType when it is not empty.
	ListChildren(ctx context.Context, parent ParentRef, entityType string) ([]LayoutObject, error)

	// Enclosure returns the singleton enclosure of layout.
	Enclosure(ctx context.Context, layout string) (LayoutObject, error)
}
