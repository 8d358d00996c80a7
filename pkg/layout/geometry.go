// Package layout implements the placement rules of layout objects:
// containment inside the parent's extent and non-overlap between
// siblings of the same entity type.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

// ErrPlacement marks every placement rule violation. The wrapped
// message is user-facing.
var ErrPlacement = errors.New("placement violation")

// Detail extracts the user-facing message of a placement violation,
// without the sentinel prefix.
func Detail(err error) string {
	return strings.TrimPrefix(err.Error(), ErrPlacement.Error()+": ")
}

// CheckFits verifies that obj's position + extent stays inside the
// parent's extent on every axis. Touching the boundary exactly is legal.
func CheckFits(obj db.LayoutObject, parent db.LayoutObject) error {
	if obj.Position.X+obj.Extent.Length > parent.Extent.Length {
		return fmt.Errorf("%w: Model is too long to fit in its parent", ErrPlacement)
	}
	if obj.Position.Y+obj.Extent.Width > parent.Extent.Width {
		return fmt.Errorf("%w: Model is too wide to fit in its parent", ErrPlacement)
	}
	if obj.Position.Z+obj.Extent.Height > parent.Extent.Height {
		return fmt.Errorf("%w: Model is too tall to fit in its parent", ErrPlacement)
	}
	return nil
}

// Overlaps reports whether the half-open boxes [position, position+extent)
// of a and b intersect. A zero extent along any axis makes the box
// empty, so it overlaps nothing.
func Overlaps(a, b db.LayoutObject) bool {
	return intervalOverlap(a.Position.X, a.Extent.Length, b.Position.X, b.Extent.Length) &&
		intervalOverlap(a.Position.Y, a.Extent.Width, b.Position.Y, b.Extent.Width) &&
		intervalOverlap(a.Position.Z, a.Extent.Height, b.Position.Z, b.Extent.Height)
}

func intervalOverlap(aStart, aLen, bStart, bLen float64) bool {
	if aLen == 0 || bLen == 0 {
		return false
	}
	return aStart < bStart+bLen && bStart < aStart+aLen
}

// CheckOverlap rejects obj when it intersects any sibling. Only
// siblings of obj's own entity type count; different entity types
// represent different physical layers and may overlap. obj itself is
// skipped so that updates can be re-checked in place.
func CheckOverlap(obj db.LayoutObject, siblings []db.LayoutObject) error {
	for _, sib := range siblings {
		if sib.ID == obj.ID || sib.EntityType != obj.EntityType {
			continue
		}
		if Overlaps(obj, sib) {
			return fmt.Errorf("%w: Model overlaps with %q", ErrPlacement, sib.Name)
		}
	}
	return nil
}

// CheckParent verifies that parent may own obj under s: the entity
// types must be related in the schema and both objects must belong to
// the same layout.
func CheckParent(s *schema.Schema, obj db.LayoutObject, parent db.LayoutObject) error {
	if parent.Layout != obj.Layout {
		return fmt.Errorf(
			"%w: parent belongs to layout %q, not %q",
			db.ErrLayoutMismatch, parent.Layout, obj.Layout,
		)
	}
	if !s.IsParentOf(parent.EntityType, obj.EntityType) {
		return fmt.Errorf(
			"%w: %s cannot be the parent of %s",
			ErrPlacement, parent.EntityType, obj.EntityType,
		)
	}
	return nil
}

// CheckPlacement runs the full create/update validation: legal parent,
// containment, then overlap against the given siblings.
func CheckPlacement(s *schema.Schema, obj db.LayoutObject, parent db.LayoutObject, siblings []db.LayoutObject) error {
	if err := CheckParent(s, obj, parent); err != nil {
		return err
	}
	if err := CheckFits(obj, parent); err != nil {
		return err
	}
	return CheckOverlap(obj, siblings)
}
