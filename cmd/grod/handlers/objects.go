package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apilayouts "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/layouts"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	klayout "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

// currentLayout reads the layout the dispatcher pinned on the request
// context. Handlers built into a layout table are only reachable with
// it set, so absence is a server bug.
func currentLayout(c echo.Context, registry *schema.Registry) (string, *schema.Schema, error) {
	name, ok := state.CurrentLayout(c.Request().Context())
	if !ok {
		return "", nil, apierr.InternalServerError(
			fmt.Errorf("no layout resolved for %s", c.Request().URL),
		)
	}
	sch, err := registry.Get(name)
	if err != nil {
		return "", nil, apierr.InternalServerError(err)
	}
	return name, sch, nil
}

// checkPlacement validates obj against its parent and siblings before
// a write. The parent must exist, be of the declared entity type, and
// the geometry rules must hold.
func checkPlacement(
	c echo.Context,
	objects db.ObjectInterface,
	sch *schema.Schema,
	obj db.LayoutObject,
) error {
	ctx := c.Request().Context()

	if obj.Parent == nil {
		return apierr.BadRequestFields(map[string][]string{
			"parent": {"required"},
		}, nil)
	}

	parent, err := objects.Get(ctx, obj.Parent.ID)
	if err != nil {
		if errors.Is(err, db.ErrMissing) {
			return apierr.BadRequest("parent does not exist", err)
		}
		return apierr.InternalServerError(err)
	}
	if parent.EntityType != obj.Parent.EntityType {
		return apierr.BadRequest(
			fmt.Sprintf("parent %s is a %s, not a %s", parent.ID, parent.EntityType, obj.Parent.EntityType),
			nil,
		)
	}

	siblings, err := objects.ListChildren(ctx, *obj.Parent, obj.EntityType)
	if err != nil {
		return apierr.InternalServerError(err)
	}

	if err := klayout.CheckPlacement(sch, obj, parent, siblings); err != nil {
		switch {
		case errors.Is(err, klayout.ErrPlacement):
			return apierr.BadRequest(klayout.Detail(err), err)
		case errors.Is(err, db.ErrLayoutMismatch):
			return apierr.BadRequest("parent belongs to another layout", err)
		}
		return apierr.InternalServerError(err)
	}
	return nil
}

// ListObjectsHandler lists the objects of one entity type under the
// current layout.
func ListObjectsHandler(objects db.ObjectInterface, registry *schema.Registry, entityType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		found, err := objects.List(c.Request().Context(), layout, entityType)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apilayouts.ObjectDetail, 0, len(found))
		for _, o := range found {
			details = append(details, apilayouts.ComposeObjectDetail(o))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreateObjectHandler(objects db.ObjectInterface, registry *schema.Registry, entityType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, sch, err := currentLayout(c, registry)
		if err != nil {
			return err
		}

		spec := apilayouts.ObjectSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Name == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"},
			}, nil)
		}

		obj := spec.Object(entityType, layout)
		if err := checkPlacement(c, objects, sch, obj); err != nil {
			return err
		}

		created, err := objects.Create(c.Request().Context(), obj)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apilayouts.ComposeObjectDetail(created))
	}
}

func GetObjectHandler(objects db.ObjectInterface, registry *schema.Registry, entityType string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		obj, err := objects.Get(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		// objects of other layouts or other entity types are not at
		// this route, even when the id matches.
		if obj.Layout != layout || obj.EntityType != entityType {
			return apierr.NotFound()
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeObjectDetail(obj))
	}
}

func PutObjectHandler(objects db.ObjectInterface, registry *schema.Registry, entityType string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, sch, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		existing, err := objects.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if existing.Layout != layout || existing.EntityType != entityType {
			return apierr.NotFound()
		}

		spec := apilayouts.ObjectSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		obj := spec.Object(entityType, layout)
		obj.ID = existing.ID
		if obj.Name == "" {
			obj.Name = existing.Name
		}
		if obj.Parent == nil {
			obj.Parent = existing.Parent
		}

		if entityType == schema.EntityEnclosure {
			// the enclosure is the root: no parent, no siblings, and
			// nothing it must fit into.
			obj.Parent = nil
		} else if err := checkPlacement(c, objects, sch, obj); err != nil {
			return err
		}

		updated, err := objects.Update(ctx, obj)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeObjectDetail(updated))
	}
}

func DeleteObjectHandler(objects db.ObjectInterface, registry *schema.Registry, entityType string, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		existing, err := objects.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if existing.Layout != layout || existing.EntityType != entityType {
			return apierr.NotFound()
		}

		children, err := objects.ListChildren(
			ctx,
			db.ParentRef{EntityType: entityType, ID: existing.ID, Layout: layout},
			"",
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(children) != 0 {
			return apierr.BadRequest("the object still contains other objects", nil)
		}

		if err := objects.Delete(ctx, existing.ID); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
