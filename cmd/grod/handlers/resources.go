package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apiresources "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/resources"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

func ListResourcesHandler(resources db.ResourceInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := resources.List(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apiresources.Detail, 0, len(found))
		for _, r := range found {
			details = append(details, apiresources.ComposeDetail(r))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreateResourceHandler(
	resources db.ResourceInterface,
	objects db.ObjectInterface,
	registry *schema.Registry,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		spec := apiresources.Spec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Code == "" || spec.Name == "" {
			return apierr.BadRequestFields(map[string][]string{
				"code": {"required"}, "name": {"required"},
			}, nil)
		}

		resource := spec.Resource(layout)
		if resource.Location != nil {
			location, err := objects.Get(ctx, resource.Location.ID)
			if err != nil {
				if errors.Is(err, db.ErrMissing) {
					return apierr.BadRequest("location does not exist", err)
				}
				return apierr.InternalServerError(err)
			}
			if location.Layout != layout || location.EntityType != resource.Location.EntityType {
				return apierr.BadRequest("location does not exist", nil)
			}
		}

		created, err := resources.Create(ctx, resource)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apiresources.ComposeDetail(created))
	}
}

func GetResourceHandler(resources db.ResourceInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		resource, err := resources.Get(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apiresources.ComposeDetail(resource))
	}
}

func DeleteResourceHandler(resources db.ResourceInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := resources.Delete(c.Request().Context(), c.Param(paramKey)); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ListPeripheralsHandler serves sensors or actuators depending on the
// kind of its route.
func ListPeripheralsHandler(resources db.ResourceInterface, kind db.PeripheralKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := resources.ListPeripherals(c.Request().Context(), kind)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apiresources.PeripheralDetail, 0, len(found))
		for _, p := range found {
			details = append(details, apiresources.ComposePeripheralDetail(p))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreatePeripheralHandler(resources db.ResourceInterface, kind db.PeripheralKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apiresources.PeripheralSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Name == "" || spec.ResourceID == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"}, "resource": {"required"},
			}, nil)
		}

		ctx := c.Request().Context()
		if _, err := resources.Get(ctx, spec.ResourceID); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.BadRequest("resource does not exist", err)
			}
			return apierr.InternalServerError(err)
		}

		created, err := resources.CreatePeripheral(ctx, spec.Peripheral(kind))
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apiresources.ComposePeripheralDetail(created))
	}
}

func DeletePeripheralHandler(resources db.ResourceInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := resources.DeletePeripheral(c.Request().Context(), c.Param(paramKey)); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
