package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apilayouts "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/layouts"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

func ListTraysHandler(trays db.TrayInterface, registry *schema.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		found, err := trays.List(c.Request().Context(), layout)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apilayouts.TrayDetail, 0, len(found))
		for _, t := range found {
			details = append(details, apilayouts.ComposeTrayDetail(t, nil))
		}
		return c.JSON(http.StatusOK, details)
	}
}

// CreateTrayHandler creates a tray from a TrayLayout template: the
// grid dimensions come from the template, the placement from the body.
func CreateTrayHandler(
	trays db.TrayInterface,
	objects db.ObjectInterface,
	catalog db.CatalogInterface,
	registry *schema.Registry,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, sch, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		spec := apilayouts.TraySpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Name == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"},
			}, nil)
		}
		if spec.TrayLayoutID == "" {
			return apierr.BadRequestFields(map[string][]string{
				"tray_layout": {"required"},
			}, nil)
		}

		template, err := catalog.GetTrayLayout(ctx, spec.TrayLayoutID)
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.BadRequest("tray_layout does not exist", err)
			}
			return apierr.InternalServerError(err)
		}

		tray := db.Tray{
			LayoutObject: spec.Object(schema.EntityTray, layout),
			NumRows:      template.NumRows,
			NumCols:      template.NumCols,
		}
		if err := checkPlacement(c, objects, sch, tray.LayoutObject); err != nil {
			return err
		}

		created, err := trays.Create(ctx, tray)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		sites, err := trays.Sites(ctx, created.ID)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apilayouts.ComposeTrayDetail(created, sites))
	}
}

func GetTrayHandler(trays db.TrayInterface, registry *schema.Registry, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		tray, err := trays.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if tray.Layout != layout {
			return apierr.NotFound()
		}
		sites, err := trays.Sites(ctx, tray.ID)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeTrayDetail(tray, sites))
	}
}

func PutTrayHandler(
	trays db.TrayInterface,
	objects db.ObjectInterface,
	registry *schema.Registry,
	paramKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, sch, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		existing, err := trays.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if existing.Layout != layout {
			return apierr.NotFound()
		}

		spec := apilayouts.TraySpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}

		tray := existing
		tray.LayoutObject = spec.Object(schema.EntityTray, layout)
		tray.ID = existing.ID
		if tray.Name == "" {
			tray.Name = existing.Name
		}
		if tray.Parent == nil {
			tray.Parent = existing.Parent
		}

		if err := checkPlacement(c, objects, sch, tray.LayoutObject); err != nil {
			return err
		}

		updated, err := trays.Update(ctx, tray)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		sites, err := trays.Sites(ctx, updated.ID)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeTrayDetail(updated, sites))
	}
}

func DeleteTrayHandler(trays db.TrayInterface, registry *schema.Registry, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		existing, err := trays.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if existing.Layout != layout {
			return apierr.NotFound()
		}
		if err := trays.Delete(ctx, existing.ID); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// RelayoutTrayHandler resizes a tray's grid. Sites staying inside the
// new dimensions keep their identity.
func RelayoutTrayHandler(trays db.TrayInterface, paramKey string) echo.HandlerFunc {
	type relayout struct {
		NumRows int `json:"num_rows"`
		NumCols int `json:"num_cols"`
	}
	return func(c echo.Context) error {
		body := relayout{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&body); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if body.NumRows <= 0 || body.NumCols <= 0 {
			return apierr.BadRequest("num_rows and num_cols must be positive", nil)
		}

		ctx := c.Request().Context()
		tray, err := trays.Relayout(ctx, c.Param(paramKey), body.NumRows, body.NumCols)
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		sites, err := trays.Sites(ctx, tray.ID)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeTrayDetail(tray, sites))
	}
}

// GetSetPointsHandler serves the currently desired value per resource
// property of a tray: the latest set point strictly before now.
func GetSetPointsHandler(
	trays db.TrayInterface,
	setpoints db.SetPointInterface,
	registry *schema.Registry,
	paramKey string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		layout, _, err := currentLayout(c, registry)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()
		tray, err := trays.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if tray.Layout != layout {
			return apierr.NotFound()
		}

		latest, err := setpoints.LatestForTray(ctx, tray.ID, time.Now())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.SetPoints(latest))
	}
}

// PutSiteHandler toggles one plant site's active flag.
func PutSiteHandler(trays db.TrayInterface, paramKey string) echo.HandlerFunc {
	type update struct {
		Active bool `json:"active"`
	}
	return func(c echo.Context) error {
		body := update{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&body); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		site, err := trays.UpdateSite(c.Request().Context(), c.Param(paramKey), body.Active)
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeSiteDetail(site))
	}
}
