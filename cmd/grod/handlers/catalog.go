package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apilayouts "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/layouts"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

func ListModel3DHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		models, err := catalog.ListModel3D(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apilayouts.Model3DDetail, 0, len(models))
		for _, m := range models {
			details = append(details, apilayouts.ComposeModel3DDetail(m))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreateModel3DHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apilayouts.Model3DSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Name == "" || spec.File == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"}, "file": {"required"},
			}, nil)
		}
		created, err := catalog.CreateModel3D(c.Request().Context(), spec.Model())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apilayouts.ComposeModel3DDetail(created))
	}
}

func GetModel3DHandler(catalog db.CatalogInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		model, err := catalog.GetModel3D(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeModel3DDetail(model))
	}
}

func DeleteModel3DHandler(catalog db.CatalogInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := catalog.DeleteModel3D(c.Request().Context(), c.Param(paramKey)); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListTrayLayoutsHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		layouts, err := catalog.ListTrayLayouts(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apilayouts.TrayLayoutDetail, 0, len(layouts))
		for _, tl := range layouts {
			details = append(details, apilayouts.ComposeTrayLayoutDetail(tl))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreateTrayLayoutHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apilayouts.TrayLayoutSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.NumRows <= 0 || spec.NumCols <= 0 {
			return apierr.BadRequest("num_rows and num_cols must be positive", nil)
		}
		created, err := catalog.CreateTrayLayout(c.Request().Context(), spec.TrayLayout())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apilayouts.ComposeTrayLayoutDetail(created))
	}
}

func GetTrayLayoutHandler(catalog db.CatalogInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		tl, err := catalog.GetTrayLayout(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apilayouts.ComposeTrayLayoutDetail(tl))
	}
}

func DeleteTrayLayoutHandler(catalog db.CatalogInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := catalog.DeleteTrayLayout(c.Request().Context(), c.Param(paramKey)); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func ListPlantSiteLayoutsHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		trayLayoutID := c.QueryParam("tray_layout")
		if trayLayoutID == "" {
			return apierr.BadRequestFields(map[string][]string{
				"tray_layout": {"required"},
			}, nil)
		}
		sites, err := catalog.ListPlantSiteLayouts(c.Request().Context(), trayLayoutID)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apilayouts.PlantSiteLayoutDetail, 0, len(sites))
		for _, psl := range sites {
			details = append(details, apilayouts.ComposePlantSiteLayoutDetail(psl))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreatePlantSiteLayoutHandler(catalog db.CatalogInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apilayouts.PlantSiteLayoutSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.TrayLayoutID == "" {
			return apierr.BadRequestFields(map[string][]string{
				"tray_layout": {"required"},
			}, nil)
		}
		created, err := catalog.CreatePlantSiteLayout(c.Request().Context(), spec.PlantSiteLayout())
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.BadRequest("tray_layout does not exist", err)
			}
			if errors.Is(err, db.ErrAlreadyExists) {
				return apierr.BadRequest("the cell is already a plant site", err)
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apilayouts.ComposePlantSiteLayoutDetail(created))
	}
}
