package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	apirecipes "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/recipes"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

func ListRecipesHandler(recipes db.RecipeInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := recipes.List(c.Request().Context())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		details := make([]apirecipes.Detail, 0, len(found))
		for _, r := range found {
			details = append(details, apirecipes.ComposeDetail(r))
		}
		return c.JSON(http.StatusOK, details)
	}
}

func CreateRecipeHandler(recipes db.RecipeInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apirecipes.Spec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.Name == "" {
			return apierr.BadRequestFields(map[string][]string{
				"name": {"required"},
			}, nil)
		}
		created, err := recipes.Create(c.Request().Context(), spec.Recipe())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apirecipes.ComposeDetail(created))
	}
}

func GetRecipeHandler(recipes db.RecipeInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipe, err := recipes.Get(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apirecipes.ComposeDetail(recipe))
	}
}

func DeleteRecipeHandler(recipes db.RecipeInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := recipes.Delete(c.Request().Context(), c.Param(paramKey)); err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// StartRunHandler begins executing a recipe on a tray. A tray runs at
// most one recipe at a time.
func StartRunHandler(recipes db.RecipeInterface, trays db.TrayInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		spec := apirecipes.RunSpec{}
		decoder := json.NewDecoder(c.Request().Body)
		if err := decoder.Decode(&spec); err != nil {
			return apierr.BadRequest("malformed request body", err)
		}
		if spec.TrayID == "" {
			return apierr.BadRequestFields(map[string][]string{
				"tray": {"required"},
			}, nil)
		}

		ctx := c.Request().Context()
		recipe, err := recipes.Get(ctx, c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		tray, err := trays.Get(ctx, spec.TrayID)
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.BadRequest("tray does not exist", err)
			}
			return apierr.InternalServerError(err)
		}
		if tray.CurrentRecipeRun != nil {
			return apierr.BadRequest("the tray is already running a recipe", nil)
		}

		run, err := recipes.StartRun(ctx, db.RecipeRun{
			TrayID:         tray.ID,
			RecipeID:       recipe.ID,
			StartTimestamp: time.Now(),
		})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusCreated, apirecipes.ComposeRunDetail(run))
	}
}

func StopRunHandler(recipes db.RecipeInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		run, err := recipes.StopRun(c.Request().Context(), c.Param(paramKey), time.Now())
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apirecipes.ComposeRunDetail(run))
	}
}

func GetRunHandler(recipes db.RecipeInterface, paramKey string) echo.HandlerFunc {
	return func(c echo.Context) error {
		run, err := recipes.GetRun(c.Request().Context(), c.Param(paramKey))
		if err != nil {
			if errors.Is(err, db.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, apirecipes.ComposeRunDetail(run))
	}
}
