package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/grod/handlers"
	httptestutil "github.com/OpenAgricultureFoundation/gro-api-sub000/internal/testutils/http"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/mocks"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

func TestStartRunHandler(t *testing.T) {

	recipe := db.Recipe{ID: "r1", Name: "lettuce", Format: "timeseries", Content: "{}"}

	newRecipeStore := func() *mocks.RecipeInterface {
		recipes := mocks.NewRecipeInterface()
		recipes.Impl.Get = func(_ context.Context, id string) (db.Recipe, error) {
			if id == "r1" {
				return recipe, nil
			}
			return db.Recipe{}, db.ErrMissing
		}
		return recipes
	}
	idleTray := func(id string) db.Tray {
		return db.Tray{
			LayoutObject: db.LayoutObject{ID: id, EntityType: schema.EntityTray, Layout: "aisle"},
			NumRows:      3, NumCols: 5,
		}
	}

	t.Run("it starts a run on an idle tray", func(t *testing.T) {
		recipes := newRecipeStore()
		recipes.Impl.StartRun = func(_ context.Context, run db.RecipeRun) (db.RecipeRun, error) {
			if run.TrayID != "tray-1" || run.RecipeID != "r1" {
				t.Errorf("unexpected run: %+v", run)
			}
			run.ID = "run-1"
			return run, nil
		}
		trays := mocks.NewTrayInterface()
		trays.Impl.Get = func(_ context.Context, id string) (db.Tray, error) {
			return idleTray(id), nil
		}
		testee := handlers.StartRunHandler(recipes, trays, "id")

		e := echo.New()
		ctx, resp := httptestutil.Post(
			e, "/api/recipe/r1/start/",
			strings.NewReader(`{"tray": "tray-1"}`),
			httptestutil.ContentType("application/json"),
		)
		ctx.SetParamNames("id")
		ctx.SetParamValues("r1")

		if err := testee(ctx); err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		if resp.Code != http.StatusCreated {
			t.Errorf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusCreated, resp.Body)
		}
	})

	t.Run("it refuses a tray that is already running a recipe", func(t *testing.T) {
		recipes := newRecipeStore()
		trays := mocks.NewTrayInterface()
		trays.Impl.Get = func(_ context.Context, id string) (db.Tray, error) {
			tray := idleTray(id)
			tray.CurrentRecipeRun = ref("run-0")
			return tray, nil
		}
		testee := handlers.StartRunHandler(recipes, trays, "id")

		e := echo.New()
		ctx, _ := httptestutil.Post(
			e, "/api/recipe/r1/start/",
			strings.NewReader(`{"tray": "tray-1"}`),
			httptestutil.ContentType("application/json"),
		)
		ctx.SetParamNames("id")
		ctx.SetParamValues("r1")

		code, detail := detailOf(t, testee(ctx))
		if code != http.StatusBadRequest {
			t.Errorf("unmatch status:%d, expected:%d", code, http.StatusBadRequest)
		}
		if detail != "the tray is already running a recipe" {
			t.Errorf("unmatch detail:%v", detail)
		}
	})

	t.Run("it answers 404 for an unknown recipe", func(t *testing.T) {
		testee := handlers.StartRunHandler(newRecipeStore(), mocks.NewTrayInterface(), "id")

		e := echo.New()
		ctx, _ := httptestutil.Post(
			e, "/api/recipe/ghost/start/",
			strings.NewReader(`{"tray": "tray-1"}`),
			httptestutil.ContentType("application/json"),
		)
		ctx.SetParamNames("id")
		ctx.SetParamValues("ghost")

		code, _ := detailOf(t, testee(ctx))
		if code != http.StatusNotFound {
			t.Errorf("unmatch status:%d, expected:%d", code, http.StatusNotFound)
		}
	})
}

func TestStopRunHandler(t *testing.T) {

	t.Run("it stops a run and stamps its end", func(t *testing.T) {
		recipes := mocks.NewRecipeInterface()
		recipes.Impl.StopRun = func(_ context.Context, id string, end time.Time) (db.RecipeRun, error) {
			if id != "run-1" {
				t.Errorf("unmatch run id:%s, expected:run-1", id)
			}
			return db.RecipeRun{
				ID: id, TrayID: "tray-1", RecipeID: "r1",
				StartTimestamp: end.Add(-time.Hour), EndTimestamp: &end,
			}, nil
		}
		testee := handlers.StopRunHandler(recipes, "id")

		e := echo.New()
		ctx, resp := httptestutil.Post(e, "/api/recipe_run/run-1/stop/", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues("run-1")

		if err := testee(ctx); err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("unmatch status:%d, expected:%d", resp.Code, http.StatusOK)
		}
	})
}
