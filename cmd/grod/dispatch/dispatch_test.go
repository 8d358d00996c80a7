package dispatch_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/grod/dispatch"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/auth"
	kcs "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/configs/server"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/mocks"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

func ref[T any](v T) *T { return &v }

var testSecret = []byte("test-secret")

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry := schema.NewRegistry()
	for _, s := range []*schema.Schema{
		{
			Name:             "tray",
			ShortDescription: "trays in the enclosure",
			LongDescription:  "trays sit directly in the enclosure",
		},
		{
			Name:             "aisle",
			ShortDescription: "aisles of bays",
			LongDescription:  "warehouse style",
			Entities: []schema.Entity{
				{Name: "Aisle", Description: "a corridor", Parents: []string{schema.EntityEnclosure}},
				{Name: "Bay", Description: "a shelf unit", Parents: []string{"Aisle"}},
			},
			TrayParents: []string{"Bay"},
		},
	} {
		if err := registry.Register(s); err != nil {
			t.Fatal(err)
		}
	}
	return registry
}

// testServer wires a dispatcher onto an outer echo the way grod does.
func testServer(t *testing.T, serverType kcs.ServerType, gro *mocks.GroDatabase, requireAuth bool) *echo.Echo {
	t.Helper()
	registry := testRegistry(t)
	service := kfarm.NewService(gro.FarmStore, gro.AdminStore, registry, nil, nil)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.AddTrailingSlash())
	dispatch.New(dispatch.Config{
		ServerType:  serverType,
		Database:    gro,
		Registry:    registry,
		FarmService: service,
		Issuer:      auth.NewIssuer(testSecret, time.Hour),
		Secret:      testSecret,
		RequireAuth: requireAuth,
	}).Mount(e)
	return e
}

func request(e *echo.Echo, method, target string, body string, headers ...func(*http.Request)) *httptest.ResponseRecorder {
	var payload *strings.Reader
	if body == "" {
		payload = strings.NewReader("")
	} else {
		payload = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, payload)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		h(req)
	}
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)
	return resp
}

func TestDispatcher_leaf(t *testing.T) {

	unconfigured := db.Farm{ID: 1, Name: "pfc", Slug: "pfc"}
	configured := db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")}

	t.Run("an unconfigured farm answers 403 on entity routes", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return unconfigured, nil
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/tray/", "")
		if resp.Code != http.StatusForbidden {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusForbidden)
		}
		body := map[string]string{}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("malformed error body: %v", err)
		}
		if body["detail"] != dispatch.NotConfiguredDetail {
			t.Errorf("unmatch detail:%q, expected:%q", body["detail"], dispatch.NotConfiguredDetail)
		}
	})

	t.Run("an unconfigured farm still serves the farm routes", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return unconfigured, nil
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/farm/1/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
	})

	t.Run("an unconfigured farm serves the docs route", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return unconfigured, nil
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusOK)
		}
	})

	t.Run("a configured farm serves the routes of its layout", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return configured, nil
		}
		gro.TrayStore.Impl.List = func(_ context.Context, layout string) ([]db.Tray, error) {
			if layout != "tray" {
				t.Errorf("unmatch layout:%s, expected:tray", layout)
			}
			return []db.Tray{}, nil
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/tray/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
	})

	t.Run("routes of entities outside the layout do not exist", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return configured, nil // layout "tray" has no Bay
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/bay/", "")
		if resp.Code != http.StatusNotFound {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusNotFound)
		}
	})

	t.Run("a layout declaring dynamic entities gets their routes", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("aisle")}, nil
		}
		gro.ObjectStore.Impl.List = func(_ context.Context, layout string, entityType string) ([]db.LayoutObject, error) {
			if entityType != "Aisle" {
				t.Errorf("unmatch entity type:%s, expected:Aisle", entityType)
			}
			return []db.LayoutObject{}, nil
		}
		e := testServer(t, kcs.Leaf, gro, false)

		resp := request(e, http.MethodGet, "/api/aisle/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
	})
}

func TestDispatcher_auth(t *testing.T) {

	configured := db.Farm{ID: 1, Name: "pfc", Slug: "pfc", Layout: ref("tray")}

	t.Run("entity routes demand a token when auth is required", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return configured, nil
		}
		e := testServer(t, kcs.Leaf, gro, true)

		resp := request(e, http.MethodGet, "/api/tray/", "")
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusUnauthorized)
		}
	})

	t.Run("a token issued by the server is accepted", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return configured, nil
		}
		gro.TrayStore.Impl.List = func(context.Context, string) ([]db.Tray, error) {
			return []db.Tray{}, nil
		}
		e := testServer(t, kcs.Leaf, gro, true)

		token, err := auth.NewIssuer(testSecret, time.Hour).Issue("pfc")
		if err != nil {
			t.Fatal(err)
		}
		resp := request(e, http.MethodGet, "/api/tray/", "", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+token)
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
	})

	t.Run("the farm routes stay open", func(t *testing.T) {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.Singleton = func(context.Context) (db.Farm, error) {
			return configured, nil
		}
		e := testServer(t, kcs.Leaf, gro, true)

		resp := request(e, http.MethodGet, "/api/farm/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusOK)
		}
	})
}

func TestDispatcher_root(t *testing.T) {

	farms := map[string]db.Farm{
		"pfc-one": {ID: 1, Name: "PFC One", Slug: "pfc-one", Layout: ref("tray")},
		"pfc-two": {ID: 2, Name: "PFC Two", Slug: "pfc-two"},
	}
	newRootDB := func() *mocks.GroDatabase {
		gro := mocks.NewGroDatabase()
		gro.FarmStore.Impl.BySlug = func(_ context.Context, slug string) (db.Farm, error) {
			if farm, ok := farms[slug]; ok {
				return farm, nil
			}
			return db.Farm{}, db.ErrMissing
		}
		return gro
	}

	t.Run("an unknown slug answers 404", func(t *testing.T) {
		e := testServer(t, kcs.Root, newRootDB(), false)

		resp := request(e, http.MethodGet, "/farms/no-such-farm/api/farm/", "")
		if resp.Code != http.StatusNotFound {
			t.Fatalf("unmatch status:%d, expected:%d", resp.Code, http.StatusNotFound)
		}
	})

	t.Run("the slug prefix is stripped before routing", func(t *testing.T) {
		e := testServer(t, kcs.Root, newRootDB(), false)

		resp := request(e, http.MethodGet, "/farms/pfc-one/api/farm/1/", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
		detail := map[string]interface{}{}
		if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
			t.Fatal(err)
		}
		if detail["slug"] != "pfc-one" {
			t.Errorf("unmatch slug:%v, expected:pfc-one", detail["slug"])
		}
	})

	t.Run("each farm is gated by its own configuration", func(t *testing.T) {
		gro := newRootDB()
		gro.TrayStore.Impl.List = func(context.Context, string) ([]db.Tray, error) {
			return []db.Tray{}, nil
		}
		e := testServer(t, kcs.Root, gro, false)

		if resp := request(e, http.MethodGet, "/farms/pfc-one/api/tray/", ""); resp.Code != http.StatusOK {
			t.Errorf("configured farm: unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
		if resp := request(e, http.MethodGet, "/farms/pfc-two/api/tray/", ""); resp.Code != http.StatusForbidden {
			t.Errorf("unconfigured farm: unmatch status:%d, expected:%d", resp.Code, http.StatusForbidden)
		}
	})

	t.Run("the root lists and registers farms", func(t *testing.T) {
		gro := newRootDB()
		gro.FarmStore.Impl.List = func(context.Context) ([]db.Farm, error) {
			return []db.Farm{farms["pfc-one"], farms["pfc-two"]}, nil
		}
		gro.FarmStore.Impl.Create = func(_ context.Context, farm db.Farm) (db.Farm, error) {
			if farm.Layout != nil {
				t.Errorf("the layout field belongs to the store init, not the insert: %v", *farm.Layout)
			}
			farm.ID = 3
			return farm, nil
		}
		gro.AdminStore.Impl.InitFarmStore = func(_ context.Context, farm db.Farm, layout string) error {
			if farm.ID != 3 || farm.Slug != "pfc-three" {
				t.Errorf("unmatch farm:%+v, expected id 3 slug pfc-three", farm)
			}
			if layout != "tray" {
				t.Errorf("unmatch layout:%s, expected:tray", layout)
			}
			return nil
		}
		e := testServer(t, kcs.Root, gro, false)

		if resp := request(e, http.MethodGet, "/farms/", ""); resp.Code != http.StatusOK {
			t.Errorf("list: unmatch status:%d, expected:%d", resp.Code, http.StatusOK)
		}

		resp := request(
			e, http.MethodPost, "/farms/",
			`{"name": "PFC Three", "slug": "pfc-three", "layout": "tray"}`,
		)
		if resp.Code != http.StatusOK {
			t.Fatalf("register: unmatch status:%d, expected:%d (body: %s)", resp.Code, http.StatusOK, resp.Body)
		}
		stored := map[string]int64{}
		if err := json.Unmarshal(resp.Body.Bytes(), &stored); err != nil {
			t.Fatal(err)
		}
		if stored["id"] != 3 {
			t.Errorf("unmatch id:%d, expected:3", stored["id"])
		}
		if calls := len(gro.AdminStore.Calls.InitFarmStore); calls != 1 {
			t.Errorf("a registered configured farm needs its store provisioned: %d init calls", calls)
		}
	})
}
