// Package dispatch routes requests to the URL table of the target
// farm's layout.
//
// The route set of this API is not fixed: each layout schema declares
// its own entity types, and every entity type gets its own collection
// routes. The dispatcher resolves the farm of a request (the singleton
// on a leaf, the slug prefix on a root), pins farm and layout on the
// request context, and forwards into an inner server built for that
// layout. Tables are built lazily and memoized per layout; an
// unconfigured farm falls through to a reduced table with everything
// else answering 403.
package dispatch

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/cmd/grod/handlers"
	apierr "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/api/types/errors"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/auth"
	kcs "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/configs/server"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kfarm "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/farm"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

// NotConfiguredDetail is the body of the 403 an unconfigured farm
// answers on every route its reduced table does not carry.
const NotConfiguredDetail = "The farm has no layout configured."

type Config struct {
	ServerType  kcs.ServerType
	Database    db.GroDatabase
	Registry    *schema.Registry
	FarmService *kfarm.Service

	// Issuer and Secret feed the token endpoint. RequireAuth guards
	// every route except farm, auth and docs.
	Issuer      *auth.Issuer
	Secret      []byte
	RequireAuth bool
}

type Dispatcher struct {
	config  Config
	reduced *echo.Echo
	tables  sync.Map // layout name -> *echo.Echo
}

func New(config Config) *Dispatcher {
	d := &Dispatcher{config: config}
	d.reduced = d.buildReducedTable()
	return d
}

// Mount registers the dispatcher on the outer server.
func (d *Dispatcher) Mount(e *echo.Echo) {
	if d.config.ServerType == kcs.Root {
		e.GET("/farms/", handlers.ListFarmsHandler(d.config.Database.Farms()))
		e.POST("/farms/", handlers.RegisterFarmHandler(d.config.FarmService))
		e.Any("/farms/:slug/*", d.serveFarm)
	} else {
		e.Any("/*", d.serveLeaf)
	}
}

func (d *Dispatcher) serveLeaf(c echo.Context) error {
	farm, err := d.config.Database.Farms().Singleton(c.Request().Context())
	if err != nil {
		return apierr.InternalServerError(err)
	}
	return d.dispatch(c, farm, "")
}

func (d *Dispatcher) serveFarm(c echo.Context) error {
	slug := c.Param("slug")
	farm, err := d.config.Database.Farms().BySlug(c.Request().Context(), slug)
	if err != nil {
		if errors.Is(err, db.ErrMissing) {
			return apierr.NotFound()
		}
		return apierr.InternalServerError(err)
	}
	return d.dispatch(c, farm, "/farms/"+slug)
}

// dispatch forwards the request into the farm's URL table, with the
// farm (and its layout, when configured) pinned on the context.
func (d *Dispatcher) dispatch(c echo.Context, farm db.Farm, strip string) error {
	ctx := handlers.WithFarm(c.Request().Context(), farm)
	if farm.Slug != "" {
		ctx = state.WithFarm(ctx, farm.Slug)
	}

	inner := d.reduced
	if farm.Configured() {
		sch, err := d.config.Registry.Get(*farm.Layout)
		if err != nil {
			// a farm configured with a layout this process does not
			// know; the schema directory is incomplete.
			return apierr.InternalServerError(err)
		}
		ctx = state.WithLayout(ctx, *farm.Layout)
		inner = d.table(sch)
	}

	req := c.Request().WithContext(ctx)
	if strip != "" {
		req.URL.Path = strings.TrimPrefix(req.URL.Path, strip)
		if req.URL.Path == "" {
			req.URL.Path = "/"
		}
	}
	inner.ServeHTTP(c.Response(), req)
	return nil
}

// table returns the URL table of the layout, building it on first use.
func (d *Dispatcher) table(sch *schema.Schema) *echo.Echo {
	if cached, ok := d.tables.Load(sch.Name); ok {
		return cached.(*echo.Echo)
	}
	built := d.buildLayoutTable(sch)
	actual, _ := d.tables.LoadOrStore(sch.Name, built)
	return actual.(*echo.Echo)
}

func (d *Dispatcher) newTable() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(middleware.AddTrailingSlash())
	return e
}

// commonRoutes registers what every farm answers, configured or not.
func (d *Dispatcher) commonRoutes(e *echo.Echo) {
	e.GET("/api/farm/", handlers.ListFarmHandler())
	e.GET("/api/farm/:farmid/", handlers.GetFarmHandler("farmid"))
	e.PUT("/api/farm/:farmid/", handlers.PutFarmHandler(d.config.FarmService, "farmid"))
	e.POST("/api/auth/token/", handlers.TokenHandler(d.config.Issuer, d.config.Secret))
	e.GET("/api/", DocsHandler(e))
	e.GET("/api/docs/", DocsHandler(e))
}

func (d *Dispatcher) buildReducedTable() *echo.Echo {
	e := d.newTable()
	d.commonRoutes(e)
	e.RouteNotFound("/*", func(echo.Context) error {
		return apierr.Forbidden(NotConfiguredDetail)
	})
	return e
}

func (d *Dispatcher) buildLayoutTable(sch *schema.Schema) *echo.Echo {
	e := d.newTable()
	d.commonRoutes(e)

	g := e.Group("/api")
	if d.config.RequireAuth {
		g.Use(d.config.Issuer.Middleware)
	}

	gro := d.config.Database
	registry := d.config.Registry

	for _, entity := range sch.EntityNames() {
		switch entity {
		case schema.EntityTray:
			g.GET("/tray/", handlers.ListTraysHandler(gro.Trays(), registry))
			g.POST("/tray/", handlers.CreateTrayHandler(gro.Trays(), gro.Objects(), gro.Catalog(), registry))
			g.GET("/tray/:id/", handlers.GetTrayHandler(gro.Trays(), registry, "id"))
			g.PUT("/tray/:id/", handlers.PutTrayHandler(gro.Trays(), gro.Objects(), registry, "id"))
			g.DELETE("/tray/:id/", handlers.DeleteTrayHandler(gro.Trays(), registry, "id"))
			g.PUT("/tray/:id/relayout/", handlers.RelayoutTrayHandler(gro.Trays(), "id"))
			g.GET("/tray/:id/set_points/", handlers.GetSetPointsHandler(gro.Trays(), gro.SetPoints(), registry, "id"))
			g.PUT("/plant_site/:id/", handlers.PutSiteHandler(gro.Trays(), "id"))
		case schema.EntityEnclosure:
			path := "/" + routeName(entity)
			g.GET(path+"/", handlers.ListObjectsHandler(gro.Objects(), registry, entity))
			g.GET(path+"/:id/", handlers.GetObjectHandler(gro.Objects(), registry, entity, "id"))
			g.PUT(path+"/:id/", handlers.PutObjectHandler(gro.Objects(), registry, entity, "id"))
			// no POST or DELETE: the enclosure is a singleton born
			// with the farm store.
		default:
			path := "/" + routeName(entity)
			g.GET(path+"/", handlers.ListObjectsHandler(gro.Objects(), registry, entity))
			g.POST(path+"/", handlers.CreateObjectHandler(gro.Objects(), registry, entity))
			g.GET(path+"/:id/", handlers.GetObjectHandler(gro.Objects(), registry, entity, "id"))
			g.PUT(path+"/:id/", handlers.PutObjectHandler(gro.Objects(), registry, entity, "id"))
			g.DELETE(path+"/:id/", handlers.DeleteObjectHandler(gro.Objects(), registry, entity, "id"))
		}
	}

	// layout-independent collaborators
	g.GET("/model3d/", handlers.ListModel3DHandler(gro.Catalog()))
	g.POST("/model3d/", handlers.CreateModel3DHandler(gro.Catalog()))
	g.GET("/model3d/:id/", handlers.GetModel3DHandler(gro.Catalog(), "id"))
	g.DELETE("/model3d/:id/", handlers.DeleteModel3DHandler(gro.Catalog(), "id"))

	g.GET("/tray_layout/", handlers.ListTrayLayoutsHandler(gro.Catalog()))
	g.POST("/tray_layout/", handlers.CreateTrayLayoutHandler(gro.Catalog()))
	g.GET("/tray_layout/:id/", handlers.GetTrayLayoutHandler(gro.Catalog(), "id"))
	g.DELETE("/tray_layout/:id/", handlers.DeleteTrayLayoutHandler(gro.Catalog(), "id"))

	g.GET("/plant_site_layout/", handlers.ListPlantSiteLayoutsHandler(gro.Catalog()))
	g.POST("/plant_site_layout/", handlers.CreatePlantSiteLayoutHandler(gro.Catalog()))

	g.GET("/resource/", handlers.ListResourcesHandler(gro.Resources()))
	g.POST("/resource/", handlers.CreateResourceHandler(gro.Resources(), gro.Objects(), registry))
	g.GET("/resource/:id/", handlers.GetResourceHandler(gro.Resources(), "id"))
	g.DELETE("/resource/:id/", handlers.DeleteResourceHandler(gro.Resources(), "id"))

	g.GET("/sensor/", handlers.ListPeripheralsHandler(gro.Resources(), db.KindSensor))
	g.POST("/sensor/", handlers.CreatePeripheralHandler(gro.Resources(), db.KindSensor))
	g.DELETE("/sensor/:id/", handlers.DeletePeripheralHandler(gro.Resources(), "id"))
	g.GET("/actuator/", handlers.ListPeripheralsHandler(gro.Resources(), db.KindActuator))
	g.POST("/actuator/", handlers.CreatePeripheralHandler(gro.Resources(), db.KindActuator))
	g.DELETE("/actuator/:id/", handlers.DeletePeripheralHandler(gro.Resources(), "id"))

	g.GET("/recipe/", handlers.ListRecipesHandler(gro.Recipes()))
	g.POST("/recipe/", handlers.CreateRecipeHandler(gro.Recipes()))
	g.GET("/recipe/:id/", handlers.GetRecipeHandler(gro.Recipes(), "id"))
	g.DELETE("/recipe/:id/", handlers.DeleteRecipeHandler(gro.Recipes(), "id"))
	g.POST("/recipe/:id/start/", handlers.StartRunHandler(gro.Recipes(), gro.Trays(), "id"))
	g.GET("/recipe_run/:id/", handlers.GetRunHandler(gro.Recipes(), "id"))
	g.POST("/recipe_run/:id/stop/", handlers.StopRunHandler(gro.Recipes(), "id"))

	return e
}

// routeName turns an entity type into its URL segment:
// "AisleBay" -> "aisle_bay".
func routeName(entity string) string {
	var b strings.Builder
	for i, r := range entity {
		if 'A' <= r && r <= 'Z' {
			if i != 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DocsHandler lists the routes of the serving table, as a poor man's
// API index.
func DocsHandler(e *echo.Echo) echo.HandlerFunc {
	type route struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	return func(c echo.Context) error {
		routes := []route{}
		for _, r := range e.Routes() {
			if strings.Contains(r.Name, "RouteNotFound") {
				continue
			}
			routes = append(routes, route{Method: r.Method, Path: r.Path})
		}
		return c.JSON(http.StatusOK, routes)
	}
}
