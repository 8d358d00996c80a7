// Package postgres backs the db interfaces with PostgreSQL via pgx.
//
// Farm rows live in the shared "public" schema. Everything else is
// per-farm: each configured farm owns one schema (see SchemaName) and
// every per-farm store resolves its target schema from the farm slug
// on the request context.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	xe "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/errors"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

type groDBPostgres struct {
	pool      *pgxpool.Pool
	farms     db.FarmInterface
	objects   db.ObjectInterface
	trays     db.TrayInterface
	catalog   db.CatalogInterface
	setpoints db.SetPointInterface
	resources db.ResourceInterface
	recipes   db.RecipeInterface
	admin     db.AdminInterface
}

type Config struct {
	Registry *schema.Registry
}

type Option func(*Config) *Config

// WithRegistry supplies the layout schema registry. InitFarmStore
// needs it to seed the Enclosure row of a freshly configured farm.
func WithRegistry(registry *schema.Registry) Option {
	return func(c *Config) *Config {
		c.Registry = registry
		return c
	}
}

func New(ctx context.Context, url string, options ...Option) (db.GroDatabase, error) {
	pgpool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pgpool)
	sc := &scope{pool: p}

	return &groDBPostgres{
		pool:      pgpool,
		farms:     newFarmStore(p),
		objects:   newObjectStore(sc),
		trays:     newTrayStore(sc),
		catalog:   newCatalogStore(sc),
		setpoints: newSetPointStore(sc),
		resources: newResourceStore(sc),
		recipes:   newRecipeStore(sc),
		admin:     newAdminStore(p, c.Registry),
	}, nil
}

func (g *groDBPostgres) Farms() db.FarmInterface {
	return g.farms
}

func (g *groDBPostgres) Objects() db.ObjectInterface {
	return g.objects
}

func (g *groDBPostgres) Trays() db.TrayInterface {
	return g.trays
}

func (g *groDBPostgres) Catalog() db.CatalogInterface {
	return g.catalog
}

func (g *groDBPostgres) SetPoints() db.SetPointInterface {
	return g.setpoints
}

func (g *groDBPostgres) Resources() db.ResourceInterface {
	return g.resources
}

func (g *groDBPostgres) Recipes() db.RecipeInterface {
	return g.recipes
}

func (g *groDBPostgres) Admin() db.AdminInterface {
	return g.admin
}

func (g *groDBPostgres) Close() error {
	g.pool.Close()
	return nil
}
