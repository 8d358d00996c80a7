package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	xe "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/errors"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

type pgAdmin struct {
	pool     kpool.Pool
	registry *schema.Registry
}

func newAdminStore(pool kpool.Pool, registry *schema.Registry) *pgAdmin {
	return &pgAdmin{pool: pool, registry: registry}
}

var _ db.AdminInterface = &pgAdmin{}

// sharedVersions are the migrations of the shared tables, applied in
// order by UpgradeShared. Append new versions at the end; never edit
// an applied one.
var sharedVersions = []struct {
	Version int
	DDL     string
}{
	{
		Version: 1,
		DDL: `
		CREATE TABLE IF NOT EXISTS "public"."farm" (
			"id" BIGSERIAL PRIMARY KEY,
			"root_id" BIGINT,
			"name" TEXT NOT NULL,
			"slug" TEXT NOT NULL,
			"layout" TEXT,
			"parent_server_url" TEXT,
			"ip" TEXT
		);
		CREATE UNIQUE INDEX IF NOT EXISTS "farm_slug_unique"
			ON "public"."farm" ("slug") WHERE "slug" <> '';
		`,
	},
}

func (a *pgAdmin) sharedVersion(ctx context.Context, conn kpool.Conn) (int, error) {
	var version int
	if err := conn.QueryRow(
		ctx, `SELECT max("version") FROM "public"."schema_version"`,
	).Scan(&version); err != nil {
		if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
			if pgerr.Code == pgerrcode.UndefinedTable {
				return 0, nil
			}
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return -1, err
	}
	return version, nil
}

func (a *pgAdmin) UpgradeShared(ctx context.Context) error {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	current, err := a.sharedVersion(ctx, conn)
	if err != nil {
		return xe.Wrap(err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx,
		`CREATE TABLE IF NOT EXISTS "public"."schema_version" ("version" INT NOT NULL)`,
	); err != nil {
		return xe.Wrap(err)
	}

	for _, v := range sharedVersions {
		if v.Version <= current {
			continue
		}
		if _, err := tx.Exec(ctx, v.DDL); err != nil {
			return xe.Wrap(fmt.Errorf("shared migration %d: %w", v.Version, err))
		}
		if _, err := tx.Exec(
			ctx, `DELETE FROM "public"."schema_version"`,
		); err != nil {
			return xe.Wrap(err)
		}
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO "public"."schema_version" ("version") VALUES ($1)`,
			v.Version,
		); err != nil {
			return xe.Wrap(err)
		}
	}

	return xe.Wrap(tx.Commit(ctx))
}

// farmDDL is the per-farm store: one schema per configured farm, each
// holding the full set of entity tables. %s is the schema identifier.
const farmDDL = `
CREATE SCHEMA %[1]s;

CREATE TABLE %[1]s."layout_object" (
	"id" TEXT PRIMARY KEY,
	"entity_type" TEXT NOT NULL,
	"layout" TEXT NOT NULL,
	"name" TEXT NOT NULL,
	"pos_x" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"pos_y" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"pos_z" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"length" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"width" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"height" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"model_id" TEXT,
	"parent_type" TEXT,
	"parent_id" TEXT REFERENCES %[1]s."layout_object" ("id"),
	"parent_layout" TEXT
);
CREATE INDEX ON %[1]s."layout_object" ("layout", "entity_type");
CREATE INDEX ON %[1]s."layout_object" ("parent_id");

CREATE TABLE %[1]s."tray" (
	"tray_id" TEXT PRIMARY KEY REFERENCES %[1]s."layout_object" ("id"),
	"num_rows" INT NOT NULL,
	"num_cols" INT NOT NULL,
	"current_recipe_run" TEXT
);

CREATE TABLE %[1]s."plant_site" (
	"id" TEXT PRIMARY KEY,
	"tray_id" TEXT NOT NULL REFERENCES %[1]s."tray" ("tray_id"),
	"row" INT NOT NULL,
	"col" INT NOT NULL,
	"active" BOOLEAN NOT NULL DEFAULT true,
	UNIQUE ("tray_id", "row", "col")
);

CREATE TABLE %[1]s."model3d" (
	"id" TEXT PRIMARY KEY,
	"name" TEXT NOT NULL,
	"file" TEXT NOT NULL,
	"length" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"width" DOUBLE PRECISION NOT NULL DEFAULT 0,
	"height" DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE %[1]s."tray_layout" (
	"id" TEXT PRIMARY KEY,
	"name" TEXT NOT NULL,
	"num_rows" INT NOT NULL,
	"num_cols" INT NOT NULL
);

CREATE TABLE %[1]s."plant_site_layout" (
	"id" TEXT PRIMARY KEY,
	"tray_layout_id" TEXT NOT NULL REFERENCES %[1]s."tray_layout" ("id"),
	"row" INT NOT NULL,
	"col" INT NOT NULL,
	UNIQUE ("tray_layout_id", "row", "col")
);

CREATE TABLE %[1]s."set_point" (
	"tray_id" TEXT NOT NULL REFERENCES %[1]s."tray" ("tray_id"),
	"property" TEXT NOT NULL,
	"timestamp" TIMESTAMP WITH TIME ZONE NOT NULL,
	"value" DOUBLE PRECISION NOT NULL
);
CREATE INDEX ON %[1]s."set_point" ("tray_id", "property", "timestamp");

CREATE TABLE %[1]s."resource" (
	"id" TEXT PRIMARY KEY,
	"code" TEXT NOT NULL,
	"name" TEXT NOT NULL,
	"location_type" TEXT,
	"location_id" TEXT REFERENCES %[1]s."layout_object" ("id"),
	"location_layout" TEXT
);

CREATE TABLE %[1]s."peripheral" (
	"id" TEXT PRIMARY KEY,
	"kind" TEXT NOT NULL,
	"name" TEXT NOT NULL,
	"model" TEXT NOT NULL,
	"resource_id" TEXT NOT NULL REFERENCES %[1]s."resource" ("id")
);

CREATE TABLE %[1]s."recipe" (
	"id" TEXT PRIMARY KEY,
	"name" TEXT NOT NULL,
	"format" TEXT NOT NULL,
	"content" TEXT NOT NULL
);

CREATE TABLE %[1]s."recipe_run" (
	"id" TEXT PRIMARY KEY,
	"tray_id" TEXT NOT NULL REFERENCES %[1]s."tray" ("tray_id"),
	"recipe_id" TEXT NOT NULL REFERENCES %[1]s."recipe" ("id"),
	"start_timestamp" TIMESTAMP WITH TIME ZONE NOT NULL,
	"end_timestamp" TIMESTAMP WITH TIME ZONE
);
`

func (a *pgAdmin) InitFarmStore(ctx context.Context, farm db.Farm, layout string) error {
	if a.registry != nil {
		if _, err := a.registry.Get(layout); err != nil {
			return xe.Wrap(err)
		}
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer tx.Rollback(ctx)

	ident := pgx.Identifier{SchemaName(farm.Slug)}.Sanitize()
	if _, err := tx.Exec(ctx, fmt.Sprintf(farmDDL, ident)); err != nil {
		return xe.Wrap(translate(err))
	}

	// the Enclosure exists implicitly: exactly one per farm, created
	// with the store. Its geometry is filled in by the operator later.
	if _, err := tx.Exec(
		ctx,
		fmt.Sprintf(
			`INSERT INTO %s."layout_object" ("id", "entity_type", "layout", "name")
			 VALUES ($1, $2, $3, $4)`,
			ident,
		),
		uuid.NewString(), schema.EntityEnclosure, layout, schema.EntityEnclosure,
	); err != nil {
		return xe.Wrap(translate(err))
	}

	tag, err := tx.Exec(
		ctx,
		`UPDATE "public"."farm" SET "layout" = $2 WHERE "id" = $1 AND "layout" IS NULL`,
		farm.ID, layout,
	)
	if err != nil {
		return xe.Wrap(translate(err))
	}
	if tag.RowsAffected() == 0 {
		return xe.Wrap(fmt.Errorf("%w: farm %d is gone or already configured", db.ErrAlreadyExists, farm.ID))
	}

	return xe.Wrap(translate(tx.Commit(ctx)))
}

func (a *pgAdmin) RenameFarmStore(ctx context.Context, oldSlug, newSlug string) error {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return xe.Wrap(err)
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		fmt.Sprintf(
			`ALTER SCHEMA %s RENAME TO %s`,
			pgx.Identifier{SchemaName(oldSlug)}.Sanitize(),
			pgx.Identifier{SchemaName(newSlug)}.Sanitize(),
		),
	); err != nil {
		return xe.Wrap(translate(err))
	}
	return nil
}
