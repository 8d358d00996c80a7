package postgres

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	"github.com/jackc/pgx/v4"
)

// pgFarm stores farm rows in the shared "public"."farm" table. Farms
// are the one record kind visible across all of a root process, so
// this store never consults the per-farm scope.
type pgFarm struct {
	pool kpool.Pool
}

func newFarmStore(pool kpool.Pool) *pgFarm {
	return &pgFarm{pool: pool}
}

var _ db.FarmInterface = &pgFarm{}

const farmColumns = `"id", "root_id", "name", "slug", "layout", "parent_server_url", "ip"`

func scanFarm(row pgx.Row) (db.Farm, error) {
	var f db.Farm
	if err := row.Scan(
		&f.ID, &f.RootID, &f.Name, &f.Slug, &f.Layout, &f.ParentServerURL, &f.IP,
	); err != nil {
		return db.Farm{}, translate(err)
	}
	return f, nil
}

func (p *pgFarm) Singleton(ctx context.Context) (db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return db.Farm{}, err
	}
	defer conn.Release()

	farm, err := scanFarm(conn.QueryRow(
		ctx,
		`SELECT `+farmColumns+` FROM "public"."farm" ORDER BY "id" LIMIT 1`,
	))
	if err == nil {
		return farm, nil
	}
	if !errors.Is(err, db.ErrMissing) {
		return db.Farm{}, err
	}

	// first access on a leaf process: create the Unconfigured row.
	return scanFarm(conn.QueryRow(
		ctx,
		`INSERT INTO "public"."farm" ("name", "slug") VALUES ('', '')
		 RETURNING `+farmColumns,
	))
}

func (p *pgFarm) Get(ctx context.Context, id int64) (db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return db.Farm{}, err
	}
	defer conn.Release()

	return scanFarm(conn.QueryRow(
		ctx,
		`SELECT `+farmColumns+` FROM "public"."farm" WHERE "id" = $1`,
		id,
	))
}

func (p *pgFarm) BySlug(ctx context.Context, slug string) (db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return db.Farm{}, err
	}
	defer conn.Release()

	return scanFarm(conn.QueryRow(
		ctx,
		`SELECT `+farmColumns+` FROM "public"."farm" WHERE "slug" = $1`,
		slug,
	))
}

func (p *pgFarm) List(ctx context.Context) ([]db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT `+farmColumns+` FROM "public"."farm" ORDER BY "id"`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	farms := []db.Farm{}
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, err
		}
		farms = append(farms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return farms, nil
}

func (p *pgFarm) Create(ctx context.Context, farm db.Farm) (db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return db.Farm{}, err
	}
	defer conn.Release()

	return scanFarm(conn.QueryRow(
		ctx,
		`INSERT INTO "public"."farm"
		   ("root_id", "name", "slug", "layout", "parent_server_url", "ip")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+farmColumns,
		farm.RootID, farm.Name, farm.Slug, farm.Layout, farm.ParentServerURL, farm.IP,
	))
}

func (p *pgFarm) Update(ctx context.Context, farm db.Farm) (db.Farm, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return db.Farm{}, err
	}
	defer conn.Release()

	return scanFarm(conn.QueryRow(
		ctx,
		`UPDATE "public"."farm"
		 SET "root_id" = $2, "name" = $3, "slug" = $4, "layout" = $5,
		     "parent_server_url" = $6, "ip" = $7
		 WHERE "id" = $1
		 RETURNING `+farmColumns,
		farm.ID, farm.RootID, farm.Name, farm.Slug, farm.Layout,
		farm.ParentServerURL, farm.IP,
	))
}

func (p *pgFarm) Delete(ctx context.Context, id int64) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`DELETE FROM "public"."farm" WHERE "id" = $1`,
		id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func (p *pgFarm) SetIP(ctx context.Context, id int64, ip string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`UPDATE "public"."farm" SET "ip" = $2 WHERE "id" = $1`,
		id, ip,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}
