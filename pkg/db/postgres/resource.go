package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type pgResource struct {
	scope *scope
}

func newResourceStore(sc *scope) *pgResource {
	return &pgResource{scope: sc}
}

var _ db.ResourceInterface = &pgResource{}

const resourceColumns = `"id", "code", "name", "location_type", "location_id", "location_layout"`

func scanResource(row pgx.Row) (db.Resource, error) {
	var (
		r              db.Resource
		locationType   *string
		locationID     *string
		locationLayout *string
	)
	if err := row.Scan(
		&r.ID, &r.Code, &r.Name, &locationType, &locationID, &locationLayout,
	); err != nil {
		return db.Resource{}, translate(err)
	}
	if locationType != nil && locationID != nil && locationLayout != nil {
		r.Location = &db.ParentRef{
			EntityType: *locationType, ID: *locationID, Layout: *locationLayout,
		}
	}
	return r, nil
}

func (p *pgResource) Create(ctx context.Context, r db.Resource) (db.Resource, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Resource{}, err
	}
	defer conn.Release()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	var locationType, locationID, locationLayout *string
	if r.Location != nil {
		locationType = &r.Location.EntityType
		locationID = &r.Location.ID
		locationLayout = &r.Location.Layout
	}

	return scanResource(conn.QueryRow(
		ctx,
		`INSERT INTO "resource"
		   ("id", "code", "name", "location_type", "location_id", "location_layout")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+resourceColumns,
		r.ID, r.Code, r.Name, locationType, locationID, locationLayout,
	))
}

func (p *pgResource) Get(ctx context.Context, id string) (db.Resource, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Resource{}, err
	}
	defer conn.Release()

	return scanResource(conn.QueryRow(
		ctx,
		`SELECT `+resourceColumns+` FROM "resource" WHERE "id" = $1`,
		id,
	))
}

func (p *pgResource) List(ctx context.Context) ([]db.Resource, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT `+resourceColumns+` FROM "resource" ORDER BY "code", "id"`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	resources := []db.Resource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return resources, nil
}

func (p *pgResource) Delete(ctx context.Context, id string) error {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `DELETE FROM "peripheral" WHERE "resource_id" = $1`, id,
	); err != nil {
		return translate(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM "resource" WHERE "id" = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return translate(tx.Commit(ctx))
}

func (p *pgResource) CreatePeripheral(ctx context.Context, peripheral db.Peripheral) (db.Peripheral, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Peripheral{}, err
	}
	defer conn.Release()

	if peripheral.ID == "" {
		peripheral.ID = uuid.NewString()
	}
	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "peripheral" ("id", "kind", "name", "model", "resource_id")
		 VALUES ($1, $2, $3, $4, $5)`,
		peripheral.ID, string(peripheral.Kind), peripheral.Name,
		peripheral.Model, peripheral.ResourceID,
	); err != nil {
		return db.Peripheral{}, translate(err)
	}
	return peripheral, nil
}

func (p *pgResource) ListPeripherals(ctx context.Context, kind db.PeripheralKind) ([]db.Peripheral, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "kind", "name", "model", "resource_id"
		 FROM "peripheral" WHERE "kind" = $1
		 ORDER BY "name", "id"`,
		string(kind),
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	peripherals := []db.Peripheral{}
	for rows.Next() {
		var p db.Peripheral
		var kind string
		if err := rows.Scan(&p.ID, &kind, &p.Name, &p.Model, &p.ResourceID); err != nil {
			return nil, translate(err)
		}
		p.Kind = db.PeripheralKind(kind)
		peripherals = append(peripherals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return peripherals, nil
}

func (p *pgResource) DeletePeripheral(ctx context.Context, id string) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM "peripheral" WHERE "id" = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}
