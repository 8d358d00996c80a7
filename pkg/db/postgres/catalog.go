package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type pgCatalog struct {
	scope *scope
}

func newCatalogStore(sc *scope) *pgCatalog {
	return &pgCatalog{scope: sc}
}

var _ db.CatalogInterface = &pgCatalog{}

func (p *pgCatalog) CreateModel3D(ctx context.Context, model db.Model3D) (db.Model3D, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Model3D{}, err
	}
	defer conn.Release()

	if model.ID == "" {
		model.ID = uuid.NewString()
	}
	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "model3d" ("id", "name", "file", "length", "width", "height")
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		model.ID, model.Name, model.File,
		model.Extent.Length, model.Extent.Width, model.Extent.Height,
	); err != nil {
		return db.Model3D{}, translate(err)
	}
	return model, nil
}

func (p *pgCatalog) GetModel3D(ctx context.Context, id string) (db.Model3D, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Model3D{}, err
	}
	defer conn.Release()

	var m db.Model3D
	if err := conn.QueryRow(
		ctx,
		`SELECT "id", "name", "file", "length", "width", "height"
		 FROM "model3d" WHERE "id" = $1`,
		id,
	).Scan(
		&m.ID, &m.Name, &m.File,
		&m.Extent.Length, &m.Extent.Width, &m.Extent.Height,
	); err != nil {
		return db.Model3D{}, translate(err)
	}
	return m, nil
}

func (p *pgCatalog) ListModel3D(ctx context.Context) ([]db.Model3D, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "name", "file", "length", "width", "height"
		 FROM "model3d" ORDER BY "name", "id"`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	models := []db.Model3D{}
	for rows.Next() {
		var m db.Model3D
		if err := rows.Scan(
			&m.ID, &m.Name, &m.File,
			&m.Extent.Length, &m.Extent.Width, &m.Extent.Height,
		); err != nil {
			return nil, translate(err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return models, nil
}

func (p *pgCatalog) DeleteModel3D(ctx context.Context, id string) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM "model3d" WHERE "id" = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func (p *pgCatalog) CreateTrayLayout(ctx context.Context, tl db.TrayLayout) (db.TrayLayout, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.TrayLayout{}, err
	}
	defer conn.Release()

	if tl.ID == "" {
		tl.ID = uuid.NewString()
	}
	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "tray_layout" ("id", "name", "num_rows", "num_cols")
		 VALUES ($1, $2, $3, $4)`,
		tl.ID, tl.Name, tl.NumRows, tl.NumCols,
	); err != nil {
		return db.TrayLayout{}, translate(err)
	}
	return tl, nil
}

func (p *pgCatalog) GetTrayLayout(ctx context.Context, id string) (db.TrayLayout, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.TrayLayout{}, err
	}
	defer conn.Release()

	var tl db.TrayLayout
	if err := conn.QueryRow(
		ctx,
		`SELECT "id", "name", "num_rows", "num_cols"
		 FROM "tray_layout" WHERE "id" = $1`,
		id,
	).Scan(&tl.ID, &tl.Name, &tl.NumRows, &tl.NumCols); err != nil {
		return db.TrayLayout{}, translate(err)
	}
	return tl, nil
}

func (p *pgCatalog) ListTrayLayouts(ctx context.Context) ([]db.TrayLayout, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "name", "num_rows", "num_cols"
		 FROM "tray_layout" ORDER BY "name", "id"`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	layouts := []db.TrayLayout{}
	for rows.Next() {
		var tl db.TrayLayout
		if err := rows.Scan(&tl.ID, &tl.Name, &tl.NumRows, &tl.NumCols); err != nil {
			return nil, translate(err)
		}
		layouts = append(layouts, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return layouts, nil
}

func (p *pgCatalog) DeleteTrayLayout(ctx context.Context, id string) error {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `DELETE FROM "plant_site_layout" WHERE "tray_layout_id" = $1`, id,
	); err != nil {
		return translate(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM "tray_layout" WHERE "id" = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return translate(tx.Commit(ctx))
}

func (p *pgCatalog) CreatePlantSiteLayout(ctx context.Context, psl db.PlantSiteLayout) (db.PlantSiteLayout, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.PlantSiteLayout{}, err
	}
	defer conn.Release()

	if psl.ID == "" {
		psl.ID = uuid.NewString()
	}
	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "plant_site_layout" ("id", "tray_layout_id", "row", "col")
		 VALUES ($1, $2, $3, $4)`,
		psl.ID, psl.TrayLayoutID, psl.Row, psl.Col,
	); err != nil {
		return db.PlantSiteLayout{}, translate(err)
	}
	return psl, nil
}

func (p *pgCatalog) ListPlantSiteLayouts(ctx context.Context, trayLayoutID string) ([]db.PlantSiteLayout, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "tray_layout_id", "row", "col"
		 FROM "plant_site_layout" WHERE "tray_layout_id" = $1
		 ORDER BY "row", "col"`,
		trayLayoutID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	sites := []db.PlantSiteLayout{}
	for rows.Next() {
		var psl db.PlantSiteLayout
		if err := rows.Scan(&psl.ID, &psl.TrayLayoutID, &psl.Row, &psl.Col); err != nil {
			return nil, translate(err)
		}
		sites = append(sites, psl)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return sites, nil
}
