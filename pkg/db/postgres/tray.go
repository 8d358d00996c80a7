package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

// pgTray stores trays as a layout_object row plus a "tray" row keyed
// by the same id, and one "plant_site" row per grid cell.
type pgTray struct {
	scope *scope
}

func newTrayStore(sc *scope) *pgTray {
	return &pgTray{scope: sc}
}

var _ db.TrayInterface = &pgTray{}

const trayJoinColumns = objectColumns + `, "num_rows", "num_cols", "current_recipe_run"`

const trayJoinQuery = `SELECT ` + trayJoinColumns + `
	 FROM "layout_object" JOIN "tray" ON "layout_object"."id" = "tray"."tray_id"`

func scanTray(row pgx.Row) (db.Tray, error) {
	var (
		t            db.Tray
		parentType   *string
		parentID     *string
		parentLayout *string
	)
	if err := row.Scan(
		&t.ID, &t.EntityType, &t.Layout, &t.Name,
		&t.Position.X, &t.Position.Y, &t.Position.Z,
		&t.Extent.Length, &t.Extent.Width, &t.Extent.Height,
		&t.ModelID, &parentType, &parentID, &parentLayout,
		&t.NumRows, &t.NumCols, &t.CurrentRecipeRun,
	); err != nil {
		return db.Tray{}, translate(err)
	}
	if parentType != nil && parentID != nil && parentLayout != nil {
		t.Parent = &db.ParentRef{
			EntityType: *parentType, ID: *parentID, Layout: *parentLayout,
		}
	}
	return t, nil
}

func (p *pgTray) Get(ctx context.Context, id string) (db.Tray, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Tray{}, err
	}
	defer conn.Release()

	return scanTray(conn.QueryRow(
		ctx, trayJoinQuery+` WHERE "layout_object"."id" = $1`, id,
	))
}

func (p *pgTray) Create(ctx context.Context, tray db.Tray) (db.Tray, error) {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return db.Tray{}, err
	}
	defer tx.Rollback(ctx)

	if tray.ID == "" {
		tray.ID = uuid.NewString()
	}
	tray.EntityType = schema.EntityTray
	parentType, parentID, parentLayout := parentFields(tray.LayoutObject)

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO "layout_object"
		   ("id", "entity_type", "layout", "name",
		    "pos_x", "pos_y", "pos_z", "length", "width", "height",
		    "model_id", "parent_type", "parent_id", "parent_layout")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		tray.ID, tray.EntityType, tray.Layout, tray.Name,
		tray.Position.X, tray.Position.Y, tray.Position.Z,
		tray.Extent.Length, tray.Extent.Width, tray.Extent.Height,
		tray.ModelID, parentType, parentID, parentLayout,
	); err != nil {
		return db.Tray{}, translate(err)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO "tray" ("tray_id", "num_rows", "num_cols", "current_recipe_run")
		 VALUES ($1, $2, $3, $4)`,
		tray.ID, tray.NumRows, tray.NumCols, tray.CurrentRecipeRun,
	); err != nil {
		return db.Tray{}, translate(err)
	}

	for row := 0; row < tray.NumRows; row++ {
		for col := 0; col < tray.NumCols; col++ {
			if err := insertSite(ctx, tx, tray.ID, row, col); err != nil {
				return db.Tray{}, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Tray{}, translate(err)
	}
	return tray, nil
}

func (p *pgTray) Update(ctx context.Context, tray db.Tray) (db.Tray, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Tray{}, err
	}
	defer conn.Release()

	parentType, parentID, parentLayout := parentFields(tray.LayoutObject)
	if _, err := scanObject(conn.QueryRow(
		ctx,
		`UPDATE "layout_object"
		 SET "name" = $2,
		     "pos_x" = $3, "pos_y" = $4, "pos_z" = $5,
		     "length" = $6, "width" = $7, "height" = $8,
		     "model_id" = $9,
		     "parent_type" = $10, "parent_id" = $11, "parent_layout" = $12
		 WHERE "id" = $1
		 RETURNING `+objectColumns,
		tray.ID, tray.Name,
		tray.Position.X, tray.Position.Y, tray.Position.Z,
		tray.Extent.Length, tray.Extent.Width, tray.Extent.Height,
		tray.ModelID, parentType, parentID, parentLayout,
	)); err != nil {
		return db.Tray{}, err
	}

	return scanTray(conn.QueryRow(
		ctx, trayJoinQuery+` WHERE "layout_object"."id" = $1`, tray.ID,
	))
}

func (p *pgTray) Relayout(ctx context.Context, id string, numRows, numCols int) (db.Tray, error) {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return db.Tray{}, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`UPDATE "tray" SET "num_rows" = $2, "num_cols" = $3 WHERE "tray_id" = $1`,
		id, numRows, numCols,
	)
	if err != nil {
		return db.Tray{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.Tray{}, db.ErrMissing
	}

	// sites falling outside the new grid go away; in-range sites are
	// kept as-is so references to them stay valid.
	if _, err := tx.Exec(
		ctx,
		`DELETE FROM "plant_site"
		 WHERE "tray_id" = $1 AND ("row" >= $2 OR "col" >= $3)`,
		id, numRows, numCols,
	); err != nil {
		return db.Tray{}, translate(err)
	}

	existing := map[[2]int]bool{}
	rows, err := tx.Query(
		ctx, `SELECT "row", "col" FROM "plant_site" WHERE "tray_id" = $1`, id,
	)
	if err != nil {
		return db.Tray{}, translate(err)
	}
	for rows.Next() {
		var r, c int
		if err := rows.Scan(&r, &c); err != nil {
			rows.Close()
			return db.Tray{}, translate(err)
		}
		existing[[2]int{r, c}] = true
	}
	if err := rows.Err(); err != nil {
		return db.Tray{}, translate(err)
	}
	rows.Close()

	for row := 0; row < numRows; row++ {
		for col := 0; col < numCols; col++ {
			if existing[[2]int{row, col}] {
				continue
			}
			if err := insertSite(ctx, tx, id, row, col); err != nil {
				return db.Tray{}, err
			}
		}
	}

	tray, err := scanTray(tx.QueryRow(
		ctx, trayJoinQuery+` WHERE "layout_object"."id" = $1`, id,
	))
	if err != nil {
		return db.Tray{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return db.Tray{}, translate(err)
	}
	return tray, nil
}

func (p *pgTray) Delete(ctx context.Context, id string) error {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(
		ctx, `DELETE FROM "plant_site" WHERE "tray_id" = $1`, id,
	); err != nil {
		return translate(err)
	}
	if _, err := tx.Exec(
		ctx, `DELETE FROM "tray" WHERE "tray_id" = $1`, id,
	); err != nil {
		return translate(err)
	}
	tag, err := tx.Exec(
		ctx, `DELETE FROM "layout_object" WHERE "id" = $1`, id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}

	return translate(tx.Commit(ctx))
}

func (p *pgTray) List(ctx context.Context, layout string) ([]db.Tray, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		trayJoinQuery+` WHERE "layout" = $1 ORDER BY "name", "layout_object"."id"`,
		layout,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	trays := []db.Tray{}
	for rows.Next() {
		t, err := scanTray(rows)
		if err != nil {
			return nil, err
		}
		trays = append(trays, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return trays, nil
}

func (p *pgTray) Sites(ctx context.Context, trayID string) ([]db.PlantSite, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "tray_id", "row", "col", "active"
		 FROM "plant_site" WHERE "tray_id" = $1
		 ORDER BY "row", "col"`,
		trayID,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	sites := []db.PlantSite{}
	for rows.Next() {
		var s db.PlantSite
		if err := rows.Scan(&s.ID, &s.TrayID, &s.Row, &s.Col, &s.Active); err != nil {
			return nil, translate(err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return sites, nil
}

func (p *pgTray) UpdateSite(ctx context.Context, siteID string, active bool) (db.PlantSite, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.PlantSite{}, err
	}
	defer conn.Release()

	var s db.PlantSite
	if err := conn.QueryRow(
		ctx,
		`UPDATE "plant_site" SET "active" = $2 WHERE "id" = $1
		 RETURNING "id", "tray_id", "row", "col", "active"`,
		siteID, active,
	).Scan(&s.ID, &s.TrayID, &s.Row, &s.Col, &s.Active); err != nil {
		return db.PlantSite{}, translate(err)
	}
	return s, nil
}

func (p *pgTray) SetCurrentRecipeRun(ctx context.Context, trayID string, runID *string) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`UPDATE "tray" SET "current_recipe_run" = $2 WHERE "tray_id" = $1`,
		trayID, runID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func insertSite(ctx context.Context, tx kpool.Tx, trayID string, row, col int) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO "plant_site" ("id", "tray_id", "row", "col", "active")
		 VALUES ($1, $2, $3, $4, true)`,
		uuid.NewString(), trayID, row, col,
	); err != nil {
		return translate(err)
	}
	return nil
}
