package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type pgRecipe struct {
	scope *scope
}

func newRecipeStore(sc *scope) *pgRecipe {
	return &pgRecipe{scope: sc}
}

var _ db.RecipeInterface = &pgRecipe{}

func (p *pgRecipe) Create(ctx context.Context, r db.Recipe) (db.Recipe, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Recipe{}, err
	}
	defer conn.Release()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "recipe" ("id", "name", "format", "content")
		 VALUES ($1, $2, $3, $4)`,
		r.ID, r.Name, r.Format, r.Content,
	); err != nil {
		return db.Recipe{}, translate(err)
	}
	return r, nil
}

func (p *pgRecipe) Get(ctx context.Context, id string) (db.Recipe, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.Recipe{}, err
	}
	defer conn.Release()

	var r db.Recipe
	if err := conn.QueryRow(
		ctx,
		`SELECT "id", "name", "format", "content" FROM "recipe" WHERE "id" = $1`,
		id,
	).Scan(&r.ID, &r.Name, &r.Format, &r.Content); err != nil {
		return db.Recipe{}, translate(err)
	}
	return r, nil
}

func (p *pgRecipe) List(ctx context.Context) ([]db.Recipe, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT "id", "name", "format", "content" FROM "recipe" ORDER BY "name", "id"`,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	recipes := []db.Recipe{}
	for rows.Next() {
		var r db.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Format, &r.Content); err != nil {
			return nil, translate(err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return recipes, nil
}

func (p *pgRecipe) Delete(ctx context.Context, id string) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM "recipe" WHERE "id" = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func scanRun(row pgx.Row) (db.RecipeRun, error) {
	var run db.RecipeRun
	if err := row.Scan(
		&run.ID, &run.TrayID, &run.RecipeID, &run.StartTimestamp, &run.EndTimestamp,
	); err != nil {
		return db.RecipeRun{}, translate(err)
	}
	return run, nil
}

const runColumns = `"id", "tray_id", "recipe_id", "start_timestamp", "end_timestamp"`

func (p *pgRecipe) StartRun(ctx context.Context, run db.RecipeRun) (db.RecipeRun, error) {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return db.RecipeRun{}, err
	}
	defer tx.Rollback(ctx)

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	created, err := scanRun(tx.QueryRow(
		ctx,
		`INSERT INTO "recipe_run"
		   ("id", "tray_id", "recipe_id", "start_timestamp", "end_timestamp")
		 VALUES ($1, $2, $3, $4, NULL)
		 RETURNING `+runColumns,
		run.ID, run.TrayID, run.RecipeID, run.StartTimestamp,
	))
	if err != nil {
		return db.RecipeRun{}, err
	}

	tag, err := tx.Exec(
		ctx,
		`UPDATE "tray" SET "current_recipe_run" = $2 WHERE "tray_id" = $1`,
		run.TrayID, created.ID,
	)
	if err != nil {
		return db.RecipeRun{}, translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.RecipeRun{}, db.ErrMissing
	}

	if err := tx.Commit(ctx); err != nil {
		return db.RecipeRun{}, translate(err)
	}
	return created, nil
}

func (p *pgRecipe) StopRun(ctx context.Context, runID string, at time.Time) (db.RecipeRun, error) {
	tx, err := p.scope.Begin(ctx)
	if err != nil {
		return db.RecipeRun{}, err
	}
	defer tx.Rollback(ctx)

	stopped, err := scanRun(tx.QueryRow(
		ctx,
		`UPDATE "recipe_run" SET "end_timestamp" = $2
		 WHERE "id" = $1
		 RETURNING `+runColumns,
		runID, at,
	))
	if err != nil {
		return db.RecipeRun{}, err
	}

	if _, err := tx.Exec(
		ctx,
		`UPDATE "tray" SET "current_recipe_run" = NULL
		 WHERE "tray_id" = $1 AND "current_recipe_run" = $2`,
		stopped.TrayID, stopped.ID,
	); err != nil {
		return db.RecipeRun{}, translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return db.RecipeRun{}, translate(err)
	}
	return stopped, nil
}

func (p *pgRecipe) GetRun(ctx context.Context, runID string) (db.RecipeRun, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.RecipeRun{}, err
	}
	defer conn.Release()

	return scanRun(conn.QueryRow(
		ctx,
		`SELECT `+runColumns+` FROM "recipe_run" WHERE "id" = $1`,
		runID,
	))
}
