package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/schema"
)

// pgObject stores layout objects in the per-farm "layout_object"
// table. The parent reference is denormalized with the layout it was
// written under, so reads can detect cross-layout pointers.
type pgObject struct {
	scope *scope
}

func newObjectStore(sc *scope) *pgObject {
	return &pgObject{scope: sc}
}

var _ db.ObjectInterface = &pgObject{}

const objectColumns = `"id", "entity_type", "layout", "name",
	"pos_x", "pos_y", "pos_z", "length", "width", "height",
	"model_id", "parent_type", "parent_id", "parent_layout"`

func scanObject(row pgx.Row) (db.LayoutObject, error) {
	var (
		o            db.LayoutObject
		parentType   *string
		parentID     *string
		parentLayout *string
	)
	if err := row.Scan(
		&o.ID, &o.EntityType, &o.Layout, &o.Name,
		&o.Position.X, &o.Position.Y, &o.Position.Z,
		&o.Extent.Length, &o.Extent.Width, &o.Extent.Height,
		&o.ModelID, &parentType, &parentID, &parentLayout,
	); err != nil {
		return db.LayoutObject{}, translate(err)
	}
	if parentType != nil && parentID != nil && parentLayout != nil {
		o.Parent = &db.ParentRef{
			EntityType: *parentType, ID: *parentID, Layout: *parentLayout,
		}
	}
	return o, nil
}

func parentFields(obj db.LayoutObject) (parentType, parentID, parentLayout *string) {
	if obj.Parent == nil {
		return nil, nil, nil
	}
	return &obj.Parent.EntityType, &obj.Parent.ID, &obj.Parent.Layout
}

func (p *pgObject) Create(ctx context.Context, obj db.LayoutObject) (db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.LayoutObject{}, err
	}
	defer conn.Release()

	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	parentType, parentID, parentLayout := parentFields(obj)

	return scanObject(conn.QueryRow(
		ctx,
		`INSERT INTO "layout_object"
		   ("id", "entity_type", "layout", "name",
		    "pos_x", "pos_y", "pos_z", "length", "width", "height",
		    "model_id", "parent_type", "parent_id", "parent_layout")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING `+objectColumns,
		obj.ID, obj.EntityType, obj.Layout, obj.Name,
		obj.Position.X, obj.Position.Y, obj.Position.Z,
		obj.Extent.Length, obj.Extent.Width, obj.Extent.Height,
		obj.ModelID, parentType, parentID, parentLayout,
	))
}

func (p *pgObject) Get(ctx context.Context, id string) (db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.LayoutObject{}, err
	}
	defer conn.Release()

	return scanObject(conn.QueryRow(
		ctx,
		`SELECT `+objectColumns+` FROM "layout_object" WHERE "id" = $1`,
		id,
	))
}

func (p *pgObject) Update(ctx context.Context, obj db.LayoutObject) (db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.LayoutObject{}, err
	}
	defer conn.Release()

	parentType, parentID, parentLayout := parentFields(obj)

	return scanObject(conn.QueryRow(
		ctx,
		`UPDATE "layout_object"
		 SET "name" = $2,
		     "pos_x" = $3, "pos_y" = $4, "pos_z" = $5,
		     "length" = $6, "width" = $7, "height" = $8,
		     "model_id" = $9,
		     "parent_type" = $10, "parent_id" = $11, "parent_layout" = $12
		 WHERE "id" = $1
		 RETURNING `+objectColumns,
		obj.ID, obj.Name,
		obj.Position.X, obj.Position.Y, obj.Position.Z,
		obj.Extent.Length, obj.Extent.Width, obj.Extent.Height,
		obj.ModelID, parentType, parentID, parentLayout,
	))
}

func (p *pgObject) Delete(ctx context.Context, id string) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx, `DELETE FROM "layout_object" WHERE "id" = $1`, id,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrMissing
	}
	return nil
}

func (p *pgObject) List(ctx context.Context, layout string, entityType string) ([]db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`SELECT `+objectColumns+` FROM "layout_object"
		 WHERE "layout" = $1 AND "entity_type" = $2
		 ORDER BY "name", "id"`,
		layout, entityType,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return collectObjects(rows)
}

func (p *pgObject) ListChildren(ctx context.Context, parent db.ParentRef, entityType string) ([]db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	query := `SELECT ` + objectColumns + ` FROM "layout_object"
		 WHERE "parent_type" = $1 AND "parent_id" = $2 AND "parent_layout" = $3`
	args := []interface{}{parent.EntityType, parent.ID, parent.Layout}
	if entityType != "" {
		query += ` AND "entity_type" = $4`
		args = append(args, entityType)
	}
	query += ` ORDER BY "name", "id"`

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	return collectObjects(rows)
}

func (p *pgObject) Enclosure(ctx context.Context, layout string) (db.LayoutObject, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return db.LayoutObject{}, err
	}
	defer conn.Release()

	return scanObject(conn.QueryRow(
		ctx,
		`SELECT `+objectColumns+` FROM "layout_object"
		 WHERE "layout" = $1 AND "entity_type" = $2`,
		layout, schema.EntityEnclosure,
	))
}

func collectObjects(rows pgx.Rows) ([]db.LayoutObject, error) {
	objects := []db.LayoutObject{}
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return objects, nil
}
