package postgres

import (
	"context"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type pgSetPoint struct {
	scope *scope
}

func newSetPointStore(sc *scope) *pgSetPoint {
	return &pgSetPoint{scope: sc}
}

var _ db.SetPointInterface = &pgSetPoint{}

func (p *pgSetPoint) Record(ctx context.Context, sp db.SetPoint) error {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`INSERT INTO "set_point" ("tray_id", "property", "timestamp", "value")
		 VALUES ($1, $2, $3, $4)`,
		sp.TrayID, sp.Property, sp.Timestamp, sp.Value,
	); err != nil {
		return translate(err)
	}
	return nil
}

func (p *pgSetPoint) LatestForTray(ctx context.Context, trayID string, now time.Time) (map[string]float64, error) {
	conn, err := p.scope.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	// per property, the newest value strictly before now. "current"
	// never includes a set point scheduled at this very instant.
	rows, err := conn.Query(
		ctx,
		`SELECT DISTINCT ON ("property") "property", "value"
		 FROM "set_point"
		 WHERE "tray_id" = $1 AND "timestamp" < $2
		 ORDER BY "property", "timestamp" DESC`,
		trayID, now,
	)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	latest := map[string]float64{}
	for rows.Next() {
		var property string
		var value float64
		if err := rows.Scan(&property, &value); err != nil {
			return nil, translate(err)
		}
		latest[property] = value
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return latest, nil
}
