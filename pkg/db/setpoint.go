package db

import (
	"context"
	"time"
)

// SetPoint is a desired value for a resource property of a tray at a
// point in time. Recipes emit these; control processes consume them.
type SetPoint struct {
	TrayID    string
	Property  string
	Timestamp time.Time
	Value     float64
}

type SetPointInterface interface {
	Record(ctx context.Context, sp SetPoint) error

	// LatestForTray returns, per property code, the value of the latest
	// set point with timestamp strictly before now.
	LatestForTray(ctx context.Context, trayID string, now time.Time) (map[string]float64, error)
}
