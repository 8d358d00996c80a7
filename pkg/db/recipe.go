package db

import (
	"context"
	"time"
)

// Recipe is a stored growth program. Its content is opaque to the
// core; control processes interpret it.
type Recipe struct {
	ID      string
	Name    string
	Format  string
	Content string
}

// RecipeRun is one time-bounded execution of a recipe on a tray.
type RecipeRun struct {
	ID             string
	TrayID         string
	RecipeID       string
	StartTimestamp time.Time
	EndTimestamp   *time.Time
}

type RecipeInterface interface {
	Create(ctx context.Context, r Recipe) (Recipe, error)
	Get(ctx context.Context, id string) (Recipe, error)
	List(ctx context.Context) ([]Recipe, error)
	Delete(ctx context.Context, id string) error

	StartRun(ctx context.Context, run RecipeRun) (RecipeRun, error)
	StopRun(ctx context.Context, runID string, at time.Time) (RecipeRun, error)
	GetRun(ctx context.Context, runID string) (RecipeRun, error)
}
