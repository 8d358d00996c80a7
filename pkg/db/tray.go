package db

import "context"

// Tray is the lowest container of a layout. Besides its placement it
// owns a grid of plant sites and, optionally, a running recipe.
type Tray struct {
	LayoutObject

	NumRows int
	NumCols int

	// CurrentRecipeRun is the id of the active recipe run, if any.
	CurrentRecipeRun *string
}

// PlantSite is one growing cell of a tray's grid.
type PlantSite struct {
	ID     string
	TrayID string
	Row    int
	Col    int
	Active bool
}

type TrayInterface interface {
	Get(ctx context.Context, id string) (Tray, error)

	// Create inserts the tray and one PlantSite per grid cell,
	// atomically. The ID is assigned when empty.
	Create(ctx context.Context, tray Tray) (Tray, error)

	// Update writes placement and naming fields. Grid dimensions are
	// changed via Relayout only.
	Update(ctx context.Context, tray Tray) (Tray, error)

	// Relayout resizes the grid to numRows x numCols. Sites inside the
	// new dimensions are retained (their identity is preserved for
	// references); sites outside are dropped; missing cells are created.
	Relayout(ctx context.Context, id string, numRows, numCols int) (Tray, error)

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, layout string) ([]Tray, error)

	// Sites lists the plant sites of a tray, row-major.
	Sites(ctx context.Context, trayID string) ([]PlantSite, error)

	// UpdateSite toggles a site's active flag.
	UpdateSite(ctx context.Context, siteID string, active bool) (PlantSite, error)

	// SetCurrentRecipeRun points the tray at a recipe run (nil clears it).
	SetCurrentRecipeRun(ctx context.Context, trayID string, runID *string) error
}
