package db

import "context"

// Model3D references a 3-D model file usable by layout objects.
type Model3D struct {
	ID     string
	Name   string
	File   string
	Extent Extent
}

// TrayLayout is a reusable grid template for trays.
type TrayLayout struct {
	ID      string
	Name    string
	NumRows int
	NumCols int
}

// PlantSiteLayout marks one cell of a TrayLayout as a plant site.
type PlantSiteLayout struct {
	ID           string
	TrayLayoutID string
	Row          int
	Col          int
}

// CatalogInterface covers the layout-independent design-time records:
// 3-D models and tray grid templates.
type CatalogInterface interface {
	CreateModel3D(ctx context.Context, model Model3D) (Model3D, error)
	GetModel3D(ctx context.Context, id string) (Model3D, error)
	ListModel3D(ctx context.Context) ([]Model3D, error)
	DeleteModel3D(ctx context.Context, id string) error

	CreateTrayLayout(ctx context.Context, tl TrayLayout) (TrayLayout, error)
	GetTrayLayout(ctx context.Context, id string) (TrayLayout, error)
	ListTrayLayouts(ctx context.Context) ([]TrayLayout, error)
	DeleteTrayLayout(ctx context.Context, id string) error

	CreatePlantSiteLayout(ctx context.Context, psl PlantSiteLayout) (PlantSiteLayout, error)
	ListPlantSiteLayouts(ctx context.Context, trayLayoutID string) ([]PlantSiteLayout, error)
}
