package layouts

import (
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/utils/slices"
)

// ParentRef identifies the owning layout object on the wire. The
// layout qualifier is implicit: it is always the requesting farm's
// current layout.
type ParentRef struct {
	EntityType string `json:"entity_type"`
	ID         string `json:"id"`
}

// ObjectDetail is a layout object as served by the API.
type ObjectDetail struct {
	ID         string     `json:"id"`
	EntityType string     `json:"entity_type"`
	Layout     string     `json:"layout"`
	Name       string     `json:"name"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Z          float64    `json:"z"`
	Length     float64    `json:"length"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	ModelID    *string    `json:"model_id,omitempty"`
	Parent     *ParentRef `json:"parent"`
}

func ComposeObjectDetail(o db.LayoutObject) ObjectDetail {
	detail := ObjectDetail{
		ID:         o.ID,
		EntityType: o.EntityType,
		Layout:     o.Layout,
		Name:       o.Name,
		X:          o.Position.X,
		Y:          o.Position.Y,
		Z:          o.Position.Z,
		Length:     o.Extent.Length,
		Width:      o.Extent.Width,
		Height:     o.Extent.Height,
		ModelID:    o.ModelID,
	}
	if o.Parent != nil {
		detail.Parent = &ParentRef{EntityType: o.Parent.EntityType, ID: o.Parent.ID}
	}
	return detail
}

// ObjectSpec is the POST/PUT body creating or moving a layout object.
type ObjectSpec struct {
	Name    string     `json:"name"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Z       float64    `json:"z"`
	Length  float64    `json:"length"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	ModelID *string    `json:"model_id,omitempty"`
	Parent  *ParentRef `json:"parent"`
}

// Object builds the domain record of the request body, qualified with
// the entity type of its route and the current layout.
func (spec ObjectSpec) Object(entityType, layout string) db.LayoutObject {
	obj := db.LayoutObject{
		EntityType: entityType,
		Layout:     layout,
		Name:       spec.Name,
		Position:   db.Point{X: spec.X, Y: spec.Y, Z: spec.Z},
		Extent:     db.Extent{Length: spec.Length, Width: spec.Width, Height: spec.Height},
		ModelID:    spec.ModelID,
	}
	if spec.Parent != nil {
		obj.Parent = &db.ParentRef{
			EntityType: spec.Parent.EntityType,
			ID:         spec.Parent.ID,
			Layout:     layout,
		}
	}
	return obj
}

// SiteDetail is one plant site of a tray.
type SiteDetail struct {
	ID     string `json:"id"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Active bool   `json:"active"`
}

func ComposeSiteDetail(s db.PlantSite) SiteDetail {
	return SiteDetail{ID: s.ID, Row: s.Row, Col: s.Col, Active: s.Active}
}

// TrayDetail is a tray with its grid.
type TrayDetail struct {
	ObjectDetail

	NumRows          int          `json:"num_rows"`
	NumCols          int          `json:"num_cols"`
	CurrentRecipeRun *string      `json:"current_recipe_run"`
	Sites            []SiteDetail `json:"plant_sites,omitempty"`
}

func ComposeTrayDetail(t db.Tray, sites []db.PlantSite) TrayDetail {
	return TrayDetail{
		ObjectDetail:     ComposeObjectDetail(t.LayoutObject),
		NumRows:          t.NumRows,
		NumCols:          t.NumCols,
		CurrentRecipeRun: t.CurrentRecipeRun,
		Sites:            slices.Map(sites, ComposeSiteDetail),
	}
}

// TraySpec is the POST/PUT body for trays. Grid dimensions come from
// the referenced TrayLayout on create; Relayout may change them later.
type TraySpec struct {
	ObjectSpec

	TrayLayoutID string `json:"tray_layout"`
}

// SetPoints maps property codes to the currently desired values.
type SetPoints map[string]float64

// Model3DDetail / Model3DSpec

type Model3DDetail struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	File   string  `json:"file"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func ComposeModel3DDetail(m db.Model3D) Model3DDetail {
	return Model3DDetail{
		ID: m.ID, Name: m.Name, File: m.File,
		Length: m.Extent.Length, Width: m.Extent.Width, Height: m.Extent.Height,
	}
}

type Model3DSpec struct {
	Name   string  `json:"name"`
	File   string  `json:"file"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (spec Model3DSpec) Model() db.Model3D {
	return db.Model3D{
		Name: spec.Name, File: spec.File,
		Extent: db.Extent{Length: spec.Length, Width: spec.Width, Height: spec.Height},
	}
}

// TrayLayoutDetail / TrayLayoutSpec

type TrayLayoutDetail struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NumRows int    `json:"num_rows"`
	NumCols int    `json:"num_cols"`
}

func ComposeTrayLayoutDetail(tl db.TrayLayout) TrayLayoutDetail {
	return TrayLayoutDetail{ID: tl.ID, Name: tl.Name, NumRows: tl.NumRows, NumCols: tl.NumCols}
}

type TrayLayoutSpec struct {
	Name    string `json:"name"`
	NumRows int    `json:"num_rows"`
	NumCols int    `json:"num_cols"`
}

func (spec TrayLayoutSpec) TrayLayout() db.TrayLayout {
	return db.TrayLayout{Name: spec.Name, NumRows: spec.NumRows, NumCols: spec.NumCols}
}

// PlantSiteLayoutDetail / PlantSiteLayoutSpec

type PlantSiteLayoutDetail struct {
	ID           string `json:"id"`
	TrayLayoutID string `json:"tray_layout"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
}

func ComposePlantSiteLayoutDetail(psl db.PlantSiteLayout) PlantSiteLayoutDetail {
	return PlantSiteLayoutDetail{ID: psl.ID, TrayLayoutID: psl.TrayLayoutID, Row: psl.Row, Col: psl.Col}
}

type PlantSiteLayoutSpec struct {
	TrayLayoutID string `json:"tray_layout"`
	Row          int    `json:"row"`
	Col          int    `json:"col"`
}

func (spec PlantSiteLayoutSpec) PlantSiteLayout() db.PlantSiteLayout {
	return db.PlantSiteLayout{TrayLayoutID: spec.TrayLayoutID, Row: spec.Row, Col: spec.Col}
}
