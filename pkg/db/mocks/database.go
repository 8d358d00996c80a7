package mocks

import (
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

// GroDatabase bundles one mock per store interface.
type GroDatabase struct {
	FarmStore     *FarmInterface
	ObjectStore   *ObjectInterface
	TrayStore     *TrayInterface
	CatalogStore  *CatalogInterface
	SetPointStore *SetPointInterface
	ResourceStore *ResourceInterface
	RecipeStore   *RecipeInterface
	AdminStore    *AdminInterface
}

func NewGroDatabase() *GroDatabase {
	return &GroDatabase{
		FarmStore:     NewFarmInterface(),
		ObjectStore:   NewObjectInterface(),
		TrayStore:     NewTrayInterface(),
		CatalogStore:  NewCatalogInterface(),
		SetPointStore: NewSetPointInterface(),
		ResourceStore: NewResourceInterface(),
		RecipeStore:   NewRecipeInterface(),
		AdminStore:    NewAdminInterface(),
	}
}

var _ db.GroDatabase = &GroDatabase{}

func (m *GroDatabase) Farms() db.FarmInterface         { return m.FarmStore }
func (m *GroDatabase) Objects() db.ObjectInterface     { return m.ObjectStore }
func (m *GroDatabase) Trays() db.TrayInterface         { return m.TrayStore }
func (m *GroDatabase) Catalog() db.CatalogInterface    { return m.CatalogStore }
func (m *GroDatabase) SetPoints() db.SetPointInterface { return m.SetPointStore }
func (m *GroDatabase) Resources() db.ResourceInterface { return m.ResourceStore }
func (m *GroDatabase) Recipes() db.RecipeInterface     { return m.RecipeStore }
func (m *GroDatabase) Admin() db.AdminInterface        { return m.AdminStore }
func (m *GroDatabase) Close() error                    { return nil }
