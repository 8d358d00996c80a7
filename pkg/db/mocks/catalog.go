package mocks

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type CatalogInterface struct {
	Impl struct {
		CreateModel3D         func(context.Context, db.Model3D) (db.Model3D, error)
		GetModel3D            func(context.Context, string) (db.Model3D, error)
		ListModel3D           func(context.Context) ([]db.Model3D, error)
		DeleteModel3D         func(context.Context, string) error
		CreateTrayLayout      func(context.Context, db.TrayLayout) (db.TrayLayout, error)
		GetTrayLayout         func(context.Context, string) (db.TrayLayout, error)
		ListTrayLayouts       func(context.Context) ([]db.TrayLayout, error)
		DeleteTrayLayout      func(context.Context, string) error
		CreatePlantSiteLayout func(context.Context, db.PlantSiteLayout) (db.PlantSiteLayout, error)
		ListPlantSiteLayouts  func(context.Context, string) ([]db.PlantSiteLayout, error)
	}
	Calls struct {
		CreateModel3D         CallLog[struct{ Model db.Model3D }]
		GetModel3D            CallLog[struct{ ID string }]
		ListModel3D           CallLog[struct{}]
		DeleteModel3D         CallLog[struct{ ID string }]
		CreateTrayLayout      CallLog[struct{ TrayLayout db.TrayLayout }]
		GetTrayLayout         CallLog[struct{ ID string }]
		ListTrayLayouts       CallLog[struct{}]
		DeleteTrayLayout      CallLog[struct{ ID string }]
		CreatePlantSiteLayout CallLog[struct{ PSL db.PlantSiteLayout }]
		ListPlantSiteLayouts  CallLog[struct{ TrayLayoutID string }]
	}
}

func NewCatalogInterface() *CatalogInterface {
	return &CatalogInterface{}
}

var _ db.CatalogInterface = &CatalogInterface{}

func (m *CatalogInterface) CreateModel3D(ctx context.Context, model db.Model3D) (db.Model3D, error) {
	m.Calls.CreateModel3D = append(m.Calls.CreateModel3D, struct{ Model db.Model3D }{Model: model})
	if m.Impl.CreateModel3D != nil {
		return m.Impl.CreateModel3D(ctx, model)
	}
	panic(errors.New("CatalogInterface.CreateModel3D should not be called"))
}

func (m *CatalogInterface) GetModel3D(ctx context.Context, id string) (db.Model3D, error) {
	m.Calls.GetModel3D = append(m.Calls.GetModel3D, struct{ ID string }{ID: id})
	if m.Impl.GetModel3D != nil {
		return m.Impl.GetModel3D(ctx, id)
	}
	panic(errors.New("CatalogInterface.GetModel3D should not be called"))
}

func (m *CatalogInterface) ListModel3D(ctx context.Context) ([]db.Model3D, error) {
	m.Calls.ListModel3D = append(m.Calls.ListModel3D, struct{}{})
	if m.Impl.ListModel3D != nil {
		return m.Impl.ListModel3D(ctx)
	}
	panic(errors.New("CatalogInterface.ListModel3D should not be called"))
}

func (m *CatalogInterface) DeleteModel3D(ctx context.Context, id string) error {
	m.Calls.DeleteModel3D = append(m.Calls.DeleteModel3D, struct{ ID string }{ID: id})
	if m.Impl.DeleteModel3D != nil {
		return m.Impl.DeleteModel3D(ctx, id)
	}
	panic(errors.New("CatalogInterface.DeleteModel3D should not be called"))
}

func (m *CatalogInterface) CreateTrayLayout(ctx context.Context, tl db.TrayLayout) (db.TrayLayout, error) {
	m.Calls.CreateTrayLayout = append(m.Calls.CreateTrayLayout, struct{ TrayLayout db.TrayLayout }{TrayLayout: tl})
	if m.Impl.CreateTrayLayout != nil {
		return m.Impl.CreateTrayLayout(ctx, tl)
	}
	panic(errors.New("CatalogInterface.CreateTrayLayout should not be called"))
}

func (m *CatalogInterface) GetTrayLayout(ctx context.Context, id string) (db.TrayLayout, error) {
	m.Calls.GetTrayLayout = append(m.Calls.GetTrayLayout, struct{ ID string }{ID: id})
	if m.Impl.GetTrayLayout != nil {
		return m.Impl.GetTrayLayout(ctx, id)
	}
	panic(errors.New("CatalogInterface.GetTrayLayout should not be called"))
}

func (m *CatalogInterface) ListTrayLayouts(ctx context.Context) ([]db.TrayLayout, error) {
	m.Calls.ListTrayLayouts = append(m.Calls.ListTrayLayouts, struct{}{})
	if m.Impl.ListTrayLayouts != nil {
		return m.Impl.ListTrayLayouts(ctx)
	}
	panic(errors.New("CatalogInterface.ListTrayLayouts should not be called"))
}

func (m *CatalogInterface) DeleteTrayLayout(ctx context.Context, id string) error {
	m.Calls.DeleteTrayLayout = append(m.Calls.DeleteTrayLayout, struct{ ID string }{ID: id})
	if m.Impl.DeleteTrayLayout != nil {
		return m.Impl.DeleteTrayLayout(ctx, id)
	}
	panic(errors.New("CatalogInterface.DeleteTrayLayout should not be called"))
}

func (m *CatalogInterface) CreatePlantSiteLayout(ctx context.Context, psl db.PlantSiteLayout) (db.PlantSiteLayout, error) {
	m.Calls.CreatePlantSiteLayout = append(m.Calls.CreatePlantSiteLayout, struct{ PSL db.PlantSiteLayout }{PSL: psl})
	if m.Impl.CreatePlantSiteLayout != nil {
		return m.Impl.CreatePlantSiteLayout(ctx, psl)
	}
	panic(errors.New("CatalogInterface.CreatePlantSiteLayout should not be called"))
}

func (m *CatalogInterface) ListPlantSiteLayouts(ctx context.Context, trayLayoutID string) ([]db.PlantSiteLayout, error) {
	m.Calls.ListPlantSiteLayouts = append(m.Calls.ListPlantSiteLayouts, struct{ TrayLayoutID string }{TrayLayoutID: trayLayoutID})
	if m.Impl.ListPlantSiteLayouts != nil {
		return m.Impl.ListPlantSiteLayouts(ctx, trayLayoutID)
	}
	panic(errors.New("CatalogInterface.ListPlantSiteLayouts should not be called"))
}
