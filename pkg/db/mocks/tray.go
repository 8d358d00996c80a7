package mocks

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type TrayInterface struct {
	Impl struct {
		Get                 func(context.Context, string) (db.Tray, error)
		Create              func(context.Context, db.Tray) (db.Tray, error)
		Update              func(context.Context, db.Tray) (db.Tray, error)
		Relayout            func(context.Context, string, int, int) (db.Tray, error)
		Delete              func(context.Context, string) error
		List                func(context.Context, string) ([]db.Tray, error)
		Sites               func(context.Context, string) ([]db.PlantSite, error)
		UpdateSite          func(context.Context, string, bool) (db.PlantSite, error)
		SetCurrentRecipeRun func(context.Context, string, *string) error
	}
	Calls struct {
		Get      CallLog[struct{ ID string }]
		Create   CallLog[struct{ Tray db.Tray }]
		Update   CallLog[struct{ Tray db.Tray }]
		Relayout CallLog[struct {
			ID               string
			NumRows, NumCols int
		}]
		Delete     CallLog[struct{ ID string }]
		List       CallLog[struct{ Layout string }]
		Sites      CallLog[struct{ TrayID string }]
		UpdateSite CallLog[struct {
			SiteID string
			Active bool
		}]
		SetCurrentRecipeRun CallLog[struct {
			TrayID string
			RunID  *string
		}]
	}
}

func NewTrayInterface() *TrayInterface {
	return &TrayInterface{}
}

var _ db.TrayInterface = &TrayInterface{}

func (m *TrayInterface) Get(ctx context.Context, id string) (db.Tray, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ID string }{ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("TrayInterface.Get should not be called"))
}

func (m *TrayInterface) Create(ctx context.Context, tray db.Tray) (db.Tray, error) {
	m.Calls.Create = append(m.Calls.Create, struct{ Tray db.Tray }{Tray: tray})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, tray)
	}
	panic(errors.New("TrayInterface.Create should not be called"))
}

func (m *TrayInterface) Update(ctx context.Context, tray db.Tray) (db.Tray, error) {
	m.Calls.Update = append(m.Calls.Update, struct{ Tray db.Tray }{Tray: tray})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, tray)
	}
	panic(errors.New("TrayInterface.Update should not be called"))
}

func (m *TrayInterface) Relayout(ctx context.Context, id string, numRows, numCols int) (db.Tray, error) {
	m.Calls.Relayout = append(m.Calls.Relayout, struct {
		ID               string
		NumRows, NumCols int
	}{ID: id, NumRows: numRows, NumCols: numCols})
	if m.Impl.Relayout != nil {
		return m.Impl.Relayout(ctx, id, numRows, numCols)
	}
	panic(errors.New("TrayInterface.Relayout should not be called"))
}

func (m *TrayInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ID string }{ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("TrayInterface.Delete should not be called"))
}

func (m *TrayInterface) List(ctx context.Context, layout string) ([]db.Tray, error) {
	m.Calls.List = append(m.Calls.List, struct{ Layout string }{Layout: layout})
	if m.Impl.List != nil {
		return m.Impl.List(ctx, layout)
	}
	panic(errors.New("TrayInterface.List should not be called"))
}

func (m *TrayInterface) Sites(ctx context.Context, trayID string) ([]db.PlantSite, error) {
	m.Calls.Sites = append(m.Calls.Sites, struct{ TrayID string }{TrayID: trayID})
	if m.Impl.Sites != nil {
		return m.Impl.Sites(ctx, trayID)
	}
	panic(errors.New("TrayInterface.Sites should not be called"))
}

func (m *TrayInterface) UpdateSite(ctx context.Context, siteID string, active bool) (db.PlantSite, error) {
	m.Calls.UpdateSite = append(m.Calls.UpdateSite, struct {
		SiteID string
		Active bool
	}{SiteID: siteID, Active: active})
	if m.Impl.UpdateSite != nil {
		return m.Impl.UpdateSite(ctx, siteID, active)
	}
	panic(errors.New("TrayInterface.UpdateSite should not be called"))
}

func (m *TrayInterface) SetCurrentRecipeRun(ctx context.Context, trayID string, runID *string) error {
	m.Calls.SetCurrentRecipeRun = append(m.Calls.SetCurrentRecipeRun, struct {
		TrayID string
		RunID  *string
	}{TrayID: trayID, RunID: runID})
	if m.Impl.SetCurrentRecipeRun != nil {
		return m.Impl.SetCurrentRecipeRun(ctx, trayID, runID)
	}
	panic(errors.New("TrayInterface.SetCurrentRecipeRun should not be called"))
}
