package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type ResourceInterface struct {
	Impl struct {
		Create           func(context.Context, db.Resource) (db.Resource, error)
		Get              func(context.Context, string) (db.Resource, error)
		List             func(context.Context) ([]db.Resource, error)
		Delete           func(context.Context, string) error
		CreatePeripheral func(context.Context, db.Peripheral) (db.Peripheral, error)
		ListPeripherals  func(context.Context, db.PeripheralKind) ([]db.Peripheral, error)
		DeletePeripheral func(context.Context, string) error
	}
	Calls struct {
		Create           CallLog[struct{ Resource db.Resource }]
		Get              CallLog[struct{ ID string }]
		List             CallLog[struct{}]
		Delete           CallLog[struct{ ID string }]
		CreatePeripheral CallLog[struct{ Peripheral db.Peripheral }]
		ListPeripherals  CallLog[struct{ Kind db.PeripheralKind }]
		DeletePeripheral CallLog[struct{ ID string }]
	}
}

func NewResourceInterface() *ResourceInterface {
	return &ResourceInterface{}
}

var _ db.ResourceInterface = &ResourceInterface{}

func (m *ResourceInterface) Create(ctx context.Context, r db.Resource) (db.Resource, error) {
	m.Calls.Create = append(m.Calls.Create, struct{ Resource db.Resource }{Resource: r})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, r)
	}
	panic(errors.New("ResourceInterface.Create should not be called"))
}

func (m *ResourceInterface) Get(ctx context.Context, id string) (db.Resource, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ID string }{ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("ResourceInterface.Get should not be called"))
}

func (m *ResourceInterface) List(ctx context.Context) ([]db.Resource, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("ResourceInterface.List should not be called"))
}

func (m *ResourceInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ID string }{ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("ResourceInterface.Delete should not be called"))
}

func (m *ResourceInterface) CreatePeripheral(ctx context.Context, p db.Peripheral) (db.Peripheral, error) {
	m.Calls.CreatePeripheral = append(m.Calls.CreatePeripheral, struct{ Peripheral db.Peripheral }{Peripheral: p})
	if m.Impl.CreatePeripheral != nil {
		return m.Impl.CreatePeripheral(ctx, p)
	}
	panic(errors.New("ResourceInterface.CreatePeripheral should not be called"))
}

func (m *ResourceInterface) ListPeripherals(ctx context.Context, kind db.PeripheralKind) ([]db.Peripheral, error) {
	m.Calls.ListPeripherals = append(m.Calls.ListPeripherals, struct{ Kind db.PeripheralKind }{Kind: kind})
	if m.Impl.ListPeripherals != nil {
		return m.Impl.ListPeripherals(ctx, kind)
	}
	panic(errors.New("ResourceInterface.ListPeripherals should not be called"))
}

func (m *ResourceInterface) DeletePeripheral(ctx context.Context, id string) error {
	m.Calls.DeletePeripheral = append(m.Calls.DeletePeripheral, struct{ ID string }{ID: id})
	if m.Impl.DeletePeripheral != nil {
		return m.Impl.DeletePeripheral(ctx, id)
	}
	panic(errors.New("ResourceInterface.DeletePeripheral should not be called"))
}

type RecipeInterface struct {
	Impl struct {
		Create   func(context.Context, db.Recipe) (db.Recipe, error)
		Get      func(context.Context, string) (db.Recipe, error)
		List     func(context.Context) ([]db.Recipe, error)
		Delete   func(context.Context, string) error
		StartRun func(context.Context, db.RecipeRun) (db.RecipeRun, error)
		StopRun  func(context.Context, string, time.Time) (db.RecipeRun, error)
		GetRun   func(context.Context, string) (db.RecipeRun, error)
	}
	Calls struct {
		Create   CallLog[struct{ Recipe db.Recipe }]
		Get      CallLog[struct{ ID string }]
		List     CallLog[struct{}]
		Delete   CallLog[struct{ ID string }]
		StartRun CallLog[struct{ Run db.RecipeRun }]
		StopRun  CallLog[struct {
			RunID string
			At    time.Time
		}]
		GetRun CallLog[struct{ RunID string }]
	}
}

func NewRecipeInterface() *RecipeInterface {
	return &RecipeInterface{}
}

var _ db.RecipeInterface = &RecipeInterface{}

func (m *RecipeInterface) Create(ctx context.Context, r db.Recipe) (db.Recipe, error) {
	m.Calls.Create = append(m.Calls.Create, struct{ Recipe db.Recipe }{Recipe: r})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, r)
	}
	panic(errors.New("RecipeInterface.Create should not be called"))
}

func (m *RecipeInterface) Get(ctx context.Context, id string) (db.Recipe, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ID string }{ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("RecipeInterface.Get should not be called"))
}

func (m *RecipeInterface) List(ctx context.Context) ([]db.Recipe, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("RecipeInterface.List should not be called"))
}

func (m *RecipeInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ID string }{ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("RecipeInterface.Delete should not be called"))
}

func (m *RecipeInterface) StartRun(ctx context.Context, run db.RecipeRun) (db.RecipeRun, error) {
	m.Calls.StartRun = append(m.Calls.StartRun, struct{ Run db.RecipeRun }{Run: run})
	if m.Impl.StartRun != nil {
		return m.Impl.StartRun(ctx, run)
	}
	panic(errors.New("RecipeInterface.StartRun should not be called"))
}

func (m *RecipeInterface) StopRun(ctx context.Context, runID string, at time.Time) (db.RecipeRun, error) {
	m.Calls.StopRun = append(m.Calls.StopRun, struct {
		RunID string
		At    time.Time
	}{RunID: runID, At: at})
	if m.Impl.StopRun != nil {
		return m.Impl.StopRun(ctx, runID, at)
	}
	panic(errors.New("RecipeInterface.StopRun should not be called"))
}

func (m *RecipeInterface) GetRun(ctx context.Context, runID string) (db.RecipeRun, error) {
	m.Calls.GetRun = append(m.Calls.GetRun, struct{ RunID string }{RunID: runID})
	if m.Impl.GetRun != nil {
		return m.Impl.GetRun(ctx, runID)
	}
	panic(errors.New("RecipeInterface.GetRun should not be called"))
}
