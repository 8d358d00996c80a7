package mocks

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type FarmInterface struct {
	Impl struct {
		Singleton func(context.Context) (db.Farm, error)
		Get       func(context.Context, int64) (db.Farm, error)
		BySlug    func(context.Context, string) (db.Farm, error)
		List      func(context.Context) ([]db.Farm, error)
		Create    func(context.Context, db.Farm) (db.Farm, error)
		Update    func(context.Context, db.Farm) (db.Farm, error)
		Delete    func(context.Context, int64) error
		SetIP     func(context.Context, int64, string) error
	}
	Calls struct {
		Singleton CallLog[struct{}]
		Get       CallLog[struct{ ID int64 }]
		BySlug    CallLog[struct{ Slug string }]
		List      CallLog[struct{}]
		Create    CallLog[struct{ Farm db.Farm }]
		Update    CallLog[struct{ Farm db.Farm }]
		Delete    CallLog[struct{ ID int64 }]
		SetIP     CallLog[struct {
			ID int64
			IP string
		}]
	}
}

func NewFarmInterface() *FarmInterface {
	return &FarmInterface{}
}

var _ db.FarmInterface = &FarmInterface{}

func (m *FarmInterface) Singleton(ctx context.Context) (db.Farm, error) {
	m.Calls.Singleton = append(m.Calls.Singleton, struct{}{})
	if m.Impl.Singleton != nil {
		return m.Impl.Singleton(ctx)
	}
	panic(errors.New("FarmInterface.Singleton should not be called"))
}

func (m *FarmInterface) Get(ctx context.Context, id int64) (db.Farm, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ID int64 }{ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("FarmInterface.Get should not be called"))
}

func (m *FarmInterface) BySlug(ctx context.Context, slug string) (db.Farm, error) {
	m.Calls.BySlug = append(m.Calls.BySlug, struct{ Slug string }{Slug: slug})
	if m.Impl.BySlug != nil {
		return m.Impl.BySlug(ctx, slug)
	}
	panic(errors.New("FarmInterface.BySlug should not be called"))
}

func (m *FarmInterface) List(ctx context.Context) ([]db.Farm, error) {
	m.Calls.List = append(m.Calls.List, struct{}{})
	if m.Impl.List != nil {
		return m.Impl.List(ctx)
	}
	panic(errors.New("FarmInterface.List should not be called"))
}

func (m *FarmInterface) Create(ctx context.Context, farm db.Farm) (db.Farm, error) {
	m.Calls.Create = append(m.Calls.Create, struct{ Farm db.Farm }{Farm: farm})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, farm)
	}
	panic(errors.New("FarmInterface.Create should not be called"))
}

func (m *FarmInterface) Update(ctx context.Context, farm db.Farm) (db.Farm, error) {
	m.Calls.Update = append(m.Calls.Update, struct{ Farm db.Farm }{Farm: farm})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, farm)
	}
	panic(errors.New("FarmInterface.Update should not be called"))
}

func (m *FarmInterface) Delete(ctx context.Context, id int64) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ID int64 }{ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("FarmInterface.Delete should not be called"))
}

func (m *FarmInterface) SetIP(ctx context.Context, id int64, ip string) error {
	m.Calls.SetIP = append(m.Calls.SetIP, struct {
		ID int64
		IP string
	}{ID: id, IP: ip})
	if m.Impl.SetIP != nil {
		return m.Impl.SetIP(ctx, id, ip)
	}
	panic(errors.New("FarmInterface.SetIP should not be called"))
}
