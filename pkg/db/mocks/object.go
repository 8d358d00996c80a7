package mocks

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type ObjectInterface struct {
	Impl struct {
		Create       func(context.Context, db.LayoutObject) (db.LayoutObject, error)
		Get          func(context.Context, string) (db.LayoutObject, error)
		Update       func(context.Context, db.LayoutObject) (db.LayoutObject, error)
		Delete       func(context.Context, string) error
		List         func(context.Context, string, string) ([]db.LayoutObject, error)
		ListChildren func(context.Context, db.ParentRef, string) ([]db.LayoutObject, error)
		Enclosure    func(context.Context, string) (db.LayoutObject, error)
	}
	Calls struct {
		Create       CallLog[struct{ Obj db.LayoutObject }]
		Get          CallLog[struct{ ID string }]
		Update       CallLog[struct{ Obj db.LayoutObject }]
		Delete       CallLog[struct{ ID string }]
		List         CallLog[struct{ Layout, EntityType string }]
		ListChildren CallLog[struct {
			Parent     db.ParentRef
			EntityType string
		}]
		Enclosure CallLog[struct{ Layout string }]
	}
}

func NewObjectInterface() *ObjectInterface {
	return &ObjectInterface{}
}

var _ db.ObjectInterface = &ObjectInterface{}

func (m *ObjectInterface) Create(ctx context.Context, obj db.LayoutObject) (db.LayoutObject, error) {
	m.Calls.Create = append(m.Calls.Create, struct{ Obj db.LayoutObject }{Obj: obj})
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, obj)
	}
	panic(errors.New("ObjectInterface.Create should not be called"))
}

func (m *ObjectInterface) Get(ctx context.Context, id string) (db.LayoutObject, error) {
	m.Calls.Get = append(m.Calls.Get, struct{ ID string }{ID: id})
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}
	panic(errors.New("ObjectInterface.Get should not be called"))
}

func (m *ObjectInterface) Update(ctx context.Context, obj db.LayoutObject) (db.LayoutObject, error) {
	m.Calls.Update = append(m.Calls.Update, struct{ Obj db.LayoutObject }{Obj: obj})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, obj)
	}
	panic(errors.New("ObjectInterface.Update should not be called"))
}

func (m *ObjectInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, struct{ ID string }{ID: id})
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}
	panic(errors.New("ObjectInterface.Delete should not be called"))
}

func (m *ObjectInterface) List(ctx context.Context, layout, entityType string) ([]db.LayoutObject, error) {
	m.Calls.List = append(m.Calls.List, struct{ Layout, EntityType string }{Layout: layout, EntityType: entityType})
	if m.Impl.List != nil {
		return m.Impl.List(ctx, layout, entityType)
	}
	panic(errors.New("ObjectInterface.List should not be called"))
}

func (m *ObjectInterface) ListChildren(ctx context.Context, parent db.ParentRef, entityType string) ([]db.LayoutObject, error) {
	m.Calls.ListChildren = append(m.Calls.ListChildren, struct {
		Parent     db.ParentRef
		EntityType string
	}{Parent: parent, EntityType: entityType})
	if m.Impl.ListChildren != nil {
		return m.Impl.ListChildren(ctx, parent, entityType)
	}
	panic(errors.New("ObjectInterface.ListChildren should not be called"))
}

func (m *ObjectInterface) Enclosure(ctx context.Context, layout string) (db.LayoutObject, error) {
	m.Calls.Enclosure = append(m.Calls.Enclosure, struct{ Layout string }{Layout: layout})
	if m.Impl.Enclosure != nil {
		return m.Impl.Enclosure(ctx, layout)
	}
	panic(errors.New("ObjectInterface.Enclosure should not be called"))
}
