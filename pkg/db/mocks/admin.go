package mocks

import (
	"context"
	"errors"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type AdminInterface struct {
	Impl struct {
		UpgradeShared   func(context.Context) error
		InitFarmStore   func(context.Context, db.Farm, string) error
		RenameFarmStore func(context.Context, string, string) error
	}
	Calls struct {
		UpgradeShared CallLog[struct{}]
		InitFarmStore CallLog[struct {
			Farm   db.Farm
			Layout string
		}]
		RenameFarmStore CallLog[struct {
			OldSlug string
			NewSlug string
		}]
	}
}

func NewAdminInterface() *AdminInterface {
	return &AdminInterface{}
}

var _ db.AdminInterface = &AdminInterface{}

func (m *AdminInterface) UpgradeShared(ctx context.Context) error {
	m.Calls.UpgradeShared = append(m.Calls.UpgradeShared, struct{}{})
	if m.Impl.UpgradeShared != nil {
		return m.Impl.UpgradeShared(ctx)
	}
	panic(errors.New("AdminInterface.UpgradeShared should not be called"))
}

func (m *AdminInterface) InitFarmStore(ctx context.Context, farm db.Farm, layout string) error {
	m.Calls.InitFarmStore = append(m.Calls.InitFarmStore, struct {
		Farm   db.Farm
		Layout string
	}{Farm: farm, Layout: layout})
	if m.Impl.InitFarmStore != nil {
		return m.Impl.InitFarmStore(ctx, farm, layout)
	}
	panic(errors.New("AdminInterface.InitFarmStore should not be called"))
}

func (m *AdminInterface) RenameFarmStore(ctx context.Context, oldSlug, newSlug string) error {
	m.Calls.RenameFarmStore = append(m.Calls.RenameFarmStore, struct {
		OldSlug string
		NewSlug string
	}{OldSlug: oldSlug, NewSlug: newSlug})
	if m.Impl.RenameFarmStore != nil {
		return m.Impl.RenameFarmStore(ctx, oldSlug, newSlug)
	}
	panic(errors.New("AdminInterface.RenameFarmStore should not be called"))
}
