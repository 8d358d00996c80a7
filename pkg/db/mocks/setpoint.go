package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
)

type SetPointInterface struct {
	Impl struct {
		Record        func(context.Context, db.SetPoint) error
		LatestForTray func(context.Context, string, time.Time) (map[string]float64, error)
	}
	Calls struct {
		Record        CallLog[struct{ SetPoint db.SetPoint }]
		LatestForTray CallLog[struct {
			TrayID string
			Now    time.Time
		}]
	}
}

func NewSetPointInterface() *SetPointInterface {
	return &SetPointInterface{}
}

var _ db.SetPointInterface = &SetPointInterface{}

func (m *SetPointInterface) Record(ctx context.Context, sp db.SetPoint) error {
	m.Calls.Record = append(m.Calls.Record, struct{ SetPoint db.SetPoint }{SetPoint: sp})
	if m.Impl.Record != nil {
		return m.Impl.Record(ctx, sp)
	}
	panic(errors.New("SetPointInterface.Record should not be called"))
}

func (m *SetPointInterface) LatestForTray(ctx context.Context, trayID string, now time.Time) (map[string]float64, error) {
	m.Calls.LatestForTray = append(m.Calls.LatestForTray, struct {
		TrayID string
		Now    time.Time
	}{TrayID: trayID, Now: now})
	if m.Impl.LatestForTray != nil {
		return m.Impl.LatestForTray(ctx, trayID, now)
	}
	panic(errors.New("SetPointInterface.LatestForTray should not be called"))
}
