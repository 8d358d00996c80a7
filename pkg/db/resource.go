package db

import "context"

// Resource is a typed medium (air, water) installed at some place of
// the layout. Sensors and actuators attach to resources.
type Resource struct {
	ID   string
	Code string
	Name string

	// Location is the layout object the resource lives in, if placed.
	Location *ParentRef
}

type PeripheralKind string

const (
	KindSensor   PeripheralKind = "sensor"
	KindActuator PeripheralKind = "actuator"
)

// Peripheral is a sensor or actuator installed in a resource.
type Peripheral struct {
	ID         string
	Kind       PeripheralKind
	Name       string
	Model      string
	ResourceID string
}

type ResourceInterface interface {
	Create(ctx context.Context, r Resource) (Resource, error)
	Get(ctx context.Context, id string) (Resource, error)
	List(ctx context.Context) ([]Resource, error)
	Delete(ctx context.Context, id string) error

	CreatePeripheral(ctx context.Context, p Peripheral) (Peripheral, error)
	ListPeripherals(ctx context.Context, kind PeripheralKind) ([]Peripheral, error)
	DeletePeripheral(ctx context.Context, id string) error
}
