package db

import "context"

// Farm is the aggregate root of one growing unit.
//
// On a leaf process there is exactly one Farm; on a root process, one
// row per registered leaf farm.
type Farm struct {
	// ID is the local primary key.
	ID int64

	// RootID is the identifier assigned by the parent server on
	// registration. nil until the farm is Registered.
	RootID *int64

	Name string

	// Slug is the unique URL-safe identifier. Immutable once the farm
	// is Registered.
	Slug string

	// Layout is the name of the farm's layout schema. nil while the
	// farm is Unconfigured; immutable once set.
	Layout *string

	ParentServerURL *string

	// IP is the last measured address of the device, best-effort.
	IP *string
}

func (f Farm) Configured() bool {
	return f.Layout != nil && *f.Layout != ""
}

func (f Farm) Registered() bool {
	return f.RootID != nil
}

type FarmInterface interface {
	// Singleton returns the one farm of a leaf process, creating the
	// Unconfigured row on first access.
	Singleton(ctx context.Context) (Farm, error)

	Get(ctx context.Context, id int64) (Farm, error)

	BySlug(ctx context.Context, slug string) (Farm, error)

	List(ctx context.Context) ([]Farm, error)

	// Create inserts a new farm row (root process, on leaf registration).
	Create(ctx context.Context, farm Farm) (Farm, error)

	// Update writes every mutable field of farm, matched by ID.
	// Lifecycle rules (layout lock, slug lock) are the caller's duty.
	Update(ctx context.Context, farm Farm) (Farm, error)

	// Delete removes a farm row. Compensation for a failed
	// registration; never part of normal operation.
	Delete(ctx context.Context, id int64) error

	// SetIP records the measured address, best-effort.
	SetIP(ctx context.Context, id int64, ip string) error
}
