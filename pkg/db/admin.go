package db

import "context"

// AdminInterface covers store lifecycle operations that are not part
// of request handling.
type AdminInterface interface {
	// UpgradeShared applies pending migrations to the shared tables
	// (the farm table itself). On a root process this never touches
	// per-farm stores; those are only created by InitFarmStore.
	UpgradeShared(ctx context.Context) error

	// InitFarmStore provisions the per-farm store for farm's freshly
	// set layout: entity tables plus the implicit Enclosure row, in a
	// single transaction. A failure leaves no partial state behind.
	InitFarmStore(ctx context.Context, farm Farm, layout string) error

	// RenameFarmStore moves a provisioned per-farm store to a new
	// slug. Stores are named after the slug, so a slug change on a
	// Configured farm must carry its store along.
	RenameFarmStore(ctx context.Context, oldSlug, newSlug string) error
}
