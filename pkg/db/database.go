// Package db declares the records and store interfaces of the farm
// backend. Implementations live under db/postgres; handlers and
// services depend only on these interfaces.
package db

import "errors"

var (
	// ErrMissing : queried record does not exist.
	ErrMissing = errors.New("record is missing")

	// ErrAlreadyExists : write conflicts with an existing record.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrLayoutMismatch : a layout-qualified reference was read under a
	// different layout than it was written.
	ErrLayoutMismatch = errors.New("reference belongs to another layout")
)

type GroDatabase interface {
	Farms() FarmInterface
	Objects() ObjectInterface
	Trays() TrayInterface
	Catalog() CatalogInterface
	SetPoints() SetPointInterface
	Resources() ResourceInterface
	Recipes() RecipeInterface
	Admin() AdminInterface
	Close() error
}
