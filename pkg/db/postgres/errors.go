package postgres

import (
	"errors"
	"fmt"

	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
)

// translate maps driver-level failures onto the store's sentinels so
// callers never import pgx.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", db.ErrMissing, err)
	}
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) {
		switch pgerr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", db.ErrAlreadyExists, pgerr.Message)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", db.ErrMissing, pgerr.Message)
		}
	}
	return err
}
