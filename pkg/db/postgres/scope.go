package postgres

import (
	"context"
	"fmt"
	"strings"

	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	xe "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/errors"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
	"github.com/jackc/pgx/v4"
)

// ErrNoFarmScope : a per-farm store was queried with no farm slug on
// the context. The dispatcher resolves the target farm and sets it
// before any store call.
var ErrNoFarmScope = fmt.Errorf("no farm selected on context")

// SchemaName returns the postgres schema holding the per-farm store
// of the farm with the given slug.
//
// Slugs come out of strings.Slugify so they are lowercase ASCII
// letters, digits and hyphens; hyphens become underscores to keep the
// identifier usable unquoted too.
func SchemaName(slug string) string {
	return "farm_" + strings.ReplaceAll(slug, "-", "_")
}

// scope acquires connections pinned to the per-farm schema of the farm
// on the request context.
//
// Every store of per-farm records goes through here, which is what
// keeps farms isolated on a root process: the same SQL text runs
// against a different schema per request.
type scope struct {
	pool kpool.Pool
}

// Acquire returns a connection whose search_path is set to the current
// farm's schema (with public as fallback for shared tables). The
// caller must Release it; Release restores the session's search_path
// so the scope never outlives the acquisition in the pooled session.
func (s *scope) Acquire(ctx context.Context) (kpool.Conn, error) {
	slug, ok := state.CurrentFarm(ctx)
	if !ok {
		return nil, xe.Wrap(ErrNoFarmScope)
	}
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if _, err := conn.Exec(
		ctx, fmt.Sprintf(
			`SET search_path TO %s, "public"`,
			pgx.Identifier{SchemaName(slug)}.Sanitize(),
		),
	); err != nil {
		conn.Release()
		return nil, xe.Wrap(err)
	}
	return &scopedConn{Conn: conn}, nil
}

// scopedConn resets search_path on Release. SET is session-scoped, so
// without the reset the scope would ride the connection back into the
// pool and on to its next borrower.
type scopedConn struct {
	kpool.Conn
}

func (c *scopedConn) Release() {
	c.Conn.Exec(context.Background(), `RESET search_path`)
	c.Conn.Release()
}

// Begin opens a transaction with search_path pinned for its duration.
// SET LOCAL evaporates with the transaction, so the session the pool
// hands back is left untouched.
func (s *scope) Begin(ctx context.Context) (kpool.Tx, error) {
	slug, ok := state.CurrentFarm(ctx)
	if !ok {
		return nil, xe.Wrap(ErrNoFarmScope)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, xe.Wrap(err)
	}
	if _, err := tx.Exec(
		ctx, fmt.Sprintf(
			`SET LOCAL search_path TO %s, "public"`,
			pgx.Identifier{SchemaName(slug)}.Sanitize(),
		),
	); err != nil {
		tx.Rollback(ctx)
		return nil, xe.Wrap(err)
	}
	return tx, nil
}
