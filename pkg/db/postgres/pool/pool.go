package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// something begins SQL Transaction
//
// this is extracted interface from "pgxpool.Pool", "pgxpool.Conn" or "pgx.Tx".
// when you need more details, see them.
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

// something sending query with SQL.
//
// this is extracted interface from `pgxpool.Conn` and `pgx.Tx`.
// When you need more details, see them.
type Queryer interface {
	// sending SQL Command which does not have any result rows.
	//
	// for more detail, see `pgxpool.Conn.Exec`
	Exec(ctx context.Context, sql string, arguments ...interface{}) (commandTag pgconn.CommandTag, err error)

	// sending SQL Command which has result rows.
	//
	// for more detail, see `pgxpool.Conn.Query`
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// sending SQL Command which has just single result row.
	//
	// for more detail, see `pgxpool.Conn.QueryRow`
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// interface extracted from `pgx.Tx`
//
// `pgx.Tx` does NOT implement `Tx`: golang lacks
// covariance/contravariance in typing, so `Tx` cannot be declared as a
// generalization of `pgx.Tx` directly. To get a `Tx`, call `Begin()`
// on a `Pool` or `Conn` from this package.
//
// This is JUST A SUBSET of `pgx.Tx`. When you need more methods only
// `pgx.Tx` has, declare them.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// thin wrapper of pgx.Tx as Tx
type pgxTx struct {
	base pgx.Tx
}

var _ Tx = &pgxTx{}

func (tx *pgxTx) Begin(ctx context.Context) (Tx, error) {
	nested, err := tx.base.Begin(ctx)
	if nested == nil {
		return nil, err
	}
	return &pgxTx{nested}, err
}

func (tx *pgxTx) Commit(ctx context.Context) error {
	return tx.base.Commit(ctx)
}
func (tx *pgxTx) Rollback(ctx context.Context) error {
	return tx.base.Rollback(ctx)
}
func (tx *pgxTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return tx.base.Exec(ctx, sql, arguments...)
}
func (tx *pgxTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return tx.base.Query(ctx, sql, args...)
}
func (tx *pgxTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return tx.base.QueryRow(ctx, sql, args...)
}

// interface extracted from `*pgxpool.Conn`
//
// This is JUST A SUBSET of `*pgxpool.Conn`, wrapped for the same
// typing reason as `Tx`. To get a `Conn`, call `Acquire()` on a
// `Pool` from this package.
type Conn interface {
	Begin
	Queryer

	Release()
	Ping(ctx context.Context) error
}

// thin wrapper of pgxpool.Conn as Conn
type pgxPoolConn struct {
	base *pgxpool.Conn
}

var _ Conn = &pgxPoolConn{}

func (c *pgxPoolConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.base.Begin(ctx)
	if tx == nil {
		return nil, err
	}
	return &pgxTx{tx}, err
}
func (c *pgxPoolConn) Release() {
	c.base.Release()
}
func (c *pgxPoolConn) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return c.base.Exec(ctx, sql, arguments...)
}
func (c *pgxPoolConn) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return c.base.Query(ctx, sql, args...)
}
func (c *pgxPoolConn) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.base.QueryRow(ctx, sql, args...)
}
func (c *pgxPoolConn) Ping(ctx context.Context) error {
	return c.base.Ping(ctx)
}

// interface extracted from `*pgxpool.Pool`
//
// This is JUST A SUBSET of `*pgxpool.Pool`, wrapped for the same
// typing reason as `Tx`. To wrap `*pgxpool.Pool` as `Pool`, use `Wrap`.
type Pool interface {
	Begin

	Acquire(ctx context.Context) (Conn, error)
	Ping(ctx context.Context) error
}

type pgxPool struct {
	base *pgxpool.Pool
}

var _ Pool = &pgxPool{}

func (p *pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.base.Begin(ctx)
	if tx == nil {
		return nil, err
	}
	return &pgxTx{tx}, err
}
func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.base.Acquire(ctx)
	if conn == nil {
		return nil, err
	}
	return &pgxPoolConn{conn}, err
}
func (p *pgxPool) Ping(ctx context.Context) error {
	return p.base.Ping(ctx)
}

func Wrap(p *pgxpool.Pool) Pool {
	return &pgxPool{p}
}
