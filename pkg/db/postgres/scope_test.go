package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	kpool "github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/db/postgres/pool"
	"github.com/OpenAgricultureFoundation/gro-api-sub000/pkg/layout/state"
)

// execLogConn records Exec statements and the Release call.
type execLogConn struct {
	execs    []string
	released bool
}

var _ kpool.Conn = &execLogConn{}

func (c *execLogConn) Begin(context.Context) (kpool.Tx, error) {
	panic(errors.New("execLogConn.Begin should not be called"))
}

func (c *execLogConn) Exec(_ context.Context, sql string, _ ...interface{}) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	return nil, nil
}

func (c *execLogConn) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	panic(errors.New("execLogConn.Query should not be called"))
}

func (c *execLogConn) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	panic(errors.New("execLogConn.QueryRow should not be called"))
}

func (c *execLogConn) Release() { c.released = true }

func (c *execLogConn) Ping(context.Context) error { return nil }

type fakePool struct {
	conn *execLogConn
}

var _ kpool.Pool = &fakePool{}

func (p *fakePool) Begin(context.Context) (kpool.Tx, error) {
	panic(errors.New("fakePool.Begin should not be called"))
}
func (p *fakePool) Acquire(context.Context) (kpool.Conn, error) { return p.conn, nil }

func (p *fakePool) Ping(context.Context) error { return nil }

func TestSchemaName(t *testing.T) {
	for slug, expected := range map[string]string{
		"pfc-one":   "farm_pfc_one",
		"myfarm":    "farm_myfarm",
		"my-farm-3": "farm_my_farm_3",
	} {
		if got := SchemaName(slug); got != expected {
			t.Errorf("unmatch schema name:%s, expected:%s", got, expected)
		}
	}
}

func TestScope_Acquire(t *testing.T) {

	t.Run("it pins and restores the farm's search_path", func(t *testing.T) {
		raw := &execLogConn{}
		testee := &scope{pool: &fakePool{conn: raw}}

		ctx := state.WithFarm(context.Background(), "pfc-one")
		conn, err := testee.Acquire(ctx)
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}

		if len(raw.execs) != 1 || !strings.Contains(raw.execs[0], `"farm_pfc_one"`) {
			t.Fatalf("search_path is not pinned: %v", raw.execs)
		}

		conn.Release()
		if len(raw.execs) != 2 || !strings.Contains(raw.execs[1], "RESET search_path") {
			t.Errorf("search_path is not restored on Release: %v", raw.execs)
		}
		if !raw.released {
			t.Error("the underlying connection is not released")
		}
	})

	t.Run("it refuses to serve without a farm on the context", func(t *testing.T) {
		testee := &scope{pool: &fakePool{conn: &execLogConn{}}}

		if _, err := testee.Acquire(context.Background()); !errors.Is(err, ErrNoFarmScope) {
			t.Errorf("unexpected error: %v (expected ErrNoFarmScope)", err)
		}
	})
}
