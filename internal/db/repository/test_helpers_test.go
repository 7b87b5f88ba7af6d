package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
)

func uuidFromByte(b byte) pgtype.UUID {
	var arr [16]byte
	arr[15] = b
	return pgtype.UUID{Bytes: arr, Valid: true}
}

type mockDB struct {
	mock.Mock
}

func (m *mockDB) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	called := m.Called(append([]interface{}{ctx, sql}, args...)...)
	return pgconn.NewCommandTag("INSERT 0 1"), called.Error(0)
}

func (m *mockDB) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	called := m.Called(append([]interface{}{ctx, sql}, args...)...)
	rows, _ := called.Get(0).(pgx.Rows)
	return rows, called.Error(1)
}

// fakeRows replays fixed values; each Scan destination must match its value's type.
type fakeRows struct {
	values [][]interface{}
	pos    int
	err    error
	closed bool
}

func newRows(values ...[]interface{}) *fakeRows {
	return &fakeRows{values: values, pos: -1}
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.values)
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.values[r.pos], nil
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	row := r.values[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(row))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		value := reflect.ValueOf(row[i])
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan column %d: %s into %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}
