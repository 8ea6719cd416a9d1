package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRows struct {
	pgx.Rows
	data [][]any
	i    int
}

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int64:
			*p = row[i].(int64)
		case *sql.NullString:
			if row[i] != nil {
				*p = sql.NullString{String: row[i].(string), Valid: true}
			}
		default:
			return errors.New("unexpected scan target")
		}
	}
	return nil
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

type fakeDB struct {
	rows [][]any
	err  error
}

func (f fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{data: f.rows}, nil
}

func TestLoad(t *testing.T) {
	db := fakeDB{rows: [][]any{
		{"dinner_brisket", "Dinners", "Brisket Dinner", int64(2600), "Includes sides."},
		{"side_drink", "Sides & Extras", "Drink", int64(200), nil},
	}}

	c, err := Load(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	it, ok := c.Lookup("dinner_brisket")
	require.True(t, ok)
	assert.Equal(t, "26.00", it.Price.StringFixed(2))
	assert.Equal(t, "Includes sides.", it.Description)

	it, ok = c.Lookup("side_drink")
	require.True(t, ok)
	assert.Empty(t, it.Description)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), fakeDB{})
	assert.ErrorIs(t, err, ErrInvalidItem)

	boom := errors.New("connection refused")
	_, err = Load(context.Background(), fakeDB{err: boom})
	assert.ErrorIs(t, err, boom)

	_, err = Load(context.Background(), fakeDB{rows: [][]any{
		{"x", "Dinners", "X", int64(-1), nil},
	}})
	assert.ErrorIs(t, err, ErrInvalidItem)
}
