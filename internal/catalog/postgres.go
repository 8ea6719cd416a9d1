package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Querier is the subset of *pgxpool.Pool used to load the menu.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Load reads the menu once at startup. Prices are stored in cents.
func Load(ctx context.Context, db Querier) (*Catalog, error) {
	rows, err := db.Query(ctx, `SELECT id, category, name, price_cents, description
	                            FROM menu_items ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("query menu: %w", err)
	}
	defer rows.Close()

	var items []MenuItem
	for rows.Next() {
		var (
			it    MenuItem
			cents int64
			desc  sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.Category, &it.Name, &cents, &desc); err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		it.Price = decimal.New(cents, -2)
		it.Description = desc.String
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: menu_items is empty", ErrInvalidItem)
	}
	return New(items...)
}
