package catalog

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

var ErrInvalidItem = errors.New("invalid menu item")

// Catalog is read-only once built; safe to share across requests.
type Catalog struct {
	byID  map[string]MenuItem
	order []string
}

func New(items ...MenuItem) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]MenuItem, len(items))}
	for _, it := range items {
		if it.ID == "" || it.Name == "" {
			return nil, fmt.Errorf("%w: id and name required", ErrInvalidItem)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for %s", ErrInvalidItem, it.ID)
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidItem, it.ID)
		}
		c.byID[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	return c, nil
}

func (c *Catalog) Lookup(id string) (MenuItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Items returns the menu in its defined order.
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

type Category struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// Categories groups items by category, keeping first-seen order.
func (c *Catalog) Categories() []Category {
	idx := map[string]int{}
	var out []Category
	for _, it := range c.Items() {
		i, ok := idx[it.Category]
		if !ok {
			i = len(out)
			idx[it.Category] = i
			out = append(out, Category{Name: it.Category})
		}
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
