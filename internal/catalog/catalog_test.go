package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	_, err := New(
		MenuItem{ID: "a", Name: "A", Price: decimal.NewFromInt(1)},
		MenuItem{ID: "a", Name: "A again", Price: decimal.NewFromInt(2)},
	)
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNew_RejectsNegativePrice(t *testing.T) {
	_, err := New(MenuItem{ID: "a", Name: "A", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNew_RejectsMissingName(t *testing.T) {
	_, err := New(MenuItem{ID: "a"})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestDefault_Lookup(t *testing.T) {
	c := Default()

	it, ok := c.Lookup("dinner_half_chicken")
	require.True(t, ok)
	assert.Equal(t, "Half Chicken Dinner", it.Name)
	assert.Equal(t, "15.50", it.Price.StringFixed(2))

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
}

func TestCategories_KeepsMenuOrder(t *testing.T) {
	cats := Default().Categories()

	require.Len(t, cats, 3)
	assert.Equal(t, "Dinners", cats[0].Name)
	assert.Equal(t, "Single Items", cats[1].Name)
	assert.Equal(t, "Sides & Extras", cats[2].Name)
	assert.Equal(t, "dinner_half_chicken", cats[0].Items[0].ID)

	total := 0
	for _, c := range cats {
		total += len(c.Items)
	}
	assert.Equal(t, Default().Len(), total)
}
