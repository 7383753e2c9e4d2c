package cart_test

import (
	"testing"

	"github.com/diorsolutions/eco-shop/internal/cart"
	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/stretchr/testify/assert"
)

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "product-" + id, Price: price}
}

func TestCart_AddMergesByProduct(t *testing.T) {
	c := &cart.Cart{}
	c.Add(product("p1", 100), 1)
	c.Add(product("p1", 100), 2)
	c.Add(product("p2", 50), 3)

	assert.Len(t, c.Entries, 2)
	assert.Equal(t, 3, c.Entries[0].Quantity)
	assert.Equal(t, "p1", c.Entries[0].ProductID)
	assert.Equal(t, 3, c.Entries[1].Quantity)
	assert.Equal(t, "p2", c.Entries[1].ProductID)
}

func TestCart_AddDefaultsToOne(t *testing.T) {
	c := &cart.Cart{}
	c.Add(product("p1", 100), 0)
	c.Add(product("p2", 100), -5)

	assert.Equal(t, 1, c.Entries[0].Quantity)
	assert.Equal(t, 1, c.Entries[1].Quantity)
}

func TestCart_Totals(t *testing.T) {
	c := &cart.Cart{}
	c.Add(product("p1", 100), 2)
	c.Add(product("p2", 50), 3)
	c.Add(product("p1", 100), 1)

	assert.Equal(t, 100.0*3+50.0*3, c.TotalPrice())
	assert.Equal(t, 6, c.TotalItems())
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name        string
		quantity    int
		wantEntries int
		wantQty     int
	}{
		{name: "overwrite", quantity: 5, wantEntries: 1, wantQty: 5},
		{name: "zero_removes", quantity: 0, wantEntries: 0},
		{name: "negative_removes", quantity: -1, wantEntries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cart.Cart{}
			c.Add(product("p1", 100), 2)
			c.SetQuantity("p1", tt.quantity)

			assert.Len(t, c.Entries, tt.wantEntries)
			if tt.wantEntries > 0 {
				assert.Equal(t, tt.wantQty, c.Entries[0].Quantity)
			}

			// No entry may ever hold quantity <= 0.
			for _, e := range c.Entries {
				assert.Greater(t, e.Quantity, 0)
			}
		})
	}
}

func TestCart_SetQuantityUnknownProductIsNoop(t *testing.T) {
	c := &cart.Cart{}
	c.Add(product("p1", 100), 2)
	c.SetQuantity("missing", 4)

	assert.Len(t, c.Entries, 1)
	assert.Equal(t, 2, c.Entries[0].Quantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := &cart.Cart{}
	c.Add(product("p1", 100), 1)
	c.Add(product("p2", 50), 1)

	c.Remove("p1")
	assert.Len(t, c.Entries, 1)
	assert.Equal(t, "p2", c.Entries[0].ProductID)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalPrice())
	assert.Zero(t, c.TotalItems())
}
