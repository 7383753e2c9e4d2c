// Package cart holds the customer's in-progress selection. The cart lives in
// the customer's cookie session and survives reloads; every mutation handler
// saves the whole cart back before redirecting.
package cart

import (
	"encoding/gob"

	"github.com/diorsolutions/eco-shop/internal/models"
)

func init() {
	// Entries travel inside gorilla session cookies.
	gob.Register([]Entry{})
}

// Entry is a product snapshot plus a quantity. The snapshot price is what the
// order is charged at: a later price edit by the admin does not change a cart
// that was filled before it.
type Entry struct {
	ProductID       string
	Name            string
	Price           float64
	PreparationTime int
	ImageURL        string
	Quantity        int
}

type Cart struct {
	Entries []Entry
}

// Add merges by product id: a repeated add increments the existing quantity.
func (c *Cart) Add(p models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Entries {
		if c.Entries[i].ProductID == p.ID {
			c.Entries[i].Quantity += quantity
			return
		}
	}
	c.Entries = append(c.Entries, Entry{
		ProductID:       p.ID,
		Name:            p.Name,
		Price:           p.Price,
		PreparationTime: p.PreparationTime,
		ImageURL:        p.ImageURL,
		Quantity:        quantity,
	})
}

// SetQuantity overwrites the quantity for a product; zero or negative removes
// the entry. No entry ever holds quantity <= 0.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Entries {
		if c.Entries[i].ProductID == productID {
			c.Entries[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) Remove(productID string) {
	for i := range c.Entries {
		if c.Entries[i].ProductID == productID {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Entries = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, e := range c.Entries {
		total += e.Price * float64(e.Quantity)
	}
	return total
}

func (c *Cart) TotalItems() int {
	var n int
	for _, e := range c.Entries {
		n += e.Quantity
	}
	return n
}
