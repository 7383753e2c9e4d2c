package models

import (
	"time"
)

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	CategoryID      string    `json:"category_id"`
	IsAvailable     bool      `json:"is_available"`
	PreparationTime int       `json:"preparation_time"` // minutes
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID               string      `json:"id"`
	CustomerName     string      `json:"customer_name"`
	CustomerPhone    string      `json:"customer_phone"`
	CustomerLocation string      `json:"customer_location"`
	Status           OrderStatus `json:"status"`
	TotalAmount      float64     `json:"total_amount"`
	Items            []OrderItem `json:"items,omitempty"` // joined, not a column
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// OrderItem freezes the product price at order time; later price edits on the
// product do not touch it.
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"` // For display convenience
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessageType string

const (
	MessageSystem   MessageType = "system"
	MessageCustomer MessageType = "customer"
)

// Message is one entry of the per-order notification log. Both the storefront
// and the admin side read the same table; neither keeps a private copy.
type Message struct {
	ID        string      `json:"id"`
	OrderID   string      `json:"order_id"`
	Text      string      `json:"text"`
	Type      MessageType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Store hashed password
}
