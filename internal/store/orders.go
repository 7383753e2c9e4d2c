package store

import (
	"fmt"
	"math"
	"strings"

	"github.com/diorsolutions/eco-shop/internal/models"
)

var (
	ErrNoItems       = fmt.Errorf("order has no items")
	ErrTotalMismatch = fmt.Errorf("order total does not match item sum")
)

// CreateOrderWithItems writes the order row and all of its item rows in one
// transaction. The order and its lines exist together or not at all.
func (s *Store) CreateOrderWithItems(order *models.Order, items []models.OrderItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}

	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	if math.Abs(sum-order.TotalAmount) > 1e-9 {
		return fmt.Errorf("%w: total=%.2f items=%.2f", ErrTotalMismatch, order.TotalAmount, sum)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO orders (id, customer_name, customer_phone, customer_location, status, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		order.ID, order.CustomerName, order.CustomerPhone, order.CustomerLocation, order.Status, order.TotalAmount)
	if err != nil {
		return err
	}

	for _, it := range items {
		_, err = tx.Exec(`
			INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
			VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			it.ID, order.ID, it.ProductID, it.Quantity, it.Price)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetOrdersWithItems returns every order newest-first, each with its item rows
// and the joined product names.
func (s *Store) GetOrdersWithItems() ([]models.Order, error) {
	orders, err := s.GetAllOrders()
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	rows, err := s.DB.Query(`
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price, oi.created_at
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		ORDER BY oi.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[string][]models.OrderItem)
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price, &it.CreatedAt); err != nil {
			return nil, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return orders, nil
}

func (s *Store) GetAllOrders() ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, customer_name, customer_phone, customer_location, status, total_amount, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerLocation, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrderByID(id string) (*models.Order, error) {
	var o models.Order
	err := s.DB.QueryRow(`
		SELECT id, customer_name, customer_phone, customer_location, status, total_amount, created_at, updated_at
		FROM orders WHERE id = ?`, id).
		Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerLocation, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateOrderStatus moves an order along the lifecycle graph. The current
// status is read and checked inside the same transaction as the write, so an
// illegal edge can never land in the store, whatever the caller offered.
func (s *Store) UpdateOrderStatus(id string, next models.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("unknown order status %q", next)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current models.OrderStatus
	if err := tx.QueryRow(`SELECT status FROM orders WHERE id = ?`, id).Scan(&current); err != nil {
		return err
	}

	if !models.CanTransition(current, next) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, current, next)
	}

	if _, err := tx.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, next, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) AppendMessage(m *models.Message) error {
	_, err := s.DB.Exec(`
		INSERT INTO messages (id, order_id, text, type, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		m.ID, m.OrderID, m.Text, m.Type)
	return err
}

// GetMessagesByOrderIDs returns the notification log for a set of orders,
// oldest-first.
func (s *Store) GetMessagesByOrderIDs(orderIDs []string) ([]models.Message, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(orderIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(orderIDs))
	for i, id := range orderIDs {
		args[i] = id
	}

	rows, err := s.DB.Query(`
		SELECT id, order_id, text, type, created_at FROM messages
		WHERE order_id IN (`+placeholders+`) ORDER BY created_at`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Text, &m.Type, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
