package store_test

import (
	"testing"

	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/diorsolutions/eco-shop/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate("../../migrations"))
	return s
}

func seedProduct(t *testing.T, s *store.Store, name string, price float64) models.Product {
	t.Helper()
	p := models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Price:       price,
		IsAvailable: true,
	}
	require.NoError(t, s.CreateProduct(&p))
	return p
}

func placeOrder(t *testing.T, s *store.Store, products ...models.Product) models.Order {
	t.Helper()

	order := models.Order{
		ID:               uuid.New().String(),
		CustomerName:     "Alisher",
		CustomerPhone:    "+998901234567",
		CustomerLocation: "41.311081, 69.240562",
		Status:           models.StatusPending,
	}
	var items []models.OrderItem
	for _, p := range products {
		items = append(items, models.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Quantity:  2,
			Price:     p.Price,
		})
		order.TotalAmount += p.Price * 2
	}
	require.NoError(t, s.CreateOrderWithItems(&order, items))
	return order
}

func TestCreateOrderWithItems(t *testing.T) {
	s := newTestStore(t)
	p1 := seedProduct(t, s, "Plov", 35000)
	p2 := seedProduct(t, s, "Lagman", 30000)

	order := placeOrder(t, s, p1, p2)

	orders, err := s.GetOrdersWithItems()
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, (35000.0+30000.0)*2, got.TotalAmount)
	require.Len(t, got.Items, 2)

	var sum float64
	names := make(map[string]bool)
	for _, it := range got.Items {
		sum += it.Price * float64(it.Quantity)
		names[it.ProductName] = true
	}
	assert.Equal(t, got.TotalAmount, sum)
	assert.True(t, names["Plov"])
	assert.True(t, names["Lagman"])
}

func TestCreateOrderWithItems_NoItems(t *testing.T) {
	s := newTestStore(t)

	order := models.Order{ID: uuid.New().String(), Status: models.StatusPending}
	err := s.CreateOrderWithItems(&order, nil)
	assert.ErrorIs(t, err, store.ErrNoItems)

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderWithItems_TotalMismatch(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Plov", 35000)

	order := models.Order{
		ID:               uuid.New().String(),
		CustomerName:     "Alisher",
		CustomerPhone:    "+998901234567",
		CustomerLocation: "somewhere",
		Status:           models.StatusPending,
		TotalAmount:      1, // wrong
	}
	items := []models.OrderItem{{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		ProductID: p.ID,
		Quantity:  1,
		Price:     p.Price,
	}}

	err := s.CreateOrderWithItems(&order, items)
	assert.ErrorIs(t, err, store.ErrTotalMismatch)

	orders, err := s.GetAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders, "rejected order must leave no rows behind")
}

func TestUpdateOrderStatus_LegalEdge(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Plov", 35000)
	order := placeOrder(t, s, p)

	require.NoError(t, s.UpdateOrderStatus(order.ID, models.StatusConfirmed))

	got, err := s.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestUpdateOrderStatus_IllegalEdges(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Plov", 35000)

	t.Run("pending_to_completed", func(t *testing.T) {
		order := placeOrder(t, s, p)
		err := s.UpdateOrderStatus(order.ID, models.StatusCompleted)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)

		got, err := s.GetOrderByID(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status, "illegal edge leaves prior state untouched")
	})

	t.Run("out_of_terminal", func(t *testing.T) {
		order := placeOrder(t, s, p)
		require.NoError(t, s.UpdateOrderStatus(order.ID, models.StatusCancelled))

		err := s.UpdateOrderStatus(order.ID, models.StatusConfirmed)
		assert.ErrorIs(t, err, models.ErrInvalidTransition)
	})

	t.Run("unknown_status", func(t *testing.T) {
		order := placeOrder(t, s, p)
		err := s.UpdateOrderStatus(order.ID, models.OrderStatus("shipped"))
		assert.Error(t, err)
	})
}

func TestMessages(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Plov", 35000)
	order := placeOrder(t, s, p)
	other := placeOrder(t, s, p)

	require.NoError(t, s.AppendMessage(&models.Message{
		ID:      uuid.New().String(),
		OrderID: order.ID,
		Text:    "Your order has been received",
		Type:    models.MessageSystem,
	}))
	require.NoError(t, s.AppendMessage(&models.Message{
		ID:      uuid.New().String(),
		OrderID: other.ID,
		Text:    "Your order has been received",
		Type:    models.MessageSystem,
	}))

	messages, err := s.GetMessagesByOrderIDs([]string{order.ID})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, order.ID, messages[0].OrderID)
	assert.Equal(t, models.MessageSystem, messages[0].Type)

	messages, err = s.GetMessagesByOrderIDs([]string{order.ID, other.ID})
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	messages, err = s.GetMessagesByOrderIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestGetOrdersWithItems_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	p := seedProduct(t, s, "Plov", 35000)

	first := placeOrder(t, s, p)
	// Force distinct created_at values; CURRENT_TIMESTAMP has second precision.
	_, err := s.DB.Exec(`UPDATE orders SET created_at = datetime(created_at, '-1 hour') WHERE id = ?`, first.ID)
	require.NoError(t, err)
	second := placeOrder(t, s, p)

	orders, err := s.GetOrdersWithItems()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}
