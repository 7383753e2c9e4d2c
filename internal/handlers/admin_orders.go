package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/diorsolutions/eco-shop/internal/notify"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Store.GetOrdersWithItems()
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSession)
	data := map[string]interface{}{
		"Orders":    orders,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateOrderStatus moves an order along its lifecycle. The store re-checks
// the transition; the customer notification and SMS only go out after the
// write succeeded.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSession)

	orderID := r.FormValue("id")
	next := models.OrderStatus(r.FormValue("status"))

	if err := h.Store.UpdateOrderStatus(orderID, next); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			session.AddFlash(FlashMessage{Type: "error", Message: "That status change is not allowed."})
		} else {
			slog.Error("Failed to update order status", "order_id", orderID, "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Error updating order status."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	h.Bus.Publish(notify.Event{Type: notify.EventUpdate, OrderID: orderID})

	if text := h.statusMessage(next); text != "" {
		h.notifyCustomer(r, orderID, text, session)
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order status updated."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// statusMessage returns the customer-facing text for a new status; pending
// and completed produce none.
func (h *AdminHandler) statusMessage(status models.OrderStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "Your order is ready, the courier is already on the way"
	case models.StatusCancelled:
		return fmt.Sprintf("Your order was cancelled, call %s to find out why", h.SupportPhone)
	}
	return ""
}

// notifyCustomer appends the text to the order's notification log and hands
// it to the SMS gateway. The delivery result is surfaced to the operator.
func (h *AdminHandler) notifyCustomer(r *http.Request, orderID, text string, session *sessions.Session) {
	msg := &models.Message{
		ID:      uuid.New().String(),
		OrderID: orderID,
		Text:    text,
		Type:    models.MessageSystem,
	}
	if err := h.Store.AppendMessage(msg); err != nil {
		slog.Error("Failed to append status message", "order_id", orderID, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Customer notification could not be saved."})
		return
	}

	order, err := h.Store.GetOrderByID(orderID)
	if err != nil {
		slog.Error("Failed to load order for SMS", "order_id", orderID, "error", err)
		return
	}

	result, err := h.Gateway.Send(r.Context(), order.CustomerPhone, text)
	if err != nil || result.Status == notify.DeliveryFailed {
		slog.Error("SMS delivery failed", "order_id", orderID, "phone", order.CustomerPhone, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "SMS to " + order.CustomerPhone + " failed."})
		return
	}
	session.AddFlash(FlashMessage{Type: "success", Message: "SMS to " + order.CustomerPhone + ": " + string(result.Status)})
}
