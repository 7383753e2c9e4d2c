package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diorsolutions/eco-shop/internal/cart"
	"github.com/diorsolutions/eco-shop/internal/geo"
	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/diorsolutions/eco-shop/internal/notify"
	"github.com/diorsolutions/eco-shop/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type OrderHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Resolver     *geo.Resolver
	Bus          *notify.Bus
}

// CheckoutForm shows the order form: cart summary, last-used contact details
// and the delivery location (manual entry or a resolved coordinate pair).
func (h *OrderHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)
	c := cart.FromSession(session)

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	name, _ := session.Values["customer_name"].(string)
	phone, _ := session.Values["customer_phone"].(string)
	location, _ := session.Values["location"].(string)

	data := map[string]interface{}{
		"Cart":      c,
		"Name":      name,
		"Phone":     phone,
		"Location":  location,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Locate resolves the customer's coordinates and stores the rendered pair as
// the delivery location. Failures fall back to manual entry with a message
// matching the failure kind.
func (h *OrderHandler) Locate(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	pos, err := h.Resolver.Resolve(r.Context())
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	session.Values["location"] = pos.Address()
	session.Save(r, w)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

func (h *OrderHandler) ClearLocation(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	h.Resolver.Clear()
	delete(session.Values, "location")
	session.Save(r, w)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	c := cart.FromSession(session)
	if c.IsEmpty() {
		// Nothing to submit; not an error.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	phone := strings.TrimSpace(r.FormValue("phone"))
	location := strings.TrimSpace(r.FormValue("location"))

	errors := make(map[string]string)
	if name == "" {
		errors["name"] = "Your name is required."
	}
	if phone == "" {
		errors["phone"] = "Phone number is required."
	}
	if location == "" {
		errors["location"] = "Delivery location is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		// Cart untouched, the customer can retry.
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	order := &models.Order{
		ID:               uuid.New().String(),
		CustomerName:     name,
		CustomerPhone:    phone,
		CustomerLocation: location,
		Status:           models.StatusPending,
		TotalAmount:      c.TotalPrice(),
	}

	items := make([]models.OrderItem, 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, models.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			Price:     e.Price,
		})
	}

	if err := h.Store.CreateOrderWithItems(order, items); err != nil {
		slog.Error("Failed to create order", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to place your order. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	// Confirmation entry in the order's notification log.
	summary := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		summary = append(summary, fmt.Sprintf("%s (%dx)", e.Name, e.Quantity))
	}
	msg := &models.Message{
		ID:      uuid.New().String(),
		OrderID: order.ID,
		Text:    fmt.Sprintf("Your order [%s] has been received. Please wait for confirmation.", strings.Join(summary, ", ")),
		Type:    models.MessageSystem,
	}
	if err := h.Store.AppendMessage(msg); err != nil {
		slog.Error("Failed to append order message", "order_id", order.ID, "error", err)
	}

	h.Bus.Publish(notify.Event{Type: notify.EventInsert, OrderID: order.ID})

	// Remember contact details and the order for the messages page.
	session.Values["customer_name"] = name
	session.Values["customer_phone"] = phone
	orderIDs, _ := session.Values["order_ids"].([]string)
	session.Values["order_ids"] = append(orderIDs, order.ID)
	delete(session.Values, "location")

	c.Clear()
	cart.Save(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: "Order placed successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/messages", http.StatusSeeOther)
}

// Messages shows the notification log for every order placed from this
// session.
func (h *OrderHandler) Messages(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	orderIDs, _ := session.Values["order_ids"].([]string)
	messages, err := h.Store.GetMessagesByOrderIDs(orderIDs)
	if err != nil {
		http.Error(w, "Error fetching messages", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("messages.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Messages": messages,
		"Flashes":  GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
