package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/diorsolutions/eco-shop/internal/cart"
	"github.com/diorsolutions/eco-shop/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

const shopSession = "shop-session"

type ShopHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

// Index lists available products with optional category and search filters.
// Filtering happens in memory over the full fetch; the catalogue is small.
func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAvailableProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	categoryID := r.URL.Query().Get("category")
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	filtered := products[:0:0]
	for _, p := range products {
		if categoryID != "" && categoryID != "all" && p.CategoryID != categoryID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		filtered = append(filtered, p)
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, shopSession)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Products":   filtered,
		"Categories": categories,
		"Category":   categoryID,
		"Query":      r.URL.Query().Get("q"),
		"CartCount":  c.TotalItems(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, shopSession)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Product":   product,
		"CartCount": c.TotalItems(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) CartView(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, shopSession)
	c := cart.FromSession(session)
	data := map[string]interface{}{
		"Cart":      c,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	product, err := h.Store.GetProductByID(r.FormValue("product_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product not found."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	c := cart.FromSession(session)
	c.Add(*product, quantity)
	cart.Save(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: product.Name + " added to cart."})
	session.Save(r, w)
	http.Redirect(w, r, redirectTarget(r, "/"), http.StatusSeeOther)
}

func (h *ShopHandler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid quantity."})
		session.Save(r, w)
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	c := cart.FromSession(session)
	c.SetQuantity(r.FormValue("product_id"), quantity)
	cart.Save(session, c)
	session.Save(r, w)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	c := cart.FromSession(session)
	c.Remove(r.FormValue("product_id"))
	cart.Save(session, c)
	session.Save(r, w)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *ShopHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSession)

	c := cart.FromSession(session)
	c.Clear()
	cart.Save(session, c)
	session.Save(r, w)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// redirectTarget sends the customer back where they came from, defaulting to
// fallback for direct requests.
func redirectTarget(r *http.Request, fallback string) string {
	if ref := r.Referer(); ref != "" {
		return ref
	}
	return fallback
}
