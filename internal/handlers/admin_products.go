package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/diorsolutions/eco-shop/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSession)
	data := map[string]interface{}{
		"Products":   products,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) ProductForm(w http.ResponseWriter, r *http.Request) {
	var product *models.Product
	if id := r.URL.Query().Get("id"); id != "" {
		p, err := h.Store.GetProductByID(id)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		product = p
	}

	categories, err := h.Store.GetAllCategories()
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_product_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSession)
	data := map[string]interface{}{
		"Product":    product,
		"Categories": categories,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSession)

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	name := r.FormValue("name")
	description := r.FormValue("description")
	priceStr := r.FormValue("price")
	categoryID := r.FormValue("category_id")
	prepStr := r.FormValue("preparation_time")
	isAvailable := r.FormValue("is_available") == "on" || r.FormValue("is_available") == "true"

	errors := make(map[string]string)
	if name == "" {
		errors["name"] = "Name is required."
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		errors["price"] = "Invalid price format."
	} else if price < 0 {
		errors["price"] = "Price must not be negative."
	}
	prep := 0
	if prepStr != "" {
		prep, err = strconv.Atoi(prepStr)
		if err != nil || prep < 0 {
			errors["preparation_time"] = "Invalid preparation time."
		}
	}
	if categoryID != "" {
		category, err := h.Store.GetCategoryByID(categoryID)
		if err != nil || category == nil {
			errors["category"] = "Unknown category."
		}
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products/edit", http.StatusSeeOther)
		return
	}

	// Image is optional; when present it is resized and stored under static/uploads.
	imageURL := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageURL, err = h.saveProductImage(file, header.Filename)
		if err != nil {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			session.Save(r, w)
			http.Redirect(w, r, "/admin/products/edit", http.StatusSeeOther)
			return
		}
	}

	product := &models.Product{
		ID:              id,
		Name:            name,
		Description:     description,
		Price:           price,
		CategoryID:      categoryID,
		IsAvailable:     isAvailable,
		PreparationTime: prep,
		ImageURL:        imageURL,
	}

	if id == "" {
		product.ID = uuid.New().String()
		err = h.Store.CreateProduct(product)
	} else {
		err = h.Store.UpdateProduct(product)
		if err == nil && imageURL != "" {
			err = h.Store.UpdateProductImage(id, imageURL)
		}
	}
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product saved."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSession)

	if err := h.Store.DeleteProduct(r.FormValue("id")); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		session.Save(r, w)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted."})
	session.Save(r, w)
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// saveProductImage decodes, resizes to 800px wide and writes the image as
// JPEG under a fresh uuid filename.
func (h *AdminHandler) saveProductImage(file io.Reader, filename string) (string, error) {
	var img image.Image
	var err error
	switch filepath.Ext(filename) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format, only PNG, JPG, JPEG are allowed")
	}
	if err != nil {
		return "", fmt.Errorf("failed to decode image")
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	name := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join("static/uploads", name)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("error saving image file")
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("error encoding image")
	}

	return "/static/uploads/" + name, nil
}
