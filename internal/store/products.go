package store

import (
	"database/sql"

	"github.com/diorsolutions/eco-shop/internal/models"
)

func (s *Store) CreateProduct(p *models.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, category_id, is_available, preparation_time, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.Exec(query, p.ID, p.Name, p.Description, p.Price, p.CategoryID, p.IsAvailable, p.PreparationTime, p.ImageURL)
	return err
}

func (s *Store) GetAllProducts() ([]models.Product, error) {
	query := `SELECT id, name, description, price, COALESCE(category_id, ''), is_available, preparation_time, COALESCE(image_url, ''), created_at, updated_at
	          FROM products ORDER BY created_at DESC`
	return s.queryProducts(query)
}

// GetAvailableProducts is the storefront listing; unavailable products are
// hidden from customers but stay visible to the admin.
func (s *Store) GetAvailableProducts() ([]models.Product, error) {
	query := `SELECT id, name, description, price, COALESCE(category_id, ''), is_available, preparation_time, COALESCE(image_url, ''), created_at, updated_at
	          FROM products WHERE is_available = 1 ORDER BY created_at DESC`
	return s.queryProducts(query)
}

func (s *Store) queryProducts(query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.IsAvailable, &p.PreparationTime, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProductByID(id string) (*models.Product, error) {
	query := `SELECT id, name, description, price, COALESCE(category_id, ''), is_available, preparation_time, COALESCE(image_url, ''), created_at, updated_at
	          FROM products WHERE id = ?`
	var p models.Product
	err := s.DB.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.IsAvailable, &p.PreparationTime, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) UpdateProduct(p *models.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, category_id = ?, is_available = ?, preparation_time = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := s.DB.Exec(query, p.Name, p.Description, p.Price, p.CategoryID, p.IsAvailable, p.PreparationTime, p.ID)
	return err
}

func (s *Store) UpdateProductImage(id string, imageURL string) error {
	query := `UPDATE products SET image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := s.DB.Exec(query, imageURL, id)
	return err
}

func (s *Store) DeleteProduct(id string) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := s.DB.Exec(query, id)
	return err
}

func (s *Store) GetAllCategories() ([]models.Category, error) {
	rows, err := s.DB.Query(`SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) CreateCategory(c *models.Category) error {
	_, err := s.DB.Exec(`INSERT INTO categories (id, name, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)`, c.ID, c.Name)
	return err
}

func (s *Store) GetCategoryByID(id string) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRow(`SELECT id, name, created_at FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
