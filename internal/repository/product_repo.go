package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/resto_api/internal/models"
)

const productColumns = `id, name, price, category, visible, status, display_order, created_at, updated_at`

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product and fills in its generated id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (int64, error) {
	const q = `
        INSERT INTO products (name, price, category, visible, status, display_order)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, q,
		p.Name,
		p.Price,
		p.Category,
		p.Visible,
		p.Status,
		p.DisplayOrder,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return p.ID, nil
}

// FindAll returns every product, hidden ones included.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY display_order ASC, id ASC`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

// FindVisible returns the products that belong on the menu: visible and available.
func (r *ProductRepository) FindVisible(ctx context.Context) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products
        WHERE visible = true AND status = $1
        ORDER BY display_order ASC, id ASC`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, models.StatusAvailable); err != nil {
		return nil, fmt.Errorf("select visible products: %w", err)
	}
	return products, nil
}

// FindByID returns a product, or nil when it does not exist.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	return &p, nil
}

// Update applies the non-nil fields of patch. It reports false when no product has id.
func (r *ProductRepository) Update(ctx context.Context, id int64, patch models.ProductPatch) (bool, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Visible != nil {
		add("visible", *patch.Visible)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.DisplayOrder != nil {
		add("display_order", *patch.DisplayOrder)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE products SET %s, updated_at = NOW() WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("update product %d: %w", id, err)
	}
	return affected(res)
}

// Hide removes a product from the menu without deleting its row.
func (r *ProductRepository) Hide(ctx context.Context, id int64) (bool, error) {
	const q = `UPDATE products SET visible = false, updated_at = NOW() WHERE id = $1`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, fmt.Errorf("hide product %d: %w", id, err)
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
