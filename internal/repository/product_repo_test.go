package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/resto_api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var productCols = []string{"id", "name", "price", "category", "visible", "status", "display_order", "created_at", "updated_at"}

func TestProductRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)

	p := &models.Product{
		Name:         "Feijoada",
		Price:        decimal.RequireFromString("42.90"),
		Category:     models.CategoryMainCourse,
		Visible:      true,
		Status:       models.StatusAvailable,
		DisplayOrder: 3,
	}
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs("Feijoada", p.Price, "main_course", true, "available", 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, now, now))

	id, err := repo.Create(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindVisible(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE visible = true AND status = $1`)).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow(2, "Pudim", "12.00", "dessert", true, "available", 1, now, now).
			AddRow(1, "Coxinha", "8.50", "appetizer", true, "available", 2, now, now))

	products, err := repo.FindVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Pudim", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12")))
	assert.Equal(t, models.CategoryAppetizer, products[1].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindAllEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT .* FROM products ORDER BY display_order`).
		WillReturnRows(sqlmock.NewRows(productCols))

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_FindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`FROM products WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(productCols))

	p, err := repo.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepository_FindByIDError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM products WHERE id = \$1`).WithArgs(int64(1)).WillReturnError(boom)

	_, err := repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestProductRepository_UpdateBuildsSetClause(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	name := "Feijoada completa"
	order := 0
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET name = $1, display_order = $2, updated_at = NOW() WHERE id = $3`)).
		WithArgs(name, order, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Update(context.Background(), 4, models.ProductPatch{Name: &name, DisplayOrder: &order})
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	visible := false
	mock.ExpectExec(`UPDATE products SET visible`).
		WithArgs(false, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.Update(context.Background(), 5, models.ProductPatch{Visible: &visible})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProductRepository_Hide(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET visible = false`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	found, err := repo.Hide(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
