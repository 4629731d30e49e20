package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory enumerates the menu sections a product can belong to.
type ProductCategory string

const (
	CategoryAppetizer  ProductCategory = "appetizer"
	CategoryMainCourse ProductCategory = "main_course"
	CategoryDessert    ProductCategory = "dessert"
	CategoryBeverage   ProductCategory = "beverage"
)

// Valid reports whether c is one of the known categories.
func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage:
		return true
	}
	return false
}

// ProductStatus is the kitchen availability of a product.
type ProductStatus string

const (
	StatusAvailable   ProductStatus = "available"
	StatusUnavailable ProductStatus = "unavailable"
)

// Valid reports whether s is a known status.
func (s ProductStatus) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// DefaultDisplayOrder sorts products without an explicit order last.
const DefaultDisplayOrder = 9999

// Product represents a product in the catalog.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Category     ProductCategory `db:"category" json:"category"`
	Visible      bool            `db:"visible" json:"visible"`
	Status       ProductStatus   `db:"status" json:"status"`
	DisplayOrder int             `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time       `db:"created_at" json:"-"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// ProductPatch lists the fields a product update may change. Nil means unchanged.
type ProductPatch struct {
	Name         *string
	Price        *decimal.Decimal
	Category     *ProductCategory
	Visible      *bool
	Status       *ProductStatus
	DisplayOrder *int
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil &&
		p.Visible == nil && p.Status == nil && p.DisplayOrder == nil
}
