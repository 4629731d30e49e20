package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/utils"
)

// ProductService provides product-related business logic.
type ProductService struct {
	store ProductStore
}

// NewProductService constructs a ProductService.
func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

// CreateProductRequest represents the request to create a new product.
type CreateProductRequest struct {
	Name         string                 `json:"name"`
	Price        decimal.Decimal        `json:"price"`
	Category     models.ProductCategory `json:"category"`
	Visible      *bool                  `json:"visible"`      // default true
	Status       models.ProductStatus   `json:"status"`       // default available
	DisplayOrder *int                   `json:"displayOrder"` // default 9999
}

// UpdateProductRequest represents a partial product update. Absent fields are unchanged.
type UpdateProductRequest struct {
	Name         *string                 `json:"name"`
	Price        *decimal.Decimal        `json:"price"`
	Category     *models.ProductCategory `json:"category"`
	Visible      *bool                   `json:"visible"`
	Status       *models.ProductStatus   `json:"status"`
	DisplayOrder *int                    `json:"displayOrder"`
}

// Create validates req and stores a new product.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	p := &models.Product{
		Name:         strings.TrimSpace(req.Name),
		Price:        req.Price,
		Category:     req.Category,
		Visible:      true,
		Status:       models.StatusAvailable,
		DisplayOrder: models.DefaultDisplayOrder,
	}
	if req.Visible != nil {
		p.Visible = *req.Visible
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	if req.DisplayOrder != nil {
		p.DisplayOrder = *req.DisplayOrder
	}

	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if _, err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("Product created")
	return p, nil
}

// List returns every product, hidden ones included, in display order.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.FindAll(ctx)
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, utils.ErrMissingID
	}
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

// Update applies the fields present in req and returns the stored result.
func (s *ProductService) Update(ctx context.Context, id int64, req UpdateProductRequest) (*models.Product, error) {
	if id <= 0 {
		return nil, utils.ErrMissingID
	}

	patch := models.ProductPatch{
		Price:        req.Price,
		Category:     req.Category,
		Visible:      req.Visible,
		Status:       req.Status,
		DisplayOrder: req.DisplayOrder,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if patch.Empty() {
		return nil, utils.ErrEmptyPatch
	}
	if err := validateProductPatch(patch); err != nil {
		return nil, err
	}

	found, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, utils.ErrNotFound
	}

	log.Info().Int64("product_id", id).Msg("Product updated")
	return s.Get(ctx, id)
}

// Delete hides a product. Its row and promotion links stay.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return utils.ErrMissingID
	}
	found, err := s.store.Hide(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return utils.ErrNotFound
	}
	log.Info().Int64("product_id", id).Msg("Product hidden")
	return nil
}

func validateProduct(p *models.Product) error {
	return validateProductPatch(models.ProductPatch{
		Name:         &p.Name,
		Price:        &p.Price,
		Category:     &p.Category,
		Status:       &p.Status,
		DisplayOrder: &p.DisplayOrder,
	})
}

func validateProductPatch(patch models.ProductPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return utils.ErrInvalidName
	}
	if patch.Price != nil && !patch.Price.IsPositive() {
		return fmt.Errorf("%w: got %s", utils.ErrInvalidPrice, patch.Price.String())
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return fmt.Errorf("%w: got %q", utils.ErrInvalidCategory, *patch.Category)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: got %q", utils.ErrInvalidStatus, *patch.Status)
	}
	if patch.DisplayOrder != nil && *patch.DisplayOrder < 0 {
		return utils.ErrInvalidOrder
	}
	return nil
}
