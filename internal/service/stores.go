package service

import (
	"context"

	"github.com/GTDGit/resto_api/internal/models"
)

// ProductStore is the product persistence used by the services.
// repository.ProductRepository implements it.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) (int64, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindVisible(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) (bool, error)
	Hide(ctx context.Context, id int64) (bool, error)
}

// PromotionStore is the promotion persistence used by the services.
// repository.PromotionRepository implements it.
type PromotionStore interface {
	Create(ctx context.Context, p *models.Promotion, productIDs []int64) (int64, error)
	FindAll(ctx context.Context) ([]models.Promotion, error)
	FindByID(ctx context.Context, id int64) (*models.Promotion, error)
	Update(ctx context.Context, id int64, patch models.PromotionPatch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
