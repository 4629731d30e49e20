package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/utils"
)

// MenuService builds the consolidated menu: visible products priced with the
// promotions running at request time.
type MenuService struct {
	products   ProductStore
	promotions PromotionStore
	evaluator  *PromotionEvaluator
}

// NewMenuService creates a new MenuService.
func NewMenuService(products ProductStore, promotions PromotionStore, evaluator *PromotionEvaluator) *MenuService {
	return &MenuService{
		products:   products,
		promotions: promotions,
		evaluator:  evaluator,
	}
}

// GetConsolidatedMenu returns the menu as seen in timezone (blank for the default
// zone), ordered by display order. Each product gets at most one promotion: the
// first active one linked to it, in store order.
func (s *MenuService) GetConsolidatedMenu(ctx context.Context, timezone string) ([]models.MenuEntry, error) {
	loc, err := s.evaluator.Location(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", utils.ErrInvalidTimezone, timezone)
	}

	products, err := s.products.FindVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return []models.MenuEntry{}, nil
	}

	promotions, err := s.promotions.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load promotions: %w", err)
	}

	local := s.evaluator.Now().In(loc)
	active := make([]*models.Promotion, 0, len(promotions))
	for i := range promotions {
		if s.evaluator.ActiveAt(&promotions[i], local) {
			active = append(active, &promotions[i])
		}
	}

	menu := make([]models.MenuEntry, 0, len(products))
	for _, product := range products {
		entry := models.MenuEntry{
			ID:           product.ID,
			Name:         product.Name,
			Category:     product.Category,
			BasePrice:    product.Price,
			FinalPrice:   product.Price,
			DisplayOrder: product.DisplayOrder,
		}
		if promo := s.firstApplicable(active, product.ID); promo != nil {
			entry.FinalPrice = promo.PromoPrice
			entry.ActivePromotion = &models.ActivePromotion{
				ID:          promo.ID,
				Description: promo.Description,
				PromoPrice:  promo.PromoPrice,
				StartTime:   promo.StartTime,
				EndTime:     promo.EndTime,
			}
		}
		menu = append(menu, entry)
	}

	sort.SliceStable(menu, func(i, j int) bool {
		return menu[i].DisplayOrder < menu[j].DisplayOrder
	})

	log.Debug().
		Str("timezone", loc.String()).
		Int("products", len(products)).
		Int("active_promotions", len(active)).
		Msg("Menu consolidated")
	return menu, nil
}

func (s *MenuService) firstApplicable(active []*models.Promotion, productID int64) *models.Promotion {
	for _, p := range active {
		if s.evaluator.IsApplicableToProduct(p, productID) {
			return p
		}
	}
	return nil
}
