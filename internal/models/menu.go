package models

import "github.com/shopspring/decimal"

// MenuEntry is one line of the consolidated menu. It is computed per request
// and never stored.
type MenuEntry struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Category        ProductCategory  `json:"category"`
	BasePrice       decimal.Decimal  `json:"basePrice"`
	FinalPrice      decimal.Decimal  `json:"finalPrice"`
	ActivePromotion *ActivePromotion `json:"activePromotion,omitempty"`
	DisplayOrder    int              `json:"displayOrder"`
}

// ActivePromotion describes the promotion that set a menu entry's final price.
type ActivePromotion struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	PromoPrice  decimal.Decimal `json:"promoPrice"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
}
