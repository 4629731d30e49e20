package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/resto_api/internal/schedule"
)

// Promotion is a time-windowed price for a set of products.
//
// Days is decoded once when the row is loaded. When the stored day field could
// not be decoded, DaysErr holds the reason and Days is empty.
type Promotion struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	PromoPrice  decimal.Decimal `json:"promoPrice"`
	Days        schedule.DaySet `json:"activeDays"`
	DaysErr     error           `json:"-"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	ProductIDs  []int64         `json:"productIds"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PromotionPatch lists the fields a promotion update may change. Nil means unchanged.
// A non-nil ProductIDs replaces the whole link set.
type PromotionPatch struct {
	Description *string
	PromoPrice  *decimal.Decimal
	Days        *schedule.DaySet
	StartTime   *string
	EndTime     *string
	ProductIDs  *[]int64
}

// Empty reports whether the patch changes nothing.
func (p PromotionPatch) Empty() bool {
	return p.Description == nil && p.PromoPrice == nil && p.Days == nil &&
		p.StartTime == nil && p.EndTime == nil && p.ProductIDs == nil
}
