package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/pkg/clock"
	"github.com/GTDGit/resto_api/internal/schedule"
)

// PromotionEvaluator decides whether a promotion is running at a given instant
// and whether it applies to a product. It never fails: a promotion it cannot
// read is logged and reported as inactive.
type PromotionEvaluator struct {
	clock      clock.Clock
	defaultLoc *time.Location
}

// NewPromotionEvaluator creates a PromotionEvaluator. defaultLoc is used when a
// caller gives no timezone.
func NewPromotionEvaluator(c clock.Clock, defaultLoc *time.Location) *PromotionEvaluator {
	return &PromotionEvaluator{clock: c, defaultLoc: defaultLoc}
}

// Now returns the evaluator's current instant.
func (e *PromotionEvaluator) Now() time.Time {
	return e.clock.Now()
}

// Location resolves timezone, falling back to the default zone when blank.
func (e *PromotionEvaluator) Location(timezone string) (*time.Location, error) {
	return schedule.LoadLocation(timezone, e.defaultLoc)
}

// IsActiveNow reports whether p is running at the instant at, seen in timezone.
// A zero at means now; a blank timezone means the default zone.
func (e *PromotionEvaluator) IsActiveNow(p *models.Promotion, at time.Time, timezone string) bool {
	if at.IsZero() {
		at = e.clock.Now()
	}
	loc, err := e.Location(timezone)
	if err != nil {
		log.Warn().Err(err).Int64("promotion_id", p.ID).Msg("Cannot evaluate promotion in timezone")
		return false
	}
	return e.ActiveAt(p, at.In(loc))
}

// ActiveAt reports whether p is running at local, whose location already is the
// zone of interest. The day check comes first: a window that spills past
// midnight only counts on the days in the set, by the calendar day of local.
func (e *PromotionEvaluator) ActiveAt(p *models.Promotion, local time.Time) bool {
	if p.DaysErr != nil {
		log.Warn().Err(p.DaysErr).Int64("promotion_id", p.ID).Msg("Malformed active days, promotion treated as inactive")
		return false
	}
	if p.Days.Empty() {
		log.Debug().Int64("promotion_id", p.ID).Msg("Promotion has no active days")
		return false
	}

	day, minute := schedule.Local(local, local.Location())
	if !p.Days.Has(day) {
		return false
	}

	window, err := schedule.ParseWindow(p.StartTime, p.EndTime)
	if err != nil {
		log.Warn().Err(err).Int64("promotion_id", p.ID).Msg("Malformed promotion window, promotion treated as inactive")
		return false
	}

	active := window.Contains(minute)
	log.Debug().
		Int64("promotion_id", p.ID).
		Str("day", day.String()).
		Int("minute", minute).
		Int("start", window.Start).
		Int("end", window.End).
		Bool("active", active).
		Msg("Promotion evaluated")
	return active
}

// IsApplicableToProduct reports whether productID is linked to p. A promotion
// without links applies to nothing.
func (e *PromotionEvaluator) IsApplicableToProduct(p *models.Promotion, productID int64) bool {
	for _, id := range p.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
