package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/schedule"
	"github.com/GTDGit/resto_api/internal/utils"
)

// PromotionService provides promotion-related business logic.
type PromotionService struct {
	store PromotionStore
}

// NewPromotionService constructs a PromotionService.
func NewPromotionService(store PromotionStore) *PromotionService {
	return &PromotionService{store: store}
}

// CreatePromotionRequest represents the request to create a promotion with its product links.
type CreatePromotionRequest struct {
	Description string          `json:"description"`
	PromoPrice  decimal.Decimal `json:"promoPrice"`
	ActiveDays  []int           `json:"activeDays"` // 1 = Monday ... 7 = Sunday
	StartTime   string          `json:"startTime"`  // HH:mm
	EndTime     string          `json:"endTime"`    // HH:mm
	ProductIDs  []int64         `json:"productIds"`
}

// UpdatePromotionRequest represents a partial promotion update. A present
// productIds replaces the link set.
type UpdatePromotionRequest struct {
	Description *string          `json:"description"`
	PromoPrice  *decimal.Decimal `json:"promoPrice"`
	ActiveDays  *[]int           `json:"activeDays"`
	StartTime   *string          `json:"startTime"`
	EndTime     *string          `json:"endTime"`
	ProductIDs  *[]int64         `json:"productIds"`
}

// Create validates req and stores the promotion together with its links.
func (s *PromotionService) Create(ctx context.Context, req CreatePromotionRequest) (*models.Promotion, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, utils.ErrInvalidDescription
	}
	if err := validatePromoPrice(req.PromoPrice); err != nil {
		return nil, err
	}
	days, err := parseDays(req.ActiveDays)
	if err != nil {
		return nil, err
	}
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	productIDs, err := normalizeProductIDs(req.ProductIDs)
	if err != nil {
		return nil, err
	}

	p := &models.Promotion{
		Description: description,
		PromoPrice:  req.PromoPrice,
		Days:        days,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if _, err := s.store.Create(ctx, p, productIDs); err != nil {
		return nil, err
	}

	log.Info().
		Int64("promotion_id", p.ID).
		Ints64("product_ids", productIDs).
		Str("window", p.StartTime+"-"+p.EndTime).
		Msg("Promotion created")
	return p, nil
}

// List returns every promotion in id order.
func (s *PromotionService) List(ctx context.Context) ([]models.Promotion, error) {
	return s.store.FindAll(ctx)
}

// Get returns one promotion.
func (s *PromotionService) Get(ctx context.Context, id int64) (*models.Promotion, error) {
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

// Update applies the fields present in req and returns the stored result. When
// only one end of the window changes, the other end is read from the store so
// that the pair is still checked.
func (s *PromotionService) Update(ctx context.Context, id int64, req UpdatePromotionRequest) (*models.Promotion, error) {
	if id <= 0 {
		return nil, utils.ErrMissingID
	}

	patch := models.PromotionPatch{
		PromoPrice: req.PromoPrice,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, utils.ErrInvalidDescription
		}
		patch.Description = &description
	}
	if req.PromoPrice != nil {
		if err := validatePromoPrice(*req.PromoPrice); err != nil {
			return nil, err
		}
	}
	if req.ActiveDays != nil {
		days, err := parseDays(*req.ActiveDays)
		if err != nil {
			return nil, err
		}
		patch.Days = &days
	}
	if req.ProductIDs != nil {
		ids, err := normalizeProductIDs(*req.ProductIDs)
		if err != nil {
			return nil, err
		}
		patch.ProductIDs = &ids
	}
	if patch.Empty() {
		return nil, utils.ErrEmptyPatch
	}

	if err := s.validatePatchedWindow(ctx, id, patch); err != nil {
		return nil, err
	}

	found, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, utils.ErrNotFound
	}

	log.Info().Int64("promotion_id", id).Msg("Promotion updated")
	return s.Get(ctx, id)
}

// Delete removes a promotion and its product links.
func (s *PromotionService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return utils.ErrMissingID
	}
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return utils.ErrNotFound
	}
	log.Info().Int64("promotion_id", id).Msg("Promotion deleted")
	return nil
}

func (s *PromotionService) validatePatchedWindow(ctx context.Context, id int64, patch models.PromotionPatch) error {
	switch {
	case patch.StartTime == nil && patch.EndTime == nil:
		return nil
	case patch.StartTime != nil && patch.EndTime != nil:
		return validateInterval(*patch.StartTime, *patch.EndTime)
	}

	// One end only: check its format before touching the store.
	if patch.StartTime != nil {
		if err := validateClock("start time", *patch.StartTime); err != nil {
			return err
		}
	} else if err := validateClock("end time", *patch.EndTime); err != nil {
		return err
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return utils.ErrNotFound
	}
	start, end := current.StartTime, current.EndTime
	if patch.StartTime != nil {
		start = *patch.StartTime
	} else {
		end = *patch.EndTime
	}
	if start == end {
		return fmt.Errorf("%w: %s-%s", utils.ErrInvalidInterval, start, end)
	}
	return nil
}

func validatePromoPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: got %s", utils.ErrInvalidPrice, price.String())
	}
	return nil
}

func parseDays(values []int) (schedule.DaySet, error) {
	if len(values) == 0 {
		return 0, utils.ErrInvalidDays
	}
	days := make([]schedule.Weekday, 0, len(values))
	for _, v := range values {
		days = append(days, schedule.Weekday(v))
	}
	set, err := schedule.NewDaySet(days...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", utils.ErrInvalidDays, err)
	}
	return set, nil
}

// validateInterval checks both ends of a window. Windows that cross midnight are
// valid; an empty one (start == end) is not.
func validateInterval(start, end string) error {
	if err := validateClock("start time", start); err != nil {
		return err
	}
	if err := validateClock("end time", end); err != nil {
		return err
	}
	if start == end {
		return fmt.Errorf("%w: %s-%s", utils.ErrInvalidInterval, start, end)
	}
	return nil
}

func validateClock(field, value string) error {
	err := schedule.ValidateQuarterHour(value)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, schedule.ErrClockStep):
		return fmt.Errorf("%s %q: %w", field, value, utils.ErrInvalidTimeStep)
	default:
		return fmt.Errorf("%s %q: %w", field, value, utils.ErrInvalidTimeFormat)
	}
}

// normalizeProductIDs drops duplicates, keeping first-seen order.
func normalizeProductIDs(ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: product id %d", utils.ErrLinkedProduct, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
