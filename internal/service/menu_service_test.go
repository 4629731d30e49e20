package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/resto_api/internal/models"
	"github.com/GTDGit/resto_api/internal/pkg/clock"
	"github.com/GTDGit/resto_api/internal/schedule"
	"github.com/GTDGit/resto_api/internal/service/servicetest"
	"github.com/GTDGit/resto_api/internal/utils"
)

func product(id int64, price int64, order int) models.Product {
	return models.Product{
		ID:           id,
		Name:         "product",
		Price:        decimal.NewFromInt(price),
		Category:     models.CategoryMainCourse,
		Visible:      true,
		Status:       models.StatusAvailable,
		DisplayOrder: order,
	}
}

func newMenuFixture(t *testing.T, at time.Time) (*MenuService, *servicetest.ProductStore, *servicetest.PromotionStore, *clock.MockClock) {
	t.Helper()
	products := &servicetest.ProductStore{}
	promotions := &servicetest.PromotionStore{}
	mc := clock.NewMockClock(at)
	svc := NewMenuService(products, promotions, NewPromotionEvaluator(mc, saoPaulo(t)))
	return svc, products, promotions, mc
}

func TestGetConsolidatedMenu_NoPromotionsOrdersByDisplayOrder(t *testing.T) {
	svc, products, _, _ := newMenuFixture(t, time.Now())
	products.Items = []models.Product{product(1, 100, 2), product(2, 50, 1)}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, int64(2), menu[0].ID)
	assert.Equal(t, int64(1), menu[1].ID)
	for _, entry := range menu {
		assert.True(t, entry.FinalPrice.Equal(entry.BasePrice))
		assert.Nil(t, entry.ActivePromotion)
	}
}

func TestGetConsolidatedMenu_AppliesActivePromotion(t *testing.T) {
	loc := saoPaulo(t)
	svc, products, promotions, mc := newMenuFixture(t, time.Date(2026, 10, 12, 23, 0, 0, 0, loc))
	products.Items = []models.Product{product(1, 100, 2), product(2, 50, 1)}
	promotions.Items = []models.Promotion{*lateNight(t)}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, menu, 2)

	discounted := menu[1]
	assert.Equal(t, int64(1), discounted.ID)
	assert.True(t, discounted.BasePrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, discounted.FinalPrice.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, discounted.ActivePromotion)
	assert.Equal(t, "Late night", discounted.ActivePromotion.Description)
	assert.Equal(t, "22:00", discounted.ActivePromotion.StartTime)
	assert.Equal(t, "02:00", discounted.ActivePromotion.EndTime)
	assert.Nil(t, menu[0].ActivePromotion)

	mc.Set(time.Date(2026, 10, 12, 12, 0, 0, 0, loc))
	menu, err = svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, menu[1].FinalPrice.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, menu[1].ActivePromotion)

	mc.Set(time.Date(2026, 10, 13, 1, 0, 0, 0, loc))
	menu, err = svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, menu[1].ActivePromotion)
}

func TestGetConsolidatedMenu_FirstActivePromotionWins(t *testing.T) {
	loc := saoPaulo(t)
	svc, products, promotions, _ := newMenuFixture(t, time.Date(2026, 10, 12, 23, 0, 0, 0, loc))
	products.Items = []models.Product{product(1, 100, 1)}

	first := lateNight(t)
	first.ID, first.PromoPrice = 7, decimal.NewFromInt(80)
	second := lateNight(t)
	second.ID, second.PromoPrice = 8, decimal.NewFromInt(10)
	promotions.Items = []models.Promotion{*first, *second}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, menu, 1)
	require.NotNil(t, menu[0].ActivePromotion)
	assert.Equal(t, int64(7), menu[0].ActivePromotion.ID)
	assert.True(t, menu[0].FinalPrice.Equal(decimal.NewFromInt(80)))
}

func TestGetConsolidatedMenu_SkipsMalformedAndUnlinkedPromotions(t *testing.T) {
	loc := saoPaulo(t)
	svc, products, promotions, _ := newMenuFixture(t, time.Date(2026, 10, 12, 23, 0, 0, 0, loc))
	products.Items = []models.Product{product(1, 100, 1)}

	broken := lateNight(t)
	broken.ID, broken.Days, broken.DaysErr = 1, 0, errors.New("unexpected end of JSON input")
	unlinked := lateNight(t)
	unlinked.ID, unlinked.ProductIDs = 2, nil
	good := lateNight(t)
	good.ID = 3
	promotions.Items = []models.Promotion{*broken, *unlinked, *good}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.NotNil(t, menu[0].ActivePromotion)
	assert.Equal(t, int64(3), menu[0].ActivePromotion.ID)
}

func TestGetConsolidatedMenu_HiddenAndUnavailableProductsExcluded(t *testing.T) {
	svc, products, _, _ := newMenuFixture(t, time.Now())
	hidden := product(1, 10, 1)
	hidden.Visible = false
	sold := product(2, 10, 2)
	sold.Status = models.StatusUnavailable
	products.Items = []models.Product{hidden, sold, product(3, 10, 3)}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, int64(3), menu[0].ID)
}

func TestGetConsolidatedMenu_EqualOrderKeepsStoreOrder(t *testing.T) {
	svc, products, _, _ := newMenuFixture(t, time.Now())
	products.Items = []models.Product{product(5, 10, 1), product(3, 10, 1), product(4, 10, 0)}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, menu, 3)
	assert.Equal(t, []int64{4, 5, 3}, []int64{menu[0].ID, menu[1].ID, menu[2].ID})
}

func TestGetConsolidatedMenu_EmptyCatalogSkipsPromotions(t *testing.T) {
	svc, _, promotions, _ := newMenuFixture(t, time.Now())
	promotions.Err = errors.New("must not be called")

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, menu)
	assert.Empty(t, menu)
}

func TestGetConsolidatedMenu_InvalidTimezone(t *testing.T) {
	svc, products, _, _ := newMenuFixture(t, time.Now())

	_, err := svc.GetConsolidatedMenu(context.Background(), "Nowhere/Land")
	assert.ErrorIs(t, err, utils.ErrInvalidTimezone)
	assert.Equal(t, 0, products.VisibleCalls)
}

func TestGetConsolidatedMenu_TimezoneParameter(t *testing.T) {
	loc := saoPaulo(t)
	svc, products, promotions, _ := newMenuFixture(t, time.Date(2026, 10, 12, 23, 0, 0, 0, loc))
	products.Items = []models.Product{product(1, 100, 1)}
	promotions.Items = []models.Promotion{*lateNight(t)}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "Asia/Tokyo")
	require.NoError(t, err)
	assert.Nil(t, menu[0].ActivePromotion)

	menu, err = svc.GetConsolidatedMenu(context.Background(), "America/Sao_Paulo")
	require.NoError(t, err)
	assert.NotNil(t, menu[0].ActivePromotion)
}

func TestGetConsolidatedMenu_StoreErrorsPropagate(t *testing.T) {
	svc, products, _, _ := newMenuFixture(t, time.Now())
	boom := errors.New("connection refused")
	products.Err = boom

	_, err := svc.GetConsolidatedMenu(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}

func TestGetConsolidatedMenu_WeekdayListFromMultipleDays(t *testing.T) {
	loc := saoPaulo(t)
	svc, products, promotions, _ := newMenuFixture(t, time.Date(2026, 10, 16, 12, 0, 0, 0, loc))
	products.Items = []models.Product{product(1, 40, 1)}
	promotions.Items = []models.Promotion{{
		ID:          9,
		Description: "Lunch",
		PromoPrice:  decimal.RequireFromString("29.90"),
		Days:        daySet(t, schedule.Monday, schedule.Friday),
		StartTime:   "11:00",
		EndTime:     "15:00",
		ProductIDs:  []int64{1},
	}}

	menu, err := svc.GetConsolidatedMenu(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "29.9", menu[0].FinalPrice.String())
}
