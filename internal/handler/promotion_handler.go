package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/resto_api/internal/service"
	"github.com/GTDGit/resto_api/internal/utils"
)

// PromotionHandler handles promotion endpoints.
type PromotionHandler struct {
	promotionService *service.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(promotionService *service.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// CreatePromotion handles POST /api/v1/promotions
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req service.CreatePromotionRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, err, "create promotion")
		return
	}

	promotion, err := h.promotionService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create promotion")
		return
	}
	utils.Success(c, http.StatusCreated, "Promotion created", promotion)
}

// ListPromotions handles GET /api/v1/promotions
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	promotions, err := h.promotionService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "retrieve promotions")
		return
	}
	utils.SuccessList(c, http.StatusOK, "Promotions retrieved", promotions, len(promotions))
}

// GetPromotion handles GET /api/v1/promotions/:id
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "retrieve promotion")
		return
	}

	promotion, err := h.promotionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "retrieve promotion")
		return
	}
	utils.Success(c, http.StatusOK, "Promotion retrieved", promotion)
}

// UpdatePromotion handles PUT and PATCH /api/v1/promotions/:id
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "update promotion")
		return
	}

	var req service.UpdatePromotionRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, err, "update promotion")
		return
	}

	promotion, err := h.promotionService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "update promotion")
		return
	}
	utils.Success(c, http.StatusOK, "Promotion updated", promotion)
}

// DeletePromotion handles DELETE /api/v1/promotions/:id
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "delete promotion")
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete promotion")
		return
	}
	utils.Success(c, http.StatusOK, "Promotion deleted", gin.H{"id": id})
}
