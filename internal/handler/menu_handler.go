package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/resto_api/internal/service"
	"github.com/GTDGit/resto_api/internal/utils"
)

// MenuHandler serves the consolidated menu.
type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// GetMenu handles GET /api/v1/menu?timezone=Area/City
func (h *MenuHandler) GetMenu(c *gin.Context) {
	menu, err := h.menuService.GetConsolidatedMenu(c.Request.Context(), c.Query("timezone"))
	if err != nil {
		respondError(c, err, "build menu")
		return
	}
	utils.SuccessList(c, http.StatusOK, "Menu retrieved", menu, len(menu))
}
