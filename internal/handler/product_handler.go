package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/resto_api/internal/service"
	"github.com/GTDGit/resto_api/internal/utils"
)

// ProductHandler handles product catalog endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, err, "create product")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create product")
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", product)
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "retrieve products")
		return
	}
	utils.SuccessList(c, http.StatusOK, "Products retrieved", products, len(products))
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "retrieve product")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "retrieve product")
		return
	}
	utils.Success(c, http.StatusOK, "Product retrieved", product)
}

// UpdateProduct handles PUT and PATCH /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "update product")
		return
	}

	var req service.UpdateProductRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, err, "update product")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "update product")
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct handles DELETE /api/v1/products/:id. The product is hidden, not removed.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err, "delete product")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete product")
		return
	}
	utils.Success(c, http.StatusOK, "Product hidden", gin.H{"id": id, "visible": false})
}
