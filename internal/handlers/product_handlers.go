package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"designhub_backend/internal/models"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ProductHandler holds the product service.
type ProductHandler struct {
	productService services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(ps services.ProductService) *ProductHandler {
	return &ProductHandler{productService: ps}
}

func respondProductError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrProductValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrProductNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Product not found.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process product.", "Internal error"))
	}
}

// CreateProduct handles POST /api/products. Admin only.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(req)
	if err != nil {
		respondProductError(c, err, "CreateProduct: Error from productService.CreateProduct")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"product": product})
}

// GetProducts handles GET /api/products. Public, paginated, optional
// category filter.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	category := c.Query("category")
	filters := models.ProductFilters{Category: &category}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filters.Page = page
	}
	if pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		filters.PageSize = pageSize
	}

	products, totalCount, err := h.productService.GetProducts(filters)
	if err != nil {
		respondProductError(c, err, "GetProducts: Error from productService.GetProducts")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"products":    products,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetProductByID handles GET /api/products/:id. Public.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID", err.Error()))
		return
	}

	product, err := h.productService.GetProductByID(id)
	if err != nil {
		respondProductError(c, err, "GetProductByID: Error from productService.GetProductByID")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/products/:id. Admin only.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID", err.Error()))
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateProduct: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	product, err := h.productService.UpdateProduct(id, req)
	if err != nil {
		respondProductError(c, err, "UpdateProduct: Error from productService.UpdateProduct")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/products/:id. Admin only.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid product ID", err.Error()))
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondProductError(c, err, "DeleteProduct: Error from productService.DeleteProduct")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Product deleted"})
}
