package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func respondOrderError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrOrderValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrOrderForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You are not allowed to view this order.", ""))
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process order.", "Internal error"))
	}
}

// CreateOrder handles POST /api/orders. Client only.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.CreateOrder(principal.UserID, req)
	if err != nil {
		respondOrderError(c, err, "CreateOrder: Error from orderService.CreateOrder")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"order": order})
}

// GetOwnOrders handles GET /api/orders/user.
func (h *OrderHandler) GetOwnOrders(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	orders, err := h.orderService.GetOrdersForClient(principal.UserID)
	if err != nil {
		respondOrderError(c, err, "GetOwnOrders: Error from orderService.GetOrdersForClient")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"orders": orders})
}

// GetAllOrders handles GET /api/orders. Admin only.
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		respondOrderError(c, err, "GetAllOrders: Error from orderService.GetAllOrders")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID handles GET /api/orders/:id.
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID", err.Error()))
		return
	}

	order, err := h.orderService.GetOrderByID(id, principal)
	if err != nil {
		respondOrderError(c, err, "GetOrderByID: Error from orderService.GetOrderByID")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus handles PUT /api/orders/:id/status. Admin only.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID", err.Error()))
		return
	}

	var req services.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOrderStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	order, err := h.orderService.UpdateOrderStatus(id, req)
	if err != nil {
		respondOrderError(c, err, "UpdateOrderStatus: Error from orderService.UpdateOrderStatus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"order": order})
}
