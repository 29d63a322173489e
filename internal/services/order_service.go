package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
	"designhub_backend/pkg/utils"
)

// --- Custom Service Errors for Orders ---
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderForbidden    = errors.New("not allowed to view this order")
	ErrOrderValidation   = errors.New("order data validation error")
	ErrInsufficientStock = errors.New("insufficient stock for one or more items")
)

// --- Order DTOs ---
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(clientID int64, req CreateOrderRequest) (*models.Order, error)
	GetOrderByID(orderID int64, caller models.Principal) (*models.Order, error)
	GetOrdersForClient(clientID int64) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error)
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	notifier    NotificationService
	db          *sql.DB
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	pr repositories.ProductRepository,
	notifier NotificationService,
	db *sql.DB,
) OrderService {
	return &orderService{orderRepo: or, productRepo: pr, notifier: notifier, db: db}
}

// CreateOrder snapshots catalog prices, decrements stock and writes the
// order plus its items inside one transaction. Any failure rolls the whole
// order back.
func (s *orderService) CreateOrder(clientID int64, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrOrderValidation)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", ErrOrderValidation, item.ProductID)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := s.productRepo.GetProductByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product ID %d not found", ErrOrderValidation, item.ProductID)
			}
			return nil, fmt.Errorf("failed to load product for order: %w", err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product ID %d is unavailable", ErrOrderValidation, item.ProductID)
		}

		if err := s.productRepo.DecrementStock(tx, product.ID, item.Quantity); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: product '%s'", ErrInsufficientStock, product.Name)
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}

		totalAmount += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}

	order := &models.Order{
		ClientID:    clientID,
		Status:      models.OrderStatusPending,
		TotalAmount: totalAmount,
	}
	if _, err := s.orderRepo.CreateOrder(tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	for i := range orderItems {
		orderItems[i].OrderID = order.ID
		if err := s.orderRepo.CreateOrderItem(tx, &orderItems[i]); err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transaction: %w", err)
	}

	return s.orderRepo.GetOrderByID(order.ID)
}

func (s *orderService) GetOrderByID(orderID int64, caller models.Principal) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID: %w", err)
	}
	if !caller.IsAdmin() && caller.UserID != order.ClientID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) GetOrdersForClient(clientID int64) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrdersByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for client: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	orders, err := s.orderRepo.GetAllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(orderID int64, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.IsValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("%w: invalid status '%s'", ErrOrderValidation, req.Status)
	}

	order, err := s.orderRepo.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order for status update: %w", err)
	}

	if err := s.orderRepo.UpdateOrderStatus(s.db, orderID, models.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := s.notifier.Dispatch(order.ClientID, "Order status updated",
		fmt.Sprintf("Your order #%d is now %s.", orderID, req.Status),
		models.NotificationCategoryOrder); err != nil {
		utils.LogError(err, fmt.Sprintf("order notification dispatch failed for client %d", order.ClientID))
	}

	return s.orderRepo.GetOrderByID(orderID)
}
