package services

import (
	"testing"
	"time"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order), nextID: 1}
}

func (r *fakeOrderRepo) CreateOrder(_ repositories.SQLExecutor, order *models.Order) (*models.Order, error) {
	order.ID = r.nextID
	stored := *order
	stored.CreatedAt = time.Now()
	r.orders[stored.ID] = &stored
	r.nextID++
	result := stored
	return &result, nil
}

func (r *fakeOrderRepo) CreateOrderItem(_ repositories.SQLExecutor, item *models.OrderItem) error {
	order, ok := r.orders[item.OrderID]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Items = append(order.Items, *item)
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(id int64) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	result := *order
	return &result, nil
}

func (r *fakeOrderRepo) GetOrdersByClient(clientID int64) ([]models.Order, error) {
	var out []models.Order
	for _, order := range r.orders {
		if order.ClientID == clientID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAllOrders() ([]models.Order, error) {
	var out []models.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(_ repositories.SQLExecutor, id int64, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) CountOrders() (int, error) {
	return len(r.orders), nil
}

func newOrderTestService() (OrderService, *fakeOrderRepo, *fakeNotifier) {
	orderRepo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewOrderService(orderRepo, nil, notifier, nil)
	return svc, orderRepo, notifier
}

func seedOrder(repo *fakeOrderRepo, clientID int64) *models.Order {
	order, _ := repo.CreateOrder(nil, &models.Order{
		ClientID:    clientID,
		Status:      models.OrderStatusPending,
		TotalAmount: 120.50,
	})
	return order
}

func TestGetOrderVisibility(t *testing.T) {
	svc, repo, _ := newOrderTestService()
	order := seedOrder(repo, 1)

	got, err := svc.GetOrderByID(order.ID, clientPrincipal(1))
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = svc.GetOrderByID(order.ID, adminPrincipal())
	require.NoError(t, err)

	_, err = svc.GetOrderByID(order.ID, clientPrincipal(42))
	assert.ErrorIs(t, err, ErrOrderForbidden)

	_, err = svc.GetOrderByID(9999, adminPrincipal())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, repo, notifier := newOrderTestService()
	order := seedOrder(repo, 1)

	updated, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: string(models.OrderStatusPaid)})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(1), notifier.sent[0].recipientID)
	assert.Equal(t, models.NotificationCategoryOrder, notifier.sent[0].category)
}

func TestUpdateOrderStatusInvalid(t *testing.T) {
	svc, repo, _ := newOrderTestService()
	order := seedOrder(repo, 1)

	_, err := svc.UpdateOrderStatus(order.ID, UpdateOrderStatusRequest{Status: "teleported"})
	assert.ErrorIs(t, err, ErrOrderValidation)
	assert.Equal(t, models.OrderStatusPending, repo.orders[order.ID].Status)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _ := newOrderTestService()

	_, err := svc.CreateOrder(1, CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrOrderValidation)

	_, err = svc.CreateOrder(1, CreateOrderRequest{Items: []OrderItemRequest{{ProductID: 1, Quantity: 0}}})
	assert.ErrorIs(t, err, ErrOrderValidation)
}
