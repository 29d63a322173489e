package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// OrderRepository defines the interface for order-related database operations.
type OrderRepository interface {
	CreateOrder(executor SQLExecutor, order *models.Order) (*models.Order, error)
	CreateOrderItem(executor SQLExecutor, item *models.OrderItem) error
	GetOrderByID(id int64) (*models.Order, error)
	GetOrdersByClient(clientID int64) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	UpdateOrderStatus(executor SQLExecutor, id int64, status models.OrderStatus) error
	CountOrders() (int, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(executor SQLExecutor, order *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (client_id, status, total_amount, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	order.CreatedAt = currentTime
	order.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		order.ClientID, order.Status, order.TotalAmount, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating order")
	}
	return order, nil
}

func (r *orderRepository) CreateOrderItem(executor SQLExecutor, item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	err := executor.QueryRow(query,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
	).Scan(&item.ID)
	if err != nil {
		return mapWriteError(err, "creating order item")
	}
	return nil
}

func (r *orderRepository) getOrderItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db.Query(
		`SELECT id, order_id, product_id, product_name, quantity, unit_price
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

const selectOrderFields = `
	o.id, o.client_id, o.status, o.total_amount, o.created_at, o.updated_at,
	uc.id, uc.username, uc.email, uc.full_name
`

const orderJoins = `
	FROM orders o
	JOIN users uc ON o.client_id = uc.id
`

func scanOrderRow(row scanner) (*models.Order, error) {
	var order models.Order
	var client models.UserSummary
	var clientFullName sql.NullString

	err := row.Scan(
		&order.ID, &order.ClientID, &order.Status, &order.TotalAmount,
		&order.CreatedAt, &order.UpdatedAt,
		&client.ID, &client.Username, &client.Email, &clientFullName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
	}

	if clientFullName.Valid {
		client.FullName = &clientFullName.String
	}
	order.Client = &client
	return &order, nil
}

func (r *orderRepository) GetOrderByID(id int64) (*models.Order, error) {
	query := "SELECT " + selectOrderFields + orderJoins + " WHERE o.id = $1"
	order, err := scanOrderRow(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.getOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) queryOrders(query string, args ...interface{}) ([]models.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, *order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}

	for i := range orders {
		items, itemsErr := r.getOrderItems(orders[i].ID)
		if itemsErr != nil {
			return nil, itemsErr
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) GetOrdersByClient(clientID int64) ([]models.Order, error) {
	query := "SELECT " + selectOrderFields + orderJoins + " WHERE o.client_id = $1 ORDER BY o.created_at DESC"
	return r.queryOrders(query, clientID)
}

func (r *orderRepository) GetAllOrders() ([]models.Order, error) {
	query := "SELECT " + selectOrderFields + orderJoins + " ORDER BY o.created_at DESC"
	return r.queryOrders(query)
}

func (r *orderRepository) UpdateOrderStatus(executor SQLExecutor, id int64, status models.OrderStatus) error {
	result, err := executor.Exec(
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("%w: updating order status ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *orderRepository) CountOrders() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting orders: %v", ErrDatabaseError, err)
	}
	return count, nil
}
