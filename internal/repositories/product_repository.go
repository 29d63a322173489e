package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"designhub_backend/internal/models"
)

// ProductRepository defines the interface for catalog database operations.
type ProductRepository interface {
	CreateProduct(executor SQLExecutor, product *models.Product) (*models.Product, error)
	GetProductByID(id int64) (*models.Product, error)
	GetProducts(filters models.ProductFilters) ([]models.Product, int, error)
	UpdateProduct(executor SQLExecutor, product *models.Product) error
	DeleteProduct(executor SQLExecutor, id int64) error
	// DecrementStock atomically reduces stock; it affects zero rows when the
	// remaining quantity is insufficient, which callers treat as a conflict.
	DecrementStock(executor SQLExecutor, productID int64, quantity int) error
	CountProducts() (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const selectProductFields = `
	id, name, description, price, category, stock_quantity, image_url, is_active, created_at, updated_at
`

func scanProductRow(row scanner, withTotal bool) (*models.Product, int, error) {
	var product models.Product
	var description, imageURL sql.NullString
	var totalCount int

	scanDest := []interface{}{
		&product.ID, &product.Name, &description, &product.Price, &product.Category,
		&product.StockQuantity, &imageURL, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt,
	}
	if withTotal {
		scanDest = append(scanDest, &totalCount)
	}

	err := row.Scan(scanDest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
	}

	if description.Valid {
		product.Description = &description.String
	}
	if imageURL.Valid {
		product.ImageURL = &imageURL.String
	}
	return &product, totalCount, nil
}

func (r *productRepository) CreateProduct(executor SQLExecutor, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products
	            (name, description, price, category, stock_quantity, image_url, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	product.CreatedAt = currentTime
	product.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		product.Name, product.Description, product.Price, product.Category,
		product.StockQuantity, product.ImageURL, product.IsActive,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating product")
	}
	return product, nil
}

func (r *productRepository) GetProductByID(id int64) (*models.Product, error) {
	query := "SELECT " + selectProductFields + " FROM products WHERE id = $1"
	product, _, err := scanProductRow(r.db.QueryRow(query, id), false)
	return product, err
}

func (r *productRepository) GetProducts(filters models.ProductFilters) ([]models.Product, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectProductFields + ", COUNT(*) OVER() AS total_count FROM products")

	conditions := []string{"is_active = true"}
	var args []interface{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}

	queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	queryBuilder.WriteString(" ORDER BY name")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			offset := (filters.Page - 1) * filters.PageSize
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying products: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	products := []models.Product{}
	var totalCount int
	for rows.Next() {
		product, scannedTotal, scanErr := scanProductRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		products = append(products, *product)
		totalCount = scannedTotal
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, totalCount, nil
}

func (r *productRepository) UpdateProduct(executor SQLExecutor, product *models.Product) error {
	query := `UPDATE products SET
	            name = $1, description = $2, price = $3, category = $4,
	            stock_quantity = $5, image_url = $6, is_active = $7, updated_at = $8
	          WHERE id = $9`
	product.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		product.Name, product.Description, product.Price, product.Category,
		product.StockQuantity, product.ImageURL, product.IsActive,
		product.UpdatedAt, product.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating product ID %d: %v", ErrDatabaseError, product.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(executor SQLExecutor, id int64) error {
	result, err := executor.Exec("DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%w: deleting product ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DecrementStock(executor SQLExecutor, productID int64, quantity int) error {
	result, err := executor.Exec(
		`UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = $2
		 WHERE id = $3 AND stock_quantity >= $1`,
		quantity, time.Now(), productID,
	)
	if err != nil {
		return fmt.Errorf("%w: decrementing stock for product ID %d: %v", ErrDatabaseError, productID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) CountProducts() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products WHERE is_active = true").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting products: %v", ErrDatabaseError, err)
	}
	return count, nil
}
