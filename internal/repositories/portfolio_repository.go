package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// PortfolioRepository defines the interface for portfolio item persistence.
type PortfolioRepository interface {
	CreateItem(executor SQLExecutor, item *models.PortfolioItem) (*models.PortfolioItem, error)
	GetItemByID(id int64) (*models.PortfolioItem, error)
	GetItemsByDesigner(designerID int64) ([]models.PortfolioItem, error)
	UpdateItem(executor SQLExecutor, item *models.PortfolioItem) error
	DeleteItem(executor SQLExecutor, id int64) error
}

type portfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new instance of PortfolioRepository.
func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

const selectPortfolioFields = `
	id, designer_id, title, description, image_url, created_at, updated_at
`

func scanPortfolioRow(row scanner) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	var description, imageURL sql.NullString

	err := row.Scan(
		&item.ID, &item.DesignerID, &item.Title, &description, &imageURL,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning portfolio item: %v", ErrDatabaseError, err)
	}

	if description.Valid {
		item.Description = &description.String
	}
	if imageURL.Valid {
		item.ImageURL = &imageURL.String
	}
	return &item, nil
}

func (r *portfolioRepository) CreateItem(executor SQLExecutor, item *models.PortfolioItem) (*models.PortfolioItem, error) {
	query := `INSERT INTO portfolio_items
	            (designer_id, title, description, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	item.CreatedAt = currentTime
	item.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		item.DesignerID, item.Title, item.Description, item.ImageURL,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating portfolio item")
	}
	return item, nil
}

func (r *portfolioRepository) GetItemByID(id int64) (*models.PortfolioItem, error) {
	query := "SELECT " + selectPortfolioFields + " FROM portfolio_items WHERE id = $1"
	return scanPortfolioRow(r.db.QueryRow(query, id))
}

func (r *portfolioRepository) GetItemsByDesigner(designerID int64) ([]models.PortfolioItem, error) {
	query := "SELECT " + selectPortfolioFields + " FROM portfolio_items WHERE designer_id = $1 ORDER BY created_at DESC"

	rows, err := r.db.Query(query, designerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying portfolio items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		item, scanErr := scanPortfolioRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		items = append(items, *item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating portfolio rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *portfolioRepository) UpdateItem(executor SQLExecutor, item *models.PortfolioItem) error {
	query := `UPDATE portfolio_items SET
	            title = $1, description = $2, image_url = $3, updated_at = $4
	          WHERE id = $5`
	item.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		item.Title, item.Description, item.ImageURL, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating portfolio item ID %d: %v", ErrDatabaseError, item.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *portfolioRepository) DeleteItem(executor SQLExecutor, id int64) error {
	result, err := executor.Exec("DELETE FROM portfolio_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%w: deleting portfolio item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
