package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// AvailabilityRepository defines the interface for availability slot persistence.
type AvailabilityRepository interface {
	CreateSlot(executor SQLExecutor, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error)
	GetSlotByID(id int64) (*models.AvailabilitySlot, error)
	GetSlotsByDesigner(designerID int64, activeOnly bool) ([]models.AvailabilitySlot, error)
	UpdateSlot(executor SQLExecutor, slot *models.AvailabilitySlot) error
	DeleteSlot(executor SQLExecutor, id int64) error
}

type availabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new instance of AvailabilityRepository.
func NewAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

const selectSlotFields = `
	id, designer_id, day_of_week, start_time, end_time, is_active, created_at, updated_at
`

func scanSlotRow(row scanner) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	err := row.Scan(
		&slot.ID, &slot.DesignerID, &slot.DayOfWeek, &slot.StartTime,
		&slot.EndTime, &slot.IsActive, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning availability slot: %v", ErrDatabaseError, err)
	}
	return &slot, nil
}

func (r *availabilityRepository) CreateSlot(executor SQLExecutor, slot *models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	query := `INSERT INTO availability_slots
	            (designer_id, day_of_week, start_time, end_time, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	slot.CreatedAt = currentTime
	slot.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		slot.DesignerID, slot.DayOfWeek, slot.StartTime, slot.EndTime,
		slot.IsActive, slot.CreatedAt, slot.UpdatedAt,
	).Scan(&slot.ID, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating availability slot")
	}
	return slot, nil
}

func (r *availabilityRepository) GetSlotByID(id int64) (*models.AvailabilitySlot, error) {
	query := "SELECT " + selectSlotFields + " FROM availability_slots WHERE id = $1"
	return scanSlotRow(r.db.QueryRow(query, id))
}

func (r *availabilityRepository) GetSlotsByDesigner(designerID int64, activeOnly bool) ([]models.AvailabilitySlot, error) {
	query := "SELECT " + selectSlotFields + " FROM availability_slots WHERE designer_id = $1"
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY day_of_week, start_time"

	rows, err := r.db.Query(query, designerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying availability slots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	slots := []models.AvailabilitySlot{}
	for rows.Next() {
		slot, scanErr := scanSlotRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		slots = append(slots, *slot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating availability slot rows: %v", ErrDatabaseError, err)
	}
	return slots, nil
}

func (r *availabilityRepository) UpdateSlot(executor SQLExecutor, slot *models.AvailabilitySlot) error {
	query := `UPDATE availability_slots SET
	            day_of_week = $1, start_time = $2, end_time = $3, is_active = $4, updated_at = $5
	          WHERE id = $6`
	slot.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		slot.DayOfWeek, slot.StartTime, slot.EndTime, slot.IsActive, slot.UpdatedAt, slot.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating availability slot ID %d: %v", ErrDatabaseError, slot.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *availabilityRepository) DeleteSlot(executor SQLExecutor, id int64) error {
	result, err := executor.Exec("DELETE FROM availability_slots WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%w: deleting availability slot ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
