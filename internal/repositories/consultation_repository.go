package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// ConsultationRepository defines the interface for consultation-related database operations.
type ConsultationRepository interface {
	CreateConsultation(executor SQLExecutor, consultation *models.Consultation) (*models.Consultation, error)
	GetConsultationByID(id int64) (*models.Consultation, error)
	GetConsultationsByClient(clientID int64) ([]models.Consultation, error)
	GetConsultationsByDesigner(designerID int64) ([]models.Consultation, error)
	GetAllConsultations() ([]models.Consultation, error)
	// UpdateStatus writes a new status (and optionally notes), bumping the
	// version column. When expectedVersion is non-nil the write is a
	// compare-and-swap and a stale version yields ErrVersionConflict.
	UpdateStatus(executor SQLExecutor, id int64, status models.ConsultationStatus, notes *string, expectedVersion *int64) (*models.Consultation, error)
	CountByStatus() (map[string]int, error)
}

type consultationRepository struct {
	db *sql.DB
}

// NewConsultationRepository creates a new instance of ConsultationRepository.
func NewConsultationRepository(db *sql.DB) ConsultationRepository {
	return &consultationRepository{db: db}
}

const consultationJoins = `
	FROM consultations co
	JOIN users uc ON co.client_id = uc.id
	JOIN users ud ON co.designer_id = ud.id
`

const selectConsultationFields = `
	co.id, co.client_id, co.designer_id, co.scheduled_at, co.consultation_type,
	co.status, co.notes, co.version, co.created_at, co.updated_at,
	uc.id, uc.username, uc.email, uc.full_name,
	ud.id, ud.username, ud.email, ud.full_name
`

// scanConsultationRow scans a consultation row with both joined identities.
func scanConsultationRow(row scanner) (*models.Consultation, error) {
	var consultation models.Consultation
	var client, designer models.UserSummary
	var clientFullName, designerFullName sql.NullString

	err := row.Scan(
		&consultation.ID, &consultation.ClientID, &consultation.DesignerID,
		&consultation.ScheduledAt, &consultation.Type,
		&consultation.Status, &consultation.Notes, &consultation.Version,
		&consultation.CreatedAt, &consultation.UpdatedAt,
		&client.ID, &client.Username, &client.Email, &clientFullName,
		&designer.ID, &designer.Username, &designer.Email, &designerFullName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning consultation with identities: %v", ErrDatabaseError, err)
	}

	if clientFullName.Valid {
		client.FullName = &clientFullName.String
	}
	if designerFullName.Valid {
		designer.FullName = &designerFullName.String
	}
	consultation.Client = &client
	consultation.Designer = &designer
	return &consultation, nil
}

func (r *consultationRepository) CreateConsultation(executor SQLExecutor, consultation *models.Consultation) (*models.Consultation, error) {
	query := `INSERT INTO consultations
	            (client_id, designer_id, scheduled_at, consultation_type, status, notes, version, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	consultation.CreatedAt = currentTime
	consultation.UpdatedAt = currentTime
	consultation.Version = 1

	err := executor.QueryRow(query,
		consultation.ClientID, consultation.DesignerID, consultation.ScheduledAt,
		consultation.Type, consultation.Status, consultation.Notes, consultation.Version,
		consultation.CreatedAt, consultation.UpdatedAt,
	).Scan(&consultation.ID, &consultation.CreatedAt, &consultation.UpdatedAt)

	if err != nil {
		return nil, mapWriteError(err, "creating consultation")
	}
	return consultation, nil
}

func (r *consultationRepository) GetConsultationByID(id int64) (*models.Consultation, error) {
	query := "SELECT " + selectConsultationFields + consultationJoins + " WHERE co.id = $1"
	return scanConsultationRow(r.db.QueryRow(query, id))
}

func (r *consultationRepository) queryConsultations(query string, args ...interface{}) ([]models.Consultation, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying consultations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	consultations := []models.Consultation{}
	for rows.Next() {
		consultation, scanErr := scanConsultationRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		consultations = append(consultations, *consultation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating consultation rows: %v", ErrDatabaseError, err)
	}
	return consultations, nil
}

func (r *consultationRepository) GetConsultationsByClient(clientID int64) ([]models.Consultation, error) {
	query := "SELECT " + selectConsultationFields + consultationJoins +
		" WHERE co.client_id = $1 ORDER BY co.scheduled_at DESC"
	return r.queryConsultations(query, clientID)
}

func (r *consultationRepository) GetConsultationsByDesigner(designerID int64) ([]models.Consultation, error) {
	query := "SELECT " + selectConsultationFields + consultationJoins +
		" WHERE co.designer_id = $1 ORDER BY co.scheduled_at DESC"
	return r.queryConsultations(query, designerID)
}

func (r *consultationRepository) GetAllConsultations() ([]models.Consultation, error) {
	query := "SELECT " + selectConsultationFields + consultationJoins +
		" ORDER BY co.scheduled_at DESC"
	return r.queryConsultations(query)
}

func (r *consultationRepository) UpdateStatus(executor SQLExecutor, id int64, status models.ConsultationStatus, notes *string, expectedVersion *int64) (*models.Consultation, error) {
	query := `UPDATE consultations SET
	            status = $1, notes = COALESCE($2, notes), version = version + 1, updated_at = $3
	          WHERE id = $4`
	args := []interface{}{status, notes, time.Now(), id}
	if expectedVersion != nil {
		query += " AND version = $5"
		args = append(args, *expectedVersion)
	}
	query += " RETURNING version, updated_at"

	var version int64
	var updatedAt time.Time
	err := executor.QueryRow(query, args...).Scan(&version, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Zero rows under a CAS write means either the id is gone or the
			// version is stale; a plain existence probe tells them apart.
			if expectedVersion != nil {
				var exists bool
				probeErr := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM consultations WHERE id = $1)", id).Scan(&exists)
				if probeErr == nil && exists {
					return nil, ErrVersionConflict
				}
			}
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating consultation status ID %d: %v", ErrDatabaseError, id, err)
	}

	return r.GetConsultationByID(id)
}

func (r *consultationRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM consultations GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("%w: counting consultations by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning consultation counts: %v", ErrDatabaseError, err)
		}
		counts[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating consultation counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}
