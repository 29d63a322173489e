package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// ReviewRepository defines the interface for review-related database operations.
type ReviewRepository interface {
	CreateReview(executor SQLExecutor, review *models.Review) (*models.Review, error)
	GetReviewsByDesigner(designerID int64) ([]models.Review, error)
	CountReviews() (int, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(executor SQLExecutor, review *models.Review) (*models.Review, error) {
	query := `INSERT INTO reviews
	            (client_id, designer_id, consultation_id, rating, comment, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	review.CreatedAt = currentTime
	review.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		review.ClientID, review.DesignerID, review.ConsultationID,
		review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating review")
	}
	return review, nil
}

func (r *reviewRepository) GetReviewsByDesigner(designerID int64) ([]models.Review, error) {
	query := `
		SELECT rv.id, rv.client_id, rv.designer_id, rv.consultation_id,
		       rv.rating, rv.comment, rv.created_at, rv.updated_at,
		       uc.id, uc.username, uc.email, uc.full_name
		FROM reviews rv
		JOIN users uc ON rv.client_id = uc.id
		WHERE rv.designer_id = $1
		ORDER BY rv.created_at DESC`

	rows, err := r.db.Query(query, designerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reviews: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		var client models.UserSummary
		var consultationID sql.NullInt64
		var comment, clientFullName sql.NullString

		if err := rows.Scan(
			&review.ID, &review.ClientID, &review.DesignerID, &consultationID,
			&review.Rating, &comment, &review.CreatedAt, &review.UpdatedAt,
			&client.ID, &client.Username, &client.Email, &clientFullName,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("%w: scanning review: %v", ErrDatabaseError, err)
		}

		if consultationID.Valid {
			review.ConsultationID = &consultationID.Int64
		}
		if comment.Valid {
			review.Comment = &comment.String
		}
		if clientFullName.Valid {
			client.FullName = &clientFullName.String
		}
		review.Client = &client
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating review rows: %v", ErrDatabaseError, err)
	}
	return reviews, nil
}

func (r *reviewRepository) CountReviews() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting reviews: %v", ErrDatabaseError, err)
	}
	return count, nil
}
