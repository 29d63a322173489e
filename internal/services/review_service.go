package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
	"designhub_backend/pkg/utils"
)

// --- Custom Service Errors for Reviews ---
var (
	ErrReviewValidation           = errors.New("review data validation error")
	ErrReviewConsultationMismatch = errors.New("consultation does not support this review")
)

// --- Review DTOs ---
type CreateReviewRequest struct {
	DesignerID     int64   `json:"designer_id" binding:"required"`
	ConsultationID *int64  `json:"consultation_id"`
	Rating         int     `json:"rating" binding:"required"`
	Comment        *string `json:"comment"`
}

// --- ReviewService Interface ---
type ReviewService interface {
	CreateReview(clientID int64, req CreateReviewRequest) (*models.Review, error)
	GetReviewsForDesigner(designerID int64) ([]models.Review, error)
}

// --- reviewService Implementation ---
type reviewService struct {
	reviewRepo       repositories.ReviewRepository
	consultationRepo repositories.ConsultationRepository
	userRepo         repositories.UserRepository
	notifier         NotificationService
	db               *sql.DB
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(
	rr repositories.ReviewRepository,
	cr repositories.ConsultationRepository,
	ur repositories.UserRepository,
	notifier NotificationService,
	db *sql.DB,
) ReviewService {
	return &reviewService{
		reviewRepo:       rr,
		consultationRepo: cr,
		userRepo:         ur,
		notifier:         notifier,
		db:               db,
	}
}

func (s *reviewService) CreateReview(clientID int64, req CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrReviewValidation)
	}

	if _, err := s.userRepo.FindDesignerByID(req.DesignerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: designer ID %d", ErrReviewValidation, req.DesignerID)
		}
		return nil, fmt.Errorf("failed to validate designer for review: %w", err)
	}

	// A consultation-backed review must point at the caller's own completed
	// consultation with the reviewed designer.
	if req.ConsultationID != nil {
		consultation, err := s.consultationRepo.GetConsultationByID(*req.ConsultationID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: consultation ID %d not found", ErrReviewConsultationMismatch, *req.ConsultationID)
			}
			return nil, fmt.Errorf("failed to validate consultation for review: %w", err)
		}
		if consultation.ClientID != clientID ||
			consultation.DesignerID != req.DesignerID ||
			consultation.Status != models.ConsultationStatusCompleted {
			return nil, ErrReviewConsultationMismatch
		}
	}

	review := &models.Review{
		ClientID:       clientID,
		DesignerID:     req.DesignerID,
		ConsultationID: req.ConsultationID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	created, err := s.reviewRepo.CreateReview(s.db, review)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if err := s.notifier.Dispatch(req.DesignerID, "New review received",
		fmt.Sprintf("A client left you a %d-star review.", req.Rating),
		models.NotificationCategoryReview); err != nil {
		utils.LogError(err, fmt.Sprintf("review notification dispatch failed for designer %d", req.DesignerID))
	}

	return created, nil
}

func (s *reviewService) GetReviewsForDesigner(designerID int64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetReviewsByDesigner(designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews for designer: %w", err)
	}
	return reviews, nil
}
