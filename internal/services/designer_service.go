package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
	"designhub_backend/pkg/utils"
)

// --- Custom Service Errors for the Designer Directory ---
var (
	ErrDesignerNotFound  = errors.New("designer not found")
	ErrProfileValidation = errors.New("profile data validation error")
)

// --- Designer DTOs ---

// DesignerProfile is the public profile page payload: identity plus the
// designer's portfolio, active availability and recent reviews.
type DesignerProfile struct {
	models.DesignerListing
	Portfolio    []models.PortfolioItem    `json:"portfolio"`
	Availability []models.AvailabilitySlot `json:"availability"`
	Reviews      []models.Review           `json:"reviews"`
}

// UpdateProfileRequest carries self-service profile edits.
type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// --- DesignerService Interface ---
type DesignerService interface {
	ListDesigners() ([]models.DesignerListing, error)
	GetDesignerProfile(designerID int64) (*DesignerProfile, error)
	UpdateOwnProfile(userID int64, req UpdateProfileRequest) (*models.User, error)
}

// --- designerService Implementation ---
type designerService struct {
	userRepo         repositories.UserRepository
	portfolioRepo    repositories.PortfolioRepository
	availabilityRepo repositories.AvailabilityRepository
	reviewRepo       repositories.ReviewRepository
	db               *sql.DB
}

// NewDesignerService creates a new instance of DesignerService.
func NewDesignerService(
	ur repositories.UserRepository,
	pr repositories.PortfolioRepository,
	ar repositories.AvailabilityRepository,
	rr repositories.ReviewRepository,
	db *sql.DB,
) DesignerService {
	return &designerService{
		userRepo:         ur,
		portfolioRepo:    pr,
		availabilityRepo: ar,
		reviewRepo:       rr,
		db:               db,
	}
}

func (s *designerService) ListDesigners() ([]models.DesignerListing, error) {
	listings, err := s.userRepo.GetDesignerListings()
	if err != nil {
		return nil, fmt.Errorf("failed to list designers: %w", err)
	}
	return listings, nil
}

func (s *designerService) GetDesignerProfile(designerID int64) (*DesignerProfile, error) {
	designer, err := s.userRepo.FindDesignerByID(designerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDesignerNotFound
		}
		return nil, fmt.Errorf("failed to look up designer: %w", err)
	}

	portfolio, err := s.portfolioRepo.GetItemsByDesigner(designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	availability, err := s.availabilityRepo.GetSlotsByDesigner(designerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	reviews, err := s.reviewRepo.GetReviewsByDesigner(designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	profile := &DesignerProfile{
		DesignerListing: models.DesignerListing{
			UserSummary: models.UserSummary{
				ID:       designer.ID,
				Username: designer.Username,
				Email:    designer.Email,
				FullName: designer.FullName,
			},
			Bio:         designer.Bio,
			AvatarURL:   designer.AvatarURL,
			ReviewCount: len(reviews),
		},
		Portfolio:    portfolio,
		Availability: availability,
		Reviews:      reviews,
	}
	if len(reviews) > 0 {
		var sum int
		for _, review := range reviews {
			sum += review.Rating
		}
		avg := float64(sum) / float64(len(reviews))
		profile.AverageRating = &avg
	}
	return profile, nil
}

func (s *designerService) UpdateOwnProfile(userID int64, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user for profile update: %w", err)
	}

	if req.Email != nil {
		if !utils.IsValidEmail(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email '%s'", ErrProfileValidation, *req.Email)
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.userRepo.UpdateProfile(s.db, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
