package services

import (
	"testing"
	"time"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewRepo struct {
	reviews []models.Review
	nextID  int64
}

func (r *fakeReviewRepo) CreateReview(_ repositories.SQLExecutor, review *models.Review) (*models.Review, error) {
	r.nextID++
	stored := *review
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.reviews = append(r.reviews, stored)
	result := stored
	return &result, nil
}

func (r *fakeReviewRepo) GetReviewsByDesigner(designerID int64) ([]models.Review, error) {
	var out []models.Review
	for _, review := range r.reviews {
		if review.DesignerID == designerID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) CountReviews() (int, error) {
	return len(r.reviews), nil
}

func newReviewTestService(designerIDs ...int64) (ReviewService, *fakeConsultationRepo, *fakeReviewRepo, *fakeNotifier) {
	consultationRepo := newFakeConsultationRepo()
	reviewRepo := &fakeReviewRepo{}
	notifier := &fakeNotifier{}
	svc := NewReviewService(reviewRepo, consultationRepo, newFakeUserRepo(designerIDs...), notifier, nil)
	return svc, consultationRepo, reviewRepo, notifier
}

func TestCreateReview(t *testing.T) {
	svc, _, _, notifier := newReviewTestService(2)

	comment := "Great eye for color"
	review, err := svc.CreateReview(1, CreateReviewRequest{
		DesignerID: 2,
		Rating:     5,
		Comment:    &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), review.ClientID)
	assert.Equal(t, 5, review.Rating)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(2), notifier.sent[0].recipientID)
	assert.Equal(t, models.NotificationCategoryReview, notifier.sent[0].category)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, repo, _ := newReviewTestService(2)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(1, CreateReviewRequest{DesignerID: 2, Rating: rating})
		assert.ErrorIs(t, err, ErrReviewValidation)
	}
	assert.Empty(t, repo.reviews)
}

func TestCreateReviewUnknownDesigner(t *testing.T) {
	svc, _, _, _ := newReviewTestService(2)

	_, err := svc.CreateReview(1, CreateReviewRequest{DesignerID: 77, Rating: 4})
	assert.ErrorIs(t, err, ErrReviewValidation)
}

func TestCreateReviewLinkedConsultation(t *testing.T) {
	svc, consultationRepo, _, _ := newReviewTestService(2)

	consultation, err := consultationRepo.CreateConsultation(nil, &models.Consultation{
		ClientID:   1,
		DesignerID: 2,
		Status:     models.ConsultationStatusCompleted,
	})
	require.NoError(t, err)

	review, err := svc.CreateReview(1, CreateReviewRequest{
		DesignerID:     2,
		ConsultationID: &consultation.ID,
		Rating:         4,
	})
	require.NoError(t, err)
	require.NotNil(t, review.ConsultationID)
	assert.Equal(t, consultation.ID, *review.ConsultationID)
}

func TestCreateReviewConsultationMismatch(t *testing.T) {
	svc, consultationRepo, _, _ := newReviewTestService(2, 3)

	completed, err := consultationRepo.CreateConsultation(nil, &models.Consultation{
		ClientID:   1,
		DesignerID: 2,
		Status:     models.ConsultationStatusCompleted,
	})
	require.NoError(t, err)
	pending, err := consultationRepo.CreateConsultation(nil, &models.Consultation{
		ClientID:   1,
		DesignerID: 2,
		Status:     models.ConsultationStatusPending,
	})
	require.NoError(t, err)

	// Someone else's consultation.
	_, err = svc.CreateReview(42, CreateReviewRequest{
		DesignerID:     2,
		ConsultationID: &completed.ID,
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrReviewConsultationMismatch)

	// Consultation with a different designer.
	_, err = svc.CreateReview(1, CreateReviewRequest{
		DesignerID:     3,
		ConsultationID: &completed.ID,
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrReviewConsultationMismatch)

	// Consultation that never completed.
	_, err = svc.CreateReview(1, CreateReviewRequest{
		DesignerID:     2,
		ConsultationID: &pending.ID,
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrReviewConsultationMismatch)

	// Nonexistent consultation.
	missing := int64(9999)
	_, err = svc.CreateReview(1, CreateReviewRequest{
		DesignerID:     2,
		ConsultationID: &missing,
		Rating:         4,
	})
	assert.ErrorIs(t, err, ErrReviewConsultationMismatch)
}

func TestGetReviewsForDesigner(t *testing.T) {
	svc, _, _, _ := newReviewTestService(2, 3)

	_, err := svc.CreateReview(1, CreateReviewRequest{DesignerID: 2, Rating: 5})
	require.NoError(t, err)
	_, err = svc.CreateReview(1, CreateReviewRequest{DesignerID: 3, Rating: 2})
	require.NoError(t, err)

	reviews, err := svc.GetReviewsForDesigner(2)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}
