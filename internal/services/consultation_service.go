package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
	"designhub_backend/pkg/utils"
)

// --- Custom Service Errors for Consultations ---
var (
	ErrConsultationNotFound      = errors.New("consultation not found")
	ErrConsultationForbidden     = errors.New("not allowed to act on this consultation")
	ErrConsultationValidation    = errors.New("consultation data validation error")
	ErrDesignerForBookingMissing = errors.New("designer specified for booking not found")
	ErrIllegalStatusTransition   = errors.New("status transition not allowed from current state")
	ErrStaleConsultationVersion  = errors.New("consultation was modified concurrently, re-read and retry")
)

// --- Consultation DTOs ---

// BookConsultationRequest carries a client's booking submission. Field names
// follow the public API contract.
type BookConsultationRequest struct {
	DesignerID        int64   `json:"designerId" binding:"required"`
	ScheduledDateTime string  `json:"scheduledDateTime" binding:"required"`
	ConsultationType  *string `json:"consultationType"`
	ProjectDetails    *string `json:"projectDetails"`
}

// UpdateConsultationStatusRequest carries a status change. Version, when
// supplied, makes the write a compare-and-swap against the version the
// caller last read.
type UpdateConsultationStatusRequest struct {
	Status  string  `json:"status" binding:"required"`
	Notes   *string `json:"notes"`
	Version *int64  `json:"version"`
}

// --- ConsultationService Interface ---
type ConsultationService interface {
	BookConsultation(clientID int64, req BookConsultationRequest) (*models.Consultation, error)
	GetConsultationByID(id int64, caller models.Principal) (*models.Consultation, error)
	ListForClient(clientID int64) ([]models.Consultation, error)
	ListForDesigner(designerID int64) ([]models.Consultation, error)
	ListAll() ([]models.Consultation, error)
	UpdateStatus(id int64, req UpdateConsultationStatusRequest, caller models.Principal) (*models.Consultation, error)
}

// allowedTransitions is the linear-plus-cancel graph used in strict mode.
// completed and cancelled are terminal.
var allowedTransitions = map[models.ConsultationStatus][]models.ConsultationStatus{
	models.ConsultationStatusPending:    {models.ConsultationStatusConfirmed, models.ConsultationStatusCancelled},
	models.ConsultationStatusConfirmed:  {models.ConsultationStatusInProgress, models.ConsultationStatusCancelled},
	models.ConsultationStatusInProgress: {models.ConsultationStatusCompleted},
	models.ConsultationStatusCompleted:  {},
	models.ConsultationStatusCancelled:  {},
}

func transitionAllowed(from, to models.ConsultationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// --- consultationService Implementation ---
type consultationService struct {
	consultationRepo repositories.ConsultationRepository
	userRepo         repositories.UserRepository
	notifier         NotificationService
	db               *sql.DB
	// strictTransitions switches the engine from the historical permissive
	// behavior (any valid status accepted regardless of current state) to
	// the linear-plus-cancel table above.
	strictTransitions bool
}

// NewConsultationService creates a new instance of ConsultationService.
func NewConsultationService(
	cr repositories.ConsultationRepository,
	ur repositories.UserRepository,
	notifier NotificationService,
	db *sql.DB,
	strictTransitions bool,
) ConsultationService {
	return &consultationService{
		consultationRepo:  cr,
		userRepo:          ur,
		notifier:          notifier,
		db:                db,
		strictTransitions: strictTransitions,
	}
}

// notify dispatches a notification and only logs on failure. A notification
// problem must never fail the booking or status change that triggered it.
func (s *consultationService) notify(recipientID int64, title, message string) {
	if err := s.notifier.Dispatch(recipientID, title, message, models.NotificationCategoryBooking); err != nil {
		utils.LogError(err, fmt.Sprintf("consultation notification dispatch failed for recipient %d", recipientID))
	}
}

func (s *consultationService) BookConsultation(clientID int64, req BookConsultationRequest) (*models.Consultation, error) {
	if req.DesignerID == 0 {
		return nil, fmt.Errorf("%w: designerId is required", ErrConsultationValidation)
	}
	if req.ScheduledDateTime == "" {
		return nil, fmt.Errorf("%w: scheduledDateTime is required", ErrConsultationValidation)
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledDateTime)
	if err != nil {
		return nil, fmt.Errorf("%w: scheduledDateTime must be RFC3339: %v", ErrConsultationValidation, err)
	}

	// The designer must exist and actually be a designer before a booking
	// is written against them.
	if _, err := s.userRepo.FindDesignerByID(req.DesignerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrDesignerForBookingMissing, req.DesignerID)
		}
		return nil, fmt.Errorf("failed to validate designer for booking: %w", err)
	}

	consultationType := models.ConsultationTypeOnline
	if req.ConsultationType != nil && *req.ConsultationType != "" {
		if !models.IsValidConsultationType(*req.ConsultationType) {
			return nil, fmt.Errorf("%w: invalid consultation type '%s'", ErrConsultationValidation, *req.ConsultationType)
		}
		consultationType = models.ConsultationType(*req.ConsultationType)
	}

	consultation := &models.Consultation{
		ClientID:    clientID,
		DesignerID:  req.DesignerID,
		ScheduledAt: scheduledAt,
		Type:        consultationType,
		Status:      models.ConsultationStatusPending,
		Notes:       utils.DerefString(req.ProjectDetails),
	}

	created, err := s.consultationRepo.CreateConsultation(s.db, consultation)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	// Both parties are notified best-effort; the booking already succeeded.
	s.notify(created.ClientID, "Consultation booked",
		fmt.Sprintf("Your consultation request for %s has been submitted and is pending confirmation.",
			created.ScheduledAt.Format(time.RFC3339)))
	s.notify(created.DesignerID, "New consultation request",
		fmt.Sprintf("You have a new consultation request for %s.",
			created.ScheduledAt.Format(time.RFC3339)))

	return s.consultationRepo.GetConsultationByID(created.ID) // fetch with identities joined
}

func (s *consultationService) GetConsultationByID(id int64, caller models.Principal) (*models.Consultation, error) {
	consultation, err := s.consultationRepo.GetConsultationByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation by ID: %w", err)
	}

	// Visible to exactly three audiences: its client, its designer, admins.
	if !caller.IsAdmin() && caller.UserID != consultation.ClientID && caller.UserID != consultation.DesignerID {
		return nil, ErrConsultationForbidden
	}
	return consultation, nil
}

func (s *consultationService) ListForClient(clientID int64) ([]models.Consultation, error) {
	consultations, err := s.consultationRepo.GetConsultationsByClient(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations for client: %w", err)
	}
	return consultations, nil
}

func (s *consultationService) ListForDesigner(designerID int64) ([]models.Consultation, error) {
	consultations, err := s.consultationRepo.GetConsultationsByDesigner(designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations for designer: %w", err)
	}
	return consultations, nil
}

func (s *consultationService) ListAll() ([]models.Consultation, error) {
	consultations, err := s.consultationRepo.GetAllConsultations()
	if err != nil {
		return nil, fmt.Errorf("failed to list all consultations: %w", err)
	}
	return consultations, nil
}

func (s *consultationService) UpdateStatus(id int64, req UpdateConsultationStatusRequest, caller models.Principal) (*models.Consultation, error) {
	if req.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrConsultationValidation)
	}
	if !models.IsValidConsultationStatus(req.Status) {
		return nil, fmt.Errorf("%w: invalid status '%s'", ErrConsultationValidation, req.Status)
	}
	newStatus := models.ConsultationStatus(req.Status)

	consultation, err := s.consultationRepo.GetConsultationByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to find consultation for status update: %w", err)
	}

	// Only the consultation's designer or an admin may change status.
	// Clients never can, their own bookings included.
	if !caller.IsAdmin() && (caller.Role != models.RoleDesigner || caller.UserID != consultation.DesignerID) {
		return nil, ErrConsultationForbidden
	}

	if s.strictTransitions && !transitionAllowed(consultation.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalStatusTransition, consultation.Status, newStatus)
	}

	updated, err := s.consultationRepo.UpdateStatus(s.db, id, newStatus, req.Notes, req.Version)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrStaleConsultationVersion
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to update consultation status: %w", err)
	}

	// The client hears about every successful transition; the caller made
	// the change and is not notified of their own action.
	s.notify(updated.ClientID, "Consultation status updated",
		fmt.Sprintf("Your consultation is now %s.", newStatus))

	return updated, nil
}
