package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
)

// --- Custom Service Errors for Availability ---
var (
	ErrSlotNotFound   = errors.New("availability slot not found")
	ErrSlotForbidden  = errors.New("not allowed to manage this availability slot")
	ErrSlotValidation = errors.New("availability slot validation error")
)

// --- Availability DTOs ---
type CreateSlotRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type UpdateSlotRequest struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsActive  *bool   `json:"is_active"`
}

// --- AvailabilityService Interface ---
type AvailabilityService interface {
	CreateSlot(designerID int64, req CreateSlotRequest) (*models.AvailabilitySlot, error)
	GetSlotsForDesigner(designerID int64, activeOnly bool) ([]models.AvailabilitySlot, error)
	UpdateSlot(slotID int64, designerID int64, req UpdateSlotRequest) (*models.AvailabilitySlot, error)
	DeleteSlot(slotID int64, designerID int64) error
}

// --- availabilityService Implementation ---
type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	db               *sql.DB
}

// NewAvailabilityService creates a new instance of AvailabilityService.
func NewAvailabilityService(ar repositories.AvailabilityRepository, db *sql.DB) AvailabilityService {
	return &availabilityService{availabilityRepo: ar, db: db}
}

// validateSlotWindow checks the day index and HH:MM ordering.
func validateSlotWindow(dayOfWeek int, startTime, endTime string) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be 0-6", ErrSlotValidation)
	}
	if len(startTime) != 5 || len(endTime) != 5 || startTime[2] != ':' || endTime[2] != ':' {
		return fmt.Errorf("%w: times must be HH:MM", ErrSlotValidation)
	}
	if endTime <= startTime {
		return fmt.Errorf("%w: end_time must be after start_time", ErrSlotValidation)
	}
	return nil
}

func (s *availabilityService) CreateSlot(designerID int64, req CreateSlotRequest) (*models.AvailabilitySlot, error) {
	if err := validateSlotWindow(req.DayOfWeek, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	slot := &models.AvailabilitySlot{
		DesignerID: designerID,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		IsActive:   true,
	}
	created, err := s.availabilityRepo.CreateSlot(s.db, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to create availability slot: %w", err)
	}
	return created, nil
}

func (s *availabilityService) GetSlotsForDesigner(designerID int64, activeOnly bool) ([]models.AvailabilitySlot, error) {
	slots, err := s.availabilityRepo.GetSlotsByDesigner(designerID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability slots: %w", err)
	}
	return slots, nil
}

// loadOwnedSlot fetches a slot and enforces designer ownership.
func (s *availabilityService) loadOwnedSlot(slotID int64, designerID int64) (*models.AvailabilitySlot, error) {
	slot, err := s.availabilityRepo.GetSlotByID(slotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to find availability slot: %w", err)
	}
	if slot.DesignerID != designerID {
		return nil, ErrSlotForbidden
	}
	return slot, nil
}

func (s *availabilityService) UpdateSlot(slotID int64, designerID int64, req UpdateSlotRequest) (*models.AvailabilitySlot, error) {
	slot, err := s.loadOwnedSlot(slotID, designerID)
	if err != nil {
		return nil, err
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		slot.EndTime = *req.EndTime
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}
	if err := validateSlotWindow(slot.DayOfWeek, slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.availabilityRepo.UpdateSlot(s.db, slot); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to update availability slot: %w", err)
	}
	return slot, nil
}

func (s *availabilityService) DeleteSlot(slotID int64, designerID int64) error {
	if _, err := s.loadOwnedSlot(slotID, designerID); err != nil {
		return err
	}
	if err := s.availabilityRepo.DeleteSlot(s.db, slotID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSlotNotFound
		}
		return fmt.Errorf("failed to delete availability slot: %w", err)
	}
	return nil
}
