package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
)

// --- Custom Service Errors for Portfolio ---
var (
	ErrPortfolioItemNotFound  = errors.New("portfolio item not found")
	ErrPortfolioItemForbidden = errors.New("not allowed to manage this portfolio item")
	ErrPortfolioValidation    = errors.New("portfolio data validation error")
)

// --- Portfolio DTOs ---
type CreatePortfolioItemRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type UpdatePortfolioItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// --- PortfolioService Interface ---
type PortfolioService interface {
	CreateItem(designerID int64, req CreatePortfolioItemRequest) (*models.PortfolioItem, error)
	GetItemsForDesigner(designerID int64) ([]models.PortfolioItem, error)
	UpdateItem(itemID int64, designerID int64, req UpdatePortfolioItemRequest) (*models.PortfolioItem, error)
	DeleteItem(itemID int64, designerID int64) error
}

// --- portfolioService Implementation ---
type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	db            *sql.DB
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(pr repositories.PortfolioRepository, db *sql.DB) PortfolioService {
	return &portfolioService{portfolioRepo: pr, db: db}
}

func (s *portfolioService) CreateItem(designerID int64, req CreatePortfolioItemRequest) (*models.PortfolioItem, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrPortfolioValidation)
	}

	item := &models.PortfolioItem{
		DesignerID:  designerID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	created, err := s.portfolioRepo.CreateItem(s.db, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return created, nil
}

func (s *portfolioService) GetItemsForDesigner(designerID int64) ([]models.PortfolioItem, error) {
	items, err := s.portfolioRepo.GetItemsByDesigner(designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio items: %w", err)
	}
	return items, nil
}

func (s *portfolioService) loadOwnedItem(itemID int64, designerID int64) (*models.PortfolioItem, error) {
	item, err := s.portfolioRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("failed to find portfolio item: %w", err)
	}
	if item.DesignerID != designerID {
		return nil, ErrPortfolioItemForbidden
	}
	return item, nil
}

func (s *portfolioService) UpdateItem(itemID int64, designerID int64, req UpdatePortfolioItemRequest) (*models.PortfolioItem, error) {
	item, err := s.loadOwnedItem(itemID, designerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrPortfolioValidation)
		}
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}

	if err := s.portfolioRepo.UpdateItem(s.db, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("failed to update portfolio item: %w", err)
	}
	return item, nil
}

func (s *portfolioService) DeleteItem(itemID int64, designerID int64) error {
	if _, err := s.loadOwnedItem(itemID, designerID); err != nil {
		return err
	}
	if err := s.portfolioRepo.DeleteItem(s.db, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPortfolioItemNotFound
		}
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	return nil
}
