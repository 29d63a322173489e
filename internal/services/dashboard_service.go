package services

import (
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
)

// --- DashboardService Interface ---
type DashboardService interface {
	GetSummary() (*models.DashboardSummary, error)
}

// --- dashboardService Implementation ---
type dashboardService struct {
	userRepo         repositories.UserRepository
	consultationRepo repositories.ConsultationRepository
	orderRepo        repositories.OrderRepository
	reviewRepo       repositories.ReviewRepository
	productRepo      repositories.ProductRepository
	blogRepo         repositories.BlogRepository
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(
	ur repositories.UserRepository,
	cr repositories.ConsultationRepository,
	or repositories.OrderRepository,
	rr repositories.ReviewRepository,
	pr repositories.ProductRepository,
	br repositories.BlogRepository,
) DashboardService {
	return &dashboardService{
		userRepo:         ur,
		consultationRepo: cr,
		orderRepo:        or,
		reviewRepo:       rr,
		productRepo:      pr,
		blogRepo:         br,
	}
}

// GetSummary issues the independent count reads concurrently and joins the
// results; the reads share no state and have no ordering dependency.
func (s *dashboardService) GetSummary() (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	var g errgroup.Group

	g.Go(func() error {
		counts, err := s.userRepo.CountByRole()
		if err != nil {
			return err
		}
		summary.UsersByRole = counts
		return nil
	})
	g.Go(func() error {
		counts, err := s.consultationRepo.CountByStatus()
		if err != nil {
			return err
		}
		summary.ConsultationsByStatus = counts
		return nil
	})
	g.Go(func() error {
		count, err := s.orderRepo.CountOrders()
		if err != nil {
			return err
		}
		summary.TotalOrders = count
		return nil
	})
	g.Go(func() error {
		count, err := s.reviewRepo.CountReviews()
		if err != nil {
			return err
		}
		summary.TotalReviews = count
		return nil
	})
	g.Go(func() error {
		count, err := s.productRepo.CountProducts()
		if err != nil {
			return err
		}
		summary.TotalProducts = count
		return nil
	})
	g.Go(func() error {
		count, err := s.blogRepo.CountPosts()
		if err != nil {
			return err
		}
		summary.TotalBlogPosts = count
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	return summary, nil
}
