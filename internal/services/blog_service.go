package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
)

// --- Custom Service Errors for Blog ---
var (
	ErrBlogPostNotFound = errors.New("blog post not found")
	ErrBlogValidation   = errors.New("blog post validation error")
)

// --- Blog DTOs ---
type CreateBlogPostRequest struct {
	Title     string  `json:"title" binding:"required"`
	Content   string  `json:"content" binding:"required"`
	Tags      *string `json:"tags"`
	Published bool    `json:"published"`
}

type UpdateBlogPostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Tags      *string `json:"tags"`
	Published *bool   `json:"published"`
}

// --- BlogService Interface ---
type BlogService interface {
	CreatePost(authorID int64, req CreateBlogPostRequest) (*models.BlogPost, error)
	// GetPostByID returns unpublished posts only when includeUnpublished is set
	// (admin callers); everyone else sees published content.
	GetPostByID(postID int64, includeUnpublished bool) (*models.BlogPost, error)
	GetPosts(includeUnpublished bool) ([]models.BlogPost, error)
	UpdatePost(postID int64, req UpdateBlogPostRequest) (*models.BlogPost, error)
	DeletePost(postID int64) error
}

// --- blogService Implementation ---
type blogService struct {
	blogRepo repositories.BlogRepository
	db       *sql.DB
}

// NewBlogService creates a new instance of BlogService.
func NewBlogService(br repositories.BlogRepository, db *sql.DB) BlogService {
	return &blogService{blogRepo: br, db: db}
}

func (s *blogService) CreatePost(authorID int64, req CreateBlogPostRequest) (*models.BlogPost, error) {
	post := &models.BlogPost{
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	}
	created, err := s.blogRepo.CreatePost(s.db, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}
	return s.blogRepo.GetPostByID(created.ID)
}

func (s *blogService) GetPostByID(postID int64, includeUnpublished bool) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	if !post.Published && !includeUnpublished {
		return nil, ErrBlogPostNotFound
	}
	return post, nil
}

func (s *blogService) GetPosts(includeUnpublished bool) ([]models.BlogPost, error) {
	posts, err := s.blogRepo.GetPosts(!includeUnpublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

func (s *blogService) UpdatePost(postID int64, req UpdateBlogPostRequest) (*models.BlogPost, error) {
	post, err := s.blogRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("failed to find blog post for update: %w", err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrBlogValidation)
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := s.blogRepo.UpdatePost(s.db, post); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBlogPostNotFound
		}
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	return s.blogRepo.GetPostByID(postID)
}

func (s *blogService) DeletePost(postID int64) error {
	if err := s.blogRepo.DeletePost(s.db, postID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBlogPostNotFound
		}
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return nil
}
