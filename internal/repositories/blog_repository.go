package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// BlogRepository defines the interface for blog post persistence.
type BlogRepository interface {
	CreatePost(executor SQLExecutor, post *models.BlogPost) (*models.BlogPost, error)
	GetPostByID(id int64) (*models.BlogPost, error)
	GetPosts(publishedOnly bool) ([]models.BlogPost, error)
	UpdatePost(executor SQLExecutor, post *models.BlogPost) error
	DeletePost(executor SQLExecutor, id int64) error
	CountPosts() (int, error)
}

type blogRepository struct {
	db *sql.DB
}

// NewBlogRepository creates a new instance of BlogRepository.
func NewBlogRepository(db *sql.DB) BlogRepository {
	return &blogRepository{db: db}
}

const selectBlogFields = `
	bp.id, bp.author_id, bp.title, bp.content, bp.tags, bp.published, bp.created_at, bp.updated_at,
	ua.id, ua.username, ua.email, ua.full_name
`

const blogJoins = `
	FROM blog_posts bp
	JOIN users ua ON bp.author_id = ua.id
`

func scanBlogRow(row scanner) (*models.BlogPost, error) {
	var post models.BlogPost
	var author models.UserSummary
	var tags, authorFullName sql.NullString

	err := row.Scan(
		&post.ID, &post.AuthorID, &post.Title, &post.Content, &tags,
		&post.Published, &post.CreatedAt, &post.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &authorFullName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning blog post: %v", ErrDatabaseError, err)
	}

	if tags.Valid {
		post.Tags = &tags.String
	}
	if authorFullName.Valid {
		author.FullName = &authorFullName.String
	}
	post.Author = &author
	return &post, nil
}

func (r *blogRepository) CreatePost(executor SQLExecutor, post *models.BlogPost) (*models.BlogPost, error) {
	query := `INSERT INTO blog_posts (author_id, title, content, tags, published, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`

	currentTime := time.Now()
	post.CreatedAt = currentTime
	post.UpdatedAt = currentTime

	err := executor.QueryRow(query,
		post.AuthorID, post.Title, post.Content, post.Tags, post.Published,
		post.CreatedAt, post.UpdatedAt,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating blog post")
	}
	return post, nil
}

func (r *blogRepository) GetPostByID(id int64) (*models.BlogPost, error) {
	query := "SELECT " + selectBlogFields + blogJoins + " WHERE bp.id = $1"
	return scanBlogRow(r.db.QueryRow(query, id))
}

func (r *blogRepository) GetPosts(publishedOnly bool) ([]models.BlogPost, error) {
	query := "SELECT " + selectBlogFields + blogJoins
	if publishedOnly {
		query += " WHERE bp.published = true"
	}
	query += " ORDER BY bp.created_at DESC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying blog posts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		post, scanErr := scanBlogRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating blog post rows: %v", ErrDatabaseError, err)
	}
	return posts, nil
}

func (r *blogRepository) UpdatePost(executor SQLExecutor, post *models.BlogPost) error {
	query := `UPDATE blog_posts SET
	            title = $1, content = $2, tags = $3, published = $4, updated_at = $5
	          WHERE id = $6`
	post.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		post.Title, post.Content, post.Tags, post.Published, post.UpdatedAt, post.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: updating blog post ID %d: %v", ErrDatabaseError, post.ID, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blogRepository) DeletePost(executor SQLExecutor, id int64) error {
	result, err := executor.Exec("DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%w: deleting blog post ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *blogRepository) CountPosts() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM blog_posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting blog posts: %v", ErrDatabaseError, err)
	}
	return count, nil
}
