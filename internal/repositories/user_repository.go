package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	FindUserByID(id int64) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	// FindDesignerByID resolves a user only when it exists and carries the
	// designer role; used to validate booking targets.
	FindDesignerByID(id int64) (*models.User, error)
	GetDesignerListings() ([]models.DesignerListing, error)
	UpdateProfile(executor SQLExecutor, user *models.User) error
	CountByRole() (map[string]int, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const selectUserFields = `
	id, username, password_hash, email, full_name, role, bio, avatar_url,
	is_active, created_at, updated_at
`

func scanUserRow(row scanner) (*models.User, error) {
	var user models.User
	var fullName, bio, avatarURL sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Email,
		&fullName, &user.Role, &bio, &avatarURL,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}

	if fullName.Valid {
		user.FullName = &fullName.String
	}
	if bio.Valid {
		user.Bio = &bio.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}
	return &user, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users
	            (username, password_hash, email, full_name, role, bio, avatar_url, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	user.CreatedAt = currentTime
	user.UpdatedAt = currentTime

	var id int64
	err := executor.QueryRow(query,
		user.Username, user.PasswordHash, user.Email, user.FullName, user.Role,
		user.Bio, user.AvatarURL, user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteError(err, "creating user")
	}
	return id, nil
}

func (r *userRepository) FindUserByID(id int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1"
	return scanUserRow(r.db.QueryRow(query, id))
}

func (r *userRepository) FindUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE username = $1"
	return scanUserRow(r.db.QueryRow(query, username))
}

func (r *userRepository) FindDesignerByID(id int64) (*models.User, error) {
	query := "SELECT " + selectUserFields + " FROM users WHERE id = $1 AND role = $2 AND is_active = true"
	return scanUserRow(r.db.QueryRow(query, id, models.RoleDesigner))
}

func (r *userRepository) GetDesignerListings() ([]models.DesignerListing, error) {
	query := `
		SELECT u.id, u.username, u.email, u.full_name, u.bio, u.avatar_url,
		       AVG(rv.rating), COUNT(rv.id)
		FROM users u
		LEFT JOIN reviews rv ON rv.designer_id = u.id
		WHERE u.role = $1 AND u.is_active = true
		GROUP BY u.id, u.username, u.email, u.full_name, u.bio, u.avatar_url
		ORDER BY u.username`

	rows, err := r.db.Query(query, models.RoleDesigner)
	if err != nil {
		return nil, fmt.Errorf("%w: querying designer listings: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	listings := []models.DesignerListing{}
	for rows.Next() {
		var listing models.DesignerListing
		var fullName, bio, avatarURL sql.NullString
		var avgRating sql.NullFloat64

		if err := rows.Scan(
			&listing.ID, &listing.Username, &listing.Email, &fullName,
			&bio, &avatarURL, &avgRating, &listing.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning designer listing: %v", ErrDatabaseError, err)
		}

		if fullName.Valid {
			listing.FullName = &fullName.String
		}
		if bio.Valid {
			listing.Bio = &bio.String
		}
		if avatarURL.Valid {
			listing.AvatarURL = &avatarURL.String
		}
		if avgRating.Valid {
			listing.AverageRating = &avgRating.Float64
		}
		listings = append(listings, listing)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating designer listings: %v", ErrDatabaseError, err)
	}
	return listings, nil
}

func (r *userRepository) UpdateProfile(executor SQLExecutor, user *models.User) error {
	query := `UPDATE users SET
	            email = $1, full_name = $2, bio = $3, avatar_url = $4, updated_at = $5
	          WHERE id = $6`
	user.UpdatedAt = time.Now()

	result, err := executor.Exec(query,
		user.Email, user.FullName, user.Bio, user.AvatarURL, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating user profile ID %d", user.ID))
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) CountByRole() (map[string]int, error) {
	rows, err := r.db.Query("SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, fmt.Errorf("%w: counting users by role: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning user counts: %v", ErrDatabaseError, err)
		}
		counts[role] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}
