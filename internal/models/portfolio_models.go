package models

import "time"

// PortfolioItem is a single showcase entry on a designer's profile.
type PortfolioItem struct {
	ID          int64     `json:"id" db:"id"`
	DesignerID  int64     `json:"designer_id" db:"designer_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
