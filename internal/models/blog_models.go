package models

import "time"

// BlogPost is an editorial article managed by admins.
type BlogPost struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Tags      *string   `json:"tags,omitempty" db:"tags"` // comma-separated
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Author *UserSummary `json:"author,omitempty"`
}
