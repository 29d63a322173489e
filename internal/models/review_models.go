package models

import "time"

// Review is a client's rating of a designer, optionally tied to a completed
// consultation. Rating is constrained to 1..5 in both service and schema.
type Review struct {
	ID             int64     `json:"id" db:"id"`
	ClientID       int64     `json:"client_id" db:"client_id"`
	DesignerID     int64     `json:"designer_id" db:"designer_id"`
	ConsultationID *int64    `json:"consultation_id,omitempty" db:"consultation_id"`
	Rating         int       `json:"rating" db:"rating"`
	Comment        *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	Client *UserSummary `json:"client,omitempty"` // joined reviewer identity
}
