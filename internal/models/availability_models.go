package models

import "time"

// AvailabilitySlot is a weekly recurring window a designer accepts
// consultations in. DayOfWeek follows time.Weekday (0 = Sunday).
// Times are stored as HH:MM strings; only ordering is validated.
type AvailabilitySlot struct {
	ID         int64     `json:"id" db:"id"`
	DesignerID int64     `json:"designer_id" db:"designer_id"`
	DayOfWeek  int       `json:"day_of_week" db:"day_of_week"`
	StartTime  string    `json:"start_time" db:"start_time"`
	EndTime    string    `json:"end_time" db:"end_time"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
