package models

import "time"

// ConsultationStatus defines the type for consultation lifecycle states.
type ConsultationStatus string

const (
	ConsultationStatusPending    ConsultationStatus = "pending"
	ConsultationStatusConfirmed  ConsultationStatus = "confirmed"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusCompleted  ConsultationStatus = "completed"
	ConsultationStatusCancelled  ConsultationStatus = "cancelled"
)

// IsValidConsultationStatus checks if the provided status string is a valid ConsultationStatus.
func IsValidConsultationStatus(status string) bool {
	switch ConsultationStatus(status) {
	case ConsultationStatusPending,
		ConsultationStatusConfirmed,
		ConsultationStatusInProgress,
		ConsultationStatusCompleted,
		ConsultationStatusCancelled:
		return true
	default:
		return false
	}
}

// ConsultationType distinguishes online from in-person sessions.
type ConsultationType string

const (
	ConsultationTypeOnline   ConsultationType = "online"
	ConsultationTypeInPerson ConsultationType = "in_person"
)

// IsValidConsultationType checks if the provided type string is a valid ConsultationType.
func IsValidConsultationType(t string) bool {
	switch ConsultationType(t) {
	case ConsultationTypeOnline, ConsultationTypeInPerson:
		return true
	default:
		return false
	}
}

// Consultation is a scheduled engagement between a client and a designer.
// ClientID and DesignerID are immutable after creation; Status and Notes are
// mutated only through the status-update flow. Version increases on every
// status write and backs the optional compare-and-swap check.
type Consultation struct {
	ID          int64              `json:"id" db:"id"`
	ClientID    int64              `json:"client_id" db:"client_id"`
	DesignerID  int64              `json:"designer_id" db:"designer_id"`
	ScheduledAt time.Time          `json:"scheduled_at" db:"scheduled_at"`
	Type        ConsultationType   `json:"consultation_type" db:"consultation_type"`
	Status      ConsultationStatus `json:"status" db:"status"`
	Notes       string             `json:"notes" db:"notes"`
	Version     int64              `json:"version" db:"version"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`

	Client   *UserSummary `json:"client,omitempty"`   // joined client identity
	Designer *UserSummary `json:"designer,omitempty"` // joined designer identity
}
