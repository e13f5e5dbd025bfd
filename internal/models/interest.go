package models

import (
	"time"

	"github.com/vivahmatch/backend/internal/constants"
)

// Interest is a one-directional signal from one profile to another.
// At most one exists per ordered (from, to) pair.
type Interest struct {
	ID            string    `json:"id" db:"id"`
	FromProfileID string    `json:"fromProfileId" db:"from_profile_id"`
	ToProfileID   string    `json:"toProfileId" db:"to_profile_id"`
	Status        string    `json:"status" db:"status"`
	Message       string    `json:"message,omitempty" db:"message"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// NewInterest creates an interest in the sent state.
func NewInterest(id, from, to, message string) *Interest {
	now := time.Now().UTC()
	return &Interest{
		ID:            id,
		FromProfileID: from,
		ToProfileID:   to,
		Status:        constants.InterestStatusSent,
		Message:       message,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// TableName returns the database table name for the Interest model.
func (i *Interest) TableName() string {
	return "interests"
}

// CanTransitionTo reports whether status is a legal next state.
// Only sent interests can be answered, and only with accepted or declined.
func (i *Interest) CanTransitionTo(status string) bool {
	if i.Status != constants.InterestStatusSent {
		return false
	}
	return status == constants.InterestStatusAccepted || status == constants.InterestStatusDeclined
}

// InterestCreate is the request body for sending an interest.
type InterestCreate struct {
	FromProfileID string `json:"fromProfileId" validate:"required,len=8,alphanum"`
	ToProfileID   string `json:"toProfileId" validate:"required,len=8,alphanum"`
	Message       string `json:"message" validate:"omitempty,max=500"`
}

// InterestStatusUpdate is the request body for answering an interest.
type InterestStatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}
