package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusReversed = "reversed"
)

// Payment is a member's contribution for a calendar month. Reversal is
// a status transition; rows are never deleted. MemberID carries no
// foreign-key constraint so history survives member removal.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"member_id"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
