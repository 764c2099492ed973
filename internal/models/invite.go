package models

import (
	"time"

	"github.com/google/uuid"
)

// Invite is a pending, single-use offer of membership addressed to an
// email. It is deleted on accept or reject; at most one pending invite
// exists per (family, email) pair.
type Invite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invites_family_email" json:"family_id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex:idx_invites_family_email" json:"email"`
	Code      uuid.UUID `gorm:"type:uuid;not null" json:"code"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	Family Family `gorm:"foreignKey:FamilyID" json:"family"`
}
