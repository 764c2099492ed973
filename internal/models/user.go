package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Password is nil for accounts created
// through Google sign-in that never set one.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  *string   `gorm:"size:255" json:"-"`
	GoogleID  *string   `gorm:"size:255;index" json:"-"`
	AvatarURL *string   `gorm:"size:512" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
