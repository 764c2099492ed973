package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// FamilyMember links a User to a Family. A user joins a family at most
// once, enforced by the composite unique index.
type FamilyMember struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_family_user" json:"family_id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_family_user" json:"user_id"`
	Role     string    `gorm:"size:20;not null;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}
