package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	Email    string    `json:"email" validate:"required,email"`
	FamilyID uuid.UUID `json:"familyId" validate:"required"`
}

type InviteResponse struct {
	ID        uuid.UUID           `json:"id"`
	Email     string              `json:"email"`
	Code      uuid.UUID           `json:"code"`
	ExpiresAt time.Time           `json:"expiresAt"`
	CreatedAt time.Time           `json:"createdAt"`
	Family    InviteFamilySummary `json:"family"`
}

type InviteFamilySummary struct {
	ID    uuid.UUID          `json:"id"`
	Name  string             `json:"name"`
	Owner InviteOwnerSummary `json:"owner"`
}

type InviteOwnerSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
}

type InviteListResponse struct {
	Invites []InviteResponse `json:"invites"`
}
