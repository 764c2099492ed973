package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// inviteTTL is how long an invite stays acceptable.
const inviteTTL = 7 * 24 * time.Hour

type InviteService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewInviteService(db *gorm.DB) *InviteService {
	return &InviteService{db: db, now: time.Now}
}

// Create issues an invite for an email to join a family. Only family
// admins may invite, and at most one pending invite exists per
// (family, email) pair.
func (s *InviteService) Create(userID uuid.UUID, familyID uuid.UUID, email string) error {
	var membership models.FamilyMember
	err := s.db.Where("family_id = ? AND user_id = ?", familyID, userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFamilyMember
	}
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}
	if membership.Role != models.RoleAdmin {
		return ErrNotFamilyAdmin
	}

	var existing models.Invite
	if err := s.db.Where("family_id = ? AND email = ?", familyID, email).First(&existing).Error; err == nil {
		return ErrInviteExists
	}

	invite := models.Invite{
		ID:        uuid.New(),
		FamilyID:  familyID,
		Email:     email,
		Code:      uuid.New(),
		ExpiresAt: s.now().Add(inviteTTL),
	}
	if err := s.db.Create(&invite).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

// ListForUser returns the invites addressed to the caller's email with
// their family and owner summaries.
func (s *InviteService) ListForUser(userID uuid.UUID) ([]models.Invite, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	var invites []models.Invite
	err := s.db.Where("email = ?", user.Email).
		Preload("Family.Owner").
		Order("created_at DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	return invites, nil
}

// Accept turns an invite into a membership. The membership insert and
// the invite delete share one transaction, so a repeat accept finds no
// invite and fails without creating a duplicate membership.
func (s *InviteService) Accept(userID, inviteID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	var invite models.Invite
	err := s.db.Where("id = ? AND email = ?", inviteID, user.Email).First(&invite).Error
	if err != nil {
		return ErrInviteNotFound
	}

	if s.now().After(invite.ExpiresAt) {
		return ErrInviteExpired
	}

	var existing models.FamilyMember
	err = s.db.Where("family_id = ? AND user_id = ?", invite.FamilyID, userID).First(&existing).Error
	if err == nil {
		return ErrAlreadyMember
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", invite.FamilyID).Error; err != nil {
		return ErrFamilyNotFound
	}

	var memberCount int64
	if err := s.db.Model(&models.FamilyMember{}).
		Where("family_id = ?", invite.FamilyID).Count(&memberCount).Error; err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if memberCount >= int64(family.MaxMembers) {
		return ErrFamilyFull
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		member := models.FamilyMember{
			ID:       uuid.New(),
			FamilyID: invite.FamilyID,
			UserID:   userID,
			Role:     models.RoleMember,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create membership: %w", err)
		}
		if err := tx.Delete(&invite).Error; err != nil {
			return fmt.Errorf("failed to delete invite: %w", err)
		}
		return nil
	})
}

// Reject deletes an invite. Allowed to the invited recipient or to any
// admin of the target family (revocation).
func (s *InviteService) Reject(userID, inviteID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	var invite models.Invite
	if err := s.db.First(&invite, "id = ?", inviteID).Error; err != nil {
		return ErrInviteNotFound
	}

	if invite.Email != user.Email {
		var membership models.FamilyMember
		err := s.db.Where("family_id = ? AND user_id = ?", invite.FamilyID, userID).First(&membership).Error
		if err != nil || membership.Role != models.RoleAdmin {
			return ErrInviteNotFound
		}
	}

	if err := s.db.Delete(&invite).Error; err != nil {
		return fmt.Errorf("failed to delete invite: %w", err)
	}
	return nil
}
