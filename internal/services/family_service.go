package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// Create persists a family and enrolls the owner as its first admin
// member in one transaction.
func (s *FamilyService) Create(ownerID uuid.UUID, req *dto.CreateFamilyRequest) error {
	pixKey, bankDetails, err := settlementDetails(req.PaymentMethod, req.PixKey, req.BankDetails)
	if err != nil {
		return err
	}

	family := models.Family{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          req.Name,
		Description:   req.Description,
		MaxMembers:    req.MaxMembers,
		MonthlyCost:   req.MonthlyCost,
		DueDay:        req.DueDay,
		PaymentMethod: req.PaymentMethod,
		PixKey:        pixKey,
		BankDetails:   bankDetails,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&family).Error; err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}

		member := models.FamilyMember{
			ID:       uuid.New(),
			FamilyID: family.ID,
			UserID:   ownerID,
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create owner membership: %w", err)
		}
		return nil
	})
}

// ListForUser returns the families the user belongs to, newest first,
// with members and their user summaries loaded.
func (s *FamilyService) ListForUser(userID uuid.UUID) ([]models.Family, error) {
	var families []models.Family
	err := s.db.
		Joins("JOIN family_members ON family_members.family_id = families.id").
		Where("family_members.user_id = ?", userID).
		Preload("Members.User").
		Order("families.created_at DESC").
		Find(&families).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	return families, nil
}

// Update applies a partial update to a family's mutable attributes.
// Only admins may update, and the settlement details must stay
// consistent with the resulting payment method: a pix family needs a
// pix key, a transfer family needs bank details.
func (s *FamilyService) Update(userID, familyID uuid.UUID, req *dto.UpdateFamilyRequest) error {
	if err := s.requireAdmin(familyID, userID); err != nil {
		return err
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		return ErrFamilyNotFound
	}

	method := family.PaymentMethod
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.MaxMembers != nil {
		updates["max_members"] = *req.MaxMembers
	}
	if req.MonthlyCost != nil {
		updates["monthly_cost"] = *req.MonthlyCost
	}
	if req.DueDay != nil {
		updates["due_day"] = *req.DueDay
	}

	switch method {
	case models.PaymentMethodPix:
		if req.PixKey == nil && family.PixKey == nil {
			return ErrPixKeyRequired
		}
		if req.PixKey != nil {
			updates["pix_key"] = *req.PixKey
		}
		updates["payment_method"] = models.PaymentMethodPix
		updates["bank_details"] = nil
	case models.PaymentMethodTransfer:
		if req.BankDetails == nil && len(family.BankDetails) == 0 {
			return ErrBankDetailsRequired
		}
		if req.BankDetails != nil {
			raw, err := json.Marshal(req.BankDetails)
			if err != nil {
				return fmt.Errorf("failed to encode bank details: %w", err)
			}
			updates["bank_details"] = datatypes.JSON(raw)
		}
		updates["payment_method"] = models.PaymentMethodTransfer
		updates["pix_key"] = nil
	}

	if err := s.db.Model(&family).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update family: %w", err)
	}
	return nil
}

// TransferOwnership moves ownership to an existing member. The owner
// change, the promotion, and the demotion land in one transaction so a
// failure leaves no partial state.
func (s *FamilyService) TransferOwnership(userID, familyID, newOwnerID uuid.UUID) error {
	if newOwnerID == userID {
		return ErrSameOwner
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		return ErrFamilyNotFound
	}

	if family.OwnerID != userID {
		return ErrNotFamilyOwner
	}

	var target models.FamilyMember
	err := s.db.Where("family_id = ? AND user_id = ?", familyID, newOwnerID).First(&target).Error
	if err != nil {
		return ErrTargetNotMember
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Family{}).Where("id = ?", familyID).
			Update("owner_id", newOwnerID).Error; err != nil {
			return fmt.Errorf("failed to update owner: %w", err)
		}
		if err := tx.Model(&models.FamilyMember{}).Where("id = ?", target.ID).
			Update("role", models.RoleAdmin).Error; err != nil {
			return fmt.Errorf("failed to promote new owner: %w", err)
		}
		if err := tx.Model(&models.FamilyMember{}).
			Where("family_id = ? AND user_id = ?", familyID, userID).
			Update("role", models.RoleMember).Error; err != nil {
			return fmt.Errorf("failed to demote previous owner: %w", err)
		}
		return nil
	})
}

// RemoveMember deletes a membership row. Payments reference members
// without a foreign-key constraint, so the removed member's history
// stays intact.
func (s *FamilyService) RemoveMember(userID, familyID, memberID uuid.UUID) error {
	if err := s.requireAdmin(familyID, userID); err != nil {
		return err
	}

	var member models.FamilyMember
	if err := s.db.Where("id = ? AND family_id = ?", memberID, familyID).First(&member).Error; err != nil {
		return ErrMemberNotFound
	}

	var family models.Family
	if err := s.db.First(&family, "id = ?", familyID).Error; err != nil {
		return ErrFamilyNotFound
	}
	if family.OwnerID == member.UserID {
		return ErrCannotRemoveOwner
	}

	if err := s.db.Delete(&member).Error; err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

func (s *FamilyService) requireAdmin(familyID, userID uuid.UUID) error {
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
	return nil
}

// settlementDetails enforces the one-of invariant at creation time:
// exactly the detail set matching the payment method is stored.
func settlementDetails(method string, pixKey *string, bank *dto.BankDetails) (*string, datatypes.JSON, error) {
	switch method {
	case models.PaymentMethodPix:
		if pixKey == nil || *pixKey == "" {
			return nil, nil, ErrPixKeyRequired
		}
		return pixKey, nil, nil
	case models.PaymentMethodTransfer:
		if bank == nil {
			return nil, nil, ErrBankDetailsRequired
		}
		raw, err := json.Marshal(bank)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode bank details: %w", err)
		}
		return nil, datatypes.JSON(raw), nil
	default:
		return nil, nil, badRequestf("unsupported payment method: %s", method)
	}
}
