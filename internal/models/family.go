package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PaymentMethodPix      = "pix"
	PaymentMethodTransfer = "transfer"
)

// Family is a cost-sharing group. Exactly one of PixKey/BankDetails is
// populated, matching PaymentMethod.
type Family struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name          string         `gorm:"not null;size:128" json:"name"`
	Description   *string        `gorm:"type:text" json:"description"`
	MaxMembers    int            `gorm:"not null" json:"max_members"`
	MonthlyCost   float64        `gorm:"not null" json:"monthly_cost"`
	DueDay        int            `gorm:"not null;default:1" json:"due_day"`
	PaymentMethod string         `gorm:"size:20;not null" json:"payment_method"`
	PixKey        *string        `gorm:"size:255" json:"pix_key"`
	BankDetails   datatypes.JSON `gorm:"type:jsonb" json:"bank_details"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Owner   User           `gorm:"foreignKey:OwnerID" json:"-"`
	Members []FamilyMember `gorm:"foreignKey:FamilyID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}
