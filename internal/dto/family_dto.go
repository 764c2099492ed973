package dto

import (
	"time"

	"github.com/google/uuid"
)

// BankDetails are the transfer settlement details, stored as JSON on
// the family row. Account types follow Brazilian banking conventions.
type BankDetails struct {
	BankName      string `json:"bankName" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	AgencyNumber  string `json:"agencyNumber" validate:"required"`
	AccountType   string `json:"accountType" validate:"required,oneof=corrente poupança"`
}

type CreateFamilyRequest struct {
	Name          string       `json:"name" validate:"required"`
	Description   *string      `json:"description"`
	MaxMembers    int          `json:"maxMembers" validate:"required,min=2,max=10"`
	MonthlyCost   float64      `json:"monthlyCost" validate:"required,gt=0"`
	DueDay        int          `json:"dueDay" validate:"required,min=1,max=31"`
	PaymentMethod string       `json:"paymentMethod" validate:"required,oneof=transfer pix"`
	PixKey        *string      `json:"pixKey"`
	BankDetails   *BankDetails `json:"bankDetails" validate:"omitempty"`
}

type UpdateFamilyRequest struct {
	Name          *string      `json:"name" validate:"omitempty,min=2,max=128"`
	Description   *string      `json:"description"`
	MaxMembers    *int         `json:"maxMembers" validate:"omitempty,min=2,max=10"`
	MonthlyCost   *float64     `json:"monthlyCost" validate:"omitempty,gt=0"`
	DueDay        *int         `json:"dueDay" validate:"omitempty,min=1,max=31"`
	PaymentMethod *string      `json:"paymentMethod" validate:"omitempty,oneof=transfer pix"`
	PixKey        *string      `json:"pixKey"`
	BankDetails   *BankDetails `json:"bankDetails" validate:"omitempty"`
}

type TransferOwnershipRequest struct {
	NewOwnerID uuid.UUID `json:"newOwnerId" validate:"required"`
}

type FamilyResponse struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   *string          `json:"description"`
	MaxMembers    int              `json:"maxMembers"`
	MonthlyCost   float64          `json:"monthlyCost"`
	DueDay        int              `json:"dueDay"`
	PaymentMethod string           `json:"paymentMethod"`
	PixKey        *string          `json:"pixKey"`
	BankDetails   *BankDetails     `json:"bankDetails"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Members       []MemberResponse `json:"members"`
}

type MemberResponse struct {
	ID       uuid.UUID    `json:"id"`
	Role     string       `json:"role"`
	JoinedAt time.Time    `json:"joinedAt"`
	User     UserResponse `json:"user"`
}

type FamilyListResponse struct {
	Families []FamilyResponse `json:"families"`
}
