package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	FamilyID uuid.UUID `json:"familyId" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
}

type CreatePaymentResponse struct {
	PaymentID uuid.UUID `json:"paymentId"`
}

type PaymentResponse struct {
	ID        uuid.UUID            `json:"id"`
	Amount    float64              `json:"amount"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	Family    PaymentFamilySummary `json:"family"`
}

type PaymentFamilySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type PaymentHistoryResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int64             `json:"total"`
}
