package handlers

import (
	"github.com/familyshare/family-share-backend/internal/auth"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	paymentID, err := h.paymentService.Create(userID, req.FamilyID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreatePaymentResponse{PaymentID: paymentID})
}

func (h *PaymentHandler) Reverse(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "paymentId", Message: "must be a valid uuid"}})
	}

	if err := h.paymentService.Reverse(userID, paymentID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PaymentHandler) History(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var familyID *uuid.UUID
	if raw := c.Query("familyId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return respondValidation(c, []dto.FieldError{{Field: "familyId", Message: "must be a valid uuid"}})
		}
		familyID = &id
	}

	entries, total, err := h.paymentService.History(userID, familyID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.PaymentHistoryResponse{
		Payments: make([]dto.PaymentResponse, 0, len(entries)),
		Total:    total,
	}
	for _, e := range entries {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{
			ID:        e.ID,
			Amount:    e.Amount,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
			Family: dto.PaymentFamilySummary{
				ID:   e.FamilyID,
				Name: e.FamilyName,
			},
		})
	}
	return c.JSON(resp)
}
