package handlers

import (
	"encoding/json"

	"github.com/familyshare/family-share-backend/internal/auth"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FamilyHandler struct {
	familyService *services.FamilyService
}

func NewFamilyHandler(familyService *services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.familyService.Create(userID, &req); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *FamilyHandler) List(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	families, err := h.familyService.ListForUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.FamilyListResponse{Families: make([]dto.FamilyResponse, 0, len(families))}
	for i := range families {
		resp.Families = append(resp.Families, familyResponse(&families[i]))
	}
	return c.JSON(resp)
}

func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	familyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}

	var req dto.UpdateFamilyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.familyService.Update(userID, familyID, &req); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *FamilyHandler) TransferOwnership(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	familyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}

	var req dto.TransferOwnershipRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.familyService.TransferOwnership(userID, familyID, req.NewOwnerID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *FamilyHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	familyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}
	memberID, err := uuid.Parse(c.Params("memberId"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "memberId", Message: "must be a valid uuid"}})
	}

	if err := h.familyService.RemoveMember(userID, familyID, memberID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func familyResponse(family *models.Family) dto.FamilyResponse {
	resp := dto.FamilyResponse{
		ID:            family.ID,
		Name:          family.Name,
		Description:   family.Description,
		MaxMembers:    family.MaxMembers,
		MonthlyCost:   family.MonthlyCost,
		DueDay:        family.DueDay,
		PaymentMethod: family.PaymentMethod,
		PixKey:        family.PixKey,
		CreatedAt:     family.CreatedAt,
		UpdatedAt:     family.UpdatedAt,
		Members:       make([]dto.MemberResponse, 0, len(family.Members)),
	}

	if len(family.BankDetails) > 0 {
		var bank dto.BankDetails
		if err := json.Unmarshal(family.BankDetails, &bank); err == nil {
			resp.BankDetails = &bank
		}
	}

	for _, m := range family.Members {
		resp.Members = append(resp.Members, dto.MemberResponse{
			ID:       m.ID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
			User: dto.UserResponse{
				ID:        m.User.ID,
				Name:      m.User.Name,
				Email:     m.User.Email,
				AvatarURL: m.User.AvatarURL,
			},
		})
	}
	return resp
}
