package handlers

import (
	"github.com/familyshare/family-share-backend/internal/auth"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InviteHandler struct {
	inviteService *services.InviteService
}

func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

func (h *InviteHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	var req dto.CreateInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondInvalidBody(c)
	}
	if fields := dto.Validate(&req); fields != nil {
		return respondValidation(c, fields)
	}

	if err := h.inviteService.Create(userID, req.FamilyID, req.Email); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (h *InviteHandler) List(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	invites, err := h.inviteService.ListForUser(userID)
	if err != nil {
		return respondError(c, err)
	}

	resp := dto.InviteListResponse{Invites: make([]dto.InviteResponse, 0, len(invites))}
	for _, invite := range invites {
		resp.Invites = append(resp.Invites, dto.InviteResponse{
			ID:        invite.ID,
			Email:     invite.Email,
			Code:      invite.Code,
			ExpiresAt: invite.ExpiresAt,
			CreatedAt: invite.CreatedAt,
			Family: dto.InviteFamilySummary{
				ID:   invite.Family.ID,
				Name: invite.Family.Name,
				Owner: dto.InviteOwnerSummary{
					ID:        invite.Family.Owner.ID,
					Name:      invite.Family.Owner.Name,
					AvatarURL: invite.Family.Owner.AvatarURL,
				},
			},
		})
	}
	return c.JSON(resp)
}

func (h *InviteHandler) Accept(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	inviteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}

	if err := h.inviteService.Accept(userID, inviteID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InviteHandler) Reject(c *fiber.Ctx) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return respondUnauthorized(c)
	}

	inviteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondValidation(c, []dto.FieldError{{Field: "id", Message: "must be a valid uuid"}})
	}

	if err := h.inviteService.Reject(userID, inviteID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
