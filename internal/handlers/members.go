package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/utils"
)

type MembersHandler struct {
	Store *store.Store
}

func NewMembersHandler(st *store.Store) *MembersHandler {
	return &MembersHandler{Store: st}
}

func (h *MembersHandler) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, h.Store.Members())
}

type createMemberRequest struct {
	Name   string `json:"name"`
	TeamID string `json:"teamID"`
}

func (h *MembersHandler) Create(c *fiber.Ctx) error {
	var req createMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.Store.AddTeamMember(c.Context(), req.Name, req.TeamID)
	if err != nil {
		return storeError(c, err, "failed adding team member")
	}
	return utils.Success(c, fiber.StatusCreated, created)
}

func (h *MembersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid member id")
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	renamed, err := h.Store.RenameTeamMember(c.Context(), id, req.Name)
	if err != nil {
		return storeError(c, err, "failed renaming team member")
	}
	return utils.Success(c, fiber.StatusOK, renamed)
}

func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid member id")
	}

	if err := h.Store.DeleteTeamMember(c.Context(), id); err != nil {
		return storeError(c, err, "failed removing team member")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "team member removed"})
}
