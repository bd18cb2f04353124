package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/utils"
)

type SubfoldersHandler struct {
	Store *store.Store
}

func NewSubfoldersHandler(st *store.Store) *SubfoldersHandler {
	return &SubfoldersHandler{Store: st}
}

func (h *SubfoldersHandler) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, h.Store.Subfolders())
}

type createSubfolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parentFolderID"`
}

func (h *SubfoldersHandler) Create(c *fiber.Ctx) error {
	var req createSubfolderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	created, err := h.Store.AddSubfolder(c.Context(), req.Name, req.ParentFolderID)
	if err != nil {
		return storeError(c, err, "failed creating subfolder")
	}
	return utils.Success(c, fiber.StatusCreated, created)
}

func (h *SubfoldersHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid subfolder id")
	}

	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	renamed, err := h.Store.RenameSubfolder(c.Context(), id, req.Name)
	if err != nil {
		return storeError(c, err, "failed renaming subfolder")
	}
	return utils.Success(c, fiber.StatusOK, renamed)
}

func (h *SubfoldersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid subfolder id")
	}

	if err := h.Store.DeleteSubfolder(c.Context(), id); err != nil {
		return storeError(c, err, "failed deleting subfolder")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "subfolder deleted"})
}
