package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/internal/view"
	"github.com/teamspace/backend/pkg/utils"
)

type TeamsHandler struct {
	Store *store.Store
}

func NewTeamsHandler(st *store.Store) *TeamsHandler {
	return &TeamsHandler{Store: st}
}

func (h *TeamsHandler) List(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, view.ComposeTeams(h.Store.Subfolders()))
}

func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	team, ok := view.ComposeTeam(c.Params("id"), h.Store.Subfolders())
	if !ok {
		return utils.Error(c, fiber.StatusNotFound, "team folder not found")
	}
	return utils.Success(c, fiber.StatusOK, team)
}

// Breadcrumbs resolves the trail for a navigation state passed as query
// parameters: ?view=main|folder|subfolder&folderID=...&subfolderID=...
func (h *TeamsHandler) Breadcrumbs(c *fiber.Ctx) error {
	nav := view.Navigation{
		View:        view.NavView(strings.TrimSpace(c.Query("view", string(view.NavMain)))),
		FolderID:    strings.TrimSpace(c.Query("folderID")),
		SubfolderID: strings.TrimSpace(c.Query("subfolderID")),
	}

	switch nav.View {
	case view.NavMain, view.NavFolder, view.NavSubfolder:
	default:
		return utils.Error(c, fiber.StatusBadRequest, "view must be main, folder or subfolder")
	}

	crumbs, err := view.Breadcrumbs(nav, h.Store.Subfolders())
	if err != nil {
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, crumbs)
}
