package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/internal/middleware"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/pkg/utils"
)

type StateHandler struct {
	Store *store.Store
}

func NewStateHandler(st *store.Store) *StateHandler {
	return &StateHandler{Store: st}
}

// Get returns everything a client needs to render: the three snapshots plus
// the sync flags, in one round trip.
func (h *StateHandler) Get(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"files":             h.Store.Files(),
		"subfolders":        h.Store.Subfolders(),
		"members":           h.Store.Members(),
		"hasUnsavedChanges": h.Store.HasUnsavedChanges(),
		"loading":           h.Store.Loading(),
	})
}

// Save clears the unsaved-changes flag. Every mutation was already durably
// persisted when it ran; this endpoint only resets the Save affordance.
func (h *StateHandler) Save(c *fiber.Ctx) error {
	h.Store.Save()

	if session := middleware.GetCurrentSession(c); session != nil {
		logger.InfoWithSession(session.ID.String(), "changes_saved", nil)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "all changes saved"})
}
