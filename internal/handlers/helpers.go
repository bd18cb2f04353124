package handlers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/store"
	"github.com/teamspace/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// storeError maps data access failures onto envelope responses. Validation
// problems become 400s; anything unrecognized is a 500 with a generic
// message so backend details never leak to clients.
func storeError(c *fiber.Ctx, err error, fallback string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return utils.Error(c, fiber.StatusBadRequest, verrs.Error())
	case errors.Is(err, store.ErrBlankName):
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	case errors.Is(err, store.ErrInvalidDriveURL):
		return utils.Error(c, fiber.StatusBadRequest, "invalid Google Drive URL")
	case errors.Is(err, store.ErrUnknownTeam):
		return utils.Error(c, fiber.StatusBadRequest, "unknown team folder")
	case errors.Is(err, store.ErrFileNotFound):
		return utils.Error(c, fiber.StatusNotFound, "file not found")
	case errors.Is(err, store.ErrSubfolderNotFound):
		return utils.Error(c, fiber.StatusNotFound, "subfolder not found")
	case errors.Is(err, store.ErrMemberNotFound):
		return utils.Error(c, fiber.StatusNotFound, "team member not found")
	default:
		return utils.Error(c, fiber.StatusInternalServerError, fallback)
	}
}
