package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/teamspace/backend/internal/middleware"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/pkg/utils"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
	// HostPasswordHash is the bcrypt hash of the shared host password.
	HostPasswordHash string
}

func NewAuthHandler(db *gorm.DB, hostPasswordHash string) *AuthHandler {
	return &AuthHandler{DB: db, HostPasswordHash: hostPasswordHash}
}

type loginRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login issues a new session. Students get one unconditionally; the host
// role additionally requires the shared password and a display name. The
// returned token is the client's only handle on the session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	role := models.SessionRole(strings.TrimSpace(req.Role))
	req.Name = strings.TrimSpace(req.Name)

	if role != models.SessionRoleStudent && role != models.SessionRoleHost {
		return utils.Error(c, fiber.StatusBadRequest, "role must be student or host")
	}

	var name *string
	if role == models.SessionRoleHost {
		if req.Name == "" {
			return utils.Error(c, fiber.StatusBadRequest, "name is required for hosts")
		}
		if !utils.CheckPassword(req.Password, h.HostPasswordHash) {
			logger.Warn("host_login_rejected", map[string]interface{}{
				"ip":   c.IP(),
				"name": req.Name,
			})
			return utils.Error(c, fiber.StatusUnauthorized, "incorrect password")
		}
		name = &req.Name
	}

	session := models.Session{
		Token: utils.NewSessionToken(),
		Role:  role,
		Name:  name,
	}
	if err := h.DB.Create(&session).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating session")
	}

	logger.InfoWithSession(session.ID.String(), "session_created", map[string]interface{}{
		"role": string(role),
		"ip":   c.IP(),
	})

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"token":   session.Token,
		"session": session,
	})
}

// Me is the restore path: the client replays its stored token on reload and
// gets its identity back, or a 401 that tells it to drop the token.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session := middleware.GetCurrentSession(c)
	if session == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return utils.Success(c, fiber.StatusOK, session)
}

// Logout only records the event. The session row stays behind on purpose:
// rows accumulate and no cleanup policy exists.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session := middleware.GetCurrentSession(c)
	if session == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logger.InfoWithSession(session.ID.String(), "session_logout", map[string]interface{}{
		"role": string(session.Role),
	})
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "logged out"})
}
