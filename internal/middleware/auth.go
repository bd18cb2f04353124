package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/teamspace/backend/internal/models"
	"github.com/teamspace/backend/pkg/logger"
	"github.com/teamspace/backend/pkg/utils"
	"gorm.io/gorm"
)

const currentSessionKey = "currentSession"

type AuthMiddleware struct {
	DB *gorm.DB
}

func NewAuthMiddleware(db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{DB: db}
}

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3001,http://127.0.0.1:3001",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// RequireAuth resolves the bearer token to a session row. An unknown token
// gets a plain 401; the client reacts by discarding its stored token, which
// is how stale sessions die.
func (a *AuthMiddleware) RequireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		logger.Warn("session_missing_header", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "missing authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	if token == authHeader || token == "" {
		logger.Warn("session_invalid_format", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "invalid authorization format")
	}

	var session models.Session
	if err := a.DB.First(&session, "token = ?", token).Error; err != nil {
		logger.Warn("session_not_found", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "session not found")
	}

	c.Locals(currentSessionKey, &session)
	return c.Next()
}

// RequireHost is the single capability gate: hosts mutate, students read.
func RequireHost(c *fiber.Ctx) error {
	session := GetCurrentSession(c)
	if session == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if session.Role != models.SessionRoleHost {
		return utils.Error(c, fiber.StatusForbidden, "host access required")
	}
	return c.Next()
}

func GetCurrentSession(c *fiber.Ctx) *models.Session {
	value := c.Locals(currentSessionKey)
	if value == nil {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}
